package process_leave

import (
	"fmt"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.LeaveStatus, error) {
	if req.LeaveID <= 0 {
		return "", fmt.Errorf("%w: leaveID must be positive", ErrInvalidInput)
	}

	status, ok := req.Action.ResultingStatus()
	if !ok {
		return "", fmt.Errorf("%w: action must be APPROVE or REJECT, got %q", ErrInvalidInput, req.Action)
	}

	if req.AdminNotes != nil && len([]rune(*req.AdminNotes)) > domain.MaxAdminNotesLength {
		return "", fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	return status, nil
}
