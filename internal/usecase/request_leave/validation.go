package request_leave

import (
	"fmt"
	"strings"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxLeaveReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxLeaveReasonLength)
	}

	return nil
}

// normalizeReason пустая причина хранится как NULL
func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
