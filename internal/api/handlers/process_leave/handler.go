package process_leave

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	processLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/process_leave"
)

const (
	msgInvalidLeaveID     = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заявка не найдена"
	msgAlreadyProcessed   = "заявка уже обработана"
	msgConcurrentUpdate   = "заявка изменяется параллельно, повторите запрос"
)

type Handler struct {
	useCase ProcessLeaveUseCase
	logger  Logger
}

func NewHandler(useCase ProcessLeaveUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/leaves/{leaveId}
// Одобрение отменяет все запланированные сессии терапевта на эту дату
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	leaveID, err := handlers.PathID(r, "leaveId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLeaveID)
		return
	}

	var req ProcessLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/leaves/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(leaveID))
	if err != nil {
		switch {
		case errors.Is(err, processLeave.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, processLeave.ErrLeaveNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, processLeave.ErrLeaveAlreadyProcessed):
			h.logger.Warn("PATCH /admin/leaves/{id} - Already processed: leave_id=%d", leaveID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, processLeave.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /admin/leaves/{id} - Concurrent update: leave_id=%d", leaveID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /admin/leaves/{id} - Failed: leave_id=%d, error=%v", leaveID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/leaves/{id} - Leave %s: leave_id=%d, cancelled_bookings=%d",
		result.Status, leaveID, len(result.CancelledBookingIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
