package request_leave

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	requestLeave "github.com/m04kA/TheraConnect-BookingService/internal/usecase/request_leave"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate           = "дата выходного не может быть в прошлом"
	msgTherapistNotFound  = "профиль терапевта не найден"
	msgAlreadyExists      = "заявка на эту дату уже существует"
)

type Handler struct {
	useCase RequestLeaveUseCase
	logger  Logger
}

func NewHandler(useCase RequestLeaveUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/therapists/me/leaves
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req LeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /therapists/me/leaves - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	leave, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestLeave.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, requestLeave.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, requestLeave.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, requestLeave.ErrLeaveAlreadyExists):
			h.logger.Warn("POST /therapists/me/leaves - Duplicate leave: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /therapists/me/leaves - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /therapists/me/leaves - Leave requested: leave_id=%d, therapist_id=%d", leave.ID, leave.TherapistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(leave))
}
