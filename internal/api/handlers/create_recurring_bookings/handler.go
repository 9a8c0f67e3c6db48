package create_recurring_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	createRecurring "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_recurring_bookings"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgTherapistNotFound  = "терапевт не найден"
	msgNoActivatedTimes   = "терапевт ещё не задал время приёма"
	msgChildNotFound      = "профиль ребёнка не найден"
	msgChildNotOwned      = "профиль ребёнка принадлежит другому родителю"
	msgTherapistInactive  = "терапевт не принимает записи"
	msgPastDate           = "дата начала не может быть в прошлом"
	msgWeekendStart       = "дата начала должна быть будним днём"
	msgTimeNotActivated   = "терапевт не принимает в это время"
)

type Handler struct {
	useCase CreateRecurringBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
// Частичный успех отвечает 201 со списками created и skipped
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RecurringBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(parentID)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createRecurring.ErrNoActivatedTimes):
			handlers.RespondNotFound(w, msgNoActivatedTimes)

		case errors.Is(err, createRecurring.ErrChildNotFound):
			handlers.RespondNotFound(w, msgChildNotFound)

		case errors.Is(err, createRecurring.ErrChildNotOwned):
			handlers.RespondForbidden(w, msgChildNotOwned)

		case errors.Is(err, createRecurring.ErrTherapistInactive):
			handlers.RespondConflict(w, msgTherapistInactive)

		case errors.Is(err, createRecurring.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createRecurring.ErrWeekendStart):
			handlers.RespondBadRequest(w, msgWeekendStart)

		case errors.Is(err, createRecurring.ErrTimeNotActivated):
			handlers.RespondBadRequest(w, msgTimeNotActivated)

		case errors.Is(err, createRecurring.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/recurring - Failed: parent_id=%d, therapist_id=%d, error=%v",
				parentID, req.TherapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/recurring - group=%s, created=%d, skipped=%d",
		result.RecurrenceGroupID, len(result.Created), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
