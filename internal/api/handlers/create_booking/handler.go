package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/TheraConnect-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты сессии, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotConflict       = "выбранный слот уже занят"
	msgTherapistNotFound  = "терапевт не найден"
	msgNoActivatedTimes   = "терапевт ещё не задал время приёма"
	msgChildNotFound      = "профиль ребёнка не найден"
	msgChildNotOwned      = "профиль ребёнка принадлежит другому родителю"
	msgTherapistInactive  = "терапевт не принимает записи"
	msgPastDate           = "дата сессии не может быть в прошлом"
	msgNotWorkingDay      = "сессии проводятся только по будним дням"
	msgTimeNotActivated   = "терапевт не принимает в это время"
	msgTherapistOnLeave   = "у терапевта выходной в эту дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(parentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
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
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: parent_id=%d, therapist_id=%d, date=%s, time=%s",
				parentID, req.TherapistID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createBooking.ErrNoActivatedTimes):
			handlers.RespondNotFound(w, msgNoActivatedTimes)

		case errors.Is(err, createBooking.ErrChildNotFound):
			handlers.RespondNotFound(w, msgChildNotFound)

		case errors.Is(err, createBooking.ErrChildNotOwned):
			h.logger.Warn("POST /bookings - Child not owned: parent_id=%d, child_id=%d", parentID, req.ChildID)
			handlers.RespondForbidden(w, msgChildNotOwned)

		case errors.Is(err, createBooking.ErrTherapistInactive):
			handlers.RespondConflict(w, msgTherapistInactive)

		case errors.Is(err, createBooking.ErrTherapistOnLeave):
			handlers.RespondConflict(w, msgTherapistOnLeave)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrNotWorkingDay):
			handlers.RespondBadRequest(w, msgNotWorkingDay)

		case errors.Is(err, createBooking.ErrTimeNotActivated):
			handlers.RespondBadRequest(w, msgTimeNotActivated)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: parent_id=%d, therapist_id=%d, error=%v",
				parentID, req.TherapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, parent_id=%d, therapist_id=%d",
		result.ID, parentID, result.TherapistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
