package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/TheraConnect-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate           = "дата не может быть в прошлом"
	msgTherapistNotFound  = "терапевт не найден"
	msgNoActivatedTimes   = "терапевт ещё не задал время приёма"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/slots
// Query params: therapistId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := strconv.ParseInt(r.URL.Query().Get("therapistId"), 10, 64)
	if err != nil || therapistID <= 0 {
		h.logger.Warn("GET /bookings/slots - Invalid therapist ID: %q", r.URL.Query().Get("therapistId"))
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /bookings/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(therapistID, dateStr)
	if err != nil {
		h.logger.Warn("GET /bookings/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTherapistNotFound):
			h.logger.Warn("GET /bookings/slots - Therapist not found: therapist_id=%d", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, getAvailableSlots.ErrNoActivatedTimes):
			h.logger.Warn("GET /bookings/slots - No activated times: therapist_id=%d", therapistID)
			handlers.RespondNotFound(w, msgNoActivatedTimes)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/slots - Failed to get slots: therapist_id=%d, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/slots - Slots retrieved: therapist_id=%d, date=%s, slots_count=%d",
		therapistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
