package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/TheraConnect-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgPastDate           = "дата не может быть в прошлом"
	msgTimeNotActivated   = "терапевт не принимает в это время"
	msgTherapistNotFound  = "терапевт не найден"
	msgNoActivatedTimes   = "терапевт ещё не задал время приёма"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/availability?therapistId&date&time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	therapistID, err := strconv.ParseInt(query.Get("therapistId"), 10, 64)
	if err != nil || therapistID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(therapistID, query.Get("date"), query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /bookings/availability - Invalid query: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, checkAvailability.ErrNoActivatedTimes):
			handlers.RespondNotFound(w, msgNoActivatedTimes)

		case errors.Is(err, checkAvailability.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, checkAvailability.ErrTimeNotActivated):
			handlers.RespondBadRequest(w, msgTimeNotActivated)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/availability - Failed to check slot: therapist_id=%d, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
