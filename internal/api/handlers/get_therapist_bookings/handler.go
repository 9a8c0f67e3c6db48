package get_therapist_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
	msgTherapistNotFound = "профиль терапевта не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/me/bookings
// Query params: from, to (YYYY-MM-DD), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /therapists/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(userID, query.Get("from"), query.Get("to"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /therapists/me/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetTherapistBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTherapistNotFound):
			h.logger.Warn("GET /therapists/me/bookings - Therapist not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /therapists/me/bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/me/bookings - Bookings retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
