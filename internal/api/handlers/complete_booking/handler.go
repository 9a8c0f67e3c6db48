package complete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgCannotComplete   = "завершить можно только запланированную сессию"
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

// Handle PATCH /api/v1/bookings/{bookingId}/complete
// Вызывается по завершении видеосессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	booking, err := h.service.Complete(r.Context(), bookingID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/complete - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotComplete):
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /bookings/{id}/complete - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/complete - Booking completed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
