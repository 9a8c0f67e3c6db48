package get_session_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgNotFound         = "отчёт по сессии ещё не написан"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/report
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

	resp, err := h.service.GetReport(r.Context(), bookingID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, sessions.ErrReportNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/report - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/report - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
