package create_session_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/sessions/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotCompleted       = "отчёт можно написать только по завершённой сессии"
	msgAlreadyExists      = "отчёт по сессии уже написан"
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

// Handle POST /api/v1/bookings/{bookingId}/report
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

	var req models.CreateReportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/report - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	report, err := h.service.CreateReport(r.Context(), bookingID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, sessions.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/report - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrSessionNotCompleted):
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, sessions.ErrReportAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /bookings/{id}/report - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/report - Report created: report_id=%d, booking_id=%d", report.ID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, report)
}
