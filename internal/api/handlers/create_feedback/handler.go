package create_feedback

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
	msgNotCompleted       = "отзыв можно оставить только по завершённой сессии"
	msgAlreadyExists      = "отзыв по сессии уже оставлен"
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

// Handle POST /api/v1/bookings/{bookingId}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/feedback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	feedback, err := h.service.CreateFeedback(r.Context(), bookingID, parentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, sessions.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/feedback - Access denied: booking_id=%d, parent_id=%d", bookingID, parentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrSessionNotCompleted):
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, sessions.ErrFeedbackAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /bookings/{id}/feedback - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/feedback - Feedback created: booking_id=%d, rating=%d", bookingID, feedback.Rating)
	handlers.RespondJSON(w, http.StatusCreated, feedback)
}
