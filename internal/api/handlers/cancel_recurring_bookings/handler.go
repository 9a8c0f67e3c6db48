package cancel_recurring_bookings

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidGroupID     = "некорректный ID серии бронирований"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "серия бронирований не найдена"
	msgForbidden          = "доступ запрещен"
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

// CancelGroupRequest HTTP request model
type CancelGroupRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// Handle PATCH /api/v1/bookings/recurring/{groupId}/cancel
// Отменяет все будущие SCHEDULED бронирования серии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(mux.Vars(r)["groupId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/recurring/{id}/cancel - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelGroupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelGroup(r.Context(), groupID, &models.CancelBookingRequest{
		ParentID:           parentID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/recurring/{id}/cancel - Access denied: group=%s, parent_id=%d", groupID, parentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/recurring/{id}/cancel - Failed: group=%s, error=%v", groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/recurring/{id}/cancel - Cancelled %d bookings of group=%s", len(result.Bookings), groupID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
