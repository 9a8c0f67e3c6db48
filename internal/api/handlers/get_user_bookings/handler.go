package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус, ожидается SCHEDULED, COMPLETED или CANCELLED"
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

// Handle GET /api/v1/bookings?status=
// Бронирования текущего родителя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq := &models.GetParentBookingsRequest{
		ParentID: parentID,
		Status:   handlers.OptionalQuery(r, "status"),
	}

	result, err := h.service.GetParentBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid status: parent_id=%d", parentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: parent_id=%d, error=%v", parentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: parent_id=%d, count=%d",
		parentID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
