package list_children

import (
	"context"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
)

const msgMissingUserID = "отсутствует ID пользователя"

type ChildService interface {
	List(ctx context.Context, parentID int64) (*models.ChildListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	service ChildService
	logger  Logger
}

func NewHandler(service ChildService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/children
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), parentID)
	if err != nil {
		h.logger.Error("GET /children - Failed: parent_id=%d, error=%v", parentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
