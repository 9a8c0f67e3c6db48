package get_child

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidChildID = "некорректный ID ребёнка"
	msgNotFound       = "профиль ребёнка не найден"
	msgAccessDenied   = "нет доступа к профилю"
)

type ChildService interface {
	Get(ctx context.Context, parentID, childID int64) (*models.ChildResponse, error)
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

// Handle GET /api/v1/children/{childId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	childID, err := handlers.PathID(r, "childId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidChildID)
		return
	}

	child, err := h.service.Get(r.Context(), parentID, childID)
	if err != nil {
		switch {
		case errors.Is(err, children.ErrChildNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, children.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /children/{id} - Failed: child_id=%d, error=%v", childID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, child)
}
