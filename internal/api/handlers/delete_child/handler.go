package delete_child

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidChildID = "некорректный ID ребёнка"
	msgNotFound       = "профиль ребёнка не найден"
	msgAccessDenied   = "нет доступа к профилю"
	msgHasBookings    = "у ребёнка есть запланированные сессии"
)

type ChildService interface {
	Delete(ctx context.Context, parentID, childID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
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

// Handle DELETE /api/v1/children/{childId}
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

	if err := h.service.Delete(r.Context(), parentID, childID); err != nil {
		switch {
		case errors.Is(err, children.ErrChildNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, children.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, children.ErrChildHasBookings):
			handlers.RespondConflict(w, msgHasBookings)
		default:
			h.logger.Error("DELETE /children/{id} - Failed: child_id=%d, error=%v", childID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /children/{id} - Child deleted: child_id=%d", childID)
	handlers.RespondNoContent(w)
}
