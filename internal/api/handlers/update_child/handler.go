package update_child

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/children/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidChildID     = "некорректный ID ребёнка"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "профиль ребёнка не найден"
	msgAccessDenied       = "нет доступа к профилю"
)

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

// Handle PUT /api/v1/children/{childId}
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

	var req models.ChildRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /children/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	child, err := h.service.Update(r.Context(), parentID, childID, &req)
	if err != nil {
		switch {
		case errors.Is(err, children.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, children.ErrChildNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, children.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("PUT /children/{id} - Failed: child_id=%d, error=%v", childID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /children/{id} - Child updated: child_id=%d", childID)
	handlers.RespondJSON(w, http.StatusOK, child)
}
