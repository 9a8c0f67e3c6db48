package create_child

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
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/children
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	parentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ChildRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /children - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	child, err := h.service.Create(r.Context(), parentID, &req)
	if err != nil {
		if errors.Is(err, children.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /children - Failed: parent_id=%d, error=%v", parentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /children - Child created: child_id=%d, parent_id=%d", child.ID, parentID)
	handlers.RespondJSON(w, http.StatusCreated, child)
}
