package list_leaves

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
)

const msgInvalidStatus = "некорректный статус заявки"

type Handler struct {
	service TherapistService
	logger  Logger
}

func NewHandler(service TherapistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/leaves?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListLeaves(r.Context(), handlers.OptionalQuery(r, "status"))
	if err != nil {
		if errors.Is(err, therapists.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /admin/leaves - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
