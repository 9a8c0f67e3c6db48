package list_therapists

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

const msgInvalidStatus = "некорректный статус терапевта"

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

// Handle GET /api/v1/therapists?specialization=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), &models.ListTherapistsRequest{
		Specialization: handlers.OptionalQuery(r, "specialization"),
		Status:         handlers.OptionalQuery(r, "status"),
	})
	if err != nil {
		if errors.Is(err, therapists.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /therapists - Failed to list therapists: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
