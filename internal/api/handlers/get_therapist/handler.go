package get_therapist

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgNotFound           = "терапевт не найден"
)

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

// Handle GET /api/v1/therapists/{therapistId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID, err := handlers.PathID(r, "therapistId")
	if err != nil {
		h.logger.Warn("GET /therapists/{id} - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	therapist, err := h.service.Get(r.Context(), therapistID)
	if err != nil {
		if errors.Is(err, therapists.ErrTherapistNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /therapists/{id} - Failed to get therapist: therapist_id=%d, error=%v", therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, therapist)
}
