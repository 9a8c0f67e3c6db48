package activate_times

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "профиль терапевта не найден"
	msgAlreadyActivated   = "время приёма уже задано и не может быть изменено"
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

// Handle POST /api/v1/therapists/me/times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ActivateTimesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /therapists/me/times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	therapist, err := h.service.ActivateTimes(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, therapists.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, therapists.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, therapists.ErrTimesAlreadyActivated):
			h.logger.Warn("POST /therapists/me/times - Already activated: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyActivated)

		default:
			h.logger.Error("POST /therapists/me/times - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /therapists/me/times - Times activated: therapist_id=%d, times=%v",
		therapist.ID, therapist.ActivatedTimes)
	handlers.RespondJSON(w, http.StatusOK, therapist)
}
