package list_own_leaves

import (
	"errors"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/api/middleware"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/therapists"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус заявки"
	msgNotFound      = "профиль терапевта не найден"
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

// Handle GET /api/v1/therapists/me/leaves?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListOwnLeaves(r.Context(), userID, handlers.OptionalQuery(r, "status"))
	if err != nil {
		switch {
		case errors.Is(err, therapists.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, therapists.ErrTherapistNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /therapists/me/leaves - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
