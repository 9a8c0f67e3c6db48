package get_analytics

import (
	"context"
	"net/http"

	"github.com/m04kA/TheraConnect-BookingService/internal/api/handlers"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/analytics"
)

type AnalyticsService interface {
	Summary(ctx context.Context) (*analytics.Summary, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/analytics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/analytics - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, summary)
}
