package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Bhavya700/CSE-412/internal/apperrors"
	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/config"
	"github.com/Bhavya700/CSE-412/internal/ui/responses"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// HandleLiveness reports that the ui server is running
func (h *HandlerService) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleReadiness reports whether the search backend is reachable
func (h *HandlerService) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), config.ReadinessTimeout)
	defer cancel()

	if err := h.ApiClient.Health(ctx); err != nil {
		logger.ContextRequestLogger(r.Context()).Warn("search backend is not ready",
			slog.String("api_base_url", h.ApiClient.BaseURL()),
			slog.String("error", err.Error()),
		)
		responses.RespondWithError(w, r, http.StatusServiceUnavailable, apperrors.ErrCodeBackendUnavailable, "search backend is not available")
		return
	}

	responses.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
