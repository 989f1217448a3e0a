package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/templates"
)

// HandleHome renders both panels side by side from the session's current state
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	ws, err := h.Sessions.Workspace(w, r)
	if err != nil {
		reqLogger.Error("Failed to load workspace", slog.String("error", err.Error()))
		http.Error(w, "An error occurred. Please try again.", http.StatusInternalServerError)
		return
	}

	component := templates.ShellPage(panelViews(ws), h.TopN)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger.Error("Failed to render page", slog.String("error", err.Error()))
	}
}
