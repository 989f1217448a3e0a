package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Bhavya700/CSE-412/internal/logger"
)

// HandleSimpleSearch runs the single table (name) search for a panel and redraws it.
// A blank name is ignored (the panel is redrawn without calling the backend).
func (h *HandlerService) HandleSimpleSearch(w http.ResponseWriter, r *http.Request) {
	panelID := chi.URLParam(r, "panel")

	p, ok := h.workspacePanel(w, r, panelID)
	if !ok {
		return
	}

	submitted := p.SubmitSimple(r.Context(), r.FormValue("name"))

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("panel", panelID),
		slog.Bool("submitted", submitted),
	)

	h.renderPanel(w, r, p)
}

// HandleComplexSearch runs the nation + position (join) search for a panel and redraws it.
// The search is only run when both fields are filled in.
func (h *HandlerService) HandleComplexSearch(w http.ResponseWriter, r *http.Request) {
	panelID := chi.URLParam(r, "panel")

	p, ok := h.workspacePanel(w, r, panelID)
	if !ok {
		return
	}

	submitted := p.SubmitComplex(r.Context(), r.FormValue("nation"), r.FormValue("position"))

	logger.ContextWithLogAttrs(r.Context(),
		slog.String("panel", panelID),
		slog.Bool("submitted", submitted),
	)

	h.renderPanel(w, r, p)
}
