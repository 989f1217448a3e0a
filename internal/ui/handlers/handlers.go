package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Bhavya700/CSE-412/internal/apperrors"
	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/client"
	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/responses"
	"github.com/Bhavya700/CSE-412/internal/ui/session"
	"github.com/Bhavya700/CSE-412/internal/ui/shell"
	"github.com/Bhavya700/CSE-412/internal/ui/templates"
)

type HandlerService struct {
	Sessions  *session.Store
	ApiClient *client.Client
	TopN      int
}

func isHtmxRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func panelViews(ws *shell.Workspace) []templates.PanelView {
	panels := ws.Panels()
	views := make([]templates.PanelView, len(panels))
	for i, p := range panels {
		views[i] = templates.PanelView{Config: p.Config(), State: p.Snapshot()}
	}
	return views
}

// workspacePanel returns the panel named in the url for the request's session.
// Writes an error response and returns false if the panel can't be found.
func (h *HandlerService) workspacePanel(w http.ResponseWriter, r *http.Request, panelID string) (*panel.Panel, bool) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	ws, err := h.Sessions.Workspace(w, r)
	if err != nil {
		reqLogger.Error("Failed to load workspace", slog.String("error", err.Error()))
		responses.RespondWithError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternalError, "An error occurred. Please try again.")
		return nil, false
	}

	p, ok := ws.Panel(panelID)
	if !ok {
		responses.RespondWithError(w, r, http.StatusNotFound, apperrors.ErrCodeResourceNotFound, fmt.Sprintf("no panel named %q", panelID))
		return nil, false
	}
	return p, true
}

// renderPanel redraws a panel after a state change.
// htmx requests get the panel fragment, other requests are redirected to the page (post/redirect/get)
func (h *HandlerService) renderPanel(w http.ResponseWriter, r *http.Request, p *panel.Panel) {
	if !isHtmxRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := templates.PanelView{Config: p.Config(), State: p.Snapshot()}
	component := templates.Panel(view, h.TopN)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render panel", slog.String("error", err.Error()))
	}
}
