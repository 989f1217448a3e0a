// Package shell defines the two side by side search panels.
//
// The panels use the same logic and differ only in configuration: the left panel searches the backend
// without indexes and the right panel with B-tree indexes.
package shell

import (
	"log/slog"

	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

const (
	NoIndexPanelID   = "no-index"
	WithIndexPanelID = "with-index"
)

// backend endpoints
const (
	NoIndexSearchEndpoint   = "/api/no-index/search"
	NoIndexJoinEndpoint     = "/api/no-index/join"
	WithIndexSearchEndpoint = "/api/with-index/search"
	WithIndexJoinEndpoint   = "/api/with-index/join"
)

// PanelConfigs are the fixed panel configurations in display order (left to right)
var PanelConfigs = []panel.Config{
	{
		ID:              NoIndexPanelID,
		Title:           "Search WITHOUT Indexing",
		Description:     "Standard queries on raw tables. Slow for large datasets.",
		Theme:           types.ThemeRed,
		SimpleEndpoint:  NoIndexSearchEndpoint,
		ComplexEndpoint: NoIndexJoinEndpoint,
	},
	{
		ID:              WithIndexPanelID,
		Title:           "Search WITH Indexing",
		Description:     "Optimized queries using B-Tree indexes. Significantly faster.",
		Theme:           types.ThemeGreen,
		SimpleEndpoint:  WithIndexSearchEndpoint,
		ComplexEndpoint: WithIndexJoinEndpoint,
	},
}

// PanelConfig returns the configuration for a panel id
func PanelConfig(id string) (panel.Config, bool) {
	for _, cfg := range PanelConfigs {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return panel.Config{}, false
}

// Workspace is one instance of the application shell: a pair of independent panels
type Workspace struct {
	panels []*panel.Panel
}

// NewWorkspace creates a panel for each of the PanelConfigs
func NewWorkspace(searcher panel.Searcher, logger *slog.Logger) *Workspace {
	ws := &Workspace{
		panels: make([]*panel.Panel, 0, len(PanelConfigs)),
	}
	for _, cfg := range PanelConfigs {
		ws.panels = append(ws.panels, panel.New(cfg, searcher, logger))
	}
	return ws
}

// Panels returns the panels in display order
func (ws *Workspace) Panels() []*panel.Panel {
	return ws.panels
}

// Panel returns the panel with the supplied id
func (ws *Workspace) Panel(id string) (*panel.Panel, bool) {
	for _, p := range ws.panels {
		if p.Config().ID == id {
			return p, true
		}
	}
	return nil, false
}
