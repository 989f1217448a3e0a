package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// PanelView is everything needed to draw one panel
type PanelView struct {
	Config panel.Config
	State  panel.State
}

// PanelElementID is the id of the panel's outer element, used as the htmx swap target
func PanelElementID(panelID string) string {
	return "panel-" + panelID
}

// SimpleSearchPath and ComplexSearchPath are the form actions for a panel
func SimpleSearchPath(panelID string) string {
	return "/panels/" + panelID + "/search"
}

func ComplexSearchPath(panelID string) string {
	return "/panels/" + panelID + "/join"
}

// Panel renders a search panel from its current state.
// The submit buttons are disabled while a search is in progress.
// When an error is present it replaces the results table.
func Panel(view PanelView, topN int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg, state := view.Config, view.State
		hw := newHTMLWriter(w)

		hw.raw(`<section`)
		hw.attr("id", PanelElementID(cfg.ID))
		hw.attr("class", "panel theme-"+string(cfg.Theme))
		hw.raw(`>`)

		// header
		hw.raw(`<header class="panel-header"><h2>`)
		hw.text(cfg.Title)
		hw.raw(`</h2><p class="description">`)
		hw.text(cfg.Description)
		hw.raw(`</p></header><div class="panel-body">`)

		writeSimpleForm(hw, cfg, state)
		writeComplexForm(hw, cfg, state)

		// results
		hw.raw(`<div class="results-section"><div class="results-header"><h3>Results`)
		if state.ExecutionTime != nil {
			hw.raw(` <span class="badge">`)
			hw.text(types.FormatTopN(topN))
			hw.raw(`</span>`)
		}
		hw.raw(`</h3>`)
		if state.ExecutionTime != nil {
			hw.raw(`<div class="execution-time">`)
			hw.text(types.FormatExecutionTime(*state.ExecutionTime))
			hw.raw(`</div>`)
		}
		hw.raw(`</div>`)
		if hw.err != nil {
			return hw.err
		}

		var content templ.Component
		if state.ErrorMessage != nil {
			content = ErrorAlert(*state.ErrorMessage)
		} else {
			content = ResultTable(state.Results, cfg.Theme)
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`</div></div></section>`)
		return hw.err
	})
}

func writeFormOpen(hw *htmlWriter, cfg panel.Config, action string) {
	hw.raw(`<form method="post"`)
	hw.attr("action", action)
	hw.attr("hx-post", action)
	hw.attr("hx-target", "#"+PanelElementID(cfg.ID))
	hw.raw(` hx-swap="outerHTML" hx-disabled-elt="find button">`)
}

func writeSubmitButton(hw *htmlWriter, loading bool, label, loadingLabel string) {
	hw.raw(`<button type="submit"`)
	if loading {
		hw.raw(` disabled`)
		label = loadingLabel
	}
	hw.raw(`>`)
	hw.text(label)
	hw.raw(`</button>`)
}

func writeSimpleForm(hw *htmlWriter, cfg panel.Config, state panel.State) {
	hw.raw(`<div class="card"><h3 class="card-title">Single Table Search</h3>`)
	writeFormOpen(hw, cfg, SimpleSearchPath(cfg.ID))
	hw.raw(`<div class="row"><input type="text" name="name" placeholder="Enter Player Name..."`)
	hw.attr("value", state.NameQuery)
	hw.raw(`>`)
	writeSubmitButton(hw, state.Loading, "Search", "...")
	hw.raw(`</div></form></div>`)
}

func writeComplexForm(hw *htmlWriter, cfg panel.Config, state panel.State) {
	hw.raw(`<div class="card"><h3 class="card-title">Joined Query Search</h3>`)
	writeFormOpen(hw, cfg, ComplexSearchPath(cfg.ID))
	hw.raw(`<div class="row"><input type="text" name="nation" class="wide" placeholder="Nation (e.g. Brazil)"`)
	hw.attr("value", state.NationQuery)
	hw.raw(`><input type="text" name="position" class="narrow" placeholder="Pos (e.g. ST)"`)
	hw.attr("value", state.PositionQuery)
	hw.raw(`></div>`)
	writeSubmitButton(hw, state.Loading, "Run Join Search", "Running Join...")
	hw.raw(`</form></div>`)
}
