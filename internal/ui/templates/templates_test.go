package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

var greenPanel = panel.Config{
	ID:              "with-index",
	Title:           "Search WITH Indexing",
	Description:     "Optimized queries using B-Tree indexes. Significantly faster.",
	Theme:           types.ThemeGreen,
	SimpleEndpoint:  "/api/with-index/search",
	ComplexEndpoint: "/api/with-index/join",
}

func TestResultTableEmpty(t *testing.T) {
	for _, rows := range [][]types.Player{nil, {}} {
		out := render(t, ResultTable(rows, types.ThemeRed))

		if !strings.Contains(out, NoResultsMessage) {
			t.Errorf("expected the no results placeholder, got %s", out)
		}
		if strings.Contains(out, "<table") {
			t.Errorf("expected no table element, got %s", out)
		}
	}
}

func TestResultTableRows(t *testing.T) {
	rows := []types.Player{
		{ID: 30, Name: "Zed", Nation: "Brazil", Club: "Santos", Position: "ST", Overall: 70, Pace: 88},
		{ID: 4, Name: "Abe", Nation: "Brazil", Club: "Flamengo", Position: "ST", Overall: 81, Pace: 75},
		{ID: 17, Name: "Mo", Nation: "Brazil", Club: "Palmeiras", Position: "ST", Overall: 77, Pace: 90},
	}

	out := render(t, ResultTable(rows, types.ThemeGreen))

	if got := strings.Count(out, "data-player-id="); got != len(rows) {
		t.Errorf("rendered %d rows, want %d", got, len(rows))
	}
	if strings.Contains(out, NoResultsMessage) {
		t.Error("placeholder rendered alongside rows")
	}

	// rows keep the supplied order
	last := -1
	for _, r := range rows {
		i := strings.Index(out, ">"+r.Name+"<")
		if i < 0 {
			t.Fatalf("row %q not rendered", r.Name)
		}
		if i < last {
			t.Errorf("row %q rendered out of order", r.Name)
		}
		last = i
	}

	for _, want := range []string{"Santos", "Flamengo", ">81<", ">90<", "theme-green"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestResultTableEscapesText(t *testing.T) {
	rows := []types.Player{{ID: 1, Name: `<script>alert("x")</script>`, Club: "A & B"}}

	out := render(t, ResultTable(rows, types.ThemeRed))

	if strings.Contains(out, "<script>") {
		t.Errorf("player name was not escaped: %s", out)
	}
	if !strings.Contains(out, "A &amp; B") {
		t.Errorf("club was not escaped: %s", out)
	}
}

func TestPanelSuccess(t *testing.T) {
	et := 0.0021
	view := PanelView{
		Config: greenPanel,
		State: panel.State{
			NameQuery:     "Messi",
			ExecutionTime: &et,
			Results: []types.Player{
				{ID: 1, Name: "Lionel Messi", Nation: "Argentina", Club: "Inter Miami", Position: "ST", Overall: 90, Pace: 80},
			},
		},
	}

	out := render(t, Panel(view, 5))

	for _, want := range []string{
		`id="panel-with-index"`,
		"Search WITH Indexing",
		"0.0021s",
		"Top 5 shown",
		"Lionel Messi",
		"Argentina",
		"Inter Miami",
		">90<",
		">80<",
		`value="Messi"`,
		`action="/panels/with-index/search"`,
		`action="/panels/with-index/join"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	if got := strings.Count(out, "data-player-id="); got != 1 {
		t.Errorf("rendered %d rows, want 1", got)
	}
	if strings.Contains(out, " disabled>") {
		t.Error("buttons should be enabled when not loading")
	}
}

func TestPanelError(t *testing.T) {
	msg := "X"
	view := PanelView{
		Config: greenPanel,
		State:  panel.State{ErrorMessage: &msg},
	}

	out := render(t, Panel(view, 5))

	if !strings.Contains(out, "<strong>Error:</strong> X") {
		t.Errorf("expected the error message, got %s", out)
	}
	if strings.Contains(out, "<table") || strings.Contains(out, NoResultsMessage) {
		t.Error("the error should replace the results table")
	}
	if strings.Contains(out, "Top 5 shown") {
		t.Error("timing badge shown without an execution time")
	}
}

func TestPanelLoading(t *testing.T) {
	view := PanelView{
		Config: greenPanel,
		State:  panel.State{Loading: true},
	}

	out := render(t, Panel(view, 5))

	if got := strings.Count(out, "<button type=\"submit\" disabled>"); got != 2 {
		t.Errorf("expected both submit buttons disabled, got %d", got)
	}
	if !strings.Contains(out, "Running Join...") {
		t.Error("expected the join loading label")
	}
}

func TestPanelIdle(t *testing.T) {
	out := render(t, Panel(PanelView{Config: greenPanel}, 5))

	if !strings.Contains(out, NoResultsMessage) {
		t.Error("expected the no results placeholder")
	}
	if strings.Contains(out, "execution-time") {
		t.Error("execution time shown before any search")
	}
}

func TestShellPage(t *testing.T) {
	red := greenPanel
	red.ID = "no-index"
	red.Title = "Search WITHOUT Indexing"
	red.Theme = types.ThemeRed

	out := render(t, ShellPage([]PanelView{{Config: red}, {Config: greenPanel}}, 5))

	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected a full html document")
	}
	left := strings.Index(out, `id="panel-no-index"`)
	right := strings.Index(out, `id="panel-with-index"`)
	if left < 0 || right < 0 || left > right {
		t.Errorf("expected the no-index panel before the with-index panel (%d, %d)", left, right)
	}
	if !strings.Contains(out, HtmxScriptURL) {
		t.Error("htmx script not included")
	}
}
