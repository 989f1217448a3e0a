// Package panel holds the state of a single search panel.
//
// A panel moves Idle -> Loading -> (Success | Failed) -> Idle on each valid submission.
// Submitting resets the error, execution time and results before the backend is called,
// so the displayed results and timing always come from the same response.
package panel

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// FallbackErrorMessage is shown when a search fails with an error that has no message
const FallbackErrorMessage = "Failed to fetch data"

// Searcher runs searches against the backend (implemented by client.Client)
type Searcher interface {
	SearchByName(ctx context.Context, endpoint, name string) (*types.SearchResponse, error)
	SearchByNationPosition(ctx context.Context, endpoint, nation, position string) (*types.SearchResponse, error)
}

// Config is the fixed configuration of a panel
type Config struct {
	ID              string
	Title           string
	Description     string
	Theme           types.Theme
	SimpleEndpoint  string
	ComplexEndpoint string
}

// State is a point in time copy of the panel state used for rendering.
// ErrorMessage and ExecutionTime are nil when there is nothing to show.
type State struct {
	NameQuery     string
	NationQuery   string
	PositionQuery string
	Loading       bool
	ErrorMessage  *string
	ExecutionTime *float64
	Results       []types.Player
}

type Panel struct {
	config   Config
	searcher Searcher
	logger   *slog.Logger

	mu    sync.Mutex
	state State

	// generation is incremented on every submission, outcomes of older submissions are discarded
	generation uint64
}

func New(cfg Config, searcher Searcher, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{
		config:   cfg,
		searcher: searcher,
		logger:   logger.With(slog.String("component", "panel"), slog.String("panel", cfg.ID)),
	}
}

func (p *Panel) Config() Config {
	return p.config
}

// Snapshot returns a copy of the current state
func (p *Panel) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	if p.state.Results != nil {
		s.Results = make([]types.Player, len(p.state.Results))
		copy(s.Results, p.state.Results)
	}
	if p.state.ErrorMessage != nil {
		msg := *p.state.ErrorMessage
		s.ErrorMessage = &msg
	}
	if p.state.ExecutionTime != nil {
		et := *p.state.ExecutionTime
		s.ExecutionTime = &et
	}
	return s
}

// SubmitSimple runs a name search.
//
// The name input is always stored. If the name is blank after trimming nothing else happens and false is returned,
// otherwise the backend is called once and the outcome is applied before returning true.
func (p *Panel) SubmitSimple(ctx context.Context, name string) bool {
	p.mu.Lock()
	p.state.NameQuery = name
	if strings.TrimSpace(name) == "" {
		p.mu.Unlock()
		return false
	}
	gen := p.begin()
	p.mu.Unlock()

	resp, err := p.searcher.SearchByName(ctx, p.config.SimpleEndpoint, name)
	p.finish(gen, resp, err)
	return true
}

// SubmitComplex runs a nation + position (join) search.
//
// Both inputs are stored; the search only runs when both are non-blank after trimming.
func (p *Panel) SubmitComplex(ctx context.Context, nation, position string) bool {
	p.mu.Lock()
	p.state.NationQuery = nation
	p.state.PositionQuery = position
	if strings.TrimSpace(nation) == "" || strings.TrimSpace(position) == "" {
		p.mu.Unlock()
		return false
	}
	gen := p.begin()
	p.mu.Unlock()

	resp, err := p.searcher.SearchByNationPosition(ctx, p.config.ComplexEndpoint, nation, position)
	p.finish(gen, resp, err)
	return true
}

// begin enters the loading state. Must be called with mu held.
func (p *Panel) begin() uint64 {
	p.generation++
	p.state.Loading = true
	p.state.ErrorMessage = nil
	p.state.ExecutionTime = nil
	p.state.Results = []types.Player{}
	return p.generation
}

// finish applies the outcome of submission gen unless a newer submission has started
func (p *Panel) finish(gen uint64, resp *types.SearchResponse, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.logger.Debug("discarding stale search outcome",
			slog.Uint64("generation", gen),
			slog.Uint64("current_generation", p.generation),
		)
		return
	}

	p.state.Loading = false

	if err != nil || resp == nil {
		msg := FallbackErrorMessage
		if err != nil && err.Error() != "" {
			msg = err.Error()
		}
		p.state.ErrorMessage = &msg
		return
	}

	results := resp.Results
	if results == nil {
		results = []types.Player{}
	}
	et := resp.ExecutionTime
	p.state.Results = results
	p.state.ExecutionTime = &et
}
