package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Bhavya700/CSE-412/internal/apperrors"
	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/responses"
	"github.com/Bhavya700/CSE-412/internal/ui/shell"
	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

// CompareResult is the outcome of the search against one endpoint group.
// Either Error or ExecutionTime is set.
type CompareResult struct {
	Endpoint      string         `json:"endpoint" example:"/api/with-index/search"`
	ExecutionTime *float64       `json:"execution_time,omitempty" example:"0.0021"`
	Count         int            `json:"count" example:"1"`
	Results       []types.Player `json:"results"`
	Error         string         `json:"error,omitempty"`
}

// CompareResponse reports the same search run with and without indexes.
// Speedup is the no-index time divided by the with-index time (omitted unless both searches succeeded)
type CompareResponse struct {
	Mode      string            `json:"mode" example:"search" enums:"search,join"`
	Query     map[string]string `json:"query"`
	NoIndex   CompareResult     `json:"no_index"`
	WithIndex CompareResult     `json:"with_index"`
	Speedup   *float64          `json:"speedup,omitempty" example:"12.5"`
}

// HandleCompare runs the same search against both endpoint groups concurrently.
//
// Use ?name= for the single table search or ?nation=&position= for the join search.
// Responds 502 when both searches fail.
func (h *HandlerService) HandleCompare(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	nation := r.URL.Query().Get("nation")
	position := r.URL.Query().Get("position")

	var (
		mode  string
		query map[string]string
		run   func(ctx context.Context, cfg panel.Config) (*types.SearchResponse, string, error)
	)

	switch {
	case strings.TrimSpace(name) != "":
		mode = "search"
		query = map[string]string{"name": name}
		run = func(ctx context.Context, cfg panel.Config) (*types.SearchResponse, string, error) {
			resp, err := h.ApiClient.SearchByName(ctx, cfg.SimpleEndpoint, name)
			return resp, cfg.SimpleEndpoint, err
		}
	case strings.TrimSpace(nation) != "" && strings.TrimSpace(position) != "":
		mode = "join"
		query = map[string]string{"nation": nation, "position": position}
		run = func(ctx context.Context, cfg panel.Config) (*types.SearchResponse, string, error) {
			resp, err := h.ApiClient.SearchByNationPosition(ctx, cfg.ComplexEndpoint, nation, position)
			return resp, cfg.ComplexEndpoint, err
		}
	default:
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest, "supply either name, or both nation and position")
		return
	}

	noIndexCfg, _ := shell.PanelConfig(shell.NoIndexPanelID)
	withIndexCfg, _ := shell.PanelConfig(shell.WithIndexPanelID)

	res := CompareResponse{Mode: mode, Query: query}

	// the searches report their own errors so one failing does not cancel the other
	var g errgroup.Group
	g.Go(func() error {
		res.NoIndex = compareResult(run(r.Context(), noIndexCfg))
		return nil
	})
	g.Go(func() error {
		res.WithIndex = compareResult(run(r.Context(), withIndexCfg))
		return nil
	})
	_ = g.Wait()

	logger.ContextWithLogAttrs(r.Context(), slog.String("mode", mode))

	if res.NoIndex.Error != "" && res.WithIndex.Error != "" {
		responses.RespondWithError(w, r, http.StatusBadGateway, apperrors.ErrCodeBackendError, res.WithIndex.Error)
		return
	}

	if res.NoIndex.ExecutionTime != nil && res.WithIndex.ExecutionTime != nil && *res.WithIndex.ExecutionTime > 0 {
		speedup := *res.NoIndex.ExecutionTime / *res.WithIndex.ExecutionTime
		res.Speedup = &speedup
	}

	responses.RespondWithJSON(w, http.StatusOK, res)
}

func compareResult(resp *types.SearchResponse, endpoint string, err error) CompareResult {
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = panel.FallbackErrorMessage
		}
		return CompareResult{Endpoint: endpoint, Results: []types.Player{}, Error: msg}
	}

	results := resp.Results
	if results == nil {
		results = []types.Player{}
	}
	et := resp.ExecutionTime
	return CompareResult{
		Endpoint:      endpoint,
		ExecutionTime: &et,
		Count:         len(results),
		Results:       results,
	}
}
