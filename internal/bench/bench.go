// Package bench repeatedly runs the same search against the unindexed and indexed endpoints
// and reports latency and backend execution time for each.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bhavya700/CSE-412/internal/ui/panel"
	"github.com/Bhavya700/CSE-412/internal/ui/shell"
	"github.com/Bhavya700/CSE-412/internal/ui/types"
)

const (
	DefaultRuns        = 10
	DefaultConcurrency = 1
)

// Options selects the search to run. Set Name for the single table search or Nation and Position for the join search.
type Options struct {
	Name        string
	Nation      string
	Position    string
	Runs        int
	Concurrency int
}

func (o Options) join() bool {
	return strings.TrimSpace(o.Name) == ""
}

func (o Options) validate() error {
	if o.join() && (strings.TrimSpace(o.Nation) == "" || strings.TrimSpace(o.Position) == "") {
		return fmt.Errorf("supply either a name, or both a nation and a position")
	}
	if o.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", o.Runs)
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	return nil
}

// Metrics summarises the runs against one endpoint.
// Latency is measured by the client, ExecutionTime is the query time reported by the backend.
type Metrics struct {
	Endpoint       string
	Requests       int
	Successful     int
	Failed         int
	LastError      string
	TotalDuration  time.Duration
	TotalLatency   time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AverageLatency time.Duration

	TotalExecutionTime   float64
	AverageExecutionTime float64
}

type Report struct {
	NoIndex   Metrics
	WithIndex Metrics
}

// Speedup is the ratio of the average backend execution times, 0 when either side has no successful runs
func (r Report) Speedup() float64 {
	if r.NoIndex.Successful == 0 || r.WithIndex.Successful == 0 || r.WithIndex.AverageExecutionTime <= 0 {
		return 0
	}
	return r.NoIndex.AverageExecutionTime / r.WithIndex.AverageExecutionTime
}

// Run benchmarks the unindexed endpoint and then the indexed one.
// The endpoints are not run at the same time so they don't compete for the database.
func Run(ctx context.Context, searcher panel.Searcher, opts Options, logger *slog.Logger) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}

	noIndexCfg, _ := shell.PanelConfig(shell.NoIndexPanelID)
	withIndexCfg, _ := shell.PanelConfig(shell.WithIndexPanelID)

	var report Report
	var err error

	report.NoIndex, err = runEndpoint(ctx, searcher, noIndexCfg, opts, logger)
	if err != nil {
		return report, err
	}
	report.WithIndex, err = runEndpoint(ctx, searcher, withIndexCfg, opts, logger)
	return report, err
}

func runEndpoint(ctx context.Context, searcher panel.Searcher, cfg panel.Config, opts Options, logger *slog.Logger) (Metrics, error) {
	search := func(ctx context.Context) (*types.SearchResponse, error) {
		return searcher.SearchByName(ctx, cfg.SimpleEndpoint, opts.Name)
	}
	m := Metrics{Endpoint: cfg.SimpleEndpoint, MinLatency: time.Duration(math.MaxInt64)}
	if opts.join() {
		search = func(ctx context.Context) (*types.SearchResponse, error) {
			return searcher.SearchByNationPosition(ctx, cfg.ComplexEndpoint, opts.Nation, opts.Position)
		}
		m.Endpoint = cfg.ComplexEndpoint
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	start := time.Now()
	for i := 0; i < opts.Runs; i++ {
		g.Go(func() error {
			runStart := time.Now()
			resp, err := search(gctx)
			latency := time.Since(runStart)

			mu.Lock()
			defer mu.Unlock()

			m.Requests++
			if err != nil {
				// cancellation stops the benchmark, backend errors are counted
				if gctx.Err() != nil {
					return gctx.Err()
				}
				m.Failed++
				m.LastError = err.Error()
				logger.Warn("search failed", slog.String("endpoint", m.Endpoint), slog.Int("run", i+1), slog.String("error", err.Error()))
				return nil
			}

			m.Successful++
			m.TotalLatency += latency
			m.MinLatency = min(m.MinLatency, latency)
			m.MaxLatency = max(m.MaxLatency, latency)
			m.TotalExecutionTime += resp.ExecutionTime

			logger.Debug("search completed",
				slog.String("endpoint", m.Endpoint),
				slog.Int("run", i+1),
				slog.Duration("latency", latency),
				slog.Float64("execution_time", resp.ExecutionTime),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m, fmt.Errorf("benchmark of %s interrupted: %w", m.Endpoint, err)
	}
	m.TotalDuration = time.Since(start)

	if m.Successful > 0 {
		m.AverageLatency = m.TotalLatency / time.Duration(m.Successful)
		m.AverageExecutionTime = m.TotalExecutionTime / float64(m.Successful)
	} else {
		m.MinLatency = 0
	}
	return m, nil
}

// Write prints the report
func (r Report) Write(w io.Writer) {
	separator := strings.Repeat("=", 60)

	for _, m := range []Metrics{r.NoIndex, r.WithIndex} {
		fmt.Fprintln(w, separator)
		fmt.Fprintf(w, "ENDPOINT: %s\n", m.Endpoint)
		fmt.Fprintln(w, separator)
		fmt.Fprintf(w, "Requests:               %d\n", m.Requests)
		fmt.Fprintf(w, "Successful:             %d\n", m.Successful)
		fmt.Fprintf(w, "Failed:                 %d\n", m.Failed)
		if m.LastError != "" {
			fmt.Fprintf(w, "Last Error:             %s\n", m.LastError)
		}
		fmt.Fprintf(w, "Total Duration:         %v\n", m.TotalDuration)
		fmt.Fprintf(w, "Average Latency:        %v\n", m.AverageLatency)
		fmt.Fprintf(w, "Min Latency:            %v\n", m.MinLatency)
		fmt.Fprintf(w, "Max Latency:            %v\n", m.MaxLatency)
		fmt.Fprintf(w, "Average Execution Time: %s\n", types.FormatExecutionTime(m.AverageExecutionTime))
	}

	fmt.Fprintln(w, separator)
	if speedup := types.FormatSpeedup(r.NoIndex.AverageExecutionTime, r.WithIndex.AverageExecutionTime); speedup != "" && r.Speedup() > 0 {
		fmt.Fprintf(w, "Speedup with indexes:   %s\n", speedup)
	} else {
		fmt.Fprintln(w, "Speedup with indexes:   n/a")
	}
	fmt.Fprintln(w, separator)
}
