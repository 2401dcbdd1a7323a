package aggregate

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	id "workscope/pkg/domain"
)

const (
	// defaultFetchConcurrency caps parallel per-workspace fetches so an owner
	// with many workspaces cannot fan out unboundedly against the store.
	defaultFetchConcurrency = 8

	// defaultPartitionTimeout bounds each per-workspace fetch so one slow
	// partition cannot stall the others indefinitely.
	defaultPartitionTimeout = 5 * time.Second
)

// PartitionResult carries the outcome of one partitioned fetch: per-workspace
// item slices for the partitions that succeeded, and per-workspace errors for
// the ones that failed. The caller decides what failures mean; the fetcher
// never promotes a partition error to a total one.
type PartitionResult[T any] struct {
	Items    map[id.WorkspaceID][]T
	Failures map[id.WorkspaceID]error

	// order is the scope order the fetch was issued with. Merging consumes
	// partitions in this order regardless of completion timing.
	order []id.WorkspaceID
}

// FailedWorkspaces returns the failed partition ids in the given scope order.
func (r *PartitionResult[T]) FailedWorkspaces(order []id.WorkspaceID) []id.WorkspaceID {
	if len(r.Failures) == 0 {
		return nil
	}
	out := make([]id.WorkspaceID, 0, len(r.Failures))
	for _, ws := range order {
		if _, ok := r.Failures[ws]; ok {
			out = append(out, ws)
		}
	}
	return out
}

// FetchFunc issues one per-workspace read for a resource kind.
type FetchFunc[T any] func(ctx context.Context, ws id.WorkspaceID) ([]T, error)

// FetchPartitions runs one fetch per workspace id with bounded concurrency.
//
// Contract: every workspace id is attempted exactly once. A failing partition
// is recorded and isolated; it neither aborts nor discards the others. Each
// fetch carries its own timeout. Cancellation of the caller's context is the
// one exception to isolation: the whole call returns the context error and no
// partial result, so a cancelled query can never be mistaken for a complete
// one.
//
// Output slots are disjoint per goroutine, so the maps need no locking beyond
// the errgroup join.
func FetchPartitions[T any](ctx context.Context, scope []id.WorkspaceID, fetch FetchFunc[T], opts ...FetchOption) (*PartitionResult[T], error) {
	cfg := fetchConfig{
		concurrency: defaultFetchConcurrency,
		timeout:     defaultPartitionTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := &PartitionResult[T]{
		Items:    make(map[id.WorkspaceID][]T, len(scope)),
		Failures: make(map[id.WorkspaceID]error),
		order:    scope,
	}
	if len(scope) == 0 {
		return result, nil
	}

	items := make([][]T, len(scope))
	failures := make([]error, len(scope))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, ws := range scope {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, cfg.timeout)
			defer cancel()

			start := time.Now()
			fetched, err := fetch(fctx, ws)
			if cfg.observe != nil {
				cfg.observe(time.Since(start))
			}

			if err != nil {
				// Caller cancellation aborts the query; anything else is an
				// isolated partition failure.
				if gctx.Err() != nil && errors.Is(err, gctx.Err()) {
					return err
				}
				failures[i] = err
				return nil
			}
			items[i] = fetched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, ws := range scope {
		if failures[i] != nil {
			result.Failures[ws] = failures[i]
			continue
		}
		result.Items[ws] = items[i]
	}
	return result, nil
}

type fetchConfig struct {
	concurrency int
	timeout     time.Duration
	observe     func(time.Duration)
}

// FetchOption tunes one FetchPartitions call.
type FetchOption func(*fetchConfig)

// WithConcurrency overrides the fan-out ceiling.
func WithConcurrency(n int) FetchOption {
	return func(cfg *fetchConfig) {
		if n > 0 {
			cfg.concurrency = n
		}
	}
}

// WithPartitionTimeout overrides the per-workspace fetch timeout.
func WithPartitionTimeout(d time.Duration) FetchOption {
	return func(cfg *fetchConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// WithFetchObserver records the duration of each per-workspace fetch.
func WithFetchObserver(observe func(time.Duration)) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.observe = observe
	}
}
