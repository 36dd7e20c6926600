package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/five82/paddock/ergast"
	"github.com/five82/paddock/internal/query"
	"github.com/five82/paddock/internal/state"
)

const (
	defaultWatchInterval = time.Minute
	maxBackoff           = 10 * time.Minute
)

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff. An interval longer than the cap is never shortened.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	limit := max(maxBackoff, interval)
	d := interval
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= limit || d <= 0 {
			return limit
		}
	}
	return d
}

// refresh runs the store's current query once more.
func refresh(ctx context.Context, store *state.Store, src ergast.Source, logger *slog.Logger) {
	q := store.Snapshot().Query
	if q.View == "" {
		return
	}
	table, err := query.Execute(ctx, src, q)
	if ctx.Err() != nil {
		return
	}
	if !store.Refresh(q, table, err) {
		logger.Debug("discarded stale watch result", "query", q.String())
		return
	}
	if err != nil {
		logger.Warn("watch refresh failed", "query", q.String(), "error", err)
	}
}

// StartWatcher launches a background goroutine that re-runs whatever query
// the store currently holds. It returns immediately.
func StartWatcher(ctx context.Context, store *state.Store, src ergast.Source, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	go func() {
		for {
			delay := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			refresh(ctx, store, src, logger)
		}
	}()
}

// watch runs q immediately and then every interval until ctx ends, passing
// each snapshot to emit. Failures back off and are reported through emit;
// a rejected query stops the loop since rerunning it cannot succeed.
func watch(ctx context.Context, store *state.Store, src ergast.Source, q query.Query, interval time.Duration, emit func(state.Snapshot) error) error {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	for {
		table, err := query.Execute(ctx, src, q)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, ergast.ErrInvalidArgument) {
			return err
		}
		store.Update(q, table, err)
		snap := store.Snapshot()
		if err := emit(snap); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(calculateBackoff(snap.ConsecutiveFailures, interval)):
		}
	}
}
