package state

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/five82/paddock/ergast"
	"github.com/five82/paddock/internal/query"
)

// Snapshot represents the latest query result available to the UI.
type Snapshot struct {
	Query               query.Query
	Table               ergast.Table
	HasTable            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed runs
}

// IsOffline returns true when the API has failed several runs in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of running q. When err is non-nil the previous
// table is kept if it answered the same query, and the error is recorded for
// visibility. A failure for a different query clears the stale table.
func (s *Store) Update(q query.Query, table ergast.Table, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(q, table, err)
}

// Refresh records a re-run of q, as Update does, unless another query has
// been recorded since q started. It reports whether the result was kept.
func (s *Store) Refresh(q query.Query, table ergast.Table, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sameQuery(s.snapshot.Query, q) {
		return false
	}
	s.apply(q, table, err)
	return true
}

func (s *Store) apply(q query.Query, table ergast.Table, err error) {
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		if sameQuery(s.snapshot.Query, q) {
			s.snapshot.ConsecutiveFailures++
		} else {
			// Failures of a previous query say nothing about this one.
			s.snapshot.Table = ergast.Table{}
			s.snapshot.HasTable = false
			s.snapshot.ConsecutiveFailures = 1
		}
		s.snapshot.Query = cloneQuery(q)
		s.snapshot.LastError = err
		return
	}

	s.snapshot.Query = cloneQuery(q)
	s.snapshot.Table = cloneTable(table)
	s.snapshot.HasTable = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Query = cloneQuery(s.snapshot.Query)
	snap.Table = cloneTable(s.snapshot.Table)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func sameQuery(a, b query.Query) bool {
	return a.String() == b.String()
}

func cloneQuery(q query.Query) query.Query {
	if q.Args != nil {
		q.Args = append([]string(nil), q.Args...)
	}
	return q
}

func cloneTable(t ergast.Table) ergast.Table {
	if t.Columns == nil && t.Rows == nil {
		return ergast.Table{}
	}
	dup := ergast.Table{Columns: append([]string(nil), t.Columns...)}
	if len(t.Rows) > 0 {
		dup.Rows = make([]ergast.Row, len(t.Rows))
		for i, row := range t.Rows {
			dup.Rows[i] = maps.Clone(row)
		}
	}
	return dup
}
