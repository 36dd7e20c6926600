// Package state provides thread-safe state management for paddock's watch
// mode and browser.
//
// # Overview
//
// A Store holds the outcome of the most recent query run: the query itself,
// the table it produced, when it ran, and whether it failed. The watcher
// writes to it on every run; the browser reads snapshots when it redraws.
//
//	Producer (watcher):             Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ query.Execute()  │            │                  │
//	│       ↓          │            │                  │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	│       ↓          │  (mutex)   │       ↓          │
//	│ wait interval    │            │ render table     │
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace the table
//	store.Update(q, table, nil)
//	→ snapshot.Table = table, HasTable = true, LastError = nil
//
//	// Failure for the same query: keep the old table, record the error
//	store.Update(q, ergast.Table{}, err)
//	→ snapshot.Table = <unchanged>, LastError = err, ConsecutiveFailures++
//
//	// Failure for a different query: the old table no longer answers it
//	store.Update(other, ergast.Table{}, err)
//	→ snapshot.Table = empty, HasTable = false, ConsecutiveFailures = 1
//
// # Copying
//
// Update and Snapshot copy the column slice, the row slice and every row map,
// so neither side can mutate what the other sees. Errors are re-wrapped so
// errors.Is still matches the sentinel the client returned.
//
// # Testing Considerations
//
// The zero Store is ready to use and Snapshot returns a zero Snapshot until
// the first Update.
package state
