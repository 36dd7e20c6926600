// Package app provides the orchestration layer for paddock.
//
// # Overview
//
// This package wires together configuration, the Ergast client, the optional
// Redis response cache, rendering and the browser. It is the composition root
// where all dependencies are initialized and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load a .env file into the environment when present
//  2. Load ~/.config/paddock/config.toml with environment overrides
//  3. Build a slog logger at the configured level
//  4. Build the ergast client, attaching the Redis cache when reachable
//  5. Either run one query and render it, watch it, or start the browser
//
// # Components
//
//   - app.go: Run, client construction and one-shot rendering
//   - poller.go: Watch loops with exponential backoff on failures
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        Read config and env overrides
//	       ├─────> cache.NewRedis()     Optional response cache
//	       ├─────> ergast.NewClient()   HTTP client
//	       ├─────> query.Parse()        Resolve the view and arguments
//	       ├─────> query.Execute()      One request
//	       └─────> render.Write()       table, json or csv
//
//	Watch mode (-watch):
//	┌─────────────────────────────────────────┐
//	│ watch() / StartWatcher()                │
//	│  ├─> query.Execute()                    │
//	│  ├─> store.Update() / store.Refresh()   │
//	│  └─> wait interval, doubled per failure │
//	└─────────────────────────────────────────┘
//
// # Watch Behavior
//
// From the command line, watch prints every run with a timestamp and logs
// failures without exiting; a query the client rejects outright ends the
// loop. In the browser, StartWatcher re-runs whichever query the store
// currently holds, so switching views retargets it. Results for a query the
// user has since left are discarded.
//
// Consecutive failures double the wait up to 10 minutes. Intervals longer
// than that are never shortened.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config, .env file or log level
//   - Unknown view, format or bad arguments
//   - Any client error in one-shot mode
//
// Recoverable errors (logged):
//   - An unreachable Redis server (the client runs uncached)
//   - Failed runs in watch mode
//
// While the browser is open, logging is discarded; errors appear in its
// status bar instead.
//
// # Usage Example
//
//	err := app.Run(ctx, app.Options{
//		View:   "results",
//		Season: 2014,
//		Round:  4,
//		Format: "json",
//	})
package app
