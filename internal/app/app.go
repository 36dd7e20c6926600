package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/five82/paddock/ergast"
	"github.com/five82/paddock/internal/cache"
	"github.com/five82/paddock/internal/config"
	"github.com/five82/paddock/internal/prefs"
	"github.com/five82/paddock/internal/query"
	"github.com/five82/paddock/internal/render"
	"github.com/five82/paddock/internal/state"
	"github.com/five82/paddock/internal/ui"
)

// Options configure a paddock run.
type Options struct {
	ConfigPath string
	EnvPath    string // empty reads ./.env when present
	PrefsPath  string // empty uses default ~/.config/paddock/prefs.toml

	View   string
	Args   []string
	Season int
	Round  int

	Format string        // table, json or csv
	TUI    bool          // start the browser even when a view is given
	Watch  time.Duration // re-run interval; zero runs once

	Stdout io.Writer
	Stderr io.Writer
}

// Run executes one query and renders it, watches it, or starts the browser
// when no view is given.
func Run(ctx context.Context, opts Options) error {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if err := config.LoadEnv(opts.EnvPath); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	browse := opts.TUI || opts.View == ""
	logOut := stderr
	if browse {
		// The browser owns the terminal and reports errors in its status line.
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	client, closeCache, err := newClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	store := &state.Store{}

	if browse {
		return runBrowser(ctx, opts, client, store, logger)
	}

	q, err := buildQuery(opts)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	if opts.Watch > 0 {
		return watch(ctx, store, client, q, opts.Watch, func(snap state.Snapshot) error {
			return emitSnapshot(stdout, snap, format, logger)
		})
	}

	table, err := query.Execute(ctx, client, q)
	if err != nil {
		return err
	}
	return render.Write(stdout, table, format)
}

func buildQuery(opts Options) (query.Query, error) {
	q, err := query.Parse(opts.View, opts.Args)
	if err != nil {
		return query.Query{}, err
	}
	q.Season, q.Round = opts.Season, opts.Round
	return q, q.Validate()
}

// newClient builds the ergast client from config, attaching the Redis cache
// when one is configured and reachable.
func newClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ergast.Client, func(), error) {
	clientOpts := []ergast.Option{
		ergast.WithLogger(logger),
		ergast.WithTimeout(cfg.Timeout),
		ergast.WithUserAgent(cfg.UserAgent),
	}
	closeCache := func() {}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("init cache: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("response cache unavailable, continuing without it", "error", err)
			_ = redisCache.Close()
		} else {
			clientOpts = append(clientOpts, ergast.WithCache(redisCache))
			closeCache = func() { _ = redisCache.Close() }
		}
	}

	client, err := ergast.NewClient(cfg.BaseURL, clientOpts...)
	if err != nil {
		closeCache()
		return nil, nil, fmt.Errorf("init ergast client: %w", err)
	}
	logger.Debug("ergast client ready", "base_url", client.BaseURL(), "timeout", cfg.Timeout, "cache", cfg.RedisURL != "")
	return client, closeCache, nil
}

func emitSnapshot(w io.Writer, snap state.Snapshot, format render.Format, logger *slog.Logger) error {
	if snap.LastError != nil {
		logger.Warn("query failed", "query", snap.Query.String(), "failures", snap.ConsecutiveFailures, "error", snap.LastError)
		return nil
	}
	if format == render.FormatTable {
		if _, err := fmt.Fprintf(w, "%s @ %s\n", snap.Query, snap.LastUpdated.Format("15:04:05")); err != nil {
			return err
		}
	}
	return render.Write(w, snap.Table, format)
}

func runBrowser(ctx context.Context, opts Options, client ergast.Source, store *state.Store, logger *slog.Logger) error {
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	initial := query.Query{View: query.View(userPrefs.View), Season: userPrefs.Season}
	if opts.View != "" {
		q, err := buildQuery(opts)
		if err != nil {
			return err
		}
		initial = q
	}

	if opts.Watch > 0 {
		StartWatcher(ctx, store, client, opts.Watch, logger)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Source:    client,
		Store:     store,
		Initial:   initial,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
