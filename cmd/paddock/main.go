package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/paddock/internal/app"
	"github.com/five82/paddock/internal/query"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	envPath := flag.String("env", "", "dotenv file to load (optional, defaults to ./.env)")
	format := flag.String("format", "table", "output format: table, json or csv")
	season := flag.Int("season", 0, "season year (optional)")
	round := flag.Int("round", 0, "round within the season (requires -season)")
	tui := flag.Bool("tui", false, "open the interactive browser")
	watch := flag.Duration("watch", 0, "re-run the query on this interval (optional)")
	flag.Usage = usage
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvPath:    *envPath,
		Season:     *season,
		Round:      *round,
		Format:     *format,
		TUI:        *tui,
		Watch:      *watch,
	}
	if args := flag.Args(); len(args) > 0 {
		opts.View = args[0]
		opts.Args = args[1:]
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "paddock: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: paddock [flags] [view [args...]]\n\n")
	fmt.Fprintf(out, "Without a view, paddock opens the interactive browser.\n\nviews:\n")
	for _, v := range query.Views() {
		fmt.Fprintf(out, "  %s\n", query.Usage(v))
	}
	fmt.Fprintf(out, "\nflags:\n")
	flag.PrintDefaults()
}
