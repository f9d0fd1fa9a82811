package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"westendwatcher/internal/browser"
	"westendwatcher/internal/config"
	"westendwatcher/internal/fetch"
	"westendwatcher/internal/notify"
	"westendwatcher/internal/scrape"
	"westendwatcher/internal/services"
	"westendwatcher/internal/store"
)

// RootOption configures the root command (e.g. for tests).
type RootOption func(*rootConfig)

type rootConfig struct {
	registry scrape.Registry
	static   fetch.Fetcher
	rendered fetch.Fetcher
}

// WithRegistry sets the extractor registry. Use in tests to inject
// extractors backed by golden HTML instead of the defaults.
func WithRegistry(registry scrape.Registry) RootOption {
	return func(c *rootConfig) {
		c.registry = registry
	}
}

// WithFetchers sets the static and rendered fetchers. Use in tests to avoid
// real HTTP and a real browser.
func WithFetchers(static, rendered fetch.Fetcher) RootOption {
	return func(c *rootConfig) {
		c.static = static
		c.rendered = rendered
	}
}

func Root(ctx context.Context, opts ...RootOption) (*cli.Command, error) {
	rc := &rootConfig{}
	for _, opt := range opts {
		opt(rc)
	}

	cmd := &cli.Command{
		Name:  "westend-watcher",
		Usage: "watch London theatre websites for show changes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := slog.LevelInfo
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCommand(rc),
			sitesCommand(),
		},
	}
	return cmd, nil
}

func runCommand(rc *rootConfig) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "scrape the watched sites, snapshot the results and report changes",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "theatre",
				Aliases: []string{"t"},
				Usage:   "site id to scrape (repeatable, default all)",
			},
			&cli.BoolFlag{
				Name:  "no-email",
				Usage: "skip the email notification",
			},
			&cli.StringFlag{
				Name:  "snapshot-dir",
				Usage: "directory for snapshot files (overrides SNAPSHOT_DIR)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			if dir := cmd.String("snapshot-dir"); dir != "" {
				cfg.SnapshotDir = dir
			}
			for _, issue := range cfg.Validate() {
				slog.Warn("configuration issue", "issue", issue)
			}

			watcher, cleanup := buildWatcher(rc, cfg)
			defer cleanup()

			result, err := watcher.Run(ctx, services.RunOptions{
				SiteIDs: cmd.StringSlice("theatre"),
				Email:   !cmd.Bool("no-email"),
			})
			if err != nil {
				return err
			}

			printSummary(cmd, result)
			return nil
		},
	}
}

// buildWatcher assembles the run's dependencies. The headless browser does
// not launch until a dynamic site is actually fetched.
func buildWatcher(rc *rootConfig, cfg config.Config) (*services.Watcher, func()) {
	registry := rc.registry
	if registry == nil {
		registry = scrape.DefaultRegistry()
	}

	static := rc.static
	if static == nil {
		static = fetch.Cached(64, 5*time.Minute)(fetch.NewStatic(
			fetch.WithRetries(cfg.MaxRetries, cfg.RetryDelay),
			fetch.WithTimeout(cfg.RequestTimeout),
			fetch.WithUserAgent(cfg.UserAgent),
		))
	}

	cleanup := func() {}
	rendered := rc.rendered
	if rendered == nil {
		mgr := browser.Headless()
		rendered = fetch.NewRendered(mgr)
		cleanup = func() {
			if err := mgr.Close(); err != nil {
				slog.Warn("browser shutdown failed", "error", err)
			}
		}
	}

	var mailer services.Mailer
	if cfg.Email.Sender != "" && cfg.Email.Recipient != "" {
		mailer = notify.NewMailer(cfg.Email)
	}

	snapshots := store.New(cfg.SnapshotDir)
	return services.New(cfg, registry, static, rendered, snapshots, mailer), cleanup
}

func printSummary(cmd *cli.Command, result services.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.Root().Writer)
	t.AppendHeader(table.Row{"", "Count"})
	t.AppendRows([]table.Row{
		{"New", len(result.Report.New)},
		{"Updated", len(result.Report.Updated)},
		{"Unchanged", len(result.Report.Unchanged)},
		{"Removed", len(result.Report.Removed)},
		{"Errors", len(result.Errors)},
	})
	t.Render()

	fmt.Fprintf(cmd.Root().Writer, "snapshot: %s\n", result.SnapshotFile)
	for _, msg := range result.Errors {
		fmt.Fprintf(cmd.Root().Writer, "error: %s\n", msg)
	}
}

func sitesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sites",
		Usage: "list the watched theatre sites",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.Root().Writer)
			t.AppendHeader(table.Row{"ID", "Name", "URL", "Rendering"})
			for _, site := range config.DefaultSites() {
				rendering := "static"
				if site.Dynamic {
					rendering = "browser"
				}
				t.AppendRow(table.Row{site.ID, site.Name, site.URL, rendering})
			}
			t.Render()
			return nil
		},
	}
}
