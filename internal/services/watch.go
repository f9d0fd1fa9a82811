// Package services wires fetching, extraction, persistence, diffing and
// notification into the daily watch run.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"westendwatcher/internal"
	"westendwatcher/internal/config"
	"westendwatcher/internal/diff"
	"westendwatcher/internal/fetch"
	"westendwatcher/internal/scrape"
	"westendwatcher/internal/store"
)

// Mailer delivers a finished change report.
type Mailer interface {
	Send(report internal.ChangeReport, errors []string) error
}

// Snapshots is the slice of the snapshot store the watcher needs.
type Snapshots interface {
	Save(name string, shows []internal.ShowRecord) error
	Load(name string) ([]internal.ShowRecord, error)
	Latest(exclude ...string) (string, error)
}

type Watcher struct {
	cfg      config.Config
	registry scrape.Registry
	static   fetch.Fetcher
	rendered fetch.Fetcher
	store    Snapshots
	mailer   Mailer
	now      func() time.Time
}

// New assembles a watcher. rendered may be nil when no dynamic site is in
// scope; mailer may be nil when email is disabled.
func New(cfg config.Config, registry scrape.Registry, static, rendered fetch.Fetcher, snapshots Snapshots, mailer Mailer) *Watcher {
	return &Watcher{
		cfg:      cfg,
		registry: registry,
		static:   static,
		rendered: rendered,
		store:    snapshots,
		mailer:   mailer,
		now:      time.Now,
	}
}

// RunOptions narrows a run. An empty SiteIDs means every configured site.
type RunOptions struct {
	SiteIDs []string
	Email   bool
}

// RunResult is what a completed run produced.
type RunResult struct {
	RunID        string
	Shows        []internal.ShowRecord
	Report       internal.ChangeReport
	Errors       []string
	SnapshotFile string
	EmailSent    bool
}

// Run scrapes the selected sites in parallel, saves today's snapshot,
// diffs it against the most recent prior one and optionally emails the
// report. Per-site failures are collected rather than aborting; only a run
// where every site came back empty is an error.
func (w *Watcher) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	sites, err := w.selectSites(opts.SiteIDs)
	if err != nil {
		return RunResult{RunID: runID}, err
	}
	log.Info("starting watch run", "sites", len(sites))

	shows, errs := w.scrapeAll(ctx, log, sites)
	if len(shows) == 0 {
		return RunResult{RunID: runID, Errors: errs},
			fmt.Errorf("no shows extracted from any site")
	}

	today := w.now().UTC()
	name := store.SnapshotName(today)
	if err := w.store.Save(name, shows); err != nil {
		return RunResult{RunID: runID, Shows: shows, Errors: errs}, err
	}

	report, err := w.compare(log, shows, name)
	if err != nil {
		return RunResult{RunID: runID, Shows: shows, Errors: errs, SnapshotFile: name}, err
	}

	result := RunResult{
		RunID:        runID,
		Shows:        shows,
		Report:       report,
		Errors:       errs,
		SnapshotFile: name,
	}

	if opts.Email && w.mailer != nil {
		if err := w.mailer.Send(report, errs); err != nil {
			log.Warn("email delivery failed", "error", err)
		} else {
			result.EmailSent = true
		}
	}

	log.Info("watch run finished",
		"shows", len(shows),
		"new", len(report.New),
		"updated", len(report.Updated),
		"removed", len(report.Removed),
		"errors", len(errs))
	return result, nil
}

func (w *Watcher) selectSites(ids []string) ([]config.Site, error) {
	if len(ids) == 0 {
		return w.cfg.Sites, nil
	}
	sites := make([]config.Site, 0, len(ids))
	for _, id := range ids {
		site, err := w.cfg.SiteByID(id)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// scrapeAll fetches and extracts every site concurrently, then merges the
// results back in configured site order so snapshots and reports stay
// stable between runs.
func (w *Watcher) scrapeAll(ctx context.Context, log *slog.Logger, sites []config.Site) ([]internal.ShowRecord, []string) {
	type siteResult struct {
		shows []internal.ShowRecord
		err   error
	}

	results := make([]siteResult, len(sites))
	var wg sync.WaitGroup
	for i, site := range sites {
		i, site := i, site
		wg.Add(1)
		go func() {
			defer wg.Done()
			shows, err := w.scrapeSite(ctx, site)
			results[i] = siteResult{shows: shows, err: err}
		}()
	}
	wg.Wait()

	var merged []internal.ShowRecord
	var errs []string
	for i, site := range sites {
		res := results[i]
		if res.err != nil {
			log.Error("site scrape failed", "site", site.ID, "error", res.err)
			errs = append(errs, fmt.Sprintf("failed to scrape %s: %v", site.ID, res.err))
			continue
		}
		if len(res.shows) == 0 {
			log.Warn("site produced no shows", "site", site.ID)
			errs = append(errs, fmt.Sprintf("no shows extracted from %s", site.ID))
			continue
		}
		log.Debug("site scraped", "site", site.ID, "shows", len(res.shows))
		merged = append(merged, res.shows...)
	}
	return merged, errs
}

func (w *Watcher) scrapeSite(ctx context.Context, site config.Site) ([]internal.ShowRecord, error) {
	fetcher := w.static
	if site.Dynamic {
		if w.rendered == nil {
			return nil, fmt.Errorf("site %s needs a browser but none is available", site.ID)
		}
		fetcher = w.rendered
	}

	html, err := fetcher.Fetch(ctx, site.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", site.URL, err)
	}
	return scrape.Dispatch(w.registry, html, site.ID, site.URL), nil
}

func (w *Watcher) compare(log *slog.Logger, shows []internal.ShowRecord, todayName string) (internal.ChangeReport, error) {
	prev, err := w.store.Latest(todayName)
	if err != nil {
		return internal.ChangeReport{}, err
	}
	if prev == "" {
		log.Info("no prior snapshot, treating every show as new")
		return diff.Compare(shows, nil), nil
	}

	previous, err := w.store.Load(prev)
	if err != nil {
		return internal.ChangeReport{}, fmt.Errorf("load previous snapshot: %w", err)
	}
	log.Debug("comparing against snapshot", "file", prev, "shows", len(previous))
	return diff.Compare(shows, previous), nil
}
