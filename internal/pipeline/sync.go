// Package pipeline orchestrates one catalog synchronization run:
// acquisition → parsing → per-node normalization → persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/melodika/melodika-sync/internal/catalog"
	"github.com/melodika/melodika-sync/internal/feed"
	"github.com/melodika/melodika-sync/internal/models"
	"github.com/melodika/melodika-sync/internal/normalize"
	"github.com/melodika/melodika-sync/internal/store"
	"github.com/melodika/melodika-sync/internal/xmltree"
)

// Pipeline runs the full feed synchronization. One run is a single logical
// sequential job: nodes are normalized and upserted in document order, one
// store connection at a time, so a per-node failure isolates cleanly.
type Pipeline struct {
	fetcher *feed.Fetcher
	store   store.Store
	norm    *normalize.Normalizer
	opts    xmltree.Options
	log     *slog.Logger
}

// New creates a pipeline over the given fetcher and store.
func New(fetcher *feed.Fetcher, st store.Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		fetcher: fetcher,
		store:   st,
		norm:    normalize.New(log),
		opts:    xmltree.DefaultOptions(),
		log:     log,
	}
}

// Sync executes one run and always returns a structured report; errors,
// including anything unexpected escaping the stages, end up in the report
// rather than propagating to the caller.
func (p *Pipeline) Sync(ctx context.Context) (report models.SyncReport) {
	report = models.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() {
		if r := recover(); r != nil {
			report.Success = false
			report.Error = fmt.Sprintf("unexpected failure: %v", r)
			// Counters accumulated before the failure would misstate a run
			// that died midway; the report carries only the error.
			report.Found, report.Count, report.Skipped, report.Failed = 0, 0, 0, 0
			p.log.Error("sync panicked", "run_id", report.RunID, "panic", r)
		}
		report.FinishedAt = time.Now()
	}()

	body, source, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return p.fail(report, err)
	}
	report.Source = source
	reportProgress(ctx, fmt.Sprintf("Fetched %d bytes from %s", len(body), source))

	doc, err := xmltree.Decode(body, p.opts)
	if err != nil {
		return p.fail(report, fmt.Errorf("parse feed: %w", err))
	}

	nodes, err := catalog.Locate(doc)
	if err != nil {
		return p.fail(report, err)
	}
	report.Found = len(nodes)
	reportProgress(ctx, fmt.Sprintf("Located %d product nodes", len(nodes)))

	for i, node := range nodes {
		rec := p.norm.Normalize(node)
		if !rec.Valid() {
			report.Skipped++
			p.log.Warn("skipping record without id or name", "index", i)
			continue
		}
		if err := p.store.Upsert(ctx, &rec); err != nil {
			report.Failed++
			p.log.Error("upsert failed", "id", rec.ID, "error", err)
			continue
		}
		report.Count++
	}
	reportProgress(ctx, fmt.Sprintf("Upserted %d of %d products", report.Count, report.Found))

	p.log.Info("sync finished",
		"run_id", report.RunID, "source", source,
		"found", report.Found, "written", report.Count,
		"skipped", report.Skipped, "failed", report.Failed)

	report.Success = true
	return report
}

func (p *Pipeline) fail(report models.SyncReport, err error) models.SyncReport {
	report.Success = false
	report.Error = err.Error()
	p.log.Error("sync failed", "run_id", report.RunID, "error", err)
	return report
}
