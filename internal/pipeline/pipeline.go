// Package pipeline sequences the lead sources, collapses duplicates,
// fans the unique set out through enrichment, and returns the final
// ranked collection.
package pipeline

import (
	"context"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/enrich"
	"github.com/law-makers/leadgen/pkg/models"
)

// Source produces raw leads from one upstream site. Sources run
// sequentially; a failing source is logged and skipped, it never aborts
// the run.
type Source interface {
	Name() string
	Leads(ctx context.Context) ([]*models.Lead, error)
}

// Orchestrator owns one crawl run end to end.
type Orchestrator struct {
	cfg      *config.Config
	sources  []Source
	enricher *enrich.Enricher
	log      zerolog.Logger

	// showProgress draws a terminal progress bar during enrichment.
	showProgress bool
}

func NewOrchestrator(cfg *config.Config, enricher *enrich.Enricher, logger zerolog.Logger, sources ...Source) *Orchestrator {
	return &Orchestrator{
		cfg:          cfg,
		sources:      sources,
		enricher:     enricher,
		log:          logger.With().Str("component", "pipeline").Logger(),
		showProgress: true,
	}
}

// Run executes the full pipeline: collect from every source, dedup,
// enrich, then filter and rank. The returned slice is sorted by quality
// score descending with filtered leads removed.
// DisableProgress turns off the terminal progress bar. Used when logs go
// to the same stream as the bar would.
func (o *Orchestrator) DisableProgress() {
	o.showProgress = false
}

func (o *Orchestrator) Run(ctx context.Context) ([]*models.Lead, error) {
	var raw []*models.Lead
	for _, src := range o.sources {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		leads, err := src.Leads(ctx)
		if err != nil {
			o.log.Error().Err(err).Str("source", src.Name()).Msg("Source failed, continuing with remaining sources")
			continue
		}
		o.log.Info().Str("source", src.Name()).Int("leads", len(leads)).Msg("Source finished")
		raw = append(raw, leads...)
	}

	unique := Dedup(raw)
	o.log.Info().Int("raw", len(raw)).Int("unique", len(unique)).Msg("Deduplicated leads")

	if len(unique) == 0 {
		return nil, nil
	}

	var onDone func()
	if o.showProgress {
		bar := progressbar.NewOptions(len(unique),
			progressbar.OptionSetDescription("Enriching leads"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		onDone = func() { _ = bar.Add(1) }
	}
	outcomes := o.enricher.EnrichAll(ctx, unique, onDone)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	final := FilterAndRank(outcomes)
	o.log.Info().Int("final", len(final)).Msg("Pipeline finished")
	return final, nil
}

// Dedup collapses leads sharing the same identity key. The first
// occurrence across sources wins, so duplicates never reach enrichment.
func Dedup(leads []*models.Lead) []*models.Lead {
	seen := make(map[string]struct{}, len(leads))
	unique := make([]*models.Lead, 0, len(leads))
	for _, l := range leads {
		key := l.Key()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, l)
	}
	return unique
}

// FilterAndRank drops filtered outcomes and sorts the survivors by
// quality score, best first. The sort is stable: ties keep their input
// order.
func FilterAndRank(outcomes []models.Outcome) []*models.Lead {
	kept := make([]*models.Lead, 0, len(outcomes))
	for _, out := range outcomes {
		if !out.Kept || out.Lead == nil || out.Lead.QualityScore < 0 {
			continue
		}
		kept = append(kept, out.Lead)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].QualityScore > kept[j].QualityScore
	})
	return kept
}
