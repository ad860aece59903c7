// Package enrich augments scraped leads with externally discovered data:
// the company's real website, contact details, a likely decision maker,
// and the ICP/quality scores used for ranking.
package enrich

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
)

// Enricher runs the per-lead enrichment stages. It is safe for concurrent
// use; each lead is owned by exactly one worker at a time.
type Enricher struct {
	cfg     *config.Config
	fetcher *Fetcher
	res     *selectors.Resolver
	log     zerolog.Logger
	urlLog  zerolog.Logger
}

func New(cfg *config.Config, fetcher *Fetcher, res *selectors.Resolver, logger, urlLogger zerolog.Logger) *Enricher {
	return &Enricher{
		cfg:     cfg,
		fetcher: fetcher,
		res:     res,
		log:     logger.With().Str("component", "enrich").Logger(),
		urlLog:  urlLogger,
	}
}

// Enrich runs the full enrichment sequence for one lead: website
// discovery, contact harvesting, CEO inference, ICP scoring, and the
// final SIC filter. It always produces an outcome; network failures along
// the way degrade the lead rather than fail it. Only context cancellation
// aborts early.
func (e *Enricher) Enrich(ctx context.Context, lead *models.Lead) models.Outcome {
	e.log.Debug().Str("company", lead.CompanyName).Msg("Starting enrichment")

	// A missing website, or one that points back at the registry, gets a
	// search-engine guess.
	if lead.Website == "" || isRegistryWebsite(lead.Website) {
		if guessed := e.discoverWebsite(ctx, lead.CompanyName, lead.Location); guessed != "" {
			lead.Website = guessed
			e.log.Info().Str("company", lead.CompanyName).Str("website", guessed).Msg("Updated website from search")
		}
	}

	if err := e.harvestContacts(ctx, lead); err != nil {
		return models.KeptOutcome(lead)
	}

	if ceo := ChooseCEO(lead.Officers); ceo != "" {
		lead.CEOName = ceo
		if lead.CEOLinkedIn == "" {
			lead.CEOLinkedIn = e.findCEOLinkedIn(ctx, lead.CompanyName, ceo)
		}
	}

	if lead.ICPMatch == 0 {
		lead.ICPMatch = icpScore(lead.SICCodes, lead.Location, e.cfg.SICCodes, e.cfg.TargetLocation)
	}
	if hasSeniorOfficer(lead.Officers) {
		lead.ICPMatch = min(1.0, lead.ICPMatch+seniorOfficerBoost)
	}

	lead.PainPoints = painPoints(lead.SICCodes)

	if len(e.cfg.SICCodes) > 0 && !sicMatchesTarget(lead.SICCodes, e.cfg.SICCodes) {
		e.log.Debug().
			Str("company", lead.CompanyName).
			Strs("sic_codes", lead.SICCodes).
			Msg("Dropping lead with non-target SIC codes")
		return models.FilteredOutcome(lead, "sic codes outside target set")
	}

	lead.RecalcQualityScore()
	return models.KeptOutcome(lead)
}

// EnrichAll enriches leads concurrently with a bounded worker pool. The
// result has exactly one outcome per input lead, in input order; every
// worker is awaited even when the context is cancelled mid-run. onDone,
// when non-nil, is called once per finished lead.
func (e *Enricher) EnrichAll(ctx context.Context, leads []*models.Lead, onDone func()) []models.Outcome {
	outcomes := make([]models.Outcome, len(leads))

	g := new(errgroup.Group)
	g.SetLimit(e.cfg.MaxWorkers)
	for i, lead := range leads {
		g.Go(func() error {
			outcomes[i] = e.Enrich(ctx, lead)
			if onDone != nil {
				onDone()
			}
			return nil
		})
	}
	// Workers never return errors; outcomes carry the per-lead result.
	_ = g.Wait()

	return outcomes
}
