package navigator

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
)

// DirectorySource scrapes an agency directory listing (Clutch-style) as a
// secondary lead source. Listings lazy-load, so the page is scrolled a
// few times before the snapshot is taken.
type DirectorySource struct {
	session
}

func NewDirectorySource(cfg *config.Config, res *selectors.Resolver, limiter ratelimit.Limiter, browser *Browser, logger, urlLogger zerolog.Logger) *DirectorySource {
	return &DirectorySource{
		session: session{
			cfg:     cfg,
			res:     res,
			limiter: limiter,
			browser: browser,
			log:     logger.With().Str("component", "directory").Logger(),
			urlLog:  urlLogger,
		},
	}
}

func (d *DirectorySource) Name() string {
	return "Clutch.co"
}

// Leads loads the directory page and extracts one lead per listed agency
// that has a website link and matches the target location.
func (d *DirectorySource) Leads(ctx context.Context) ([]*models.Lead, error) {
	if !d.res.Has("sources", "clutch") {
		return nil, nil
	}
	listURL := d.res.First("sources", "clutch", "url")
	if listURL == "" {
		return nil, nil
	}

	tab, cancel := d.browser.NewTab()
	defer cancel()

	if err := d.navigate(tab, listURL); err != nil {
		return nil, err
	}
	d.scrollToBottom(tab, 3, 2*time.Second)

	doc, _, err := d.document(tab)
	if err != nil {
		return nil, err
	}

	listSel := d.res.First("sources", "clutch", "agency_list")
	nameSel := d.res.First("sources", "clutch", "company_name")
	siteSel := d.res.First("sources", "clutch", "website_link")
	locSel := d.res.First("sources", "clutch", "location")

	targetLoc := strings.ToLower(strings.TrimSpace(d.cfg.TargetLocation))

	var leads []*models.Lead
	doc.Find(listSel).Each(func(_ int, row *goquery.Selection) {
		if len(leads) >= d.cfg.TargetCount {
			return
		}

		name := strings.TrimSpace(row.Find(nameSel).First().Text())
		if name == "" {
			name = models.Unknown
		}
		website, _ := row.Find(siteSel).First().Attr("href")
		location := strings.TrimSpace(row.Find(locSel).First().Text())
		if location == "" {
			location = d.cfg.TargetLocation
		}

		if website == "" {
			return
		}
		if targetLoc != "" && !strings.Contains(strings.ToLower(location), targetLoc) {
			return
		}

		leads = append(leads, &models.Lead{
			CompanyName: name,
			Website:     website,
			Location:    location,
			Source:      d.Name(),
			ScrapedAt:   time.Now(),
		})
		d.log.Info().Str("company", name).Str("website", website).Msg("Found directory listing")
	})

	return leads, nil
}
