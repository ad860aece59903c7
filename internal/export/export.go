// Package export writes the final lead collection and the generated
// outreach campaigns to disk. Exports are pure sinks: nothing here feeds
// back into the pipeline.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/pkg/models"
)

// Exporter writes timestamped files into one export directory.
type Exporter struct {
	dir string
	log zerolog.Logger

	// now is swappable for deterministic filenames in tests.
	now func() time.Time
}

func New(dir string, logger zerolog.Logger) *Exporter {
	return &Exporter{
		dir: dir,
		log: logger.With().Str("component", "export").Logger(),
		now: time.Now,
	}
}

func (e *Exporter) path(prefix, ext string) string {
	return filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", prefix, e.now().Format("20060102_150405"), ext))
}

var csvHeader = []string{
	"company_name", "company_number", "website", "location", "source",
	"status", "company_type", "incorporation_date", "founded_year",
	"sic_codes", "accounts_next", "accounts_last",
	"confirmation_next", "confirmation_last",
	"phone", "phone_verified", "email", "email_verified", "socials",
	"ceo_name", "ceo_linkedin", "employee_count",
	"pain_points", "icp_match", "quality_score", "scraped_at",
}

// WriteLeadsCSV writes one row per lead and returns the file path.
// Writing an empty collection is skipped, not an error.
func (e *Exporter) WriteLeadsCSV(leads []*models.Lead) (string, error) {
	if len(leads) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}

	path := e.path("leads", "csv")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, l := range leads {
		row := []string{
			l.CompanyName, l.CompanyNumber, l.Website, l.Location, l.Source,
			l.Status, l.CompanyType, l.IncorporationDate, l.FoundedYear,
			strings.Join(l.SICCodes, ", "), l.AccountsNext, l.AccountsLast,
			l.ConfirmationNext, l.ConfirmationLast,
			l.Phone, strconv.FormatBool(l.PhoneVerified),
			l.Email, strconv.FormatBool(l.EmailVerified),
			joinSocials(l.Socials),
			l.CEOName, l.CEOLinkedIn, strconv.Itoa(l.EmployeeCount),
			strings.Join(l.PainPoints, "; "),
			strconv.FormatFloat(l.ICPMatch, 'f', 2, 64),
			strconv.Itoa(l.QualityScore),
			l.ScrapedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	e.log.Info().Str("file", path).Int("leads", len(leads)).Msg("Exported leads CSV")
	return path, nil
}

// WriteCampaignsJSON writes the outreach messages as an indented JSON
// array and returns the file path.
func (e *Exporter) WriteCampaignsJSON(msgs []models.OutreachMessage) (string, error) {
	if len(msgs) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}

	content, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return "", err
	}

	path := e.path("campaigns", "json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}

	e.log.Info().Str("file", path).Int("campaigns", len(msgs)).Msg("Exported campaigns JSON")
	return path, nil
}

// WriteLeadsJSON writes the full lead collection as JSON alongside the
// CSV for downstream tooling.
func (e *Exporter) WriteLeadsJSON(leads []*models.Lead) (string, error) {
	if len(leads) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}

	content, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", err
	}

	path := e.path("leads", "json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}

	e.log.Info().Str("file", path).Int("leads", len(leads)).Msg("Exported leads JSON")
	return path, nil
}

func joinSocials(socials map[string]string) string {
	if len(socials) == 0 {
		return ""
	}
	// Fixed order keeps rows comparable across runs.
	var parts []string
	for _, k := range []string{"linkedin", "facebook", "twitter", "instagram"} {
		if v, ok := socials[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, "; ")
}
