// internal/extract/parse.go
package extract

import (
	"regexp"
	"strings"

	"github.com/law-makers/leadgen/pkg/models"
)

var (
	sicCodeRe = regexp.MustCompile(`\b(\d{5})\b`)
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	nextAccountsRe     = regexp.MustCompile(`(?mi)Next accounts made up to\s*(.+?)\s*(?:due by\s*(.+?))?\s*$`)
	lastAccountsRe     = regexp.MustCompile(`(?mi)Last accounts made up to\s*(.+?)\s*$`)
	nextConfirmationRe = regexp.MustCompile(`(?mi)Next statement date\s*(.+?)\s*(?:due by\s*(.+?))?\s*$`)
	lastConfirmationRe = regexp.MustCompile(`(?mi)Last statement dated\s*(.+?)\s*$`)

	appointmentRe         = regexp.MustCompile(`(?i)(.+?)\s+\(?(?:Company number:\s*)?([A-Za-z0-9]{2,}\d{6,})\)?\s+Appointed on\s+(.+)`)
	appointmentCompanyRe  = regexp.MustCompile(`(?i)(.+?)\s+\(?(?:Company number:\s*)?([A-Za-z0-9]{2,}\d{6,})\)?`)
	companyNumberFromURL  = regexp.MustCompile(`/company/([A-Za-z0-9]+)`)
	companyNumberPrefixRe = regexp.MustCompile(`(?i)Company number\s*`)
)

// SICCodes extracts all 5-digit classification codes from a text blob,
// de-duplicated preserving first-seen order.
func SICCodes(text string) []string {
	if text == "" || text == models.Unknown {
		return nil
	}
	matches := sicCodeRe.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	var codes []string
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		codes = append(codes, m)
	}
	return codes
}

// ContainsSICCode reports whether text holds at least one 5-digit code.
func ContainsSICCode(text string) bool {
	return sicCodeRe.MatchString(text)
}

// ParseAccounts splits an "Accounts" summary blob into the next and last
// filing descriptions. Each side defaults independently to Unknown when
// its pattern does not match.
func ParseAccounts(text string) (next, last string) {
	return parseDatePair(text, nextAccountsRe, lastAccountsRe)
}

// ParseConfirmation splits a "Confirmation statement" blob into the next
// and last statement descriptions, each defaulting to Unknown.
func ParseConfirmation(text string) (next, last string) {
	return parseDatePair(text, nextConfirmationRe, lastConfirmationRe)
}

func parseDatePair(text string, nextRe, lastRe *regexp.Regexp) (string, string) {
	next, last := models.Unknown, models.Unknown
	if text == "" || text == models.Unknown {
		return next, last
	}

	if m := nextRe.FindStringSubmatch(text); m != nil {
		date := strings.TrimSpace(m[1])
		if due := strings.TrimSpace(m[2]); due != "" {
			next = date + " due by " + due
		} else {
			next = date
		}
	}
	if m := lastRe.FindStringSubmatch(text); m != nil {
		last = strings.TrimSpace(m[1])
	}
	return next, last
}

// FoundedYear pulls a plausible four-digit year out of an incorporation
// date string. Returns "" when none is present.
func FoundedYear(incorporationDate string) string {
	return yearRe.FindString(incorporationDate)
}

// ParseAppointment parses one row of an officer's "other appointments"
// list into a (company, companyNumber, date) triple. The bool reports
// whether anything usable was found.
func ParseAppointment(text string) (models.Appointment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Appointment{}, false
	}

	if m := appointmentRe.FindStringSubmatch(text); m != nil {
		return models.Appointment{
			Company:       strings.TrimSpace(m[1]),
			CompanyNumber: strings.TrimSpace(m[2]),
			Date:          strings.TrimSpace(m[3]),
		}, true
	}

	// Less structured rows: split on the appointment marker and salvage
	// what we can.
	parts := strings.SplitN(text, "Appointed on ", 2)
	if len(parts) == 2 {
		info := strings.TrimSpace(parts[0])
		date := strings.TrimSpace(parts[1])
		if m := appointmentCompanyRe.FindStringSubmatch(info); m != nil {
			return models.Appointment{
				Company:       strings.TrimSpace(m[1]),
				CompanyNumber: strings.TrimSpace(m[2]),
				Date:          date,
			}, true
		}
		return models.Appointment{Company: info, Date: date}, true
	}

	return models.Appointment{Company: text, Date: models.Unknown}, true
}

// CompanyNumberFromURL extracts the registry company number embedded in a
// profile URL, or "" when the URL has no /company/ segment.
func CompanyNumberFromURL(urlStr string) string {
	if m := companyNumberFromURL.FindStringSubmatch(urlStr); m != nil {
		return m[1]
	}
	return ""
}

// StripCompanyNumberLabel removes the "Company number" label prefix from a
// scraped number cell.
func StripCompanyNumberLabel(text string) string {
	return strings.TrimSpace(companyNumberPrefixRe.ReplaceAllString(text, ""))
}
