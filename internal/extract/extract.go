// Package extract turns loaded registry pages into structured lead data.
//
// Three extraction modes are supported, each with explicit absence
// semantics: scalar-by-label (Unknown when missing), ordered-fallback list
// extraction (first selector with a hit wins), and repeated-structure
// extraction for officer cards.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/leadgen/internal/selectors"
	urlutil "github.com/law-makers/leadgen/internal/utils/url"
	"github.com/law-makers/leadgen/pkg/models"
)

// ScalarByLabel finds the definition-list label containing labelText and
// returns the trimmed text of the following value element. Absence of the
// label or an empty value yields the Unknown sentinel.
func ScalarByLabel(doc *goquery.Document, labelText string) string {
	value := models.Unknown
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if !strings.Contains(strings.TrimSpace(dt.Text()), labelText) {
			return true
		}
		dd := dt.NextAllFiltered("dd").First()
		if text := strings.TrimSpace(dd.Text()); text != "" {
			value = text
		}
		return false
	})
	return value
}

// FallbackTexts tries each selector in order, collecting the trimmed text
// of every match that passes keep. The first selector yielding at least
// one candidate wins; later selectors are not consulted.
func FallbackTexts(doc *goquery.Document, sels []string, keep func(string) bool) []string {
	for _, sel := range sels {
		var texts []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" {
				return
			}
			if keep == nil || keep(text) {
				texts = append(texts, text)
			}
		})
		if len(texts) > 0 {
			return texts
		}
	}
	return nil
}

// SICFromDoc extracts the page's classification codes: configured fallback
// selectors first, then the scalar-by-label route for the same logical
// field. The result is ordered and de-duplicated; empty means absent.
func SICFromDoc(doc *goquery.Document, res *selectors.Resolver) []string {
	sels := res.Resolve("sources", "companies_house", "company_overview_page", "nature_of_business_sic")
	parts := FallbackTexts(doc, sels, ContainsSICCode)

	if len(parts) == 0 {
		if text := ScalarByLabel(doc, "Nature of business (SIC)"); ContainsSICCode(text) {
			parts = []string{text}
		}
	}
	return SICCodes(strings.Join(parts, "\n"))
}

// CompanyName reads the profile page heading, or Unknown.
func CompanyName(doc *goquery.Document, res *selectors.Resolver) string {
	sel := res.First("sources", "companies_house", "company_overview_page", "name_header")
	if sel == "" {
		return models.Unknown
	}
	if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
		return text
	}
	return models.Unknown
}

// CompanyNumber reads the registry number from the page, falling back to
// the number embedded in the profile URL.
func CompanyNumber(doc *goquery.Document, res *selectors.Resolver, pageURL string) string {
	sel := res.First("sources", "companies_house", "company_overview_page", "company_number")
	if sel != "" {
		if raw := strings.TrimSpace(doc.Find(sel).First().Text()); raw != "" {
			if num := StripCompanyNumberLabel(raw); num != "" {
				return num
			}
		}
	}
	if num := CompanyNumberFromURL(pageURL); num != "" {
		return num
	}
	return models.Unknown
}

// Officers enumerates the officer cards on a people page, skipping cards
// whose role status does not contain the configured active text
// (case-insensitive substring).
func Officers(doc *goquery.Document, res *selectors.Resolver) []models.Officer {
	cardSels := res.Resolve("sources", "companies_house", "officers_page", "officer_cards")
	nameSel := res.First("sources", "companies_house", "officers_page", "officer_name_link")
	roleSel := res.First("sources", "companies_house", "officers_page", "officer_role")
	statusSel := res.First("sources", "companies_house", "officers_page", "officer_role_status")
	activeText := strings.ToLower(res.First("sources", "companies_house", "officers_page", "active_role_text"))

	var cards *goquery.Selection
	for _, sel := range cardSels {
		found := doc.Find(sel)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var officers []models.Officer
	cards.Each(func(_ int, card *goquery.Selection) {
		status := strings.TrimSpace(card.Find(statusSel).First().Text())
		if activeText != "" && !strings.Contains(strings.ToLower(status), activeText) {
			return
		}

		nameLink := card.Find(nameSel).First()
		name := strings.TrimSpace(nameLink.Text())
		if name == "" {
			name = models.Unknown
		}
		href, _ := nameLink.Attr("href")

		role := strings.TrimSpace(card.Find(roleSel).First().Text())
		if role == "" {
			role = models.Unknown
		}

		officers = append(officers, models.Officer{
			Name:   name,
			Role:   role,
			Status: status,
			Link:   href,
		})
	})
	return officers
}

// OfficerDetail reads the fields on an officer's own appointments page.
func OfficerDetail(doc *goquery.Document, res *selectors.Resolver) *models.OfficerDetail {
	detail := &models.OfficerDetail{
		DateOfBirth: ScalarByLabel(doc, "Date of birth"),
		Nationality: ScalarByLabel(doc, "Nationality"),
		Residence:   ScalarByLabel(doc, "Country of residence"),
		Occupation:  ScalarByLabel(doc, "Occupation"),
		AppointedOn: ScalarByLabel(doc, "Date of appointment"),
	}

	listSel := res.First("sources", "companies_house", "officer_appointments_page", "other_appointments_list")
	if listSel != "" {
		doc.Find(listSel).Each(func(_ int, row *goquery.Selection) {
			if appt, ok := ParseAppointment(row.Text()); ok {
				detail.Appointments = append(detail.Appointments, appt)
			}
		})
	}
	return detail
}

// ResultRow is one entry on a search results page.
type ResultRow struct {
	URL    string
	Status string
}

// ResultRows enumerates the result rows of a search page with their
// status cells. Rows without a company link are skipped.
func ResultRows(doc *goquery.Document, res *selectors.Resolver, base string) []ResultRow {
	rowSel := res.First("sources", "companies_house", "search_results_page", "result_rows")
	linkSel := res.First("sources", "companies_house", "search_results_page", "company_link")
	statusSel := res.First("sources", "companies_house", "search_results_page", "company_status_cell")
	if rowSel == "" || linkSel == "" {
		return nil
	}

	var rows []ResultRow
	doc.Find(rowSel).Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Find(linkSel).First().Attr("href")
		if !ok || !strings.Contains(href, "/company/") {
			return
		}
		rows = append(rows, ResultRow{
			URL:    urlutil.ResolveURL(base, href),
			Status: strings.TrimSpace(row.Find(statusSel).First().Text()),
		})
	})
	return rows
}

// NextPageURL returns the resolved href of the pagination "next" link, or
// "" when the link is absent or disabled.
func NextPageURL(doc *goquery.Document, res *selectors.Resolver, base string) string {
	sel := res.First("sources", "companies_house", "search_results_page", "pagination_next_link")
	if sel == "" {
		return ""
	}
	link := doc.Find(sel).First()
	if link.Length() == 0 {
		return ""
	}
	if _, disabled := link.Attr("disabled"); disabled {
		return ""
	}
	if class, ok := link.Attr("class"); ok && strings.Contains(class, "disabled") {
		return ""
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return ""
	}
	return urlutil.ResolveURL(base, href)
}

// CompanyLinks collects company profile links from a search results page,
// resolved against base, de-duplicated preserving order. Filing-history
// links are not profiles and are dropped.
func CompanyLinks(doc *goquery.Document, res *selectors.Resolver, base string) []string {
	sel := res.First("sources", "companies_house", "search_results_page", "company_link")
	if sel == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "/company/") || strings.HasSuffix(href, "/filing-history") {
			return
		}
		resolved := urlutil.ResolveURL(base, href)
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})
	return links
}
