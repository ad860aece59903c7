package enrich

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/law-makers/leadgen/pkg/models"
)

// ceoTitles is the role preference order when inferring the most likely
// decision maker from the officer list.
var ceoTitles = []string{
	"chief executive officer", "chief executive", "ceo",
	"managing director", "director", "owner", "founder", "proprietor",
}

// seniorRoles are the exact role values that earn the ICP boost. Unlike
// ceoTitles these must match the whole role, not a substring.
var seniorRoles = map[string]bool{
	"director":          true,
	"ceo":               true,
	"managing director": true,
}

// ChooseCEO picks the most likely chief decision maker from an officer
// list. Titles are matched in preference order; when nothing matches, the
// first listed officer is assumed to be the most senior.
func ChooseCEO(officers []models.Officer) string {
	for _, title := range ceoTitles {
		for _, o := range officers {
			name := strings.TrimSpace(o.Name)
			if name == "" {
				continue
			}
			if strings.Contains(strings.ToLower(o.Role), title) {
				return name
			}
		}
	}
	if len(officers) > 0 {
		return strings.TrimSpace(officers[0].Name)
	}
	return ""
}

func hasSeniorOfficer(officers []models.Officer) bool {
	for _, o := range officers {
		if seniorRoles[strings.ToLower(strings.TrimSpace(o.Role))] {
			return true
		}
	}
	return false
}

// findCEOLinkedIn makes a best-effort guess at the CEO's LinkedIn profile
// by running targeted site: queries through the primary search engine.
func (e *Enricher) findCEOLinkedIn(ctx context.Context, companyName, ceoName string) string {
	if companyName == "" || ceoName == "" {
		return ""
	}
	tmpl := e.res.First("search_engines", "bing", "url_template")
	resultLink := e.res.First("search_engines", "bing", "result_link")
	if tmpl == "" || resultLink == "" {
		return ""
	}

	queries := []string{
		fmt.Sprintf(`site:linkedin.com/in %q %q`, ceoName, companyName),
		fmt.Sprintf(`site:linkedin.com/in %q marketing director`, ceoName),
		fmt.Sprintf(`site:linkedin.com/in %q`, ceoName),
	}

	for _, q := range queries {
		if ctx.Err() != nil {
			return ""
		}
		doc, err := e.fetcher.GetDoc(ctx, fmt.Sprintf(tmpl, url.QueryEscape(q)))
		if err != nil || doc == nil {
			continue
		}

		profile := ""
		doc.Find(resultLink).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if strings.Contains(href, "linkedin.com/in/") {
				profile = href
				return false
			}
			return true
		})
		if profile != "" {
			e.log.Debug().Str("ceo", ceoName).Str("linkedin", profile).Msg("Found CEO LinkedIn")
			return profile
		}
	}
	return ""
}
