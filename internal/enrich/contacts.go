package enrich

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"

	"github.com/law-makers/leadgen/pkg/models"
)

// contactPaths are appended to the website root when hunting for contact
// details, in the order they are tried.
var contactPaths = []string{"", "/contact", "/contact-us", "/about", "/about-us", "/services"}

// emailFalsePositives are substrings of regex matches that are never real
// mailboxes (asset filenames, schema URLs, documentation examples).
var emailFalsePositives = []string{"example.com", ".png", ".jpg", ".svg", ".gif", "w3.org"}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func compilePattern(pat string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pat]; ok {
		return re
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		patternCache[pat] = nil
		return nil
	}
	patternCache[pat] = re
	return re
}

// tryPaths builds the list of candidate contact pages for a website root,
// de-duplicated and in priority order.
func tryPaths(rootURL string) []string {
	root := CleanCandidate(rootURL)
	if root == "" {
		root = rootURL
	}
	if root == "" {
		return nil
	}
	root = strings.TrimRight(root, "/")

	seen := make(map[string]struct{}, len(contactPaths))
	urls := make([]string, 0, len(contactPaths))
	for _, p := range contactPaths {
		u := root + p
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// harvestFromHTML pulls phones, emails and social links out of one page's
// raw HTML into the lead. Fields already populated are left alone.
func (e *Enricher) harvestFromHTML(html string, lead *models.Lead) {
	if lead.Phone == "" {
	phones:
		for _, pat := range e.res.Resolve("generic_website", "phone_patterns") {
			re := compilePattern(pat)
			if re == nil {
				continue
			}
			for _, m := range re.FindAllString(html, -1) {
				num, err := phonenumbers.Parse(m, "GB")
				if err != nil || !phonenumbers.IsValidNumber(num) {
					continue
				}
				lead.Phone = phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
				lead.PhoneVerified = true
				e.log.Info().Str("phone", lead.Phone).Str("company", lead.CompanyName).Msg("Found phone")
				break phones
			}
		}
	}

	if lead.Email == "" {
		if pat := e.res.First("generic_website", "email_pattern"); pat != "" {
			if re := compilePattern(pat); re != nil {
			emails:
				for _, m := range re.FindAllString(html, -1) {
					lower := strings.ToLower(m)
					for _, fp := range emailFalsePositives {
						if strings.Contains(lower, fp) {
							continue emails
						}
					}
					addr, err := mail.ParseAddress(m)
					if err != nil {
						continue
					}
					lead.Email = addr.Address
					lead.EmailVerified = true
					e.log.Info().Str("email", lead.Email).Str("company", lead.CompanyName).Msg("Found email")
					break
				}
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return
	}
	socials := lead.Socials
	if socials == nil {
		socials = map[string]string{}
	}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		h := strings.ToLower(href)
		switch {
		case strings.Contains(h, "linkedin.com/company") || strings.Contains(h, "linkedin.com/in"):
			socials["linkedin"] = href
		case strings.Contains(h, "facebook.com") && !strings.Contains(h, "sharer"):
			socials["facebook"] = href
		case strings.Contains(h, "twitter.com") || strings.Contains(h, "x.com"):
			socials["twitter"] = href
		case strings.Contains(h, "instagram.com"):
			socials["instagram"] = href
		}
	})
	if len(socials) > 0 {
		lead.Socials = socials
	}
}

// harvestContacts walks the website's contact pages until both a phone
// and an email are found. The homepage additionally feeds the website
// summary, and pages whose static text hides contact details behind
// inline scripts get a second pass through the script sandbox.
func (e *Enricher) harvestContacts(ctx context.Context, lead *models.Lead) error {
	if lead.Website == "" {
		return nil
	}
	e.urlLog.Info().Str("url", lead.Website).Str("stage", "enrich").Msg("visit")

	for i, u := range tryPaths(lead.Website) {
		html, err := e.fetcher.Get(ctx, u)
		if err != nil {
			return err
		}
		if html == "" {
			continue
		}

		if i == 0 && lead.WebsiteSummary == "" {
			lead.WebsiteSummary = summarizeHomepage(html)
		}

		e.harvestFromHTML(html, lead)

		if !lead.HasContact() {
			if recovered := recoverInlineText(html, u, e.log); recovered != "" {
				e.harvestFromHTML(recovered, lead)
			}
		}

		if lead.HasContact() {
			break
		}
	}
	return nil
}
