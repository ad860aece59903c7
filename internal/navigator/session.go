package navigator

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/selectors"
)

// session bundles the browsing plumbing shared by the registry navigator
// and the directory source: rate-limited navigation, page snapshots, and
// consent-banner dismissal.
type session struct {
	cfg     *config.Config
	res     *selectors.Resolver
	limiter ratelimit.Limiter
	browser *Browser
	log     zerolog.Logger
	urlLog  zerolog.Logger
}

// navigate drives the tab to a URL behind the rate limiter, waits for the
// document to be ready, and makes a consent-dismissal attempt. The URL is
// recorded in the visited-URL audit trail on success.
func (s *session) navigate(tab context.Context, url string) error {
	release, err := s.limiter.Acquire(tab, url)
	if err != nil {
		return err
	}
	defer release()

	tctx, cancel := context.WithTimeout(tab, s.cfg.PageTimeout)
	defer cancel()

	// Capture the main document's response status from the network layer.
	var status atomic.Int64
	chromedp.ListenTarget(tctx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Response.URL == url {
			status.Store(resp.Response.Status)
		}
	})

	err = chromedp.Run(tctx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if code := status.Load(); code >= 400 {
		s.log.Warn().Int64("status", code).Str("url", url).Msg("Page answered with an error status")
	}
	s.urlLog.Info().Str("url", url).Int64("status", status.Load()).Msg("visit")

	s.dismissConsent(tab)
	return nil
}

// document snapshots the tab's current DOM into a goquery document and
// returns it with the tab's current URL.
func (s *session) document(tab context.Context) (*goquery.Document, string, error) {
	tctx, cancel := context.WithTimeout(tab, s.cfg.PageTimeout)
	defer cancel()

	var html, loc string
	err := chromedp.Run(tctx,
		chromedp.Location(&loc),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", err
	}
	return doc, loc, nil
}

// dismissConsent clicks the first matching cookie-accept button, if any.
// An absent banner is the normal case, not an error.
func (s *session) dismissConsent(tab context.Context) {
	buttons := []string{
		s.res.First("sources", "companies_house", "navigation", "accept_cookies_button"),
		"#onetrust-accept-btn-handler",
		"button#accept-cookies",
	}

	tctx, cancel := context.WithTimeout(tab, 5*time.Second)
	defer cancel()

	for _, sel := range buttons {
		if sel == "" {
			continue
		}
		script := fmt.Sprintf(
			`(function(){var el=document.querySelector(%q);if(el){el.click();return true}return false})()`,
			sel,
		)
		var clicked bool
		if err := chromedp.Run(tctx, chromedp.Evaluate(script, &clicked)); err != nil {
			return
		}
		if clicked {
			s.log.Debug().Str("selector", sel).Msg("Dismissed consent banner")
			return
		}
	}
}

// scrollToBottom scrolls the tab to the end of the document a few times,
// pausing between scrolls so lazy-loaded listings can populate.
func (s *session) scrollToBottom(tab context.Context, rounds int, pause time.Duration) {
	for i := 0; i < rounds; i++ {
		tctx, cancel := context.WithTimeout(tab, 10*time.Second)
		err := chromedp.Run(tctx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(pause),
		)
		cancel()
		if err != nil {
			return
		}
	}
}
