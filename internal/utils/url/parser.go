package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// ResolveURL resolves a possibly-relative href against a base URL and returns a string
func ResolveURL(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// Domain returns the lower-cased host of a URL, or "" when unparseable.
func Domain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// Root strips a URL down to scheme and host, the form used for homepage
// fetches. Inputs without a scheme are assumed https.
func Root(urlStr string) string {
	if urlStr == "" {
		return ""
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		u, err = url.Parse("https://" + urlStr)
		if err != nil {
			return ""
		}
	}
	if u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
