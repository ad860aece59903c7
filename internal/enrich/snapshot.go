package enrich

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// summaryLimit caps the homepage summary length in runes.
const summaryLimit = 400

// cleanHTML strips scripts, chrome and all but a few safe attributes so
// the markdown converter sees only the page's visible content.
func cleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas, nav, footer").Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			switch node.Data {
			case "a":
				if attr.Key == "href" || attr.Key == "title" {
					kept = append(kept, attr)
				}
			case "img":
				if attr.Key == "src" || attr.Key == "alt" || attr.Key == "title" {
					kept = append(kept, attr)
				}
			}
		}
		node.Attr = kept
	})

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// summarizeHomepage converts the homepage HTML to markdown and keeps the
// first few hundred characters as a human-readable summary for export.
func summarizeHomepage(rawHTML string) string {
	cleaned, err := cleanHTML(rawHTML)
	if err != nil {
		cleaned = rawHTML
	}

	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())

	text, err := conv.ConvertString(cleaned)
	if err != nil {
		return ""
	}

	// Collapse blank runs so the summary reads as a paragraph.
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	summary := strings.Join(lines, " ")

	runes := []rune(summary)
	if len(runes) > summaryLimit {
		summary = strings.TrimSpace(string(runes[:summaryLimit])) + "…"
	}
	return summary
}
