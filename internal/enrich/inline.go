package enrich

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/rs/zerolog"
)

// recoverInlineText executes a page's inline <script> bodies in a bare JS
// VM and returns the string values of any globals the scripts left
// behind. Sites that assemble contact details in JavaScript to defeat
// scrapers usually have them sitting in a global once the scripts run;
// the result is fed back through the normal harvest patterns.
func recoverInlineText(html, pageURL string, logger zerolog.Logger) string {
	if !strings.Contains(html, "<script") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	vm := goja.New()

	// Just enough of a browser environment to let data-assignment
	// scripts run. DOM-touching scripts will fail and are ignored.
	vm.Set("window", vm.GlobalObject())
	vm.Set("self", vm.GlobalObject())
	vm.Set("document", map[string]interface{}{
		"location": map[string]interface{}{"href": pageURL},
	})
	vm.Set("location", map[string]interface{}{"href": pageURL})
	vm.Set("console", map[string]interface{}{
		"log":   func(call goja.FunctionCall) goja.Value { return nil },
		"error": func(call goja.FunctionCall) goja.Value { return nil },
	})

	executed := 0
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, external := sel.Attr("src"); external {
			return
		}
		src := sel.Text()
		if src == "" {
			return
		}
		if _, err := vm.RunString(src); err == nil {
			executed++
		}
	})
	if executed == 0 {
		return ""
	}

	var parts []string
	for _, key := range vm.GlobalObject().Keys() {
		if isStandardGlobal(key) {
			continue
		}
		val := vm.Get(key)
		if val == nil {
			continue
		}
		exported := val.Export()
		if exported == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%v", exported))
	}
	if len(parts) == 0 {
		return ""
	}
	logger.Debug().Int("scripts", executed).Int("globals", len(parts)).Str("url", pageURL).Msg("Recovered inline script globals")
	return strings.Join(parts, "\n")
}

func isStandardGlobal(key string) bool {
	standards := map[string]bool{
		"window": true, "self": true, "document": true, "location": true, "console": true,
		"Object": true, "Array": true, "String": true, "Number": true, "Boolean": true,
		"Date": true, "Math": true, "JSON": true, "RegExp": true, "Error": true,
		"Function": true, "parseInt": true, "parseFloat": true, "isNaN": true,
		"isFinite": true, "encodeURI": true, "decodeURI": true, "encodeURIComponent": true,
		"decodeURIComponent": true, "undefined": true, "NaN": true, "Infinity": true,
	}
	return standards[key]
}
