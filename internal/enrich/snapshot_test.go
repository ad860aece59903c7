package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTMLStripsChromeAndAttributes(t *testing.T) {
	in := `<html><body>
<nav>Menu Home About</nav>
<script>alert("x")</script>
<p class="hero" data-track="1">We build brands.</p>
<a href="/work" onclick="track()" class="btn">Our work</a>
<footer>© Example Ltd</footer>
</body></html>`

	out, err := cleanHTML(in)
	require.NoError(t, err)
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "Menu Home")
	assert.NotContains(t, out, "Example Ltd")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "data-track")
	assert.Contains(t, out, `href="/work"`)
	assert.Contains(t, out, "We build brands.")
}

func TestSummarizeHomepage(t *testing.T) {
	in := `<html><body>
<script>var tracking = true;</script>
<h1>Acme Digital</h1>
<p>Full-service marketing for ambitious brands.</p>

<p>Based in Manchester.</p>
</body></html>`

	got := summarizeHomepage(in)
	assert.Contains(t, got, "Acme Digital")
	assert.Contains(t, got, "Full-service marketing for ambitious brands. Based in Manchester.")
	assert.NotContains(t, got, "tracking")
	assert.NotContains(t, got, "\n")
}

func TestSummarizeHomepageTruncates(t *testing.T) {
	long := "<p>" + strings.Repeat("marketing services ", 60) + "</p>"
	got := summarizeHomepage(long)
	assert.LessOrEqual(t, len([]rune(got)), summaryLimit+1)
	assert.True(t, strings.HasSuffix(got, "…"))
}
