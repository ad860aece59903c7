package navigator

import (
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
)

// Officer detail visits hand their result straight to Officer.Detail,
// which takes a *models.OfficerDetail.
var _ func(*Navigator, string) (*models.OfficerDetail, error) = (*Navigator).scrapeOfficerDetail

func TestBuildTargetQueries(t *testing.T) {
	tests := []struct {
		name     string
		industry string
		location string
		want     []string
	}{
		{
			"industry and location",
			"digital marketing", "London",
			[]string{
				"digital marketing London",
				"marketing agency London",
				"advertising agency London",
				"creative agency London",
			},
		},
		{
			"location only",
			"", "Leeds",
			[]string{
				"digital marketing Leeds",
				"marketing agency Leeds",
				"advertising agency Leeds",
				"creative agency Leeds",
			},
		},
		{
			"no location falls back to generics",
			"", "",
			[]string{"digital marketing agency", "advertising agency"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTargetQueries(tt.industry, tt.location))
		})
	}
}

func TestBuildTargetQueriesDeduplicates(t *testing.T) {
	// "digital marketing London" appears both as the industry+location
	// seed and as a generated seed; it must appear once, first.
	got := BuildTargetQueries("digital marketing", "London")
	seen := map[string]int{}
	for _, q := range got {
		seen[q]++
	}
	for q, count := range seen {
		assert.Equal(t, 1, count, "query %q duplicated", q)
	}
	assert.Equal(t, "digital marketing London", got[0])
}

func TestVisitedSet(t *testing.T) {
	v := NewVisitedSet()
	assert.False(t, v.Seen("https://a.example/1"))
	assert.True(t, v.Seen("https://a.example/1"))
	assert.False(t, v.Seen("https://a.example/2"))
	assert.Equal(t, 2, v.Len())
}

func TestVisitedSetConcurrent(t *testing.T) {
	v := NewVisitedSet()
	const workers = 8

	var wg sync.WaitGroup
	firsts := make([]int, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if !v.Seen("shared-url") {
				firsts[w] = 1
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, f := range firsts {
		total += f
	}
	assert.Equal(t, 1, total, "exactly one goroutine may claim the first visit")
}

func testNavigator(t *testing.T) *Navigator {
	t.Helper()
	cfg := &config.Config{TargetCount: 10}
	res := selectors.NewResolver(selectors.Defaults())
	return New(cfg, res, nil, nil, zerolog.Nop(), zerolog.Nop())
}

func TestDetailTargetsFiltersInactiveRows(t *testing.T) {
	n := testNavigator(t)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
	<ol class="results-list">
	<li class="type-company">
		<a class="govuk-link" href="/company/01111111">Active Ltd</a>
		<p class="meta"><strong>Active</strong></p>
	</li>
	<li class="type-company">
		<a class="govuk-link" href="/company/02222222">Dead Ltd</a>
		<p class="meta"><strong>Dissolved</strong></p>
	</li>
	</ol>`))
	require.NoError(t, err)

	targets := n.detailTargets(doc, "https://registry.example/search")
	assert.Equal(t, []string{"https://registry.example/company/01111111"}, targets)
}

func TestDetailTargetsFallsBackToBareLinks(t *testing.T) {
	n := testNavigator(t)

	// No structured rows: any company link qualifies, status checked on
	// the profile page instead.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
	<a class="govuk-link" href="/company/03333333">Somewhere Ltd</a>`))
	require.NoError(t, err)

	targets := n.detailTargets(doc, "https://registry.example/search")
	assert.Equal(t, []string{"https://registry.example/company/03333333"}, targets)
}
