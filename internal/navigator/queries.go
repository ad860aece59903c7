package navigator

import "strings"

// BuildTargetQueries composes the ordered registry search queries for
// targeted mode: the configured industry+location pair first, then
// location-qualified agency queries, then generic fallbacks when no
// location is set. De-duplicated preserving order.
func BuildTargetQueries(industry, location string) []string {
	industry = strings.TrimSpace(industry)
	location = strings.TrimSpace(location)

	var seeds []string
	if industry != "" && location != "" {
		seeds = append(seeds, industry+" "+location)
	}
	if location != "" {
		seeds = append(seeds,
			"digital marketing "+location,
			"marketing agency "+location,
			"advertising agency "+location,
			"creative agency "+location,
		)
	} else {
		seeds = append(seeds,
			"digital marketing agency",
			"advertising agency",
		)
	}

	seen := make(map[string]struct{}, len(seeds))
	queries := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		queries = append(queries, s)
	}
	return queries
}
