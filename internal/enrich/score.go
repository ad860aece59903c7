package enrich

import (
	"math"
	"strings"
)

const (
	industryWeight = 0.7
	geoWeight      = 0.3

	// seniorOfficerBoost rewards leads where a senior officer was found,
	// since those records carry a reachable decision maker.
	seniorOfficerBoost = 0.20
)

// painPointsBySIC maps known industry codes to the talking points used in
// outreach. Codes without an entry simply get none.
var painPointsBySIC = map[string][]string{
	// Advertising agencies
	"73110": {
		"Lead generation efficiency",
		"Attribution/ROI visibility",
		"Scaling paid media profitably",
	},
	// Business and domestic software development
	"62012": {
		"Technical debt management",
		"Scalability issues",
		"Talent acquisition challenges",
	},
}

// sicMatchesTarget reports whether any extracted code appears in the
// target set. An empty target set matches everything.
func sicMatchesTarget(codes, target []string) bool {
	if len(target) == 0 {
		return true
	}
	want := make(map[string]struct{}, len(target))
	for _, t := range target {
		want[t] = struct{}{}
	}
	for _, c := range codes {
		if _, ok := want[c]; ok {
			return true
		}
	}
	return false
}

// addressMatches reports whether the target location appears in the
// address, case-insensitively. An empty target matches everything.
func addressMatches(address, target string) bool {
	loc := strings.ToLower(strings.TrimSpace(target))
	if loc == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(address)), loc)
}

// icpScore computes the ideal-customer-profile match as a weighted sum of
// two binary components: industry (SIC overlap with the target set) and
// geography (target location substring of the address). Rounded to two
// decimal places.
func icpScore(codes []string, address string, targetCodes []string, targetLocation string) float64 {
	industry := 0.0
	if sicMatchesTarget(codes, targetCodes) {
		industry = 1.0
	}
	geo := 0.0
	if addressMatches(address, targetLocation) {
		geo = 1.0
	}
	return math.Round((industryWeight*industry+geoWeight*geo)*100) / 100
}

// painPointOrder fixes which industry wins when a lead carries several
// known codes.
var painPointOrder = []string{"73110", "62012"}

// painPoints returns the outreach talking points for the lead's SIC list.
func painPoints(codes []string) []string {
	have := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		have[c] = struct{}{}
	}
	for _, c := range painPointOrder {
		if _, ok := have[c]; ok {
			return painPointsBySIC[c]
		}
	}
	return nil
}
