package config

import (
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ExpandedData is the optional locations/business-types file used for
// run-to-run variety in exhaustive or random-industry mode.
type ExpandedData struct {
	Locations     []Location     `json:"locations"`
	BusinessTypes []BusinessType `json:"business_types"`
}

// Location is one crawlable city/region entry.
type Location struct {
	CityRegion string `json:"city_region"`
}

// BusinessType groups an example industry with its key SIC codes.
type BusinessType struct {
	ExampleIndustry string   `json:"example_industry"`
	KeySICCodes     []string `json:"key_sic_codes"`
}

// LoadExpandedData reads the expanded data file; a missing file returns
// nil without error since the file is optional.
func LoadExpandedData(path string) (*ExpandedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var data ExpandedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ApplyExpandedData performs the pre-run variety selection: in exhaustive
// or random-industry mode it samples up to three business types and
// replaces the target SIC set with the union of their codes; in random-
// location mode it picks a location. This is the only place the config is
// written after Load, and it runs before the core starts.
func (c *Config) ApplyExpandedData(data *ExpandedData, rng *rand.Rand, logger zerolog.Logger) {
	if data == nil {
		return
	}

	if c.ExhaustiveMode || c.RandomIndustry {
		if len(data.BusinessTypes) > 0 {
			picked := sampleBusinessTypes(data.BusinessTypes, 3, rng)
			var codes []string
			seen := make(map[string]struct{})
			var industries []string
			for _, bt := range picked {
				industries = append(industries, bt.ExampleIndustry)
				for _, code := range bt.KeySICCodes {
					if _, dup := seen[code]; dup {
						continue
					}
					seen[code] = struct{}{}
					codes = append(codes, code)
				}
			}
			if len(codes) > 0 {
				c.SICCodes = codes
				c.TargetIndustry = strings.Join(industries, ", ")
				logger.Info().
					Strs("sic_codes", codes).
					Str("industries", c.TargetIndustry).
					Msg("Cycled target SIC codes from expanded data")
			}
		} else if len(c.SICCodes) > 4 {
			// No business types on file: thin the default set instead.
			rng.Shuffle(len(c.SICCodes), func(i, j int) {
				c.SICCodes[i], c.SICCodes[j] = c.SICCodes[j], c.SICCodes[i]
			})
			c.SICCodes = c.SICCodes[:4]
			logger.Info().Strs("sic_codes", c.SICCodes).Msg("Cycled down to a default SIC subset")
		}
	}

	if (c.ExhaustiveMode || c.RandomLocation) && len(data.Locations) > 0 {
		loc := data.Locations[rng.Intn(len(data.Locations))]
		if loc.CityRegion != "" {
			c.TargetLocation = loc.CityRegion
			logger.Info().Str("location", loc.CityRegion).Msg("Selected random target location")
		}
	}
}

func sampleBusinessTypes(all []BusinessType, n int, rng *rand.Rand) []BusinessType {
	if n > len(all) {
		n = len(all)
	}
	idx := rng.Perm(len(all))[:n]
	picked := make([]BusinessType, 0, n)
	for _, i := range idx {
		picked = append(picked, all[i])
	}
	return picked
}
