package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel        = "info"
	DefaultJSONLog         = false
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultPageTimeout     = 60 * time.Second
	DefaultRequestDelay    = 2 * time.Second
	DefaultGlobalRPS       = 4.0
	DefaultTargetCount     = 100
	DefaultTargetLocation  = "London"
	DefaultTargetIndustry  = "Digital Marketing Agencies"
	DefaultMaxWorkers      = 5
	DefaultMaxWorkersCap   = 20
	DefaultSelectorsFile   = "selectors.json"
	DefaultExpandedFile    = "expanded_locations_and_sics.json"
	DefaultExportDir       = "exports"
	DefaultRespectRobots   = true
	DefaultBrowserHeadless = true
)

// DefaultSICCodes is the built-in target classification set used when no
// codes are configured or cycled in.
func DefaultSICCodes() []string {
	return []string{
		"73110", // Advertising agencies
		"62012", // Business and domestic software development
		"62090", // Other information technology service activities
		"63110", // Data processing, hosting and related activities
		"63120", // Web portals
		"70229", // Management consultancy other than financial management
	}
}
