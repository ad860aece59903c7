package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values. The core reads it but
// never mutates it at runtime; the SIC-cycling pre-run step (see
// ApplyExpandedData) belongs to loading, not the core.
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Targeting
	TargetLocation string
	TargetIndustry string
	TargetCount    int
	SICCodes       []string

	// Crawl strategy
	ExhaustiveMode bool
	RespectRobots  bool
	RequestDelay   time.Duration
	GlobalRPS      float64
	MaxWorkers     int

	// HTTP / browser
	HTTPTimeout     time.Duration
	PageTimeout     time.Duration
	UserAgent       string
	BrowserHeadless bool
	ChromePath      string

	// Files
	SelectorsFile string
	ExpandedFile  string
	ExportDir     string

	// Pre-run variety selection (expanded data file)
	RandomLocation bool
	RandomIndustry bool

	// Notification sinks
	TelegramChatID string
	GitHubRepo     string
}

// Load builds a Config by combining defaults, a .env file, environment
// variables, and CLI flags. Caller should pass the root *cobra.Command so
// flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// Best effort; a missing .env file is the common case.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		TargetLocation:  DefaultTargetLocation,
		TargetIndustry:  DefaultTargetIndustry,
		TargetCount:     DefaultTargetCount,
		RespectRobots:   DefaultRespectRobots,
		RequestDelay:    DefaultRequestDelay,
		GlobalRPS:       DefaultGlobalRPS,
		MaxWorkers:      DefaultMaxWorkers,
		HTTPTimeout:     DefaultHTTPTimeout,
		PageTimeout:     DefaultPageTimeout,
		UserAgent:       DefaultUserAgent,
		BrowserHeadless: DefaultBrowserHeadless,
		SelectorsFile:   DefaultSelectorsFile,
		ExpandedFile:    DefaultExpandedFile,
		ExportDir:       DefaultExportDir,
	}

	// Override from environment variables
	if v := os.Getenv("LEADGEN_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("LEADGEN_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("LEADGEN_TARGET_LOCATION"); v != "" {
		cfg.TargetLocation = v
	}
	if v := os.Getenv("LEADGEN_TARGET_INDUSTRY"); v != "" {
		cfg.TargetIndustry = v
	}
	if v := os.Getenv("LEADGEN_SIC_CODES"); v != "" {
		cfg.SICCodes = splitCodes(v)
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.TelegramChatID = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		cfg.GitHubRepo = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		flags := cmd.Flags()
		if f := flags.Lookup("location"); f != nil && f.Changed {
			cfg.TargetLocation = f.Value.String()
		}
		if f := flags.Lookup("industry"); f != nil && f.Changed {
			cfg.TargetIndustry = f.Value.String()
		}
		if f := flags.Lookup("count"); f != nil && f.Changed {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.TargetCount = n
			}
		}
		if f := flags.Lookup("sic"); f != nil && f.Changed {
			cfg.SICCodes = splitCodes(f.Value.String())
		}
		if f := flags.Lookup("exhaustive"); f != nil && f.Value.String() == "true" {
			cfg.ExhaustiveMode = true
		}
		if f := flags.Lookup("ignore-robots"); f != nil && f.Value.String() == "true" {
			cfg.RespectRobots = false
		}
		if f := flags.Lookup("delay"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.RequestDelay = d
			}
		}
		if f := flags.Lookup("workers"); f != nil && f.Changed {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.MaxWorkers = n
			}
		}
		if f := flags.Lookup("selectors"); f != nil && f.Changed {
			cfg.SelectorsFile = f.Value.String()
		}
		if f := flags.Lookup("export-dir"); f != nil && f.Changed {
			cfg.ExportDir = f.Value.String()
		}
		if f := flags.Lookup("user-agent"); f != nil && f.Changed {
			cfg.UserAgent = f.Value.String()
		}
		if f := flags.Lookup("timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.HTTPTimeout = d
			}
		}
		if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := flags.Lookup("random-location"); f != nil && f.Value.String() == "true" {
			cfg.RandomLocation = true
		}
		if f := flags.Lookup("random-industry"); f != nil && f.Value.String() == "true" {
			cfg.RandomIndustry = true
		}
		if f := flags.Lookup("headful"); f != nil && f.Value.String() == "true" {
			cfg.BrowserHeadless = false
		}
	}

	if len(cfg.SICCodes) == 0 {
		cfg.SICCodes = DefaultSICCodes()
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
