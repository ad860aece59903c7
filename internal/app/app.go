// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/leadgen/internal/audit"
	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/creds"
	"github.com/law-makers/leadgen/internal/enrich"
	"github.com/law-makers/leadgen/internal/export"
	"github.com/law-makers/leadgen/internal/navigator"
	"github.com/law-makers/leadgen/internal/notify"
	"github.com/law-makers/leadgen/internal/outreach"
	"github.com/law-makers/leadgen/internal/pipeline"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/robots"
	"github.com/law-makers/leadgen/internal/selectors"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      zerolog.Logger
	URLLogger   zerolog.Logger
	Selectors   *selectors.Resolver
	RateLimiter ratelimit.Limiter
	HTTPClient  *http.Client
	Robots      *robots.Checker
	Fetcher     *enrich.Fetcher
	Enricher    *enrich.Enricher
	Outreach    *outreach.Generator
	Exporter    *export.Exporter
	Creds       *creds.Store

	browser   *navigator.Browser
	urlLogger io.Closer
	startTime time.Time
}

// New creates and initializes a new Application with all dependencies
// except the browser, which is launched lazily via EnsureBrowser so
// commands that never crawl do not start Chrome.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	urlLogger, urlLogCloser, err := audit.NewURLLogger(filepath.Join(cfg.ExportDir, "visited_urls.log"))
	if err != nil {
		return nil, fmt.Errorf("open url log: %w", err)
	}

	res := selectors.Load(cfg.SelectorsFile, logger)

	limiter := ratelimit.NewDomainLimiter(cfg.RequestDelay, cfg.GlobalRPS)
	logger.Debug().
		Dur("delay", cfg.RequestDelay).
		Float64("global_rps", cfg.GlobalRPS).
		Msg("Rate limiter initialized")

	httpClient := enrich.NewHTTPClient(cfg.HTTPTimeout)
	checker := robots.NewChecker(httpClient, cfg.UserAgent, cfg.RespectRobots, logger)
	// Sites advertising a crawl-delay get it honored over the configured
	// minimum.
	limiter.SetDelayHint(checker.CrawlDelay)
	fetcher := enrich.NewFetcher(httpClient, limiter, checker, cfg.UserAgent, logger)
	enricher := enrich.New(cfg, fetcher, res, logger, urlLogger)

	app := &Application{
		Config:      cfg,
		Logger:      logger,
		URLLogger:   urlLogger,
		Selectors:   res,
		RateLimiter: limiter,
		HTTPClient:  httpClient,
		Robots:      checker,
		Fetcher:     fetcher,
		Enricher:    enricher,
		Outreach:    outreach.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), logger),
		Exporter:    export.New(cfg.ExportDir, logger),
		Creds:       creds.NewStore(logger),
		urlLogger:   urlLogCloser,
		startTime:   time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

// EnsureBrowser lazily launches the shared Chrome instance.
func (a *Application) EnsureBrowser(ctx context.Context) (*navigator.Browser, error) {
	if a.browser != nil {
		return a.browser, nil
	}
	browser, err := navigator.Launch(ctx, a.Config, a.Logger)
	if err != nil {
		return nil, err
	}
	a.browser = browser
	return browser, nil
}

// Sources builds the registered lead sources. The registry crawler is
// always on; the agency directory joins when directory listings are
// enabled in the selectors file.
func (a *Application) Sources(ctx context.Context) ([]pipeline.Source, error) {
	browser, err := a.EnsureBrowser(ctx)
	if err != nil {
		return nil, err
	}
	sources := []pipeline.Source{
		navigator.New(a.Config, a.Selectors, a.RateLimiter, browser, a.Logger, a.URLLogger),
	}
	if a.Selectors.Has("sources", "clutch", "url") {
		sources = append(sources, navigator.NewDirectorySource(a.Config, a.Selectors, a.RateLimiter, browser, a.Logger, a.URLLogger))
	}
	return sources, nil
}

// Orchestrator wires the configured sources into the pipeline.
func (a *Application) Orchestrator(ctx context.Context) (*pipeline.Orchestrator, error) {
	sources, err := a.Sources(ctx)
	if err != nil {
		return nil, err
	}
	orch := pipeline.NewOrchestrator(a.Config, a.Enricher, a.Logger, sources...)
	if a.Config.JSONLog {
		orch.DisableProgress()
	}
	return orch, nil
}

// Notifiers builds the Telegram and GitHub sinks from stored
// credentials. Missing credentials disable a sink rather than erroring.
func (a *Application) Notifiers() (*notify.Telegram, *notify.GitHub, error) {
	telegramToken, err := a.Creds.Get(creds.TelegramToken)
	if err != nil {
		return nil, nil, err
	}
	githubToken, err := a.Creds.Get(creds.GitHubToken)
	if err != nil {
		return nil, nil, err
	}
	telegram := notify.NewTelegram(a.HTTPClient, telegramToken, a.Config.TelegramChatID, a.Logger)
	github := notify.NewGitHub(a.HTTPClient, githubToken, a.Config.GitHubRepo, a.Logger)
	return telegram, github, nil
}

// Close gracefully shuts down the application and all its resources.
// Errors during shutdown are logged but do not stop the remaining steps.
func (a *Application) Close() error {
	a.Logger.Info().Msg("Shutting down application")

	if a.browser != nil {
		a.browser.Close()
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	if a.urlLogger != nil {
		if err := a.urlLogger.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing url log")
		}
	}

	a.Logger.Info().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
