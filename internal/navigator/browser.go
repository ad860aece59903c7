package navigator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/internal/config"
)

// Browser owns one Chrome process shared by all navigation in a run.
// Tabs are created per detail visit and closed when the visit ends.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// Launch starts Chrome with the crawl's settings. The returned Browser
// must be closed by the caller.
func Launch(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Browser, error) {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", cfg.BrowserHeadless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-ipc-flooding-protection", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("force-color-profile", "srgb"),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("lang", "en-GB"),
		chromedp.UserAgent(cfg.UserAgent),
	}

	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = FindChrome(logger)
	}
	if chromePath != "" {
		opts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, opts...)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser process now so launch failures surface here
	// instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	logger.Debug().Str("chrome", chromePath).Bool("headless", cfg.BrowserHeadless).Msg("Browser launched")
	return &Browser{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      browserCancel,
	}, nil
}

// NewTab opens a fresh tab in the shared browser. Cancelling the returned
// func closes the tab.
func (b *Browser) NewTab() (context.Context, context.CancelFunc) {
	return chromedp.NewContext(b.ctx)
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

// FindChrome locates a Chrome/Chromium executable across platforms:
// CHROME_PATH first, then standard install locations, then PATH. Returns
// "" when nothing is found, letting chromedp try its own default.
func FindChrome(logger zerolog.Logger) string {
	if path := os.Getenv("CHROME_PATH"); path != "" {
		if isExecutable(path) {
			return path
		}
		logger.Warn().Str("path", path).Msg("CHROME_PATH set but not executable")
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		}
		if home := os.Getenv("HOME"); home != "" {
			candidates = append(candidates,
				filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"),
				filepath.Join(home, "Applications/Chromium.app/Contents/MacOS/Chromium"),
			)
		}
	case "windows":
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base != "" {
				candidates = append(candidates,
					filepath.Join(base, "Google\\Chrome\\Application\\chrome.exe"),
					filepath.Join(base, "Chromium\\Application\\chrome.exe"),
					filepath.Join(base, "Microsoft\\Edge\\Application\\msedge.exe"),
				)
			}
		}
	case "linux":
		candidates = []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
			"/usr/bin/microsoft-edge",
			"/usr/bin/brave-browser",
		}
		if home := os.Getenv("HOME"); home != "" {
			candidates = append(candidates,
				filepath.Join(home, ".local/share/flatpak/exports/bin/com.google.Chrome"),
				filepath.Join(home, ".local/share/flatpak/exports/bin/org.chromium.Chromium"),
			)
		}
	}

	for _, path := range candidates {
		if isExecutable(path) {
			logger.Debug().Str("path", path).Msg("Chrome found at standard location")
			return path
		}
	}

	for _, name := range []string{
		"google-chrome-stable", "google-chrome", "chromium", "chromium-browser",
		"chrome", "msedge", "brave-browser",
	} {
		if path, err := exec.LookPath(name); err == nil {
			logger.Debug().Str("path", path).Msg("Chrome found in PATH")
			return path
		}
	}

	logger.Warn().Str("os", runtime.GOOS).Msg("Chrome not found, using chromedp default")
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return !info.IsDir()
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}
