package fetcher

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// RodFetcher implements the Fetcher interface using rod (headless browser).
// Use it for sources that render their listings with JavaScript; the colly
// fetcher is cheaper for static pages.
type RodFetcher struct {
	browser *rod.Browser
}

// NewRodFetcher launches a headless browser and connects to it
func NewRodFetcher() (*RodFetcher, error) {
	// Browser profile directory; mount it as a volume to keep the
	// profile on disk instead of in memory.
	userDataDir := os.Getenv("SCRAPER_BROWSER_DIR")
	if userDataDir == "" {
		userDataDir = "/tmp/news-scraper-browser"
	}
	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		log.Printf("Warning: Failed to create browser data directory %s: %v\n", userDataDir, err)
		userDataDir = ""
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(false). // Disable leakless to avoid antivirus issues
		UserDataDir(userDataDir).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("disable-background-networking").
		Set("mute-audio")

	// Prefer a system Chrome/Chromium over downloading one.
	chromePaths := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{
		browser: browser,
	}, nil
}

// Close closes the browser
func (rf *RodFetcher) Close() error {
	if rf.browser != nil {
		return rf.browser.Close()
	}
	return nil
}

// Fetch implements the Fetcher interface
func (rf *RodFetcher) Fetch(url string) (string, error) {
	page := rf.browser.MustPage()
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	page.WaitLoad()
	time.Sleep(2 * time.Second) // Give JavaScript time to render
	page.Timeout(10 * time.Second).MustWaitStable()

	html, err := page.HTML()
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	return html, nil
}
