// Package snapshot captures full-page PNG screenshots of a running dashboard
// with a headless Chrome.
package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"laptop-dashboard/config"
	"laptop-dashboard/utils"
)

const (
	viewportWidth  = 1400
	viewportHeight = 900
	imageQuality   = 90
)

// Page is one dashboard URL to capture.
type Page struct {
	Name string
	// Path is relative to the dashboard base URL and may carry a query.
	Path string
}

// Result reports the outcome of one capture.
type Result struct {
	Page Page
	File string
	Err  error
}

// DefaultPages returns the two dashboard views. query, when non-empty, is
// appended to both (e.g. "brand=Dell&screen=14-16").
func DefaultPages(query string) []Page {
	pages := []Page{
		{Name: "explore", Path: "/explore"},
		{Name: "visualizations", Path: "/visualizations"},
	}
	if query = strings.TrimPrefix(query, "?"); query != "" {
		for i := range pages {
			pages[i].Path += "?" + query
		}
	}
	return pages
}

// Capturer drives the browser.
type Capturer struct {
	cfg    config.SnapshotConfig
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Capturer.
func New(cfg config.SnapshotConfig, maxRetries int, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   time.Second,
			Logger:      logger,
		},
	}
}

// Capture screenshots every page into cfg.OutputDir. It returns one Result
// per page in input order; the error is non-nil only when the browser could
// not be prepared.
func (c *Capturer) Capture(ctx context.Context, pages []Page) ([]Result, error) {
	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create output dir: %w", err)
	}

	chromeBin := c.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	c.logger.Info("[snapshot] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// start the browser once so tabs share it
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	results := make([]Result, len(pages))
	var mu sync.Mutex
	for i, p := range pages {
		i, p := i, p
		c.pool.Submit(func() {
			file, err := c.capturePage(browserCtx, p)
			mu.Lock()
			results[i] = Result{Page: p, File: file, Err: err}
			mu.Unlock()
			if err != nil {
				c.logger.Warn("[snapshot] %s failed: %v", p.Name, err)
				return
			}
			c.logger.Info("[snapshot] %s saved to %s", p.Name, file)
		})
	}
	c.pool.Wait()

	return results, nil
}

func (c *Capturer) capturePage(browserCtx context.Context, p Page) (string, error) {
	target, err := pageURL(c.cfg.BaseURL, p.Path)
	if err != nil {
		return "", err
	}

	var shot []byte
	err = c.retry.Do(browserCtx, "snapshot-"+p.Name, func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, time.Duration(c.cfg.TimeoutSec)*time.Second)
		defer cancelTimeout()

		var loaded bool
		return chromedp.Run(tabCtx,
			chromedp.EmulateViewport(viewportWidth, viewportHeight),
			chromedp.Navigate(target),
			chromedp.WaitReady("main", chromedp.ByQuery),
			// chart images are fetched after the document loads
			chromedp.Poll(`Array.from(document.images).every(function(i){ return i.complete; })`, &loaded),
			chromedp.FullScreenshot(&shot, imageQuality),
		)
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: capture %s: %w", target, err)
	}

	file := filepath.Join(c.cfg.OutputDir, fileName(p))
	if err := os.WriteFile(file, shot, 0o644); err != nil {
		return "", fmt.Errorf("snapshot: write %q: %w", file, err)
	}
	return file, nil
}

// pageURL resolves path against the dashboard base URL.
func pageURL(base, path string) (string, error) {
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		return "", fmt.Errorf("snapshot: invalid base url %q", base)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("snapshot: invalid page path %q: %w", path, err)
	}
	return b.ResolveReference(ref).String(), nil
}

func fileName(p Page) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, p.Name)
	if name == "" {
		name = "page"
	}
	return name + ".png"
}

// findChromeBinary locates a Chrome/Chromium binary, or returns "" to let
// chromedp use its own lookup.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
