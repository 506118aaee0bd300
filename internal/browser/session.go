// internal/browser/session.go
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/driftcursor/driftcursor/internal/config"
)

// Session owns a Chrome process and a single tab context.
type Session struct {
	Tab context.Context

	logger    *zap.Logger
	cfg       config.BrowserConfig
	cancelTab context.CancelFunc
	cancelAll context.CancelFunc
}

// NewSession launches a browser per the given configuration and waits for
// it to come up.
func NewSession(parent context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("browser")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, cancelAll := chromedp.NewExecAllocator(parent, opts...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	// Starting with an empty task list forces the browser to launch now so
	// failures surface here, not on the first interaction.
	if err := chromedp.Run(tab); err != nil {
		cancelTab()
		cancelAll()
		return nil, fmt.Errorf("browser: launch failed: %w", err)
	}

	logger.Debug("browser session started",
		zap.Bool("headless", cfg.Headless),
		zap.Int("width", cfg.WindowWidth),
		zap.Int("height", cfg.WindowHeight))

	return &Session{
		Tab:       tab,
		logger:    logger,
		cfg:       cfg,
		cancelTab: cancelTab,
		cancelAll: cancelAll,
	}, nil
}

// Navigate loads a URL and waits for the document body, bounded by the
// configured navigation timeout.
func (s *Session) Navigate(url string) error {
	ctx := s.Tab
	if s.cfg.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.NavigationTimeout)
		defer cancel()
	}
	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("browser: navigating to %s: %w", url, err)
	}
	s.logger.Debug("navigation complete", zap.String("url", url))
	return nil
}

// Driver returns a cursor driver bound to this session's tab.
func (s *Session) Driver() *Driver {
	return NewDriver(s.Tab, s.logger, s.cfg.DispatchRate)
}

// Close tears down the tab and the browser process.
func (s *Session) Close() {
	s.cancelTab()
	s.cancelAll()
}
