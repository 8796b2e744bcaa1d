// Package renderer turns invoice HTML into PDF bytes with a headless
// Chromium driven over the DevTools protocol.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/liamdatt/invoicegen/internal/config"
	"github.com/liamdatt/invoicegen/internal/domain"
)

// A4 in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

var browserCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"headless-shell",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// Chromium renders HTML documents to PDF. Each render starts a fresh
// browser process so concurrent renders share no state.
type Chromium struct {
	execPath string
	timeout  time.Duration
	width    int64
	height   int64
	opts     []chromedp.ExecAllocatorOption
	log      *slog.Logger
}

// NewChromium locates a browser binary and returns a renderer.
// Returns an error wrapping domain.ErrRenderingUnavailable when no binary
// can be found.
func NewChromium(cfg config.RendererConfig, log *slog.Logger) (*Chromium, error) {
	path, err := resolveBrowser(cfg.ChromePath)
	if err != nil {
		return nil, err
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.ExecPath(path),
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.WindowSize(int(cfg.ViewportWidth), int(cfg.ViewportHeight)),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	return &Chromium{
		execPath: path,
		timeout:  cfg.Timeout,
		width:    cfg.ViewportWidth,
		height:   cfg.ViewportHeight,
		opts:     opts,
		log:      log.With("adapter", "chromium"),
	}, nil
}

// RenderHTMLToPDF loads html into a blank page and prints it as an A4 PDF
// with backgrounds and no margins. Failures wrap domain.ErrRenderingFailed,
// or domain.ErrRenderingUnavailable when the browser cannot be started.
func (c *Chromium) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(c.width, c.height),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("print to pdf: %w", err)
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, c.classify(err)
	}

	c.log.DebugContext(ctx, "rendered pdf",
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

func (c *Chromium) classify(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("renderer: start %s: %w: %v", c.execPath, domain.ErrRenderingUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("renderer: timed out after %s: %w", c.timeout, domain.ErrRenderingFailed)
	}
	return fmt.Errorf("renderer: %w: %v", domain.ErrRenderingFailed, err)
}

func resolveBrowser(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			if p, lookErr := exec.LookPath(configured); lookErr == nil {
				return p, nil
			}
			return "", fmt.Errorf("renderer: RENDERER_CHROME_PATH %q: %w", configured, domain.ErrRenderingUnavailable)
		}
		return configured, nil
	}

	for _, name := range browserCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("renderer: no Chromium binary found, set RENDERER_CHROME_PATH: %w", domain.ErrRenderingUnavailable)
}
