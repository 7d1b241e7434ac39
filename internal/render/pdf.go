package render

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/guttosm/quote-service/internal/metrics"
	"golang.org/x/sync/semaphore"
)

const (
	defaultPDFTimeout    = 30 * time.Second
	defaultMaxConcurrent = 4
)

// chromeCandidates are checked in order when no Chrome path is configured.
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// DetectChromePath returns configured if it exists, otherwise the first known
// Chrome or Chromium install. An empty result lets chromedp search PATH.
func DetectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PDFRenderer prints the HTML rendering of a quote to PDF with headless Chrome.
// Each render starts its own browser, so at most maxConcurrent run at once and
// the rest wait for a slot within their timeout.
type PDFRenderer struct {
	chromePath    string
	timeout       time.Duration
	maxConcurrent int64
	slots         *semaphore.Weighted
}

// NewPDFRenderer creates a PDF renderer. A zero timeout uses 30 seconds and a
// zero maxConcurrent allows 4 renders at once.
func NewPDFRenderer(chromePath string, timeout time.Duration, maxConcurrent int) *PDFRenderer {
	if timeout <= 0 {
		timeout = defaultPDFTimeout
	}
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &PDFRenderer{
		chromePath:    DetectChromePath(chromePath),
		timeout:       timeout,
		maxConcurrent: int64(maxConcurrent),
		slots:         semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Render produces a letter-size PDF of the quote.
func (r *PDFRenderer) Render(ctx context.Context, q Quote) ([]byte, error) {
	start := time.Now()
	pdf, err := r.render(ctx, q)
	metrics.RecordPDFRender(time.Since(start), err)
	return pdf, err
}

func (r *PDFRenderer) render(ctx context.Context, q Quote) ([]byte, error) {
	html, err := HTML(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for a pdf render slot: %w", err)
	}
	defer r.slots.Release(1)

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// US letter, half-inch margins
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdf, nil
}
