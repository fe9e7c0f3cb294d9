package reportpdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-report/report"
)

// Session strategy defaults.
const (
	DefaultSessionEndpoint = "wss://production-sfo.browserless.io"
	DefaultSessionTimeout  = 60 * time.Second
	DefaultDOMTimeout      = 15 * time.Second
	DefaultSettleDelay     = time.Second
	DefaultViewportWidth   = 1920
	DefaultViewportHeight  = 1080
)

const defaultPDFScale = 1.0

var pageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	"A3":     {width: 11.69, height: 16.54},
	"A4":     {width: 8.27, height: 11.69},
	"LETTER": {width: 8.5, height: 11},
}

// SessionStrategy drives a remote browser over the DevTools protocol: it opens
// a tab, loads the document, waits for the body, lets late layout settle and
// prints to PDF.
type SessionStrategy struct {
	Endpoint       string
	Token          string
	Timeout        time.Duration
	DOMTimeout     time.Duration
	SettleDelay    time.Duration
	ViewportWidth  int64
	ViewportHeight int64
}

func (s SessionStrategy) Name() string {
	return "session"
}

// Render connects a fresh remote allocator per job. The allocator and tab
// contexts are released on every exit path.
func (s SessionStrategy) Render(ctx context.Context, job report.DocumentJob) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint, err := s.websocketURL()
	if err != nil {
		return nil, err
	}
	params, err := buildPrintToPDFParams(job.Options)
	if err != nil {
		return nil, err
	}

	execCtx, cancelTimeout := context.WithTimeout(ctx, durationOr(s.Timeout, DefaultSessionTimeout))
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(execCtx, endpoint, chromedp.NoModifyURL)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64Or(s.ViewportWidth, DefaultViewportWidth), int64Or(s.ViewportHeight, DefaultViewportHeight)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, job.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, durationOr(s.DOMTimeout, DefaultDOMTimeout))
			defer cancel()
			return chromedp.WaitReady("body", chromedp.ByQuery).Do(waitCtx)
		}),
		chromedp.Sleep(durationOr(s.SettleDelay, DefaultSettleDelay)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("remote session render failed: %w", err)
	}
	return pdf, nil
}

func (s SessionStrategy) websocketURL() (string, error) {
	return tokenURL(s.Endpoint, DefaultSessionEndpoint, s.Token, "session strategy")
}

func buildPrintToPDFParams(opts report.PageOptions) (*page.PrintToPDFParams, error) {
	opts = opts.WithDefaults()

	size, ok := pageSizesInches[strings.ToUpper(opts.PageSize)]
	if !ok {
		return nil, report.NewError(report.KindValidation, fmt.Sprintf("unsupported pdf page size: %s", opts.PageSize), nil)
	}

	params := page.PrintToPDF().
		WithScale(defaultPDFScale).
		WithLandscape(opts.IsLandscape()).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true).
		WithDisplayHeaderFooter(false).
		WithPaperWidth(size.width).
		WithPaperHeight(size.height)

	margins := []struct {
		value string
		apply func(float64) *page.PrintToPDFParams
	}{
		{opts.Margins.Top, params.WithMarginTop},
		{opts.Margins.Right, params.WithMarginRight},
		{opts.Margins.Bottom, params.WithMarginBottom},
		{opts.Margins.Left, params.WithMarginLeft},
	}
	for _, m := range margins {
		inches, err := report.ParseLengthInches(m.value)
		if err != nil {
			return nil, err
		}
		params = m.apply(inches)
	}
	return params, nil
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}

func int64Or(value, fallback int64) int64 {
	if value > 0 {
		return value
	}
	return fallback
}
