package reportpdf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-report/report"
)

// Screenshot defaults.
const (
	DefaultScreenshotEndpoint = "https://production-sfo.browserless.io/screenshot"
	DefaultScreenshotWait     = time.Second
)

// ScreenshotStrategy captures a page or inline markup as image bytes.
type ScreenshotStrategy interface {
	Name() string
	Capture(ctx context.Context, req report.ScreenshotRequest) ([]byte, error)
}

// SessionScreenshotStrategy drives the remote browser over the DevTools
// protocol, the same way SessionStrategy prints documents.
type SessionScreenshotStrategy struct {
	Endpoint    string
	Token       string
	Timeout     time.Duration
	SettleDelay time.Duration
}

func (s SessionScreenshotStrategy) Name() string {
	return "session"
}

func (s SessionScreenshotStrategy) Capture(ctx context.Context, req report.ScreenshotRequest) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint, err := tokenURL(s.Endpoint, DefaultSessionEndpoint, s.Token, "session strategy")
	if err != nil {
		return nil, err
	}
	opts := req.Options.WithDefaults()

	execCtx, cancelTimeout := context.WithTimeout(ctx, durationOr(s.Timeout, DefaultSessionTimeout))
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(execCtx, endpoint, chromedp.NoModifyURL)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var image []byte
	err = chromedp.Run(tabCtx,
		chromedp.EmulateViewport(opts.Width, opts.Height, viewportOptions(opts)...),
		loadScreenshotTarget(req, opts.Timeout()),
		chromedp.Sleep(durationOr(s.SettleDelay, DefaultScreenshotWait)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			image, err = buildCaptureScreenshotParams(opts).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("remote session capture failed: %w", err)
	}
	return image, nil
}

func viewportOptions(opts report.ScreenshotOptions) []chromedp.EmulateViewportOption {
	out := []chromedp.EmulateViewportOption{chromedp.EmulateScale(opts.DeviceScaleFactor)}
	if opts.Mobile {
		out = append(out, chromedp.EmulateMobile, chromedp.EmulateTouch)
	}
	return out
}

func loadScreenshotTarget(req report.ScreenshotRequest, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		loadCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if req.URL != "" {
			return chromedp.Navigate(req.URL).Do(loadCtx)
		}
		if err := chromedp.Navigate("about:blank").Do(loadCtx); err != nil {
			return err
		}
		tree, err := page.GetFrameTree().Do(loadCtx)
		if err != nil {
			return err
		}
		if err := page.SetDocumentContent(tree.Frame.ID, req.Document()).Do(loadCtx); err != nil {
			return err
		}
		return chromedp.WaitReady("body", chromedp.ByQuery).Do(loadCtx)
	})
}

// buildCaptureScreenshotParams clips to the viewport unless a full page is
// requested. Quality only applies to jpeg.
func buildCaptureScreenshotParams(opts report.ScreenshotOptions) *page.CaptureScreenshotParams {
	params := page.CaptureScreenshot().
		WithFormat(page.CaptureScreenshotFormat(opts.Format)).
		WithFromSurface(true)
	if opts.Format == report.ImageJPEG {
		params = params.WithQuality(int64(opts.Quality))
	}
	if opts.FullPage {
		return params.WithCaptureBeyondViewport(true)
	}
	return params.WithClip(&page.Viewport{
		Width:  float64(opts.Width),
		Height: float64(opts.Height),
		Scale:  1,
	})
}

// HTTPScreenshotStrategy posts the capture request to a stateless endpoint,
// mirroring HTTPStrategy.
type HTTPScreenshotStrategy struct {
	Endpoint         string
	Token            string
	Client           *http.Client
	Timeout          time.Duration
	SettleDelay      time.Duration
	MaxResponseBytes int64
}

type httpScreenshotPayload struct {
	URL      string                `json:"url,omitempty"`
	HTML     string                `json:"html,omitempty"`
	Options  httpScreenshotOptions `json:"options"`
	Viewport httpViewport          `json:"viewport"`
	WaitFor  int64                 `json:"waitFor"`
}

type httpScreenshotOptions struct {
	FullPage bool      `json:"fullPage"`
	Type     string    `json:"type"`
	Quality  int       `json:"quality,omitempty"`
	Clip     *httpClip `json:"clip,omitempty"`
}

type httpClip struct {
	X      int64 `json:"x"`
	Y      int64 `json:"y"`
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

type httpViewport struct {
	Width             int64   `json:"width"`
	Height            int64   `json:"height"`
	DeviceScaleFactor float64 `json:"deviceScaleFactor"`
	IsMobile          bool    `json:"isMobile"`
}

func (s HTTPScreenshotStrategy) Name() string {
	return "http"
}

func (s HTTPScreenshotStrategy) Capture(ctx context.Context, req report.ScreenshotRequest) ([]byte, error) {
	endpoint, err := tokenURL(s.Endpoint, DefaultScreenshotEndpoint, s.Token, "screenshot strategy")
	if err != nil {
		return nil, err
	}
	payload := newHTTPScreenshotPayload(req, durationOr(s.SettleDelay, DefaultScreenshotWait))
	timeout := max(durationOr(s.Timeout, DefaultHTTPTimeout), req.Options.Timeout())
	return postForBytes(ctx, s.Client, endpoint, payload, timeout, s.MaxResponseBytes, "screenshot")
}

func newHTTPScreenshotPayload(req report.ScreenshotRequest, wait time.Duration) httpScreenshotPayload {
	opts := req.Options.WithDefaults()
	out := httpScreenshotPayload{
		Options: httpScreenshotOptions{
			FullPage: opts.FullPage,
			Type:     string(opts.Format),
		},
		Viewport: httpViewport{
			Width:             opts.Width,
			Height:            opts.Height,
			DeviceScaleFactor: opts.DeviceScaleFactor,
			IsMobile:          opts.Mobile,
		},
		WaitFor: wait.Milliseconds(),
	}
	if opts.Format == report.ImageJPEG {
		out.Options.Quality = opts.Quality
	}
	if !opts.FullPage {
		out.Options.Clip = &httpClip{Width: opts.Width, Height: opts.Height}
	}
	if req.URL != "" {
		out.URL = req.URL
	} else {
		out.HTML = req.Document()
	}
	return out
}

// Capturer tries screenshot strategies in order and returns the first image
// whose bytes match the requested format.
type Capturer struct {
	Strategies []ScreenshotStrategy
	Logger     report.Logger
}

var _ report.ScreenshotRenderer = (*Capturer)(nil)

// NewCapturer builds the capture strategies. Capturing needs a remote
// browser, so without a token the capturer has no strategies.
func NewCapturer(cfg Config) *Capturer {
	capturer := &Capturer{Logger: cfg.Logger}
	if cfg.Token == "" {
		return capturer
	}
	capturer.Strategies = []ScreenshotStrategy{
		HTTPScreenshotStrategy{
			Endpoint: cfg.ScreenshotEndpoint,
			Token:    cfg.Token,
			Client:   cfg.HTTPClient,
			Timeout:  cfg.HTTPTimeout,
		},
		SessionScreenshotStrategy{
			Endpoint:    cfg.SessionEndpoint,
			Token:       cfg.Token,
			Timeout:     cfg.SessionTimeout,
			SettleDelay: cfg.SettleDelay,
		},
	}
	return capturer
}

func (c *Capturer) Capture(ctx context.Context, req report.ScreenshotRequest) (report.ScreenshotOutput, error) {
	if c == nil || len(c.Strategies) == 0 {
		return report.ScreenshotOutput{}, report.NewError(report.KindNotImpl, "screenshot capture requires a rendering token", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.Logger
	if logger == nil {
		logger = report.NopLogger{}
	}
	format := req.Options.WithDefaults().Format

	var attempts []Attempt
	for _, strategy := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return report.ScreenshotOutput{}, contextError(err)
		}

		start := time.Now()
		image, err := strategy.Capture(ctx, req)
		if err == nil {
			err = verifyImage(image, format)
		}
		attempt := Attempt{Strategy: strategy.Name(), Err: err, Duration: time.Since(start)}
		attempts = append(attempts, attempt)

		if err == nil {
			logger.Infof("screenshot captured with %s strategy in %s", attempt.Strategy, attempt.Duration)
			return report.ScreenshotOutput{Image: image, Strategy: attempt.Strategy}, nil
		}

		logger.Errorf("screenshot strategy %s failed after %s: %v", attempt.Strategy, attempt.Duration, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report.ScreenshotOutput{}, contextError(ctxErr)
		}
	}

	exhausted := &ExhaustedError{Attempts: attempts}
	return report.ScreenshotOutput{}, report.NewError(report.KindRenderExhausted, "no screenshot strategy succeeded", exhausted)
}

// verifyImage sniffs the leading bytes and rejects output of another type.
func verifyImage(image []byte, format report.ImageFormat) error {
	if len(image) == 0 {
		return errors.New("strategy returned an empty image")
	}
	if got := http.DetectContentType(image); got != format.ContentType() {
		return fmt.Errorf("expected %s output, got %s", format.ContentType(), got)
	}
	return nil
}
