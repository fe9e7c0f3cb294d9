package reportpdf

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chromedp/cdproto/page"

	"github.com/goliatone/go-report/report"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n0000")

type stubCapture struct {
	name  string
	image []byte
	err   error
	calls int
}

func (s *stubCapture) Name() string { return s.name }

func (s *stubCapture) Capture(context.Context, report.ScreenshotRequest) ([]byte, error) {
	s.calls++
	return s.image, s.err
}

func TestHTTPScreenshotStrategy_PostsURL(t *testing.T) {
	var (
		gotToken string
		gotBody  map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0 jpeg"))
	}))
	defer server.Close()

	strategy := HTTPScreenshotStrategy{Endpoint: server.URL + "/screenshot", Token: "t0k", Client: server.Client()}
	image, err := strategy.Capture(context.Background(), report.ScreenshotRequest{
		URL:     "https://example.com",
		Options: report.ScreenshotOptions{Width: 800, Height: 600, Format: report.ImageJPEG, Quality: 90, DeviceScaleFactor: 2, Mobile: true},
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(image) == 0 || gotToken != "t0k" {
		t.Fatalf("unexpected response %q token %q", image, gotToken)
	}
	if gotBody["url"] != "https://example.com" || gotBody["html"] != nil || gotBody["waitFor"] != 1000.0 {
		t.Fatalf("unexpected payload %v", gotBody)
	}
	options := gotBody["options"].(map[string]any)
	if options["type"] != "jpeg" || options["quality"] != 90.0 || options["fullPage"] != false {
		t.Fatalf("unexpected options %v", options)
	}
	clip := options["clip"].(map[string]any)
	if clip["width"] != 800.0 || clip["height"] != 600.0 || clip["x"] != 0.0 {
		t.Fatalf("unexpected clip %v", clip)
	}
	viewport := gotBody["viewport"].(map[string]any)
	if viewport["deviceScaleFactor"] != 2.0 || viewport["isMobile"] != true || viewport["width"] != 800.0 {
		t.Fatalf("unexpected viewport %v", viewport)
	}
}

func TestNewHTTPScreenshotPayload_HTMLFullPage(t *testing.T) {
	payload := newHTTPScreenshotPayload(report.ScreenshotRequest{
		HTML:    "<h1>x</h1>",
		CSS:     "h1{}",
		Options: report.ScreenshotOptions{FullPage: true},
	}, DefaultScreenshotWait)

	if payload.HTML != "<style>h1{}</style><h1>x</h1>" || payload.URL != "" {
		t.Fatalf("unexpected target %+v", payload)
	}
	if payload.Options.Clip != nil || payload.Options.Quality != 0 || payload.Options.Type != "png" {
		t.Fatalf("unexpected options %+v", payload.Options)
	}
	if payload.Viewport.Width != report.DefaultScreenshotWidth || payload.Viewport.DeviceScaleFactor != 1 {
		t.Fatalf("unexpected viewport %+v", payload.Viewport)
	}
}

func TestHTTPScreenshotStrategy_RequiresToken(t *testing.T) {
	_, err := HTTPScreenshotStrategy{}.Capture(context.Background(), report.ScreenshotRequest{URL: "https://example.com"})
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBuildCaptureScreenshotParams(t *testing.T) {
	params := buildCaptureScreenshotParams(report.ScreenshotOptions{Width: 640, Height: 480, Format: report.ImageWebP, Quality: 50})
	if params.Format != page.CaptureScreenshotFormatWebp || params.Quality != 0 {
		t.Fatalf("unexpected format/quality %+v", params)
	}
	if params.Clip == nil || params.Clip.Width != 640 || params.Clip.Height != 480 || params.CaptureBeyondViewport {
		t.Fatalf("expected viewport clip, got %+v", params)
	}

	full := buildCaptureScreenshotParams(report.ScreenshotOptions{Format: report.ImageJPEG, Quality: 70, FullPage: true})
	if full.Clip != nil || !full.CaptureBeyondViewport || full.Quality != 70 {
		t.Fatalf("expected full page capture, got %+v", full)
	}
}

func TestCapturer_FallsThroughToNextStrategy(t *testing.T) {
	first := &stubCapture{name: "http", err: errors.New("quota exceeded")}
	second := &stubCapture{name: "session", image: pngMagic}
	capturer := &Capturer{Strategies: []ScreenshotStrategy{first, second}}

	out, err := capturer.Capture(context.Background(), report.ScreenshotRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if out.Strategy != "session" || first.calls != 1 || second.calls != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestCapturer_RejectsMismatchedImage(t *testing.T) {
	capturer := &Capturer{Strategies: []ScreenshotStrategy{&stubCapture{name: "http", image: pngMagic}}}
	req := report.ScreenshotRequest{URL: "https://example.com", Options: report.ScreenshotOptions{Format: report.ImageJPEG}}

	_, err := capturer.Capture(context.Background(), req)
	if report.KindFromError(err) != report.KindRenderExhausted {
		t.Fatalf("expected exhausted error, got %v", err)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) || len(exhausted.Attempts) != 1 {
		t.Fatalf("expected attempt record, got %v", err)
	}
}

func TestCapturer_WithoutTokenIsNotImplemented(t *testing.T) {
	capturer := NewCapturer(Config{})
	_, err := capturer.Capture(context.Background(), report.ScreenshotRequest{HTML: "<p>x</p>"})
	if report.KindFromError(err) != report.KindNotImpl {
		t.Fatalf("expected not implemented, got %v", err)
	}

	withToken := NewCapturer(Config{Token: "t"})
	if len(withToken.Strategies) != 2 || withToken.Strategies[0].Name() != "http" || withToken.Strategies[1].Name() != "session" {
		t.Fatalf("unexpected strategies %+v", withToken.Strategies)
	}
}

func TestCapturer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	capturer := &Capturer{Strategies: []ScreenshotStrategy{&stubCapture{name: "http", image: pngMagic}}}
	if _, err := capturer.Capture(ctx, report.ScreenshotRequest{URL: "https://example.com"}); report.KindFromError(err) != report.KindCanceled {
		t.Fatalf("expected canceled, got %v", err)
	}
}
