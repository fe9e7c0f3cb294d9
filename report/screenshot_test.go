package report

import (
	"context"
	"strconv"
	"testing"
	"time"
)

type stubScreenshots struct {
	got ScreenshotRequest
	err error
}

func (s *stubScreenshots) Capture(_ context.Context, req ScreenshotRequest) (ScreenshotOutput, error) {
	s.got = req
	if s.err != nil {
		return ScreenshotOutput{}, s.err
	}
	return ScreenshotOutput{Image: []byte("\x89PNG"), Strategy: "http"}, nil
}

func TestService_ScreenshotAppliesDefaults(t *testing.T) {
	shots := &stubScreenshots{}
	svc := testService(&stubDocuments{}, &stubWorkbooks{})
	svc.Screenshots = shots

	result, err := svc.Screenshot(context.Background(), ScreenshotRequest{URL: " https://example.com "})
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	opts := shots.got.Options
	if opts.Width != 1280 || opts.Height != 720 || opts.Format != ImagePNG || opts.Quality != 80 || opts.DeviceScaleFactor != 1 {
		t.Fatalf("expected defaults, got %+v", opts)
	}
	if opts.Timeout() != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", opts.Timeout())
	}
	if shots.got.URL != "https://example.com" {
		t.Fatalf("expected trimmed url, got %q", shots.got.URL)
	}
	if result.ContentType != "image/png" || result.Strategy != "http" || result.ID != "rep-1" {
		t.Fatalf("unexpected result %+v", result)
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).UnixMilli()
	if result.Filename != "screenshot-"+strconv.FormatInt(want, 10)+".png" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
}

func TestService_ScreenshotValidation(t *testing.T) {
	svc := testService(&stubDocuments{}, &stubWorkbooks{})
	svc.Screenshots = &stubScreenshots{}

	_, err := svc.Screenshot(context.Background(), ScreenshotRequest{
		URL: "ftp://example.com",
		Options: ScreenshotOptions{
			Width:             50,
			Height:            5000,
			Format:            "gif",
			Quality:           101,
			DeviceScaleFactor: 4,
			TimeoutMillis:     500,
		},
	})
	fields := map[string]bool{}
	for _, detail := range FieldErrors(err) {
		fields[detail.Field] = true
	}
	for _, want := range []string{"url", "options.width", "options.height", "options.format", "options.quality", "options.deviceScaleFactor", "options.timeout"} {
		if !fields[want] {
			t.Fatalf("expected field error for %s, got %v", want, FieldErrors(err))
		}
	}

	_, err = svc.Screenshot(context.Background(), ScreenshotRequest{})
	if details := FieldErrors(err); len(details) != 1 || details[0].Field != "url" {
		t.Fatalf("expected url-or-html error, got %v", err)
	}
}

func TestService_ScreenshotWithoutRenderer(t *testing.T) {
	svc := testService(&stubDocuments{}, &stubWorkbooks{})
	_, err := svc.Screenshot(context.Background(), ScreenshotRequest{HTML: "<p>x</p>"})
	if KindFromError(err) != KindNotImpl {
		t.Fatalf("expected not implemented, got %v", err)
	}
}

func TestScreenshotRequest_DocumentInjectsStyle(t *testing.T) {
	cases := []struct {
		req  ScreenshotRequest
		want string
	}{
		{ScreenshotRequest{HTML: "<p>x</p>"}, "<p>x</p>"},
		{ScreenshotRequest{HTML: "<p>x</p>", CSS: "p{}"}, "<style>p{}</style><p>x</p>"},
		{ScreenshotRequest{HTML: "<html><head></head><body></body></html>", CSS: "b{}"}, "<html><head><style>b{}</style></head><body></body></html>"},
	}
	for _, tc := range cases {
		if got := tc.req.Document(); got != tc.want {
			t.Fatalf("Document() = %q, want %q", got, tc.want)
		}
	}
}

func TestDecodeScreenshotRequest(t *testing.T) {
	req, err := DecodeScreenshotRequest([]byte(`{"html":"<h1>x</h1>","css":"h1{}","options":{"width":800,"format":"JPEG","quality":90,"fullPage":true,"timeout":5000}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	opts := req.Options.WithDefaults()
	if opts.Width != 800 || opts.Height != 720 || opts.Format != ImageJPEG || opts.Quality != 90 || !opts.FullPage {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Timeout() != 5*time.Second {
		t.Fatalf("unexpected timeout %s", opts.Timeout())
	}
	if _, err := DecodeScreenshotRequest([]byte(`{`)); KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error for malformed body")
	}
}
