package reportpdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-report/report"
)

// HTTP strategy defaults.
const (
	DefaultHTTPEndpoint     = "https://production-sfo.browserless.io/pdf"
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultMaxResponseBytes = 64 * 1024 * 1024
	maxErrorBodyBytes       = 512
)

// HTTPStrategy posts the document to a stateless rendering endpoint in one
// request and receives the PDF bytes in the response.
type HTTPStrategy struct {
	Endpoint         string
	Token            string
	Client           *http.Client
	Timeout          time.Duration
	DOMTimeout       time.Duration
	MaxResponseBytes int64
}

type httpRenderPayload struct {
	HTML        string          `json:"html"`
	Options     httpPDFOptions  `json:"options"`
	GotoOptions httpGotoOptions `json:"gotoOptions"`
}

type httpPDFOptions struct {
	Format              string         `json:"format"`
	Landscape           bool           `json:"landscape"`
	Margin              report.Margins `json:"margin"`
	PrintBackground     bool           `json:"printBackground"`
	PreferCSSPageSize   bool           `json:"preferCSSPageSize"`
	DisplayHeaderFooter bool           `json:"displayHeaderFooter"`
	Scale               float64        `json:"scale"`
}

type httpGotoOptions struct {
	WaitUntil string `json:"waitUntil"`
	Timeout   int64  `json:"timeout"`
}

func (s HTTPStrategy) Name() string {
	return "http"
}

func (s HTTPStrategy) Render(ctx context.Context, job report.DocumentJob) ([]byte, error) {
	endpoint, err := tokenURL(s.Endpoint, DefaultHTTPEndpoint, s.Token, "http strategy")
	if err != nil {
		return nil, err
	}
	payload := newHTTPRenderPayload(job, durationOr(s.DOMTimeout, DefaultDOMTimeout))
	return postForBytes(ctx, s.Client, endpoint, payload, durationOr(s.Timeout, DefaultHTTPTimeout), s.MaxResponseBytes, "pdf")
}

func newHTTPRenderPayload(job report.DocumentJob, domTimeout time.Duration) httpRenderPayload {
	opts := job.Options.WithDefaults()
	return httpRenderPayload{
		HTML: job.HTML,
		Options: httpPDFOptions{
			Format:            opts.PageSize,
			Landscape:         opts.IsLandscape(),
			Margin:            opts.Margins,
			PrintBackground:   true,
			PreferCSSPageSize: true,
			Scale:             defaultPDFScale,
		},
		GotoOptions: httpGotoOptions{
			WaitUntil: "domcontentloaded",
			Timeout:   domTimeout.Milliseconds(),
		},
	}
}

// tokenURL appends the token query parameter to endpoint, or to fallback
// when endpoint is blank.
func tokenURL(endpoint, fallback, token, label string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", report.NewError(report.KindValidation, label+" requires a token", nil)
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = fallback
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", report.NewError(report.KindValidation, "invalid "+label+" endpoint", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// postForBytes posts payload as JSON and reads a bounded binary response.
func postForBytes(ctx context.Context, client *http.Client, endpoint string, payload any, timeout time.Duration, maxBytes int64, label string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, report.NewError(report.KindInternal, "encode "+label+" request", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s endpoint request failed: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%s endpoint returned %d: %s", label, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	buffer := newLimitedBuffer(maxBytes)
	if _, err := io.Copy(buffer, resp.Body); err != nil {
		return nil, fmt.Errorf("read %s response: %w", label, err)
	}
	return buffer.Bytes(), nil
}

type limitedBuffer struct {
	buf     bytes.Buffer
	maxSize int64
}

func newLimitedBuffer(maxSize int64) *limitedBuffer {
	if maxSize <= 0 {
		maxSize = DefaultMaxResponseBytes
	}
	return &limitedBuffer{maxSize: maxSize}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.maxSize > 0 && int64(b.buf.Len()+len(p)) > b.maxSize {
		return 0, report.NewError(report.KindValidation, "response exceeds max bytes", nil)
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
