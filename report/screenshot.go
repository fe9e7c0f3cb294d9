package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ImageFormat is the encoding of a captured screenshot.
type ImageFormat string

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
	ImageWebP ImageFormat = "webp"
)

// ContentType returns the MIME type of the image.
func (f ImageFormat) ContentType() string {
	return "image/" + string(f)
}

// Screenshot option defaults and bounds.
const (
	DefaultScreenshotWidth   int64 = 1280
	DefaultScreenshotHeight  int64 = 720
	DefaultScreenshotQuality       = 80
	DefaultScreenshotScale         = 1.0
	DefaultScreenshotTimeout       = 30 * time.Second

	minScreenshotSide    int64 = 100
	maxScreenshotSide    int64 = 4000
	minScreenshotScale         = 0.1
	maxScreenshotScale         = 3.0
	minScreenshotTimeout int64 = 1000
	maxScreenshotTimeout int64 = 60000
)

// ScreenshotOptions tunes the viewport and the encoded image. Zero values
// take the defaults.
type ScreenshotOptions struct {
	Width             int64       `json:"width,omitempty"`
	Height            int64       `json:"height,omitempty"`
	FullPage          bool        `json:"fullPage,omitempty"`
	Format            ImageFormat `json:"format,omitempty"`
	Quality           int         `json:"quality,omitempty"`
	DeviceScaleFactor float64     `json:"deviceScaleFactor,omitempty"`
	Mobile            bool        `json:"mobile,omitempty"`
	// TimeoutMillis bounds page loading.
	TimeoutMillis int64 `json:"timeout,omitempty"`
}

// WithDefaults fills unset options.
func (o ScreenshotOptions) WithDefaults() ScreenshotOptions {
	if o.Width == 0 {
		o.Width = DefaultScreenshotWidth
	}
	if o.Height == 0 {
		o.Height = DefaultScreenshotHeight
	}
	o.Format = ImageFormat(strings.ToLower(strings.TrimSpace(string(o.Format))))
	if o.Format == "" {
		o.Format = ImagePNG
	}
	if o.Quality == 0 {
		o.Quality = DefaultScreenshotQuality
	}
	if o.DeviceScaleFactor == 0 {
		o.DeviceScaleFactor = DefaultScreenshotScale
	}
	if o.TimeoutMillis == 0 {
		o.TimeoutMillis = DefaultScreenshotTimeout.Milliseconds()
	}
	return o
}

// Timeout returns the page load budget.
func (o ScreenshotOptions) Timeout() time.Duration {
	if o.TimeoutMillis <= 0 {
		return DefaultScreenshotTimeout
	}
	return time.Duration(o.TimeoutMillis) * time.Millisecond
}

// ScreenshotRequest asks for an image of a live page or of inline markup.
type ScreenshotRequest struct {
	URL     string            `json:"url,omitempty"`
	HTML    string            `json:"html,omitempty"`
	CSS     string            `json:"css,omitempty"`
	Options ScreenshotOptions `json:"options"`
}

// Document returns the inline markup with the style sheet injected into its
// head, or prepended when there is no head.
func (r ScreenshotRequest) Document() string {
	if strings.TrimSpace(r.CSS) == "" {
		return r.HTML
	}
	style := "<style>" + r.CSS + "</style>"
	if strings.Contains(r.HTML, "<head>") {
		return strings.Replace(r.HTML, "<head>", "<head>"+style, 1)
	}
	return style + r.HTML
}

// ScreenshotResult is the captured image plus download metadata.
type ScreenshotResult struct {
	ID          string
	Format      ImageFormat
	ContentType string
	Filename    string
	GeneratedAt time.Time
	Buffer      []byte
	Strategy    string
}

// ScreenshotOutput is what a capture backend returns.
type ScreenshotOutput struct {
	Image    []byte
	Strategy string
}

// ScreenshotRenderer captures a page as an image.
type ScreenshotRenderer interface {
	Capture(ctx context.Context, req ScreenshotRequest) (ScreenshotOutput, error)
}

// DecodeScreenshotRequest parses a JSON screenshot body.
func DecodeScreenshotRequest(body []byte) (ScreenshotRequest, error) {
	var req ScreenshotRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ScreenshotRequest{}, NewValidationError([]FieldError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
	}
	return req, nil
}

// ValidateScreenshotRequest checks a request after defaults are applied.
func ValidateScreenshotRequest(req ScreenshotRequest) error {
	var details []FieldError

	target := strings.TrimSpace(req.URL)
	switch {
	case target == "" && strings.TrimSpace(req.HTML) == "":
		details = append(details, FieldError{Field: "url", Message: "url or html is required"})
	case target != "":
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			details = append(details, FieldError{Field: "url", Message: "url must be an absolute http(s) URL"})
		}
	}

	opts := req.Options
	if opts.Width < minScreenshotSide || opts.Width > maxScreenshotSide {
		details = append(details, rangeError("options.width", minScreenshotSide, maxScreenshotSide))
	}
	if opts.Height < minScreenshotSide || opts.Height > maxScreenshotSide {
		details = append(details, rangeError("options.height", minScreenshotSide, maxScreenshotSide))
	}
	switch opts.Format {
	case ImagePNG, ImageJPEG, ImageWebP:
	default:
		details = append(details, FieldError{Field: "options.format", Message: "format must be one of: png, jpeg, webp"})
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		details = append(details, rangeError("options.quality", 1, 100))
	}
	if opts.DeviceScaleFactor < minScreenshotScale || opts.DeviceScaleFactor > maxScreenshotScale {
		details = append(details, FieldError{Field: "options.deviceScaleFactor", Message: "must be between 0.1 and 3"})
	}
	if opts.TimeoutMillis < minScreenshotTimeout || opts.TimeoutMillis > maxScreenshotTimeout {
		details = append(details, rangeError("options.timeout", minScreenshotTimeout, maxScreenshotTimeout))
	}

	if len(details) > 0 {
		return NewValidationError(details)
	}
	return nil
}

func rangeError[T int | int64](field string, low, high T) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d", low, high)}
}

// ScreenshotFilename builds the suggested download name for a capture.
func ScreenshotFilename(at time.Time, format ImageFormat) string {
	return fmt.Sprintf("screenshot-%d.%s", at.UnixMilli(), format)
}
