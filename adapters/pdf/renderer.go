package reportpdf

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/report"
)

// DefaultMaxHTMLBytes guards the size of documents sent to the chain.
const DefaultMaxHTMLBytes int64 = 8 * 1024 * 1024

// Config selects and tunes the strategies of a chain.
type Config struct {
	Token              string
	SessionEndpoint    string
	HTTPEndpoint       string
	ScreenshotEndpoint string
	SessionTimeout     time.Duration
	HTTPTimeout        time.Duration
	DOMTimeout         time.Duration
	SettleDelay        time.Duration
	ViewportWidth      int64
	ViewportHeight     int64
	TextLimit          int
	Verify             bool
	HTTPClient         *http.Client
	Locale             *helpers.Locale
	Labels             *labels.Labels
	Logger             report.Logger
}

// NewChain builds the strategy chain. Without a token only the local
// strategy is used; with one the order is session, http, local.
func NewChain(cfg Config) *Chain {
	local := LocalStrategy{TextLimit: cfg.TextLimit, Locale: cfg.Locale, Labels: cfg.Labels}

	chain := &Chain{Logger: cfg.Logger}
	if cfg.Verify {
		chain.Verifier = PDFCPUVerifier{}
	}

	if strings.TrimSpace(cfg.Token) == "" {
		chain.Strategies = []Strategy{local}
		return chain
	}

	chain.Strategies = []Strategy{
		SessionStrategy{
			Endpoint:       cfg.SessionEndpoint,
			Token:          cfg.Token,
			Timeout:        cfg.SessionTimeout,
			DOMTimeout:     cfg.DOMTimeout,
			SettleDelay:    cfg.SettleDelay,
			ViewportWidth:  cfg.ViewportWidth,
			ViewportHeight: cfg.ViewportHeight,
		},
		HTTPStrategy{
			Endpoint:   cfg.HTTPEndpoint,
			Token:      cfg.Token,
			Client:     cfg.HTTPClient,
			Timeout:    cfg.HTTPTimeout,
			DOMTimeout: cfg.DOMTimeout,
		},
		local,
	}
	return chain
}

// Renderer adapts a Chain to report.DocumentRenderer.
type Renderer struct {
	Chain        *Chain
	MaxHTMLBytes int64
}

var _ report.DocumentRenderer = Renderer{}

func (r Renderer) Render(ctx context.Context, job report.DocumentJob) (report.DocumentOutput, error) {
	if r.Chain == nil {
		return report.DocumentOutput{}, report.NewError(report.KindValidation, "pdf renderer requires a chain", nil)
	}
	limit := r.MaxHTMLBytes
	if limit <= 0 {
		limit = DefaultMaxHTMLBytes
	}
	if int64(len(job.HTML)) > limit {
		return report.DocumentOutput{}, report.NewError(report.KindValidation, "pdf renderer max html bytes exceeded", nil)
	}

	out, err := r.Chain.Render(ctx, job)
	if err != nil {
		return report.DocumentOutput{}, err
	}
	return report.DocumentOutput{PDF: out.PDF, Strategy: out.Strategy, Pages: out.Pages}, nil
}
