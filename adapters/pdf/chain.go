package reportpdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-report/report"
)

// Strategy renders an assembled HTML document into PDF bytes.
type Strategy interface {
	Name() string
	Render(ctx context.Context, job report.DocumentJob) ([]byte, error)
}

// StrategyFunc adapts a function to a Strategy.
type StrategyFunc struct {
	Label string
	Fn    func(ctx context.Context, job report.DocumentJob) ([]byte, error)
}

func (f StrategyFunc) Name() string {
	return f.Label
}

func (f StrategyFunc) Render(ctx context.Context, job report.DocumentJob) ([]byte, error) {
	if f.Fn == nil {
		return nil, errors.New("pdf strategy func is nil")
	}
	return f.Fn(ctx, job)
}

// Attempt records one strategy invocation.
type Attempt struct {
	Strategy string
	Err      error
	Duration time.Duration
}

// ExhaustedError is returned when every strategy in the chain failed.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return "all strategies failed: " + strings.Join(parts, "; ")
}

// Output is a successful chain result.
type Output struct {
	PDF      []byte
	Strategy string
	Pages    int
	Attempts []Attempt
}

// Chain tries strategies in order and returns the first usable output.
type Chain struct {
	Strategies []Strategy
	// Verifier, when set, rejects output that is not a readable PDF. A
	// rejected output counts as a failed attempt.
	Verifier Verifier
	Logger   report.Logger
}

// Render runs the chain. Cancellation of ctx stops the chain without trying
// the remaining strategies.
func (c *Chain) Render(ctx context.Context, job report.DocumentJob) (Output, error) {
	if c == nil || len(c.Strategies) == 0 {
		return Output{}, report.NewError(report.KindInternal, "pdf chain has no strategies", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.logger()

	var attempts []Attempt
	for _, strategy := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return Output{Attempts: attempts}, contextError(err)
		}

		start := time.Now()
		pdf, pages, err := c.try(ctx, strategy, job)
		attempt := Attempt{Strategy: strategy.Name(), Err: err, Duration: time.Since(start)}
		attempts = append(attempts, attempt)

		if err == nil {
			logger.Infof("pdf rendered with %s strategy in %s", attempt.Strategy, attempt.Duration)
			return Output{PDF: pdf, Strategy: attempt.Strategy, Pages: pages, Attempts: attempts}, nil
		}

		logger.Errorf("pdf strategy %s failed after %s: %v", attempt.Strategy, attempt.Duration, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Output{Attempts: attempts}, contextError(ctxErr)
		}
	}

	exhausted := &ExhaustedError{Attempts: attempts}
	return Output{Attempts: attempts}, report.NewError(report.KindRenderExhausted, "no pdf strategy succeeded", exhausted)
}

func (c *Chain) try(ctx context.Context, strategy Strategy, job report.DocumentJob) ([]byte, int, error) {
	pdf, err := strategy.Render(ctx, job)
	if err != nil {
		return nil, 0, err
	}
	if len(pdf) == 0 {
		return nil, 0, errors.New("strategy returned an empty document")
	}
	if c.Verifier == nil {
		return pdf, 0, nil
	}
	pages, err := c.Verifier.Verify(pdf)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid pdf output: %w", err)
	}
	return pdf, pages, nil
}

func (c *Chain) logger() report.Logger {
	if c.Logger == nil {
		return report.NopLogger{}
	}
	return c.Logger
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return report.NewError(report.KindTimeout, "rendering timed out", err)
	}
	return report.NewError(report.KindCanceled, "rendering canceled", err)
}
