package workbook

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-report/payload"
	"github.com/goliatone/go-report/report"
)

// Renderer adapts the builder and encoders to report.WorkbookRenderer.
type Renderer struct {
	Builder Builder
	Modern  Encoder
	Legacy  Encoder
	Logger  report.Logger
}

var _ report.WorkbookRenderer = Renderer{}

func (r Renderer) Render(ctx context.Context, title string, data *payload.Map, format report.Format, generatedAt time.Time) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, report.NewError(report.KindCanceled, "workbook rendering canceled", err)
		}
	}

	encoder, err := r.encoder(format)
	if err != nil {
		return nil, err
	}

	wb := r.Builder.Build(title, data, generatedAt)
	out, err := encoder.Encode(wb)
	if err != nil {
		return nil, report.NewError(report.KindInternal, "workbook encoding failed", err)
	}
	r.logger().Debugf("workbook %q encoded as %s: %d sheets, %d bytes", title, format, len(wb.Sheets), len(out))
	return out, nil
}

func (r Renderer) encoder(format report.Format) (Encoder, error) {
	switch format {
	case report.FormatSpreadsheet:
		if r.Modern != nil {
			return r.Modern, nil
		}
		return XLSXEncoder{}, nil
	case report.FormatSpreadsheetLegacy:
		if r.Legacy != nil {
			return r.Legacy, nil
		}
		return LegacyEncoder{}, nil
	default:
		return nil, report.NewError(report.KindValidation, fmt.Sprintf("unsupported workbook format %q", format), nil)
	}
}

func (r Renderer) logger() report.Logger {
	if r.Logger == nil {
		return report.NopLogger{}
	}
	return r.Logger
}
