package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service is the single entry point that turns a Request into an artifact.
type Service struct {
	Resolver    TemplateResolver
	Assembler   DocumentAssembler
	Documents   DocumentRenderer
	Workbooks   WorkbookRenderer
	Screenshots ScreenshotRenderer
	Logger      Logger
	Now         func() time.Time
	IDGenerator func() string
}

// Generate validates the request and dispatches it to the document or
// workbook pipeline.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if s == nil {
		return Result{}, NewError(KindInternal, "report service is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req = NormalizeRequest(req)
	if err := ValidateRequest(req); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, NewError(KindFromError(err), "report request aborted", err)
	}

	now := s.now()
	id := s.newID()
	result := Result{
		ID:          id,
		Format:      req.Format,
		ContentType: req.Format.ContentType(),
		Filename:    Filename(req.Title, id, req.Format),
		GeneratedAt: now,
	}

	switch {
	case req.Format == FormatDocument:
		out, err := s.renderDocument(ctx, req, now)
		if err != nil {
			s.logger().Errorf("report %s: document render failed: %v", id, err)
			return Result{}, err
		}
		result.Buffer = out.PDF
		result.Strategy = out.Strategy
		result.Pages = out.Pages
	case req.Format.IsSpreadsheet():
		if s.Workbooks == nil {
			return Result{}, NewError(KindInternal, "workbook renderer is not configured", nil)
		}
		buf, err := s.Workbooks.Render(ctx, req.Title, req.Data, req.Format, now)
		if err != nil {
			s.logger().Errorf("report %s: workbook render failed: %v", id, err)
			return Result{}, err
		}
		result.Buffer = buf
	default:
		return Result{}, NewError(KindValidation, "unsupported format", nil)
	}

	s.logger().Infof("report %s generated format=%s bytes=%d strategy=%s", id, req.Format, len(result.Buffer), result.Strategy)
	return result, nil
}

// Preview resolves and assembles the document without rendering it.
// Template faults stay inline in the returned markup.
func (s *Service) Preview(ctx context.Context, req Request) (string, error) {
	if s == nil {
		return "", NewError(KindInternal, "report service is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req.Format = FormatDocument
	req = NormalizeRequest(req)
	if err := ValidateRequest(req); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", NewError(KindFromError(err), "preview request aborted", err)
	}
	return s.assemble(req, s.now())
}

// Screenshot captures a page or inline markup as an image.
func (s *Service) Screenshot(ctx context.Context, req ScreenshotRequest) (ScreenshotResult, error) {
	if s == nil {
		return ScreenshotResult{}, NewError(KindInternal, "report service is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req.URL = strings.TrimSpace(req.URL)
	req.Options = req.Options.WithDefaults()
	if err := ValidateScreenshotRequest(req); err != nil {
		return ScreenshotResult{}, err
	}
	if s.Screenshots == nil {
		return ScreenshotResult{}, NewError(KindNotImpl, "screenshot capture is not configured", nil)
	}
	if err := ctx.Err(); err != nil {
		return ScreenshotResult{}, NewError(KindFromError(err), "screenshot request aborted", err)
	}

	now := s.now()
	id := s.newID()
	out, err := s.Screenshots.Capture(ctx, req)
	if err != nil {
		s.logger().Errorf("screenshot %s: capture failed: %v", id, err)
		return ScreenshotResult{}, err
	}

	s.logger().Infof("screenshot %s captured format=%s bytes=%d strategy=%s", id, req.Options.Format, len(out.Image), out.Strategy)
	return ScreenshotResult{
		ID:          id,
		Format:      req.Options.Format,
		ContentType: req.Options.Format.ContentType(),
		Filename:    ScreenshotFilename(now, req.Options.Format),
		GeneratedAt: now,
		Buffer:      out.Image,
		Strategy:    out.Strategy,
	}, nil
}

func (s *Service) renderDocument(ctx context.Context, req Request, now time.Time) (DocumentOutput, error) {
	if s.Documents == nil {
		return DocumentOutput{}, NewError(KindInternal, "document renderer is not configured", nil)
	}
	document, err := s.assemble(req, now)
	if err != nil {
		return DocumentOutput{}, err
	}
	return s.Documents.Render(ctx, DocumentJob{
		HTML:        document,
		Title:       req.Title,
		Options:     req.Options,
		GeneratedAt: now,
	})
}

func (s *Service) assemble(req Request, now time.Time) (string, error) {
	if s.Resolver == nil || s.Assembler == nil {
		return "", NewError(KindInternal, "document pipeline is not configured", nil)
	}
	markup := s.Resolver.Resolve(req.Template.Markup, req.Data)
	document, err := s.Assembler.Assemble(AssembleInput{
		Title:       req.Title,
		Markup:      markup,
		Style:       req.Template.Style,
		Options:     req.Options,
		GeneratedAt: now,
	})
	if err != nil {
		return "", NewError(KindInternal, "document assembly failed", err)
	}
	return document, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) newID() string {
	if s.IDGenerator == nil {
		return uuid.NewString()
	}
	return s.IDGenerator()
}

func (s *Service) logger() Logger {
	if s.Logger == nil {
		return NopLogger{}
	}
	return s.Logger
}
