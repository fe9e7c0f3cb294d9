package reportpdf

import (
	"bytes"
	"errors"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Verifier checks rendered output and reports its page count.
type Verifier interface {
	Verify(pdf []byte) (pages int, err error)
}

var errNotPDF = errors.New("output does not start with a pdf header")

// PDFCPUVerifier parses and validates output with pdfcpu.
type PDFCPUVerifier struct{}

func (PDFCPUVerifier) Verify(pdf []byte) (int, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(pdf, "\r\n\t "), []byte("%PDF-")) {
		return 0, errNotPDF
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}
