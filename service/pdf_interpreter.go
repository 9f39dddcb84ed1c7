package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const FormatPDF = "pdf"

func init() {
	api.DisableConfigDir()
}

// PDFInterpreter extracts the plain text of a whole PDF as one segment.
// Page boundaries are not preserved.
type PDFInterpreter struct{}

func NewPDFInterpreter() *PDFInterpreter {
	return &PDFInterpreter{}
}

func (p *PDFInterpreter) Name() string {
	return FormatPDF
}

func (p *PDFInterpreter) Interpret(content []byte) (doc *types.ParsedDocument, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	doc = &types.ParsedDocument{Format: FormatPDF, Pages: pageCount(content)}
	if text := cleanText(buf.String()); text != "" {
		doc.Segments = []string{text}
	}
	return doc, nil
}

// pageCount asks pdfcpu for the page count. It is informational, so any
// failure yields zero.
func pageCount(content []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(content), conf)
	if err != nil {
		return 0
	}
	return ctx.PageCount
}

var textReplacer = strings.NewReplacer(
	"\u0000", "", // Null character
	"\ufffd", "", // Unicode replacement character
	"\u001b", "", // Escape character
	"\r", "",     // Carriage return
	"\f", "\n",   // Form feed to newline
	"\uf8ff", "", // Apple logo
	"\u2021", "", // Double dagger
	"\u2020", "", // Dagger
)

func cleanText(text string) string {
	return strings.TrimSpace(textReplacer.Replace(text))
}
