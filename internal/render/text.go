package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	titleFontSize = 14
	bodyFontSize  = 12
	lineHeight    = 8
	gapHeight     = 3
	fontFamily    = "Arial"
)

// textBackend writes the plan straight into a PDF with the core fonts.
type textBackend struct {
	margin float64
}

func (b *textBackend) Name() string { return BackendText }

func (b *textBackend) Encode(ctx context.Context, c Content) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(b.margin, b.margin, b.margin)
	pdf.SetAutoPageBreak(true, b.margin)
	pdf.SetTitle(c.Title, true)
	pdf.SetCreator("workflows", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.CellFormat(0, 10, tr(Sanitize(c.Title)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "B", bodyFontSize)
	pdf.MultiCell(0, lineHeight, tr("Goal: "+Sanitize(c.Summary)), "", "L", false)
	pdf.Ln(5)

	for _, blk := range layout(Sanitize(c.Body)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blk.kind == blockGap {
			pdf.Ln(gapHeight)
			continue
		}
		for _, s := range blk.spans {
			style := ""
			if s.bold {
				style = "B"
			}
			if s.link == "" {
				pdf.SetFont(fontFamily, style, bodyFontSize)
				pdf.Write(lineHeight, tr(s.text))
				continue
			}
			pdf.SetFont(fontFamily, style+"U", bodyFontSize)
			pdf.SetTextColor(25, 118, 210)
			pdf.WriteLinkString(lineHeight, tr(s.text), s.link)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(lineHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
