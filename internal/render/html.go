package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/document.html
var documentTemplateSrc string

var documentTemplate = template.Must(template.New("document").Parse(documentTemplateSrc))

// Converter turns a complete HTML page into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, page []byte) ([]byte, error)
}

type htmlPage struct {
	Title   string
	Summary string
	Body    template.HTML
}

// htmlBackend converts the markdown body to HTML and hands the page to a
// Converter. Input stays UTF-8, so no sanitization is needed.
type htmlBackend struct {
	md   goldmark.Markdown
	conv Converter
}

func newHTMLBackend(conv Converter) *htmlBackend {
	return &htmlBackend{
		// Raw HTML in model output is not rendered (goldmark default).
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		conv: conv,
	}
}

func (b *htmlBackend) Name() string { return BackendHTML }

func (b *htmlBackend) Encode(ctx context.Context, c Content) ([]byte, error) {
	page, err := b.page(c)
	if err != nil {
		return nil, err
	}
	out, err := b.conv.Convert(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("convert html: %w", err)
	}
	return out, nil
}

// page renders the full HTML document for c.
func (b *htmlBackend) page(c Content) ([]byte, error) {
	var body bytes.Buffer
	if err := b.md.Convert([]byte(c.Body), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	var out bytes.Buffer
	err := documentTemplate.Execute(&out, htmlPage{
		Title:   c.Title,
		Summary: c.Summary,
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("execute document template: %w", err)
	}
	return out.Bytes(), nil
}

// WkhtmltopdfConverter shells out to the wkhtmltopdf binary, found on PATH
// or at the location given to wkhtmltopdf.SetPath.
type WkhtmltopdfConverter struct {
	// Margin is applied to every page edge, in millimetres.
	Margin uint
}

// Convert implements Converter.
func (c WkhtmltopdfConverter) Convert(ctx context.Context, page []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(c.Margin)
	pdfg.MarginBottom.Set(c.Margin)
	pdfg.MarginLeft.Set(c.Margin)
	pdfg.MarginRight.Set(c.Margin)
	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(page)))

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return pdfg.Bytes(), nil
}
