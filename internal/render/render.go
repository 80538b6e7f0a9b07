// Package render turns a generated workflow into a downloadable PDF.
//
// Two backends satisfy the same contract: "text" writes the lines directly
// with the PDF core fonts, "html" converts the markdown to HTML first and
// prints that page to PDF. Both derive the filename from the original goal
// and keep every hyperlink target.
package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/joestump/workflows/internal/metrics"
)

// Backend names accepted by Options.Backend.
const (
	BackendText = "text"
	BackendHTML = "html"
)

const (
	// ContentType is the media type of every rendered document.
	ContentType = "application/pdf"
	// Title heads every document.
	Title = "WorkFlows Project Plan"

	defaultMargin  = 15
	defaultTimeout = time.Minute
)

// RenderError reports a failure to encode or store a document. No partial
// file is left behind when it is returned.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Content is what a backend lays out.
type Content struct {
	Title   string
	Summary string
	Body    string
}

type backend interface {
	Name() string
	Encode(ctx context.Context, c Content) ([]byte, error)
}

// Options configures a Renderer. Zero fields take defaults.
type Options struct {
	// Backend is BackendText (default) or BackendHTML.
	Backend string
	// Dir receives rendered files; defaults to os.TempDir().
	Dir string
	// Margin is the page margin in millimetres; defaults to 15.
	Margin float64
	// Timeout bounds one Render or Encode call; defaults to one minute.
	Timeout time.Duration
	// Converter prints HTML to PDF for BackendHTML; defaults to wkhtmltopdf.
	Converter Converter
	// WkhtmltopdfPath overrides the wkhtmltopdf binary location.
	WkhtmltopdfPath string
}

// Document is a rendered file on disk.
type Document struct {
	Path     string
	Filename string
	Size     int64
}

// Renderer renders documents with one backend. It keeps no per-document
// state and is safe for concurrent use.
type Renderer struct {
	backend backend
	dir     string
	timeout time.Duration
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Dir == "" {
		opts.Dir = os.TempDir()
	}

	r := &Renderer{dir: opts.Dir, timeout: opts.Timeout}
	switch opts.Backend {
	case "", BackendText:
		r.backend = &textBackend{margin: opts.Margin}
	case BackendHTML:
		conv := opts.Converter
		if conv == nil {
			if opts.WkhtmltopdfPath != "" {
				// Process-wide setting of the wkhtmltopdf package.
				wkhtmltopdf.SetPath(opts.WkhtmltopdfPath)
			}
			conv = WkhtmltopdfConverter{Margin: uint(opts.Margin)}
		}
		r.backend = newHTMLBackend(conv)
	default:
		return nil, fmt.Errorf("unsupported render backend: %q", opts.Backend)
	}
	return r, nil
}

// Backend returns the name of the configured backend.
func (r *Renderer) Backend() string { return r.backend.Name() }

// Dir returns the directory Render writes to.
func (r *Renderer) Dir() string { return r.dir }

// Encode renders the document in memory and returns its bytes and filename.
// The filename depends on originalGoal only.
func (r *Renderer) Encode(ctx context.Context, workflowText, goalSummary, originalGoal string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	data, err := r.backend.Encode(ctx, Content{Title: Title, Summary: goalSummary, Body: workflowText})
	metrics.RenderDuration.WithLabelValues(r.backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DocumentsRenderedTotal.WithLabelValues(r.backend.Name(), "error").Inc()
		return nil, "", &RenderError{Op: "encode", Err: err}
	}
	metrics.DocumentsRenderedTotal.WithLabelValues(r.backend.Name(), "ok").Inc()
	return data, DeriveFilename(originalGoal), nil
}

// Render encodes the document and writes it to the renderer's directory.
// The file appears complete or not at all.
func (r *Renderer) Render(ctx context.Context, workflowText, goalSummary, originalGoal string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, filename, err := r.Encode(ctx, workflowText, goalSummary, originalGoal)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(r.dir, filename)
	if err := writeFileAtomic(ctx, path, data); err != nil {
		log.Printf("render: write %s: %v", path, err)
		return nil, &RenderError{Op: "write", Err: err}
	}
	return &Document{Path: path, Filename: filename, Size: int64(len(data))}, nil
}

// IsTimeout reports whether err is a render that ran out of time.
func IsTimeout(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr) && errors.Is(err, context.DeadlineExceeded)
}
