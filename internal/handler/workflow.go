package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/roles"
	"github.com/joestump/workflows/internal/workflow"
)

// IndexPage is the template data for the goal form.
type IndexPage struct {
	BasePage
	Roles   []string
	Goal    string
	Role    string
	Region  string
	Summary string
	Preview template.HTML
	Ready   bool // a generated workflow is available for download
	Flash   *Flash
}

// WorkflowHandler serves the goal form and the actions posted from it.
type WorkflowHandler struct {
	pipeline *workflow.Pipeline
	renderer *render.Renderer
	sm       *scs.SessionManager
	md       goldmark.Markdown
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(p *workflow.Pipeline, r *render.Renderer, sm *scs.SessionManager) *WorkflowHandler {
	return &WorkflowHandler{
		pipeline: p,
		renderer: r,
		sm:       sm,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Index renders the form, prefilled from the session.
// GET /
func (h *WorkflowHandler) Index(w http.ResponseWriter, r *http.Request) {
	st := loadState(r.Context(), h.sm)
	data := IndexPage{
		BasePage: newBasePage(r),
		Roles:    h.pipeline.Catalog().Names(),
		Goal:     st.Goal,
		Role:     st.Role,
		Region:   st.Region,
		Summary:  st.Summary,
		Ready:    st.hasResult(),
		Flash:    popFlash(r.Context(), h.sm),
	}
	if data.Role == "" {
		data.Role = roles.Generalist
	}
	if st.hasResult() {
		preview, err := h.preview(st.Workflow)
		if err != nil {
			log.Printf("handler: preview: %v", err)
		}
		data.Preview = preview
	}
	renderPage(w, http.StatusOK, "index.html", data)
}

// Generate runs the pipeline for the submitted form.
// POST /generate
func (h *WorkflowHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	st := shellState{
		Goal:   r.FormValue("goal"),
		Role:   r.FormValue("role"),
		Region: strings.TrimSpace(r.FormValue("region")),
	}

	res, err := h.pipeline.Run(ctx, workflow.GoalRequest{Goal: st.Goal, Role: st.Role, Region: st.Region})
	if err != nil {
		saveState(ctx, h.sm, st)
		putFlash(ctx, h.sm, failureFlash(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	st.Workflow, st.Summary = res.WorkflowText, res.GoalSummary
	saveState(ctx, h.sm, st)
	putFlash(ctx, h.sm, Flash{Type: "success", Message: "Workflow generated."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Download renders the session's workflow as a PDF attachment.
// GET /download
func (h *WorkflowHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := loadState(ctx, h.sm)
	if !st.hasResult() {
		http.Error(w, "no workflow has been generated yet", http.StatusNotFound)
		return
	}

	data, filename, err := h.renderer.Encode(ctx, st.Workflow, st.Summary, st.Goal)
	if err != nil {
		log.Printf("handler: download: %v", err)
		putFlash(ctx, h.sm, failureFlash(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Reset clears every remembered value and renews the session token.
// POST /reset
func (h *WorkflowHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.sm.Destroy(ctx); err != nil {
		log.Printf("handler: reset session: %v", err)
		http.Error(w, "could not reset session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// preview renders the workflow markdown for display. Raw HTML in the
// model output is omitted.
func (h *WorkflowHandler) preview(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// failureFlash picks the message shown for a failed generate or download.
func failureFlash(err error) Flash {
	var (
		unknownRole   *roles.UnknownRoleError
		completionErr *workflow.CompletionError
		renderErr     *render.RenderError
	)
	switch {
	case errors.Is(err, workflow.ErrEmptyGoal):
		return Flash{Type: "warning", Message: "Please describe your goal first."}
	case errors.As(err, &unknownRole):
		return Flash{Type: "error", Message: fmt.Sprintf("%q is not a known role.", unknownRole.Name)}
	case errors.As(err, &completionErr) && errors.Is(err, context.DeadlineExceeded):
		return Flash{Type: "error", Message: "The planner took too long to answer. Please try again."}
	case errors.As(err, &completionErr):
		return Flash{Type: "error", Message: "The planner could not produce a workflow. Please try again."}
	case errors.As(err, &renderErr):
		return Flash{Type: "error", Message: "The document could not be created."}
	default:
		return Flash{Type: "error", Message: "Something went wrong."}
	}
}
