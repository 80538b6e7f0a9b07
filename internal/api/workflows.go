package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/workflow"
)

// workflowsAPIHandler serves the catalog, generation and document routes.
type workflowsAPIHandler struct {
	pipeline *workflow.Pipeline
	renderer *render.Renderer
}

// ListRoles returns every catalog role in display order.
// GET /api/v1/roles
func (h *workflowsAPIHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	all := h.pipeline.Catalog().Roles()
	resp := RoleListResponse{Roles: make([]RoleResponse, 0, len(all))}
	for _, role := range all {
		resp.Roles = append(resp.Roles, RoleResponse{Name: role.Name, Instruction: role.Instruction})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Generate runs the pipeline and returns the workflow text and summary.
// POST /api/v1/workflows
func (h *workflowsAPIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.pipeline.Run(r.Context(), workflow.GoalRequest{Goal: req.Goal, Role: req.Role, Region: req.Region})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WorkflowResponse{
		Workflow:    res.WorkflowText,
		GoalSummary: res.GoalSummary,
		Filename:    render.DeriveFilename(req.Goal),
	})
}

// Document returns the PDF for a supplied or freshly generated workflow.
// POST /api/v1/workflows/document
func (h *workflowsAPIHandler) Document(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !decode(w, r, &req) {
		return
	}

	workflowText, summary := req.Workflow, req.GoalSummary
	if strings.TrimSpace(workflowText) == "" {
		res, err := h.pipeline.Run(r.Context(), workflow.GoalRequest{Goal: req.Goal, Role: req.Role, Region: req.Region})
		if err != nil {
			writeFailure(w, err)
			return
		}
		workflowText, summary = res.WorkflowText, res.GoalSummary
	}

	data, filename, err := h.renderer.Encode(r.Context(), workflowText, summary, req.Goal)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeDocument(w, filename, data)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	return true
}

func writeDocument(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
