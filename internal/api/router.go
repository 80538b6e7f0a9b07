package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/workflows/internal/auth"
	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/workflow"
)

// maxBodyBytes caps request bodies; a goal plus an edited workflow fits easily.
const maxBodyBytes = 1 << 20

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware
	Pipeline   *workflow.Pipeline
	Renderer   *render.Renderer
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// Responses are application/json except rendered documents.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)
	if deps.BearerAuth != nil {
		r.Use(deps.BearerAuth.Authenticate)
	}

	h := &workflowsAPIHandler{pipeline: deps.Pipeline, renderer: deps.Renderer}
	r.Get("/roles", h.ListRoles)
	r.Post("/workflows", h.Generate)
	r.Post("/workflows/document", h.Document)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "METHOD_NOT_ALLOWED")
	})
	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
