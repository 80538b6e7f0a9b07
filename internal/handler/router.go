package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/workflows/internal/api"
	"github.com/joestump/workflows/internal/auth"
	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/workflow"
	"github.com/joestump/workflows/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Pipeline       *workflow.Pipeline
	Renderer       *render.Renderer
	BearerAuth     *auth.BearerTokenMiddleware
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Use fs.Sub so the file server sees css/app.css directly.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(staticSub))))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// The JSON API carries no browser session.
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		BearerAuth: deps.BearerAuth,
		Pipeline:   deps.Pipeline,
		Renderer:   deps.Renderer,
	}))

	wf := NewWorkflowHandler(deps.Pipeline, deps.Renderer, deps.SessionManager)
	theme := NewThemeHandler()
	r.Group(func(r chi.Router) {
		r.Use(deps.SessionManager.LoadAndSave)
		r.Get("/", wf.Index)
		r.Post("/generate", wf.Generate)
		r.Get("/download", wf.Download)
		r.Post("/reset", wf.Reset)
		r.Post("/theme", theme.Toggle)
	})

	return r
}
