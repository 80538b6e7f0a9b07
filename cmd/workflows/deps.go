package main

import (
	"github.com/joestump/workflows/internal/config"
	"github.com/joestump/workflows/internal/llm"
	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/roles"
	"github.com/joestump/workflows/internal/workflow"
)

// newPipeline builds the completion client and pipeline from cfg.
func newPipeline(cfg *config.Config) (*workflow.Pipeline, error) {
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	client, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}
	return workflow.NewPipeline(client, roles.Default(), workflow.Options{
		SummaryModel:  cfg.LLM.SummaryModel,
		WorkflowModel: cfg.LLM.WorkflowModel,
		Timeout:       cfg.LLM.Timeout,
	}), nil
}

func newRenderer(cfg *config.Config, backend string) (*render.Renderer, error) {
	if backend == "" {
		backend = cfg.Render.Backend
	}
	return render.New(render.Options{
		Backend:         backend,
		Dir:             cfg.Render.Dir,
		Margin:          cfg.Render.Margin,
		Timeout:         cfg.Render.Timeout,
		WkhtmltopdfPath: cfg.Render.WkhtmltopdfPath,
	})
}
