package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflows_completions_total",
		Help: "Completion calls by pipeline stage and outcome.",
	}, []string{"stage", "status"})

	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workflows_completion_duration_seconds",
		Help:    "Latency of a single completion call.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"stage"})

	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflows_pipeline_runs_total",
		Help: "Workflow pipeline invocations by outcome.",
	}, []string{"status"})

	DocumentsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workflows_documents_rendered_total",
		Help: "Rendered documents by backend and outcome.",
	}, []string{"backend", "status"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workflows_render_duration_seconds",
		Help:    "Time to encode and write one document.",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"backend"})
)
