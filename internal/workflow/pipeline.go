package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/workflows/internal/llm"
	"github.com/joestump/workflows/internal/metrics"
	"github.com/joestump/workflows/internal/prompt"
	"github.com/joestump/workflows/internal/roles"
)

const (
	defaultModel   = "gpt-4o"
	defaultTimeout = 2 * time.Minute
)

// Options parameterizes a Pipeline. Zero fields take defaults.
type Options struct {
	SummaryModel  string
	WorkflowModel string
	// Timeout bounds both completion calls of one Run.
	Timeout time.Duration
}

// Pipeline runs the summary and workflow completion calls for a goal.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	client   llm.Completer
	catalog  *roles.Catalog
	opts     Options
	validate *validator.Validate
}

// NewPipeline creates a Pipeline. A nil catalog selects roles.Default().
func NewPipeline(client llm.Completer, catalog *roles.Catalog, opts Options) *Pipeline {
	if catalog == nil {
		catalog = roles.Default()
	}
	if opts.SummaryModel == "" {
		opts.SummaryModel = defaultModel
	}
	if opts.WorkflowModel == "" {
		opts.WorkflowModel = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Pipeline{client: client, catalog: catalog, opts: opts, validate: v}
}

// Catalog returns the role catalog the pipeline resolves personas from.
func (p *Pipeline) Catalog() *roles.Catalog { return p.catalog }

// Run validates req, resolves its persona and issues both completion calls
// concurrently. An unknown role fails before any call is made.
func (p *Pipeline) Run(ctx context.Context, req GoalRequest) (*Result, error) {
	start := time.Now()
	res, err := p.run(ctx, req)
	status := "ok"
	if err != nil {
		status = errorStatus(err)
	}
	metrics.PipelineRunsTotal.WithLabelValues(status).Inc()
	if err != nil {
		log.Printf("workflow: run failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
	}
	return res, err
}

func (p *Pipeline) run(ctx context.Context, req GoalRequest) (*Result, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, ErrEmptyGoal
	}
	role := req.Role
	if role == "" {
		role = roles.Generalist
	}
	persona, err := p.catalog.Lookup(role)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	var summary, workflowText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := p.complete(gctx, StageSummary, p.opts.SummaryModel, SummarySystemPrompt, prompt.BuildSummaryPrompt(req.Goal))
		if err != nil {
			return err
		}
		summary = strings.TrimSpace(text)
		return nil
	})
	g.Go(func() error {
		text, err := p.complete(gctx, StageWorkflow, p.opts.WorkflowModel, WorkflowSystemPrompt, prompt.BuildWorkflowPrompt(persona, req.Goal, req.Region))
		if err != nil {
			return err
		}
		workflowText = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{WorkflowText: workflowText, GoalSummary: summary}, nil
}

func (p *Pipeline) complete(ctx context.Context, stage, model, system, user string) (string, error) {
	start := time.Now()
	text, err := p.client.Complete(ctx, model, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	})
	metrics.CompletionDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrNoChoices
	}
	if err != nil {
		// A sibling failure cancels gctx; surface the caller's deadline instead.
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		metrics.CompletionsTotal.WithLabelValues(stage, "error").Inc()
		return "", &CompletionError{Stage: stage, Err: err}
	}
	metrics.CompletionsTotal.WithLabelValues(stage, "ok").Inc()
	return text, nil
}

func errorStatus(err error) string {
	var completionErr *CompletionError
	switch {
	case errors.Is(err, ErrEmptyGoal):
		return "invalid"
	case errors.Is(err, roles.ErrUnknownRole):
		return "unknown_role"
	case errors.As(err, &completionErr) && errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &completionErr):
		return "completion_error"
	default:
		return "error"
	}
}
