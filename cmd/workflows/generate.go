package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joestump/workflows/internal/config"
	"github.com/joestump/workflows/internal/workflow"
)

func newGenerateCmd() *cobra.Command {
	var (
		req     workflow.GoalRequest
		backend string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workflow for a goal and write it as a PDF",
		Example: `  workflows generate --goal "Launch an Etsy store" --role Entrepreneur
  workflows generate --goal "Plan a 3-day trip to Tokyo" --region "Osaka, Japan" --backend html --out ./plans`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if out != "" {
				if err := os.MkdirAll(out, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
				cfg.Render.Dir = out
			}
			pipeline, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cfg, backend)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := pipeline.Run(ctx, req)
			if err != nil {
				if errors.Is(err, workflow.ErrEmptyGoal) {
					return errors.New("--goal is required")
				}
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Goal: %s\n\n%s\n\n", res.GoalSummary, res.WorkflowText)

			doc, err := renderer.Render(ctx, res.WorkflowText, res.GoalSummary, req.Goal)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(doc.Path)
			if err != nil {
				path = doc.Path
			}
			fmt.Fprintf(w, "Wrote %s (%d bytes)\n", path, doc.Size)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Goal, "goal", "", "goal to plan (required)")
	cmd.Flags().StringVar(&req.Role, "role", "", "persona for the plan; see 'workflows roles' (default Generalist)")
	cmd.Flags().StringVar(&req.Region, "region", "", "user location for local costs and services")
	cmd.Flags().StringVar(&backend, "backend", "", "render backend: text or html (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "directory for the PDF (default from config)")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}
