package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/workflows/internal/auth"
	"github.com/joestump/workflows/internal/build"
	"github.com/joestump/workflows/internal/config"
	"github.com/joestump/workflows/internal/handler"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pipeline, err := newPipeline(cfg)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cfg, "")
			if err != nil {
				return err
			}

			bearer := auth.NewBearerTokenMiddleware(cfg.API.Tokens)
			if !bearer.Enabled() {
				log.Printf("serve: no api tokens configured, /api/v1 is open")
			}

			srv := &http.Server{
				Addr: cfg.HTTP.Addr,
				Handler: handler.NewRouter(handler.Deps{
					SessionManager: handler.NewSessionManager(cfg.SessionLifetime, !cfg.InsecureCookies),
					Pipeline:       pipeline,
					Renderer:       renderer,
					BearerAuth:     bearer,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("workflows %s listening on %s (provider %s, render backend %s)",
					build.Version, cfg.HTTP.Addr, cfg.LLM.Provider, renderer.Backend())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
