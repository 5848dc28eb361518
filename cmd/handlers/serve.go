package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogforge/internal/analyze"
	"blogforge/internal/config"
	"blogforge/internal/fetch"
	"blogforge/internal/generate"
	"blogforge/internal/llm"
	"blogforge/internal/logger"
	"blogforge/internal/persona"
	"blogforge/internal/pipeline"
	"blogforge/internal/publish"
	"blogforge/internal/reference"
	"blogforge/internal/server"
	"blogforge/internal/store"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config, db *store.Store) (*pipeline.Pipeline, *publish.Client, error) {
	model, err := llm.NewClient(ctx, cfg.AI.Gemini)
	if err != nil {
		return nil, nil, err
	}

	fetcher := fetch.New(cfg.FetchTimeout(), cfg.Fetch.UserAgent)
	ftpClient := publish.NewClient(cfg.FTP)

	p := pipeline.New(
		db,
		analyze.NewAnalyzer(model, cfg.FetchTimeout()),
		generate.NewGenerator(model, persona.NewLoader(db), reference.NewAggregator(db, fetcher)),
		publish.NewDraftPublisher(ftpClient),
	)
	return p, ftpClient, nil
}

func runServe(ctx context.Context) error {
	cfg := config.Get()

	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	pipe, ftpClient, err := buildPipeline(ctx, cfg, db)
	if err != nil {
		return err
	}

	srv := server.New(db, ftpClient, pipe, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
