package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/harness"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Seed a fixture and serve it until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cmd)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	return harness.Run(ctx, cfg, logger, func(h *harness.Harness) error {
		fmt.Fprintf(cmd.OutOrStdout(), "mockcanvas listening on %s\n", h.URL())
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		return nil
	})
}
