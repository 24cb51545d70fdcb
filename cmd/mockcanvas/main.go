package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/mockcanvas/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mockcanvas",
		Short: "Stateful fake LMS backend for integration tests",
		Long: `mockcanvas seeds an in-memory LMS fixture and serves it over HTTP.

Configuration is read from MOCKCANVAS_* environment variables and an
optional .env file, for example MOCKCANVAS_APP_PORT=8089 or
MOCKCANVAS_FIXTURE_STUDENT_COUNT=3.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newDumpCmd())
	return root
}

func newLogger(w io.Writer, cfg config.Config) zerolog.Logger {
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Str("app", cfg.AppName).Logger()
}
