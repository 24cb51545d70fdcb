package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
)

func newDumpCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Seed a fixture and print its users, tokens and courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), cfg), cfg, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func dump(w io.Writer, logger zerolog.Logger, cfg config.Config, format string) error {
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	canvas, err := mockcanvas.Init(cfg.Fixture, cfg.CanvasOptions(logger))
	if err != nil {
		return err
	}
	summary := canvas.Summary()

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return err
	}
	return enc.Close()
}
