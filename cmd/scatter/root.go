package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/adapters/repository"
	"github.com/okian/salaryscope/internal/config"
	"github.com/okian/salaryscope/pkg/logger"
)

type rootOptions struct {
	dataset  string
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Salary vs experience scatter plot from the command line",
		Long: `scatter loads a job salary CSV (local path or http(s) URL), normalises it
and renders the salary vs years of experience scatter plot as SVG, PNG or a
JSON scene, or opens it in an interactive terminal explorer.

Configuration follows the server: defaults, then SALARYSCOPE_CONFIG, then
SALARYSCOPE_* environment variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.dataset, "dataset", "d", "", "CSV path or URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(newRenderCmd(opts), newCatalogCmd(opts), newExploreCmd(opts))
	return cmd
}

func (o *rootOptions) init(ctx context.Context) error {
	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		return err
	}
	if err := logger.SetLevelString(o.logLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if o.dataset != "" {
		cfg.Dataset = o.dataset
	}
	o.cfg = cfg
	return nil
}

// load runs the same load pipeline as the server and returns the working set.
func (o *rootOptions) load(ctx context.Context) (*app.Service, *repository.Snapshot) {
	svc := app.New(app.OptionsFromConfig(o.cfg)...)
	svc.Load(ctx)
	return svc, svc.Snapshot(ctx)
}
