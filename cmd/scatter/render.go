package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	"github.com/okian/salaryscope/internal/domain/session"
)

type renderOptions struct {
	title  string
	format string
	out    string
	width  int
	height int
	zoom   float64
	x, y   float64
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the plot to a file or stdout",
		Example: `  scatter render --title "Data Scientist" --format png --out ds.png
  scatter render --format json --zoom 2 --x -100 --y -50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.title, "title", "t", "", "job title to plot; ALL for every title (default: configured preferred title)")
	f.StringVarP(&opts.format, "format", "f", string(render.FormatSVG), "output format: svg, png or json")
	f.StringVarP(&opts.out, "out", "o", "-", "output file; - for stdout")
	f.IntVar(&opts.width, "width", 0, "surface width in pixels (default: plot_width)")
	f.IntVar(&opts.height, "height", 0, "surface height in pixels (default: plot_height)")
	f.Float64Var(&opts.zoom, "zoom", 1, "zoom scale factor")
	f.Float64Var(&opts.x, "x", 0, "zoom translation x")
	f.Float64Var(&opts.y, "y", 0, "zoom translation y")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	_, snap := root.load(ctx)

	sel := snap.Default
	if opts.title != "" {
		sel = model.Selection(opts.title)
	}
	width, height := opts.width, opts.height
	if width <= 0 {
		width = root.cfg.PlotWidth
	}
	if height <= 0 {
		height = root.cfg.PlotHeight
	}

	machine := session.NewMachine(app.MachineOptionsFromConfig(root.cfg)...)
	st, err := machine.Start("cli", sel, width, height, snap.Data)
	if err != nil {
		return err
	}
	sc := machine.Preview(st, snap.Data, plot.Transform{K: opts.zoom, X: opts.x, Y: opts.y})

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := render.Encode(w, format, sc); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if opts.out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d points, selection %s)\n", opts.out, len(sc.Points), sel)
	}
	return nil
}
