package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/salaryscope/internal/datagen"
	"github.com/okian/salaryscope/pkg/logger"
)

func main() {
	var (
		rows    = flag.Int("rows", datagen.DefaultRows, "Number of data rows")
		invalid = flag.Float64("invalid", datagen.DefaultInvalidShare, "Share of rows that fail normalisation")
		seed    = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed") //nolint:gosec // non-negative clock
		titles  = flag.String("titles", "", "Comma separated title pool")
		out     = flag.String("out", "-", "Output file, - for stdout")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		datagen.ShowHelp(os.Stdout)
		return
	}

	// Logs go to stderr so stdout can carry the CSV.
	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := datagen.Config{
		Rows:         *rows,
		InvalidShare: *invalid,
		Seed:         *seed,
		Titles:       splitTitles(*titles),
		Output:       *out,
	}
	if _, err := datagen.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("datagen failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
}

func splitTitles(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
