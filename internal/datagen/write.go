package datagen

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/okian/salaryscope/pkg/logger"
)

const outputFilePermission = 0o644

// Write generates cfg.Rows rows and encodes them to w with a header line.
func Write(ctx context.Context, w io.Writer, cfg Config) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	rows, stats := NewGenerator(cfg).Generate(cfg.Rows, cfg.InvalidShare)

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if len(rows) == 0 {
		if err := enc.EncodeHeader(Row{}); err != nil {
			return stats, fmt.Errorf("encode header: %w", err)
		}
	}
	for i := range rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		if err := enc.Encode(rows[i]); err != nil {
			return stats, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("flush csv: %w", err)
	}
	return stats, nil
}

// Run writes the dataset to cfg.Output, or stdout when it is empty or "-".
func Run(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Get().Named("datagen")
	start := time.Now()

	out := io.Writer(os.Stdout)
	if cfg.Output != "" && cfg.Output != "-" {
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
		if err != nil {
			return Stats{}, fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Warn(ctx, "closing output failed", logger.Error(cerr))
			}
		}()
		out = f
	}

	stats, err := Write(ctx, out, cfg)
	if err != nil {
		log.Error(ctx, "dataset generation failed", logger.Error(err))
		return stats, err
	}
	log.Info(ctx, "dataset written",
		logger.String("output", cfg.Output),
		logger.Int("rows", stats.Rows),
		logger.Int("invalid", stats.Invalid),
		logger.Duration("took", time.Since(start)))
	return stats, nil
}
