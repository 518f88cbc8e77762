// Package datagen writes synthetic salary datasets in the CSV shape the
// loader reads: a job id, a title, a loosely formatted years-of-experience
// cell and a currency formatted salary.
package datagen

import (
	"errors"
	"fmt"
)

// Defaults used by the command line tool.
const (
	DefaultRows         = 500
	DefaultInvalidShare = 0.05
)

// ErrInvalidConfig is returned for configurations that cannot produce a dataset.
var ErrInvalidConfig = errors.New("invalid datagen config")

// Config holds generation settings.
type Config struct {
	Rows         int      // Number of data rows to write
	InvalidShare float64  // Fraction of rows that must fail normalisation, 0..1
	Seed         uint64   // Random seed; equal seeds give equal output apart from job ids
	Titles       []string // Title pool; DefaultTitles when empty
	Output       string   // Output path; "" or "-" writes to stdout
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("%w: rows must not be negative, got %d", ErrInvalidConfig, c.Rows)
	}
	if c.InvalidShare < 0 || c.InvalidShare > 1 {
		return fmt.Errorf("%w: invalid share must be within [0,1], got %g", ErrInvalidConfig, c.InvalidShare)
	}
	return nil
}

// Row is one line of the generated CSV.
type Row struct {
	JobID    string `csv:"job_id"`
	Title    string `csv:"job_title"`
	Years    string `csv:"years_experience"`
	Salary   string `csv:"salary_usd"`
	Location string `csv:"company_location"`
}

// Stats summarises a generated dataset.
type Stats struct {
	Rows     int
	Invalid  int
	ByReason map[string]int
}
