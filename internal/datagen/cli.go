package datagen

import "io"

// ShowHelp prints usage information for the datagen tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `SalaryScope Dataset Generator
=============================

Writes a synthetic job salary CSV that the scatter plot can load.

Usage:
  go run ./cmd/datagen [options]

Options:
  -rows int
        Number of data rows (default 500)
  -invalid float
        Share of rows that fail normalisation, 0..1 (default 0.05)
  -seed uint
        Random seed (default: current time)
  -titles string
        Comma separated title pool (default: built-in pool)
  -out string
        Output file, "-" for stdout (default "-")
  -help
        Show this help message

Examples:
  # 2000 rows with 10% invalid lines
  go run ./cmd/datagen -rows 2000 -invalid 0.1 -out jobs.csv

  # Reproducible dataset with a custom title pool
  go run ./cmd/datagen -seed 42 -titles "Data Scientist,Data Engineer"
`)
}
