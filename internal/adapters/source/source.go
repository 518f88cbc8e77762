// Package source reads the job dataset from a local file or an HTTP URL.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
)

// Default source configuration constants.
const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 256 << 20
)

// Sentinel kinds for source errors.
var (
	ErrFetch     = errors.New("fetch dataset")
	ErrNoHeader  = errors.New("dataset has no header row")
	ErrMalformed = errors.New("malformed csv")
)

// Table is a parsed CSV with auto-typed cells.
type Table struct {
	Source    string
	Headers   []string
	Records   []model.RawRecord
	Malformed int
}

// usedColumns are the numeric columns the normaliser reads.
type usedColumns struct {
	Years  *string `csv:"years_experience"`
	Salary *string `csv:"salary_usd"`
}

// apply stores the decoded cells in rec, auto-typed. Columns missing from the
// header decode to nil and leave rec untouched.
func (u usedColumns) apply(rec model.RawRecord) {
	if u.Years != nil {
		rec[dataset.YearsColumn] = AutoType(*u.Years)
	}
	if u.Salary != nil {
		rec[dataset.SalaryColumn] = AutoType(*u.Salary)
	}
}

// Loader opens dataset locations.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout bounds a single load.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithHTTPClient overrides the client used for URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{client: http.DefaultClient, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the dataset at location.
func (l *Loader) Load(ctx context.Context, location string) (Table, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rc, err := l.Open(ctx, location)
	if err != nil {
		return Table{Source: location}, err
	}
	defer func() { _ = rc.Close() }()

	t, err := ReadCSV(rc)
	t.Source = location
	return t, err
}

// Open returns a reader for a path or an http(s) URL.
func (l *Loader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrFetch)
	}
	if !isURL(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, location, resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxBodyBytes), resp.Body}, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ReadCSV decodes r. The header row is trimmed (BOM and spaces) before
// csvutil maps it, the numeric columns come from the decoded row and every
// other column from the raw record. Rows whose field count differs from the
// header are skipped and counted as malformed.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	raw, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrNoHeader
		}
		return Table{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	headers := cleanHeaders(raw)

	dec, err := csvutil.NewDecoder(cr, headers...)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	t := Table{Headers: headers, Records: make([]model.RawRecord, 0)}
	for {
		var row usedColumns
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) || len(dec.Record()) == len(headers) {
				return t, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			t.Malformed++
			continue
		}
		rec := toRawRecord(headers, dec.Record())
		row.apply(rec)
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func cleanHeaders(h []string) []string {
	out := make([]string, len(h))
	for i, name := range h {
		out[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}
	return out
}

func toRawRecord(headers, values []string) model.RawRecord {
	rec := make(model.RawRecord, len(headers))
	for i, name := range headers {
		if i < len(values) {
			rec[name] = AutoType(values[i])
		} else {
			rec[name] = nil
		}
	}
	return rec
}

// AutoType converts a cell: empty becomes nil, a float literal becomes a
// float64, anything else stays a string.
func AutoType(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return cell
}
