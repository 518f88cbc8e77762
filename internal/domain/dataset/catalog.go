package dataset

import (
	"slices"
	"strings"

	"github.com/okian/salaryscope/internal/domain/model"
)

// FallbackTitles populate the filter control when no dataset is available.
var FallbackTitles = []string{"AI Research Scientist", "AI Software Engineer", "Data Scientist"} //nolint:gochecknoglobals // built-in list

// BuildCatalog returns the distinct titles sorted ascending.
func BuildCatalog(samples []model.JobSample) []string {
	seen := make(map[string]struct{}, len(samples))
	out := make([]string, 0)
	for _, s := range samples {
		if _, ok := seen[s.JobTitle]; ok {
			continue
		}
		seen[s.JobTitle] = struct{}{}
		out = append(out, s.JobTitle)
	}
	slices.Sort(out)
	return out
}

// DefaultSelection picks preferred when the catalog holds it, otherwise ALL.
func DefaultSelection(catalog []string, preferred string) model.Selection {
	if preferred != "" && slices.Contains(catalog, preferred) {
		return model.Selection(preferred)
	}
	return model.AllTitles
}

// Filter returns the samples matching sel. ALL returns the input unchanged.
func Filter(samples []model.JobSample, sel model.Selection) []model.JobSample {
	if sel.IsAll() {
		return samples
	}
	out := make([]model.JobSample, 0)
	for _, s := range samples {
		if s.JobTitle == string(sel) {
			out = append(out, s)
		}
	}
	return out
}

// SalaryExtent returns the min and max salary. ok is false for no samples.
func SalaryExtent(samples []model.JobSample) (lo, hi float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}
	lo, hi = samples[0].SalaryUSD, samples[0].SalaryUSD
	for _, s := range samples[1:] {
		lo = min(lo, s.SalaryUSD)
		hi = max(hi, s.SalaryUSD)
	}
	return lo, hi, true
}

// Suggest returns catalog entries containing query, case-insensitively, in
// catalog order. An empty query yields nothing. limit <= 0 means no limit.
func Suggest(catalog []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}
	out := make([]string, 0)
	for _, title := range catalog {
		if strings.Contains(strings.ToLower(title), q) {
			out = append(out, title)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
