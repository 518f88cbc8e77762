package dataset

import (
	"fmt"
	"strings"

	"github.com/okian/salaryscope/internal/domain/model"
)

// Column names read from every record besides the title column.
const (
	YearsColumn  = "years_experience"
	SalaryColumn = "salary_usd"
)

// Result is the outcome of normalising a raw table.
type Result struct {
	Samples     []model.JobSample
	TitleColumn string
	RowsRead    int
	Dropped     map[string]int
}

// Normalize keeps a record only when its trimmed title is non-empty and both
// numeric fields parse to finite non-negative numbers. Everything else is
// dropped and counted by reason; input order is preserved.
func Normalize(records []model.RawRecord, titleColumn string) Result {
	res := Result{
		Samples:     make([]model.JobSample, 0, len(records)),
		TitleColumn: titleColumn,
		RowsRead:    len(records),
		Dropped:     make(map[string]int),
	}
	for _, rec := range records {
		sample, reason := normalizeRecord(rec, titleColumn)
		if reason != "" {
			res.Dropped[reason]++
			continue
		}
		res.Samples = append(res.Samples, sample)
	}
	return res
}

func normalizeRecord(rec model.RawRecord, titleColumn string) (model.JobSample, string) {
	title := titleText(rec[titleColumn])
	if title == "" {
		return model.JobSample{}, model.DropMissingTitle
	}
	years, ok := ParseYearsExperience(rec[YearsColumn])
	if !ok {
		return model.JobSample{}, model.DropInvalidYears
	}
	salary, ok := ParseNumberSafe(rec[SalaryColumn])
	if !ok {
		return model.JobSample{}, model.DropInvalidSalary
	}
	if years < 0 || salary < 0 {
		return model.JobSample{}, model.DropNegative
	}
	return model.JobSample{JobTitle: title, YearsExperience: years, SalaryUSD: salary}, ""
}

func titleText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
