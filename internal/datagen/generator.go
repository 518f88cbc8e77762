package datagen

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/okian/salaryscope/internal/domain/model"
)

// DefaultTitles is the title pool used when Config.Titles is empty.
var DefaultTitles = []string{ //nolint:gochecknoglobals // fixed title pool
	"Data Scientist",
	"Data Analyst",
	"Data Engineer",
	"Machine Learning Engineer",
	"Research Scientist",
	"Analytics Engineer",
	"Applied Scientist",
	"BI Developer",
}

var locations = []string{"US", "GB", "DE", "CA", "IN", "FR", "ES", "NL"} //nolint:gochecknoglobals // fixed pool

// Salary model constants.
const (
	baseSalaryMin   = 55000
	baseSalarySpan  = 45000
	salaryPerYear   = 6500
	salaryNoise     = 18000
	salaryFloor     = 20000
	maxYears        = 25
	seedStreamMixer = 0x9e3779b97f4a7c15
)

// Generator produces rows from a seeded source.
type Generator struct {
	rng    *rand.Rand
	titles []string
	base   map[string]float64
	newID  func() string
}

// NewGenerator returns a generator for cfg.
func NewGenerator(cfg Config) *Generator {
	titles := cfg.Titles
	if len(titles) == 0 {
		titles = DefaultTitles
	}
	g := &Generator{
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^seedStreamMixer)), //nolint:gosec // synthetic data
		titles: titles,
		base:   make(map[string]float64, len(titles)),
		newID:  uuid.NewString,
	}
	for _, t := range titles {
		g.base[t] = baseSalaryMin + g.rng.Float64()*baseSalarySpan
	}
	return g
}

// Generate returns n rows; exactly invalidCount(n, share) of them are
// invalid, at random positions.
func (g *Generator) Generate(n int, share float64) ([]Row, Stats) {
	stats := Stats{Rows: n, ByReason: make(map[string]int)}
	bad := make(map[int]bool)
	for _, i := range g.rng.Perm(n)[:invalidCount(n, share)] {
		bad[i] = true
	}

	rows := make([]Row, n)
	for i := range rows {
		rows[i] = g.valid()
		if bad[i] {
			reason := g.spoil(&rows[i])
			stats.Invalid++
			stats.ByReason[reason]++
		}
	}
	return rows, stats
}

func invalidCount(n int, share float64) int {
	k := int(math.Round(float64(n) * share))
	return min(max(k, 0), n)
}

func (g *Generator) valid() Row {
	title := g.titles[g.rng.IntN(len(g.titles))]
	years := g.rng.Float64() * maxYears
	salary := g.base[title] + years*salaryPerYear + (g.rng.Float64()*2-1)*salaryNoise
	salary = math.Max(salary, salaryFloor)
	return Row{
		JobID:    g.newID(),
		Title:    title,
		Years:    g.yearsText(years),
		Salary:   g.salaryText(salary),
		Location: locations[g.rng.IntN(len(locations))],
	}
}

// yearsText writes years in one of the formats seen in scraped postings.
func (g *Generator) yearsText(years float64) string {
	y := int(years)
	switch g.rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%d-%d", y, y+2)
	case 1:
		return fmt.Sprintf("%d+", y)
	case 2:
		return fmt.Sprintf("about %d years", y)
	case 3:
		return fmt.Sprintf("%.1f", years)
	default:
		return fmt.Sprintf("%d", y)
	}
}

func (g *Generator) salaryText(salary float64) string {
	v := int64(math.Round(salary))
	switch g.rng.IntN(3) {
	case 0:
		return "$" + humanize.Comma(v)
	case 1:
		return humanize.Comma(v)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// spoil breaks one field of r and returns the drop reason the loader will report.
func (g *Generator) spoil(r *Row) string {
	switch g.rng.IntN(4) {
	case 0:
		r.Title = "  "
		return model.DropMissingTitle
	case 1:
		r.Years = "n/a"
		return model.DropInvalidYears
	case 2:
		r.Salary = "competitive"
		return model.DropInvalidSalary
	default:
		r.Salary = "-" + r.Salary
		return model.DropNegative
	}
}
