package plot

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatValue renders v with thousands separators, trimming float noise
// left over from tick arithmetic.
func FormatValue(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop negative zero
	}
	return humanize.Commaf(v)
}

// FormatYears renders a years value for axes and tooltips.
func FormatYears(v float64) string {
	return FormatValue(v)
}

// TooltipText describes a sample the way the tooltip shows it.
func TooltipText(title string, years, salary float64) string {
	return fmt.Sprintf("%s, Years: %s, $%s", title, FormatYears(years), FormatValue(salary))
}
