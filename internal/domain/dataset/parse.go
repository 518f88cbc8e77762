package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	numberPrefix = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)
	yearsRange   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-\x{2013}\x{2014}]\s*(\d+(?:\.\d+)?)`)
	yearsPlus    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+`)
	firstNumber  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	numberNoise  = strings.NewReplacer(
		"$", "", "€", "", "£", "", "¥", "", "₹", "", ",", "",
	)
)

// ParseNumberSafe converts a cell to a finite float. Numbers pass through;
// strings lose whitespace, currency symbols and commas before parsing. When
// the cleaned string is not a complete number its leading numeric prefix is
// used. The boolean is false when nothing usable remains.
func ParseNumberSafe(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := numberNoise.Replace(stripSpace(n))
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
		prefix := numberPrefix.FindString(s)
		if prefix == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

// ParseYearsExperience reads a years-of-experience cell. In priority order:
// numbers pass through, "a-b" ranges (hyphen, en or em dash) give the mean,
// "N+" gives N, otherwise the first embedded number is used.
func ParseYearsExperience(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return ParseNumberSafe(v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return finite(f)
	}
	if m := yearsRange.FindStringSubmatch(s); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return finite((lo + hi) / 2)
	}
	if m := yearsPlus.FindStringSubmatch(s); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		return finite(f)
	}
	if m := firstNumber.FindString(s); m != "" {
		f, _ := strconv.ParseFloat(m, 64)
		return finite(f)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
