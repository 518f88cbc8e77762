// Package render encodes plot scenes as SVG, PNG or JSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/salaryscope/internal/domain/plot"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported formats.
var ErrUnknownFormat = errors.New("unknown render format")

// ParseFormat accepts svg, png or json in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// Encode writes sc to w in format f.
func Encode(w io.Writer, f Format, sc plot.Scene) error {
	switch f {
	case FormatSVG:
		return SVG(w, sc)
	case FormatPNG:
		return PNG(w, sc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
