package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/okian/salaryscope/internal/domain/plot"
)

const (
	tickSize     = 6
	gridColor    = "#e5e5e5"
	axisColor    = "#333333"
	fontFamily   = "sans-serif"
	tooltipPadX  = 6
	tooltipH     = 22
	charWidthEst = 6.5
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SVG writes sc as a standalone SVG document.
func SVG(w io.Writer, sc plot.Scene) error {
	var b strings.Builder
	width, height := float64(sc.Width), float64(sc.Height)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s" font-size="11">`,
		sc.Width, sc.Height, sc.Width, sc.Height, fontFamily)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`, sc.Width, sc.Height)

	if sc.Empty {
		fmt.Fprintf(&b, `<text class="no-data" x="%s" y="%s" text-anchor="middle" font-size="14" fill="%s">%s</text>`,
			num(width/2), num(height/2), axisColor, html.EscapeString(sc.Message))
		b.WriteString(`</svg>`)
		_, err := io.WriteString(w, b.String())
		return err
	}

	m := sc.Margins
	fmt.Fprintf(&b, `<defs><clipPath id="plot-area"><rect width="%s" height="%s"/></clipPath></defs>`,
		num(sc.InnerWidth), num(sc.InnerHeight))
	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`, num(m.Left), num(m.Top))

	b.WriteString(`<g class="grid">`)
	for _, y := range sc.Gridlines {
		fmt.Fprintf(&b, `<line x1="0" x2="%s" y1="%s" y2="%s" stroke="%s"/>`, num(sc.InnerWidth), num(y), num(y), gridColor)
	}
	b.WriteString(`</g>`)

	writeXAxis(&b, sc)
	writeYAxis(&b, sc)

	b.WriteString(`<g class="points" clip-path="url(#plot-area)">`)
	for _, p := range sc.Points {
		stroke := ""
		if p.Raised {
			stroke = ` stroke="#000000" stroke-width="1.5"`
		}
		fmt.Fprintf(&b, `<circle data-index="%d" cx="%s" cy="%s" r="%s" fill="%s"%s/>`,
			p.Index, num(p.CX), num(p.CY), num(p.R), p.Fill, stroke)
	}
	b.WriteString(`</g></g>`)

	fmt.Fprintf(&b, `<text class="x-label" x="%s" y="%s" text-anchor="middle" font-weight="bold" font-size="12">%s</text>`,
		num(m.Left+sc.InnerWidth/2), num(height-10), html.EscapeString(sc.XAxis.Label))
	fmt.Fprintf(&b, `<text class="y-label" transform="rotate(-90)" x="%s" y="15" text-anchor="middle" font-weight="bold" font-size="12">%s</text>`,
		num(-m.Top-sc.InnerHeight/2), html.EscapeString(sc.YAxis.Label))

	if tt := sc.Tooltip; tt != nil {
		boxW := float64(len(tt.Text))*charWidthEst + 2*tooltipPadX
		fmt.Fprintf(&b, `<g class="tooltip" transform="translate(%s,%s)">`, num(tt.X), num(tt.Y))
		fmt.Fprintf(&b, `<rect width="%s" height="%d" rx="3" fill="#ffffff" stroke="#999999"/>`, num(boxW), tooltipH)
		fmt.Fprintf(&b, `<text x="%d" y="15">%s</text></g>`, tooltipPadX, html.EscapeString(tt.Text))
	}

	b.WriteString(`</svg>`)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeXAxis(b *strings.Builder, sc plot.Scene) {
	fmt.Fprintf(b, `<g class="x-axis" transform="translate(0,%s)">`, num(sc.InnerHeight))
	fmt.Fprintf(b, `<line x1="0" x2="%s" stroke="%s"/>`, num(sc.InnerWidth), axisColor)
	for _, t := range sc.XAxis.Ticks {
		fmt.Fprintf(b, `<g class="tick" transform="translate(%s,0)"><line y2="%d" stroke="%s"/><text y="%d" dy="0.71em" text-anchor="middle">%s</text></g>`,
			num(t.Pos), tickSize, axisColor, tickSize+3, html.EscapeString(t.Label))
	}
	b.WriteString(`</g>`)
}

func writeYAxis(b *strings.Builder, sc plot.Scene) {
	b.WriteString(`<g class="y-axis">`)
	fmt.Fprintf(b, `<line y1="0" y2="%s" stroke="%s"/>`, num(sc.InnerHeight), axisColor)
	for _, t := range sc.YAxis.Ticks {
		fmt.Fprintf(b, `<g class="tick" transform="translate(0,%s)"><line x2="-%d" stroke="%s"/><text x="-%d" dy="0.32em" text-anchor="end">%s</text></g>`,
			num(t.Pos), tickSize, axisColor, tickSize+3, html.EscapeString(t.Label))
	}
	b.WriteString(`</g>`)
}
