package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/okian/salaryscope/internal/domain/plot"
)

const raisedDotScale = 1.6

// PNG draws sc with go-chart. Empty scenes become a blank image carrying the
// no-data message.
func PNG(w io.Writer, sc plot.Scene) error {
	if sc.Empty {
		return png.Encode(w, placeholder(sc.Width, sc.Height, sc.Message))
	}

	colors := plot.ColorScale{Domain: sc.ColorDomain}
	xd, yd := sc.XAxis.Domain, sc.YAxis.Domain

	var xs, ys []float64
	var fills []drawing.Color
	var raised *plot.Point
	for i := range sc.Points {
		p := sc.Points[i]
		s := p.Sample
		if s.YearsExperience < xd.Lo || s.YearsExperience > xd.Hi || s.SalaryUSD < yd.Lo || s.SalaryUSD > yd.Hi {
			continue
		}
		if p.Raised {
			raised = &p
			continue
		}
		xs = append(xs, s.YearsExperience)
		ys = append(ys, s.SalaryUSD)
		fills = append(fills, colors.Color(s.SalaryUSD))
	}

	series := []chart.Series{
		// frame keeps the ranges fixed even when no marker is visible
		chart.ContinuousSeries{
			Name:    "frame",
			Style:   chart.Style{StrokeWidth: chart.Disabled},
			XValues: []float64{xd.Lo, xd.Hi},
			YValues: []float64{yd.Lo, yd.Hi},
		},
	}
	if len(xs) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "samples",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    sc.Points[0].R,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return fills[index]
				},
			},
			XValues: xs,
			YValues: ys,
		})
	}
	if raised != nil {
		series = append(series, chart.ContinuousSeries{
			Name: "hover",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    raised.R * raisedDotScale,
				DotColor:    colors.Color(raised.Sample.SalaryUSD),
			},
			XValues: []float64{raised.Sample.YearsExperience},
			YValues: []float64{raised.Sample.SalaryUSD},
		})
	}

	gridLines := make([]chart.GridLine, len(sc.YAxis.Ticks))
	for i, t := range sc.YAxis.Ticks {
		gridLines[i] = chart.GridLine{Value: t.Value}
	}

	ch := chart.Chart{
		Width:  sc.Width,
		Height: sc.Height,
		Background: chart.Style{Padding: chart.Box{
			Top:    int(sc.Margins.Top),
			Right:  int(sc.Margins.Right),
			Bottom: 10,
			Left:   10,
		}},
		XAxis: chart.XAxis{
			Name:  sc.XAxis.Label,
			Range: &chart.ContinuousRange{Min: xd.Lo, Max: xd.Hi},
			Ticks: chartTicks(sc.XAxis.Ticks),
		},
		YAxis: chart.YAxis{
			Name:           sc.YAxis.Label,
			Range:          &chart.ContinuousRange{Min: yd.Lo, Max: yd.Hi},
			Ticks:          chartTicks(sc.YAxis.Ticks),
			GridLines:      gridLines,
			GridMajorStyle: chart.Style{StrokeColor: drawing.ColorFromHex("e5e5e5"), StrokeWidth: 1},
		},
		Series: series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func chartTicks(ticks []plot.Tick) []chart.Tick {
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// placeholder draws msg centred on a white canvas.
func placeholder(width, height int, msg string) image.Image {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}), Face: face}
	tw := dr.MeasureString(msg).Ceil()
	x := max(0, (width-tw)/2)
	y := height/2 + face.Metrics().Ascent.Ceil()/2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(msg)
	return img
}
