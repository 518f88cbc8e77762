package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/okian/salaryscope/internal/adapters/render"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	. "github.com/smartystreets/goconvey/convey"
)

func testScene(hover *plot.Hover) plot.Scene {
	samples := []model.JobSample{
		{JobTitle: "Data Scientist", YearsExperience: 1, SalaryUSD: 60000},
		{JobTitle: "R&D <Lead>", YearsExperience: 6, SalaryUSD: 150000},
		{JobTitle: "ML Engineer", YearsExperience: 10, SalaryUSD: 210000},
	}
	return plot.Build(samples, plot.Extent{Lo: 60000, Hi: 210000}, plot.DefaultLayout(640, 400), plot.Identity, hover)
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := render.ParseFormat(" SVG ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, render.FormatSVG)
		So(f.ContentType(), ShouldEqual, "image/svg+xml")
		So(render.FormatPNG.ContentType(), ShouldEqual, "image/png")
		So(render.FormatJSON.ContentType(), ShouldEqual, "application/json")

		_, err = render.ParseFormat("gif")
		So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestSVG(t *testing.T) {
	Convey("Given a populated scene", t, func() {
		var buf bytes.Buffer
		So(render.SVG(&buf, testScene(nil)), ShouldBeNil)
		out := buf.String()

		Convey("Then it draws markers, axes and gridlines", func() {
			So(strings.HasPrefix(out, "<svg"), ShouldBeTrue)
			So(strings.HasSuffix(out, "</svg>"), ShouldBeTrue)
			So(strings.Count(out, "<circle"), ShouldEqual, 3)
			So(out, ShouldContainSubstring, "Years of Experience")
			So(out, ShouldContainSubstring, "Salary (USD)")
			So(out, ShouldContainSubstring, `class="grid"`)
			So(out, ShouldContainSubstring, "200,000")
			So(out, ShouldNotContainSubstring, "tooltip")
		})
	})

	Convey("Given a hovered scene", t, func() {
		var buf bytes.Buffer
		sc := testScene(&plot.Hover{Index: 1, PointerX: 100, PointerY: 100})
		So(render.SVG(&buf, sc), ShouldBeNil)

		Convey("Then the tooltip text is escaped", func() {
			So(buf.String(), ShouldContainSubstring, `class="tooltip"`)
			So(buf.String(), ShouldContainSubstring, "R&amp;D &lt;Lead&gt;, Years: 6, $150,000")
			So(buf.String(), ShouldContainSubstring, `stroke-width="1.5"`)
		})
	})

	Convey("Given an empty scene", t, func() {
		var buf bytes.Buffer
		sc := plot.Build(nil, plot.Extent{}, plot.DefaultLayout(640, 400), plot.Identity, nil)
		So(render.SVG(&buf, sc), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, plot.NoDataMessage)
		So(buf.String(), ShouldNotContainSubstring, "<circle")
	})
}

func TestPNG(t *testing.T) {
	Convey("Given a populated scene", t, func() {
		var buf bytes.Buffer
		So(render.PNG(&buf, testScene(&plot.Hover{Index: 0})), ShouldBeNil)

		img, err := png.Decode(&buf)
		So(err, ShouldBeNil)
		So(img.Bounds().Dx(), ShouldEqual, 640)
		So(img.Bounds().Dy(), ShouldEqual, 400)
	})

	Convey("Given a zoomed scene with nothing visible", t, func() {
		samples := []model.JobSample{{JobTitle: "A", YearsExperience: 1, SalaryUSD: 10}, {JobTitle: "B", YearsExperience: 9, SalaryUSD: 90}}
		l := plot.DefaultLayout(640, 400)
		tr := plot.DefaultZoom().ZoomAt(plot.Identity, 10, l.InnerWidth()/2, l.InnerHeight()/2, l.InnerWidth(), l.InnerHeight())
		sc := plot.Build(samples, plot.Extent{Lo: 10, Hi: 90}, l, tr, nil)

		var buf bytes.Buffer
		So(render.PNG(&buf, sc), ShouldBeNil)
	})

	Convey("Given an empty scene", t, func() {
		var buf bytes.Buffer
		sc := plot.Build(nil, plot.Extent{}, plot.DefaultLayout(320, 200), plot.Identity, nil)
		So(render.PNG(&buf, sc), ShouldBeNil)

		img, err := png.Decode(&buf)
		So(err, ShouldBeNil)
		So(img.Bounds().Dx(), ShouldEqual, 320)
	})
}

func TestEncodeJSON(t *testing.T) {
	Convey("Given a scene encoded as JSON", t, func() {
		var buf bytes.Buffer
		So(render.Encode(&buf, render.FormatJSON, testScene(nil)), ShouldBeNil)

		var decoded plot.Scene
		So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
		So(decoded.Points, ShouldHaveLength, 3)
		So(decoded.XAxis.Label, ShouldEqual, plot.XAxisLabel)

		So(errors.Is(render.Encode(&buf, "bmp", testScene(nil)), render.ErrUnknownFormat), ShouldBeTrue)
	})
}
