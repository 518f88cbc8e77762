package plot_test

import (
	"testing"

	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/plot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildScene(t *testing.T) {
	layout := plot.DefaultLayout(960, 540)
	samples := sampleSet()
	lo, hi, _ := dataset.SalaryExtent(samples)
	color := plot.Extent{Lo: lo, Hi: hi}

	Convey("Given an empty subset", t, func() {
		sc := plot.Build(nil, color, layout, plot.Identity, nil)

		So(sc.Empty, ShouldBeTrue)
		So(sc.Message, ShouldEqual, plot.NoDataMessage)
		So(sc.Points, ShouldBeEmpty)
		So(sc.XAxis.Ticks, ShouldBeEmpty)
	})

	Convey("Given the full working set", t, func() {
		sc := plot.Build(samples, color, layout, plot.Identity, nil)

		Convey("Then there is one marker per sample", func() {
			So(sc.Points, ShouldHaveLength, len(samples))
			for _, p := range sc.Points {
				So(p.R, ShouldEqual, plot.DefaultPointRadius)
				So(p.CX, ShouldBeBetweenOrEqual, 0, sc.InnerWidth)
				So(p.CY, ShouldBeBetweenOrEqual, 0, sc.InnerHeight)
			}
		})

		Convey("And the domains are the padded extents", func() {
			So(sc.BaseX.Lo, ShouldAlmostEqual, 1-0.88)
			So(sc.BaseX.Hi, ShouldAlmostEqual, 12+0.88)
			So(sc.BaseY.Lo, ShouldAlmostEqual, 60000-12000)
			So(sc.BaseY.Hi, ShouldAlmostEqual, 210000+12000)
		})

		Convey("And the axes carry their labels", func() {
			So(sc.XAxis.Label, ShouldEqual, plot.XAxisLabel)
			So(sc.YAxis.Label, ShouldEqual, plot.YAxisLabel)
			So(len(sc.YAxis.Ticks), ShouldBeGreaterThan, 1)
			So(sc.Gridlines, ShouldHaveLength, len(sc.YAxis.Ticks))
		})
	})

	Convey("Given a filter change", t, func() {
		all := plot.Build(samples, color, layout, plot.Identity, nil)
		ds := plot.Build(dataset.Filter(samples, "Data Scientist"), color, layout, plot.Identity, nil)

		Convey("Then the colour domain is unchanged", func() {
			So(ds.ColorDomain, ShouldResemble, all.ColorDomain)
			So(ds.Points[1].Fill, ShouldEqual, all.Points[1].Fill)
		})

		Convey("And the x/y domains follow the subset", func() {
			So(ds.BaseX.Lo, ShouldAlmostEqual, 1-0.24)
			So(ds.BaseX.Hi, ShouldAlmostEqual, 4+0.24)
			So(ds.BaseY.Hi, ShouldAlmostEqual, 120000+4800)
			So(ds.BaseX, ShouldNotResemble, all.BaseX)
		})
	})

	Convey("Given a hovered marker", t, func() {
		plain := plot.Build(samples, color, layout, plot.Identity, nil)
		target := plain.Points[1]
		idx := plot.HitTest(plain, target.CX+1, target.CY-1)
		So(idx, ShouldEqual, 1)

		sc := plot.Build(samples, color, layout, plot.Identity, &plot.Hover{Index: idx, PointerX: target.CX, PointerY: target.CY})

		Convey("Then it is drawn last and raised", func() {
			last := sc.Points[len(sc.Points)-1]
			So(last.Index, ShouldEqual, 1)
			So(last.Raised, ShouldBeTrue)
			So(sc.Points, ShouldHaveLength, len(samples))
		})

		Convey("And the tooltip sits next to the pointer", func() {
			So(sc.Tooltip, ShouldNotBeNil)
			So(sc.Tooltip.Text, ShouldEqual, "Data Scientist, Years: 4, $120,000")
			So(sc.Tooltip.X, ShouldEqual, layout.Margins.Left+target.CX+5)
			So(sc.Tooltip.Y, ShouldEqual, layout.Margins.Top+target.CY+5)
		})

		Convey("And hit testing prefers the raised marker", func() {
			So(plot.HitTest(sc, target.CX, target.CY), ShouldEqual, 1)
			So(plot.HitTest(sc, -50, -50), ShouldEqual, -1)
		})
	})

	Convey("Given a single sample", t, func() {
		one := []model.JobSample{{JobTitle: "Solo", YearsExperience: 0, SalaryUSD: 0}}
		sc := plot.Build(one, plot.Extent{}, layout, plot.Identity, nil)
		So(sc.Empty, ShouldBeFalse)
		So(sc.BaseX, ShouldResemble, plot.Extent{Lo: 0, Hi: 1})
		So(sc.Points[0].Fill, ShouldEqual, plot.NewColorScale(0, 0).Hex(0))
	})
}
