package plot_test

import (
	"regexp"
	"testing"

	"github.com/okian/salaryscope/internal/domain/plot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLinearScale(t *testing.T) {
	Convey("Given a linear scale", t, func() {
		s := plot.NewLinear(0, 100, 0, 500)

		So(s.Map(50), ShouldEqual, 250)
		So(s.Invert(250), ShouldEqual, 50)
		So(s.Invert(s.Map(37)), ShouldAlmostEqual, 37)

		Convey("An inverted range maps upward", func() {
			y := plot.NewLinear(0, 10, 400, 0)
			So(y.Map(0), ShouldEqual, 400)
			So(y.Map(10), ShouldEqual, 0)
		})

		Convey("A collapsed domain maps to the middle of the range", func() {
			So(plot.NewLinear(3, 3, 0, 100).Map(3), ShouldEqual, 50)
		})
	})
}

func TestTicks(t *testing.T) {
	Convey("Given tick requests", t, func() {
		So(plot.Ticks(0, 10, 5), ShouldResemble, []float64{0, 2, 4, 6, 8, 10})
		So(plot.Ticks(0, 1, 5), ShouldResemble, []float64{0, 0.2, 0.4, 0.6, 0.8, 1})
		So(plot.Ticks(52000, 218000, 5), ShouldResemble, []float64{100000, 150000, 200000})
		So(plot.Ticks(10, 0, 5), ShouldResemble, []float64{10, 8, 6, 4, 2, 0})
		So(plot.Ticks(3, 3, 5), ShouldResemble, []float64{3})
		So(plot.Ticks(0, 10, 0), ShouldBeNil)
	})
}

func TestPaddedExtent(t *testing.T) {
	Convey("Given value sets", t, func() {
		Convey("The range is padded by 8 percent", func() {
			e := plot.PaddedExtent([]float64{1, 11}, plot.DefaultPadFraction)
			So(e.Lo, ShouldAlmostEqual, 0.2)
			So(e.Hi, ShouldAlmostEqual, 11.8)
		})
		Convey("The lower bound is clamped at zero", func() {
			e := plot.PaddedExtent([]float64{0, 10}, plot.DefaultPadFraction)
			So(e.Lo, ShouldEqual, 0)
			So(e.Hi, ShouldAlmostEqual, 10.8)
		})
		Convey("A zero range is padded by 5 percent of the max", func() {
			e := plot.PaddedExtent([]float64{100000, 100000}, plot.DefaultPadFraction)
			So(e.Lo, ShouldAlmostEqual, 95000)
			So(e.Hi, ShouldAlmostEqual, 105000)
		})
		Convey("A zero range at zero is padded by one unit", func() {
			So(plot.PaddedExtent([]float64{0}, plot.DefaultPadFraction), ShouldResemble, plot.Extent{Lo: 0, Hi: 1})
		})
		Convey("No values yields the unit interval", func() {
			So(plot.PaddedExtent(nil, plot.DefaultPadFraction), ShouldResemble, plot.Extent{Lo: 0, Hi: 1})
		})
	})
}

func TestColorScale(t *testing.T) {
	Convey("Given a colour scale", t, func() {
		c := plot.NewColorScale(0, 100)
		hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)

		So(c.Position(50), ShouldEqual, 0.5)
		So(c.Position(-10), ShouldEqual, 0)
		So(c.Position(1000), ShouldEqual, 1)
		So(hex.MatchString(c.Hex(40)), ShouldBeTrue)
		So(c.Hex(0), ShouldNotEqual, c.Hex(100))
		So(plot.NewColorScale(5, 5).Position(5), ShouldEqual, 0.5)
	})
}

func TestLayout(t *testing.T) {
	Convey("Given the default layout", t, func() {
		l := plot.DefaultLayout(960, 540)

		So(l.InnerWidth(), ShouldEqual, 870)
		So(l.InnerHeight(), ShouldEqual, 470)
		So(l.Valid(), ShouldBeTrue)
		So(l.TickCount(100), ShouldEqual, 2)
		So(l.TickCount(400), ShouldEqual, 5)
		So(l.TickCount(2000), ShouldEqual, 10)
		So(plot.DefaultLayout(50, 40).Valid(), ShouldBeFalse)
	})
}

func TestFormat(t *testing.T) {
	Convey("Given values to label", t, func() {
		So(plot.FormatValue(120000), ShouldEqual, "120,000")
		So(plot.FormatValue(2.5), ShouldEqual, "2.5")
		So(plot.FormatValue(0.30000000000000004), ShouldEqual, "0.3")
		So(plot.TooltipText("Data Scientist", 4, 120000), ShouldEqual, "Data Scientist, Years: 4, $120,000")
	})
}
