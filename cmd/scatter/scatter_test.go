package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const testCSV = `job_title,years_experience,salary_usd
Data Scientist,3-5,"$120,000"
AI Research Scientist,10+,185000
AI Research Scientist,4,150000
Data Scientist,n/a,99000
`

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScatterCommands(t *testing.T) {
	convey.Convey("Given a dataset on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "jobs.csv")
		convey.So(os.WriteFile(path, []byte(testCSV), 0o600), convey.ShouldBeNil)

		convey.Convey("When listing the catalog", func() {
			out, err := execute("catalog", "--dataset", path)

			convey.Convey("Then titles and drop counts are printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "outcome:  loaded")
				convey.So(out, convey.ShouldContainSubstring, "3 kept, 1 dropped")
				convey.So(out, convey.ShouldContainSubstring, "default AI Research Scientist")
				convey.So(out, convey.ShouldContainSubstring, "  Data Scientist")
			})
		})

		convey.Convey("When listing the catalog as JSON", func() {
			out, err := execute("catalog", "--dataset", path, "--json")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, `"default": "AI Research Scientist"`)
		})

		convey.Convey("When rendering SVG to stdout", func() {
			out, err := execute("render", "--dataset", path, "--title", "Data Scientist", "--width", "640", "--height", "400")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldStartWith, "<svg")
			convey.So(out, convey.ShouldContainSubstring, "Years of Experience")
		})

		convey.Convey("When rendering PNG to a file", func() {
			png := filepath.Join(dir, "plot.png")
			_, err := execute("render", "--dataset", path, "--format", "png", "--out", png)
			convey.So(err, convey.ShouldBeNil)

			data, err := os.ReadFile(png)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data[:8]), convey.ShouldEqual, "\x89PNG\r\n\x1a\n")
		})

		convey.Convey("When zooming past the configured maximum", func() {
			t.Setenv("SALARYSCOPE_ZOOM_MAX", "3")
			out, err := execute("render", "--dataset", path, "--format", "json", "--zoom", "50")
			convey.So(err, convey.ShouldBeNil)

			var sc struct {
				Transform struct {
					K float64 `json:"k"`
				} `json:"transform"`
			}
			convey.So(json.Unmarshal([]byte(out), &sc), convey.ShouldBeNil)
			convey.So(sc.Transform.K, convey.ShouldEqual, 3)
		})

		convey.Convey("When the surface exceeds the cap", func() {
			_, err := execute("render", "--dataset", path, "--width", "100000")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the format is unknown", func() {
			_, err := execute("render", "--dataset", path, "--format", "gif")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a dataset that does not exist", t, func() {
		out, err := execute("catalog", "--dataset", filepath.Join(t.TempDir(), "missing.csv"))

		convey.Convey("Then the fallback titles are listed", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "outcome:  failed")
			convey.So(out, convey.ShouldContainSubstring, "titles (fallback):")
			convey.So(out, convey.ShouldContainSubstring, "AI Software Engineer")
		})
	})
}
