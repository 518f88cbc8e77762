package datagen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/salaryscope/internal/adapters/source"
	"github.com/okian/salaryscope/internal/domain/dataset"
	"github.com/okian/salaryscope/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		cfg := Config{Rows: 200, InvalidShare: 0.1, Seed: 7}

		Convey("It marks the requested share of rows invalid", func() {
			rows, stats := NewGenerator(cfg).Generate(cfg.Rows, cfg.InvalidShare)
			So(rows, ShouldHaveLength, 200)
			So(stats.Invalid, ShouldEqual, 20)
			total := 0
			for _, n := range stats.ByReason {
				total += n
			}
			So(total, ShouldEqual, 20)
		})

		Convey("Equal seeds give equal rows apart from job ids", func() {
			a, _ := NewGenerator(cfg).Generate(50, 0.2)
			b, _ := NewGenerator(cfg).Generate(50, 0.2)
			for i := range a {
				a[i].JobID, b[i].JobID = "", ""
			}
			So(a, ShouldResemble, b)
		})

		Convey("Job ids are unique", func() {
			rows, _ := NewGenerator(cfg).Generate(100, 0)
			seen := make(map[string]bool)
			for _, r := range rows {
				So(seen[r.JobID], ShouldBeFalse)
				seen[r.JobID] = true
			}
		})

		Convey("A custom title pool is honoured", func() {
			rows, _ := NewGenerator(Config{Seed: 1, Titles: []string{"Quant"}}).Generate(10, 0)
			for _, r := range rows {
				So(r.Title, ShouldEqual, "Quant")
			}
		})
	})

	Convey("invalidCount clamps to the row count", t, func() {
		So(invalidCount(10, 0), ShouldEqual, 0)
		So(invalidCount(10, 0.25), ShouldEqual, 3)
		So(invalidCount(10, 1), ShouldEqual, 10)
		So(invalidCount(0, 0.5), ShouldEqual, 0)
	})
}

func TestWrite(t *testing.T) {
	ctx := context.Background()

	Convey("Given a written dataset", t, func() {
		var buf bytes.Buffer
		stats, err := Write(ctx, &buf, Config{Rows: 300, InvalidShare: 0.2, Seed: 99})
		So(err, ShouldBeNil)
		So(strings.SplitN(buf.String(), "\n", 2)[0], ShouldEqual, "job_id,job_title,years_experience,salary_usd,company_location")

		Convey("The loader keeps exactly the valid rows", func() {
			table, err := source.ReadCSV(&buf)
			So(err, ShouldBeNil)
			So(table.Malformed, ShouldEqual, 0)

			res := dataset.Normalize(table.Records, dataset.DetectTitleColumn(table.Headers))
			So(res.TitleColumn, ShouldEqual, "job_title")
			So(res.RowsRead, ShouldEqual, 300)
			So(len(res.Samples), ShouldEqual, 300-stats.Invalid)
			So(res.Dropped, ShouldResemble, stats.ByReason)
		})
	})

	Convey("Zero rows still writes a header", t, func() {
		var buf bytes.Buffer
		_, err := Write(ctx, &buf, Config{})
		So(err, ShouldBeNil)
		So(buf.String(), ShouldEqual, "job_id,job_title,years_experience,salary_usd,company_location\n")
	})

	Convey("Invalid configs are rejected", t, func() {
		_, err := Write(ctx, &bytes.Buffer{}, Config{Rows: 1, InvalidShare: 1.5})
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		_, err = Write(ctx, &bytes.Buffer{}, Config{Rows: -1})
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})

	Convey("A cancelled context stops generation", t, func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Write(cctx, &bytes.Buffer{}, Config{Rows: 10})
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestRun(t *testing.T) {
	Convey("Run writes to the output file", t, func() {
		path := filepath.Join(t.TempDir(), "jobs.csv")
		stats, err := Run(context.Background(), Config{Rows: 20, Seed: 3, Output: path})
		So(err, ShouldBeNil)
		So(stats.Rows, ShouldEqual, 20)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		So(strings.Count(string(data), "\n"), ShouldEqual, 21)
	})
}
