package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/salaryscope/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `job_id,job_title,years_experience,salary_usd,company
AI00001,AI Research Scientist,5,"$180,000",Acme
AI00002,Data Scientist,3-5,120000,
AI00003,,2,90000,Beta
`

func TestReadCSV(t *testing.T) {
	Convey("Given a well formed CSV", t, func() {
		tbl, err := source.ReadCSV(strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("Then headers and records are returned", func() {
			So(tbl.Headers, ShouldResemble, []string{"job_id", "job_title", "years_experience", "salary_usd", "company"})
			So(tbl.Records, ShouldHaveLength, 3)
		})

		Convey("And cells are auto typed", func() {
			first := tbl.Records[0]
			So(first["job_title"], ShouldEqual, "AI Research Scientist")
			So(first["years_experience"], ShouldEqual, 5.0)
			So(first["salary_usd"], ShouldEqual, "$180,000")
			So(tbl.Records[1]["company"], ShouldBeNil)
			So(tbl.Records[2]["job_title"], ShouldBeNil)
		})
	})

	Convey("Given an empty input", t, func() {
		_, err := source.ReadCSV(strings.NewReader(""))
		So(errors.Is(err, source.ErrNoHeader), ShouldBeTrue)
	})

	Convey("Given a ragged row", t, func() {
		tbl, err := source.ReadCSV(strings.NewReader("job_title,years_experience,salary_usd\nA,1,2\nB,1\nC,3,4\n"))
		So(err, ShouldBeNil)
		So(len(tbl.Records)+tbl.Malformed, ShouldEqual, 3)
		So(tbl.Records[0]["job_title"], ShouldEqual, "A")
	})

	Convey("Given a header with a byte order mark", t, func() {
		tbl, err := source.ReadCSV(strings.NewReader("\ufeffjob_title,years_experience,salary_usd\nA,1,2\n"))
		So(err, ShouldBeNil)
		So(tbl.Headers[0], ShouldEqual, "job_title")
		So(tbl.Records[0]["job_title"], ShouldEqual, "A")
	})
}

func TestReadCSVNumericColumns(t *testing.T) {
	Convey("Given headers padded with spaces", t, func() {
		tbl, err := source.ReadCSV(strings.NewReader("job_title , years_experience , salary_usd\nA,3-5,\"$120,000\"\nB,,7\n"))
		So(err, ShouldBeNil)

		Convey("Then the numeric columns are decoded under their trimmed names", func() {
			So(tbl.Headers, ShouldResemble, []string{"job_title", "years_experience", "salary_usd"})
			So(tbl.Records[0]["years_experience"], ShouldEqual, "3-5")
			So(tbl.Records[0]["salary_usd"], ShouldEqual, "$120,000")
			So(tbl.Records[1]["years_experience"], ShouldBeNil)
			So(tbl.Records[1]["salary_usd"], ShouldEqual, 7.0)
		})
	})

	Convey("Given a dataset without a salary column", t, func() {
		tbl, err := source.ReadCSV(strings.NewReader("job_title,years_experience\nA,2\n"))
		So(err, ShouldBeNil)
		_, ok := tbl.Records[0]["salary_usd"]
		So(ok, ShouldBeFalse)
		So(tbl.Records[0]["years_experience"], ShouldEqual, 2.0)
	})
}

func TestAutoType(t *testing.T) {
	Convey("Given raw cells", t, func() {
		So(source.AutoType(""), ShouldBeNil)
		So(source.AutoType("  "), ShouldBeNil)
		So(source.AutoType("42"), ShouldEqual, 42.0)
		So(source.AutoType(" 4.5 "), ShouldEqual, 4.5)
		So(source.AutoType("10+"), ShouldEqual, "10+")
	})
}

func TestLoader(t *testing.T) {
	ctx := context.Background()

	Convey("Given a dataset file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "jobs.csv")
		So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)

		tbl, err := source.NewLoader().Load(ctx, path)
		So(err, ShouldBeNil)
		So(tbl.Source, ShouldEqual, path)
		So(tbl.Records, ShouldHaveLength, 3)
	})

	Convey("Given a missing file", t, func() {
		_, err := source.NewLoader().Load(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
	})

	Convey("Given an empty location", t, func() {
		_, err := source.NewLoader().Load(ctx, "")
		So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
	})

	Convey("Given an HTTP server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ok.csv":
				_, _ = w.Write([]byte(sampleCSV))
			case "/slow.csv":
				time.Sleep(200 * time.Millisecond)
				_, _ = w.Write([]byte(sampleCSV))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		Convey("Then a 200 response is parsed", func() {
			tbl, err := source.NewLoader(source.WithHTTPClient(srv.Client())).Load(ctx, srv.URL+"/ok.csv")
			So(err, ShouldBeNil)
			So(tbl.Records, ShouldHaveLength, 3)
		})

		Convey("Then a 404 is a fetch error", func() {
			_, err := source.NewLoader().Load(ctx, srv.URL+"/missing.csv")
			So(errors.Is(err, source.ErrFetch), ShouldBeTrue)
		})

		Convey("Then the timeout applies", func() {
			_, err := source.NewLoader(source.WithTimeout(20*time.Millisecond)).Load(ctx, srv.URL+"/slow.csv")
			So(err, ShouldNotBeNil)
		})
	})
}
