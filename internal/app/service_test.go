package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	service "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/adapters/repository"
	"github.com/okian/salaryscope/internal/adapters/source"
	"github.com/okian/salaryscope/internal/config"
	"github.com/okian/salaryscope/internal/domain/model"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/internal/domain/types"
	"github.com/okian/salaryscope/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sampleCSV = `job_title,years_experience,salary_usd
Data Scientist,3-5,"$120,000"
AI Research Scientist,10+,185000
AI Research Scientist,about 7 years,150000
Data Scientist,n/a,99000
ML Engineer,2,
`

type csvLoader struct {
	body string
	err  error
}

func (l csvLoader) Load(_ context.Context, location string) (source.Table, error) {
	if l.err != nil {
		return source.Table{}, l.err
	}
	t, err := source.ReadCSV(strings.NewReader(l.body))
	t.Source = location
	return t, err
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When it has not been started", func() {
			_, err := svc.CreateSession(context.Background(), types.CreateSessionRequest{Width: 800, Height: 500})

			Convey("Then sessions are refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("And the fallback catalog is served", func() {
				c := svc.Catalog(context.Background())
				So(c.Fallback, ShouldBeTrue)
				So(c.Titles, ShouldContain, "AI Research Scientist")
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When it is started twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then it reports running", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["sessions"], ShouldEqual, 0)
			})
		})
	})
}

func TestServiceLoad(t *testing.T) {
	Convey("Given a service over a CSV source", t, func() {
		svc := service.New(
			service.WithDatasetLocation("memory://jobs.csv"),
			service.WithLoader(csvLoader{body: sampleCSV}),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		sub := svc.Hub().Subscribe()
		defer svc.Hub().Unsubscribe(sub)

		Convey("When the dataset loads", func() {
			report := svc.Load(context.Background())

			Convey("Then invalid rows are dropped and counted", func() {
				So(report.Outcome, ShouldEqual, model.OutcomeLoaded)
				So(report.TitleColumn, ShouldEqual, "job_title")
				So(report.RowsRead, ShouldEqual, 5)
				So(report.RowsKept, ShouldEqual, 3)
				So(report.Dropped[model.DropInvalidYears], ShouldEqual, 1)
				So(report.Dropped[model.DropInvalidSalary], ShouldEqual, 1)
			})

			Convey("And the catalog is sorted with the preferred default", func() {
				c := svc.Catalog(context.Background())
				So(c.Fallback, ShouldBeFalse)
				So(c.Titles, ShouldResemble, []string{"AI Research Scientist", "Data Scientist"})
				So(c.Default, ShouldEqual, "AI Research Scientist")
				So(c.Options[0].Value, ShouldEqual, model.AllTitles)
			})

			Convey("And subscribers are notified", func() {
				evt := <-sub
				So(evt, ShouldContainSubstring, `"type":"dataset.loaded"`)
			})

			Convey("And suggestions search the catalog", func() {
				s := svc.Suggest(context.Background(), "data", 5)
				So(s.Titles, ShouldResemble, []string{"Data Scientist"})
			})
		})
	})

	Convey("Given a source that cannot be fetched", t, func() {
		svc := service.New(
			service.WithDatasetLocation("memory://missing.csv"),
			service.WithLoader(csvLoader{err: source.ErrFetch}),
		)
		defer svc.Stop()

		Convey("When the dataset loads", func() {
			report := svc.Load(context.Background())

			Convey("Then the failure is reported and the fallback installed", func() {
				So(report.Outcome, ShouldEqual, model.OutcomeFailed)
				So(report.Error, ShouldContainSubstring, "fetch")
				c := svc.Catalog(context.Background())
				So(c.Fallback, ShouldBeTrue)
				So(c.Default, ShouldEqual, "AI Research Scientist")
				So(svc.Status(context.Background()).Samples, ShouldEqual, 0)
			})
		})
	})

	Convey("Given no dataset location", t, func() {
		svc := service.New()
		defer svc.Stop()

		report := svc.Load(context.Background())
		So(report.Outcome, ShouldEqual, model.OutcomeFailed)
		So(report.Error, ShouldEqual, service.ErrNoLocation.Error())
	})
}

func TestServiceSessions(t *testing.T) {
	Convey("Given a started service with data", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithDatasetLocation("memory://jobs.csv"),
			service.WithLoader(csvLoader{body: sampleCSV}),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		svc.Load(ctx)

		view, err := svc.CreateSession(ctx, types.CreateSessionRequest{Width: 800, Height: 500})
		So(err, ShouldBeNil)
		id := view.Session.ID

		Convey("Then the session starts ready on the default selection", func() {
			So(id, ShouldNotBeEmpty)
			So(string(view.Session.Phase), ShouldEqual, "ready")
			So(view.Session.Selection, ShouldEqual, model.Selection("AI Research Scientist"))
		})

		Convey("When zooming and then resetting", func() {
			zoomed, err := svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindZoom, Factor: 2, PointerX: 100, PointerY: 100})
			So(err, ShouldBeNil)
			So(zoomed.Session.Transform.K, ShouldEqual, 2)

			reset, err := svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindReset})
			So(err, ShouldBeNil)

			Convey("Then the identity transform is restored with transition frames", func() {
				So(reset.Session.Transform.IsIdentity(), ShouldBeTrue)
				So(reset.Frames, ShouldNotBeEmpty)
				So(reset.Frames[len(reset.Frames)-1].Transform.IsIdentity(), ShouldBeTrue)
			})
		})

		Convey("When hovering a marker", func() {
			sc, err := svc.Scene(ctx, id)
			So(err, ShouldBeNil)
			So(sc.Points, ShouldNotBeEmpty)
			p := sc.Points[0]

			hovered, err := svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindHover, PointerX: p.CX, PointerY: p.CY})

			Convey("Then a tooltip describes it", func() {
				So(err, ShouldBeNil)
				So(hovered.Tooltip, ShouldNotBeNil)
				So(hovered.Tooltip.Text, ShouldContainSubstring, "AI Research Scientist")
			})
		})

		Convey("When selecting a title without rows", func() {
			empty, err := svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindSelect, Selection: "Astronaut"})
			So(err, ShouldBeNil)
			So(string(empty.Session.Phase), ShouldEqual, "empty")

			Convey("Then zooming is not accepted", func() {
				_, err := svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindZoom, Factor: 2})
				So(err, ShouldNotBeNil)
			})

			Convey("And the scene is flagged empty", func() {
				sc, err := svc.Scene(ctx, id)
				So(err, ShouldBeNil)
				So(sc.Empty, ShouldBeTrue)
			})
		})

		Convey("When an unknown session is addressed", func() {
			_, err := svc.Dispatch(ctx, "nope", model.Interaction{Kind: model.KindLeave})
			So(errors.Is(err, repository.ErrSessionNotFound), ShouldBeTrue)
		})

		Convey("When the surface is invalid", func() {
			_, err := svc.CreateSession(ctx, types.CreateSessionRequest{Width: 0, Height: 10})
			So(errors.Is(err, service.ErrInvalidSize), ShouldBeTrue)
		})

		Convey("When the surface exceeds the default cap", func() {
			_, err := svc.CreateSession(ctx, types.CreateSessionRequest{Width: 2_000_000, Height: 2_000_000})
			So(errors.Is(err, service.ErrInvalidSize), ShouldBeTrue)

			_, err = svc.Dispatch(ctx, id, model.Interaction{Kind: model.KindResize, Width: 2_000_000, Height: 500})
			So(errors.Is(err, session.ErrInvalidSurface), ShouldBeTrue)

			st, err := svc.Session(ctx, id)
			So(err, ShouldBeNil)
			So(st.Width, ShouldEqual, 800)
		})
	})

	Convey("Given a service with a small surface cap", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithDatasetLocation("memory://jobs.csv"),
			service.WithLoader(csvLoader{body: sampleCSV}),
			service.WithMaxSurface(640),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		svc.Load(ctx)

		_, err := svc.CreateSession(ctx, types.CreateSessionRequest{Width: 641, Height: 480})
		So(errors.Is(err, service.ErrInvalidSize), ShouldBeTrue)

		view, err := svc.CreateSession(ctx, types.CreateSessionRequest{Width: 640, Height: 480})
		So(err, ShouldBeNil)
		So(view.Session.Width, ShouldEqual, 640)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()
		cfg.PlotWidth = 640
		cfg.MaxTicks = 6

		Convey("When mapping it to a layout", func() {
			l := service.LayoutFromConfig(cfg)

			Convey("Then sizes and tick settings carry over", func() {
				So(l.Width, ShouldEqual, 640)
				So(l.MaxTicks, ShouldEqual, 6)
				So(l.TickSpacing, ShouldEqual, 80.0)
				So(l.PadFraction, ShouldEqual, 0.08)
			})
		})

		Convey("When building a service from it", func() {
			svc := service.New(service.OptionsFromConfig(cfg)...)
			defer svc.Stop()

			Convey("Then the dataset location is kept", func() {
				So(svc.Location(), ShouldEqual, cfg.Dataset)
			})
		})
	})
}
