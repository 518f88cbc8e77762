package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerFormats(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWith(&buf, FormatJSON), ShouldBeNil)
		defer func() { _ = Init() }()
		So(SetLevelString("info"), ShouldBeNil)

		Convey("When logging with fields", func() {
			Named("loader").Info(context.Background(), "dataset loaded", Int("rows", 3), String("column", "job_title"))

			Convey("Then a structured record is emitted", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "dataset loaded")
				So(rec["rows"], ShouldEqual, 3.0)
				So(rec["column"], ShouldEqual, "job_title")
				So(rec["component"], ShouldEqual, "loader")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters the record out", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Debug(context.Background(), "hidden")
			So(buf.Len(), ShouldEqual, 0)
			So(SetLevelString("info"), ShouldBeNil)
		})
	})

	Convey("Given an unknown format", t, func() {
		So(InitWith(&bytes.Buffer{}, "xml"), ShouldNotBeNil)
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("verbose"), ShouldNotBeNil)
		_ = SetLevelString("info")
	})
}

func TestLoggerWith(t *testing.T) {
	Convey("Given a logger with bound fields", t, func() {
		var buf bytes.Buffer
		So(InitWith(&buf, FormatText), ShouldBeNil)
		defer func() { _ = Init() }()

		Get().With(String("session", "abc")).Warn(context.Background(), "slow render")
		So(buf.String(), ShouldContainSubstring, "session=abc")
		So(buf.String(), ShouldContainSubstring, "slow render")
	})

	Convey("Given the discard logger", t, func() {
		So(func() { Discard().Error(context.Background(), "nothing") }, ShouldNotPanic)
	})
}
