package events_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/salaryscope/internal/events"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHub(t *testing.T) {
	Convey("Given a hub with two subscribers", t, func() {
		h := events.NewHub()
		a := h.Subscribe()
		b := h.Subscribe()
		So(h.Subscribers(), ShouldEqual, 2)

		Convey("When an event is published", func() {
			h.Publish("hello")
			So(<-a, ShouldEqual, "hello")
			So(<-b, ShouldEqual, "hello")
		})

		Convey("When a subscriber leaves", func() {
			h.Unsubscribe(a)
			h.Unsubscribe(a)
			_, open := <-a
			So(open, ShouldBeFalse)
			So(h.Subscribers(), ShouldEqual, 1)
		})

		Convey("When the hub is closed", func() {
			h.Close()
			_, openA := <-a
			_, openB := <-b
			So(openA, ShouldBeFalse)
			So(openB, ShouldBeFalse)
			So(h.Subscribers(), ShouldEqual, 0)

			late := h.Subscribe()
			_, open := <-late
			So(open, ShouldBeFalse)
			So(func() { h.Unsubscribe(a); h.Unsubscribe(late); h.Publish("x") }, ShouldNotPanic)
		})

		Convey("When a subscriber is slow", func() {
			for range 100 {
				h.Publish("x")
			}
			So(len(b), ShouldEqual, cap(b))
		})
	})
}

func TestMakeEvent(t *testing.T) {
	Convey("Given an event payload", t, func() {
		raw := events.MakeEvent("req-1", events.TypeDatasetLoaded, 1, map[string]int{"rows": 3})

		var e events.Event
		So(json.Unmarshal([]byte(raw), &e), ShouldBeNil)
		So(e.Type, ShouldEqual, "dataset.loaded")
		So(e.RequestID, ShouldEqual, "req-1")
		So(string(e.Data), ShouldEqual, `{"rows":3}`)
	})
}
