package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/salaryscope/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with capacity two", t, func() {
		q := NewInMemoryQueue(WithCapacity(2))
		ctx := context.Background()

		So(q.Len(ctx), ShouldEqual, 0)
		So(q.Enqueue(ctx, NewCommand(OpApply, "s1", model.Interaction{Kind: model.KindZoom, Factor: 2})), ShouldBeNil)
		So(q.Enqueue(ctx, NewCommand(OpApply, "s1", model.Interaction{Kind: model.KindLeave})), ShouldBeNil)

		Convey("When it is full", func() {
			err := q.Enqueue(ctx, NewCommand(OpApply, "s1", model.Interaction{Kind: model.KindReset}))
			So(errors.Is(err, ErrFull), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("When commands are dequeued", func() {
			ch := q.Dequeue(ctx)
			first := <-ch
			second := <-ch
			So(first.Interaction.Kind, ShouldEqual, model.KindZoom)
			So(second.Interaction.Kind, ShouldEqual, model.KindLeave)
			So(cap(first.Reply), ShouldEqual, 1)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(errors.Is(q.Enqueue(cctx, NewCommand(OpRefresh, "", model.Interaction{})), context.Canceled), ShouldBeTrue)
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
			So(q.IsClosed(), ShouldBeTrue)
			So(errors.Is(q.Enqueue(ctx, NewCommand(OpRefresh, "", model.Interaction{})), ErrClosed), ShouldBeTrue)

			Convey("Then pending commands drain and the channel closes", func() {
				ch := q.Dequeue(ctx)
				n := 0
				timeout := time.After(time.Second)
				for {
					select {
					case _, ok := <-ch:
						if !ok {
							So(n, ShouldEqual, 2)
							return
						}
						n++
					case <-timeout:
						t.Fatal("dequeue channel never closed")
					}
				}
			})
		})
	})
}
