package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/condstream/clock"
	"github.com/rulego/condstream/streamx"
)

type item struct {
	v float64
	t time.Time
}

func eventTime(i item) time.Time { return i.t }

func TestSingleWindowCollectsAllItems(t *testing.T) {
	base := time.Unix(0, 0)
	fc := clock.NewFake(base)
	w := New(time.Minute, eventTime, WithClock[item](fc))

	in := make(chan streamx.Result[item], 4)
	out, _ := w.Run(context.Background(), in)

	in <- streamx.Value(item{1, base})
	in <- streamx.Value(item{2, base.Add(10 * time.Second)})
	fc.Step(DefaultReorderInterval)

	inner := <-out
	assert.Equal(t, int64(0), inner.ID)

	var got []float64
	for r := range inner.C() {
		v, err := r.Get()
		require.NoError(t, err)
		got = append(got, v.v)
		if len(got) == 2 {
			close(in)
			fc.Step(DefaultReorderInterval)
			break
		}
	}
	assert.Equal(t, []float64{1, 2}, got)
}

func TestNewWindowCompletesPrevious(t *testing.T) {
	base := time.Unix(0, 0)
	fc := clock.NewFake(base)
	w := New(time.Minute, eventTime, WithClock[item](fc))

	in := make(chan streamx.Result[item], 4)
	out, _ := w.Run(context.Background(), in)

	in <- streamx.Value(item{1, base})
	fc.Step(DefaultReorderInterval)
	first := <-out

	in <- streamx.Value(item{2, base.Add(90 * time.Second)}) // next window
	fc.Step(DefaultReorderInterval)
	second := <-out

	assert.NotEqual(t, first.ID, second.ID)

	_, ok := <-first.C()
	require.True(t, ok) // the one item pushed before completion
	_, ok = <-first.C()
	assert.False(t, ok, "first window must be completed once the second opens")

	close(in)
	fc.Step(DefaultReorderInterval)
}

func TestUpstreamErrorCompletesCurrentWindow(t *testing.T) {
	base := time.Unix(0, 0)
	fc := clock.NewFake(base)
	w := New(time.Minute, eventTime, WithClock[item](fc))

	in := make(chan streamx.Result[item], 4)
	out, _ := w.Run(context.Background(), in)

	in <- streamx.Value(item{1, base})
	fc.Step(DefaultReorderInterval)
	win := <-out

	in <- streamx.Error[item](assertErr{})
	fc.Step(DefaultReorderInterval)

	var sawErr bool
	for r := range win.C() {
		if r.IsError() {
			sawErr = true
		}
	}
	assert.True(t, sawErr)

	_, ok := <-out
	assert.False(t, ok)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
