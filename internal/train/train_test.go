package train_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/train"
)

func TestAccumulatorAddAndGet(t *testing.T) {
	metric := train.NewAccumulator(2)
	metric.Add(1.5, 10)
	metric.Add(2.5, 20)

	assert.Equal(t, 4.0, metric.Get(0))
	assert.Equal(t, 30.0, metric.Get(1))
	assert.Equal(t, 2, metric.Len())
}

func TestAccumulatorReset(t *testing.T) {
	metric := train.NewAccumulator(3)
	metric.Add(1, 2, 3)
	metric.Reset()

	for i := 0; i < 3; i++ {
		assert.Zero(t, metric.Get(i))
	}
}

func TestAccumulatorAddAt(t *testing.T) {
	metric := train.NewAccumulator(2)
	metric.AddAt(1, 5)
	metric.AddAt(1, 5)

	assert.Zero(t, metric.Get(0))
	assert.Equal(t, 10.0, metric.Get(1))
}

func TestAccumulatorPanicsOnWrongArity(t *testing.T) {
	metric := train.NewAccumulator(2)
	assert.Panics(t, func() { metric.Add(1) })
	assert.Panics(t, func() { train.NewAccumulator(0) })
}

func TestTimer(t *testing.T) {
	timer := train.NewTimer()
	first := timer.Stop()
	assert.GreaterOrEqual(t, first, 0.0)

	timer.Start()
	second := timer.Stop()

	assert.InDelta(t, first+second, timer.Sum(), 1e-9)
	assert.InDelta(t, timer.Sum()/2, timer.Avg(), 1e-9)
}

func TestAccuracy(t *testing.T) {
	backend := cpu.New()
	yHat := tensor.MustFromSlice([]float32{
		0.9, 0.1, // pred 0
		0.2, 0.8, // pred 1
		0.6, 0.4, // pred 0
	}, tensor.Shape{3, 2}, backend)
	y := tensor.MustFromSlice([]int32{0, 1, 1}, tensor.Shape{3}, backend)

	assert.Equal(t, 2.0, train.Accuracy(yHat, y))
}

func TestRecorderCompaction(t *testing.T) {
	rec := train.NewRecorder(3, nil)
	rec.Record(train.Event{Series: "loss", X: 1, Y: 3})
	rec.Record(train.Event{Series: "loss", X: 2, Y: 6})

	// Window not full yet.
	assert.Empty(t, rec.Points("loss"))

	rec.Record(train.Event{Series: "loss", X: 3, Y: 9})
	points := rec.Points("loss")
	require.Len(t, points, 1)
	assert.InDelta(t, 2.0, points[0].X, 1e-9)
	assert.InDelta(t, 6.0, points[0].Y, 1e-9)
}

func TestRecorderFlushPartialWindow(t *testing.T) {
	rec := train.NewRecorder(10, nil)
	rec.Record(train.Event{Series: "loss", X: 1, Y: 2})
	rec.Record(train.Event{Series: "loss", X: 3, Y: 4})
	rec.Flush()

	points := rec.Points("loss")
	require.Len(t, points, 1)
	assert.InDelta(t, 2.0, points[0].X, 1e-9)
	assert.InDelta(t, 3.0, points[0].Y, 1e-9)
}

func TestRecorderConsumeChannel(t *testing.T) {
	rec := train.NewRecorder(2, nil)
	events := make(chan train.Event, 8)
	for i := 1; i <= 5; i++ {
		events <- train.Event{Series: "loss", X: float64(i), Y: float64(i)}
	}
	close(events)

	rec.Consume(events)

	// 5 raw events with window 2: two full windows plus a flushed single.
	points := rec.Points("loss")
	require.Len(t, points, 3)
	assert.InDelta(t, 1.5, points[0].Y, 1e-9)
	assert.InDelta(t, 3.5, points[1].Y, 1e-9)
	assert.InDelta(t, 5.0, points[2].Y, 1e-9)
}

func TestRecorderRender(t *testing.T) {
	rec := train.NewRecorder(1, nil)
	rec.Record(train.Event{Series: "loss", X: 1, Y: 2.5})
	rec.Record(train.Event{Series: "loss", X: 2, Y: 1.5})

	board := rec.Render()
	assert.Contains(t, board, "loss")
	assert.Contains(t, board, "1.5000")
}

func TestRecorderRenderEmptyIsEmpty(t *testing.T) {
	rec := train.NewRecorder(1, nil)
	assert.Empty(t, strings.TrimSpace(rec.Render()))
}
