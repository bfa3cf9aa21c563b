package train

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Event is a single metric observation emitted by a training loop.
type Event struct {
	Series string
	X, Y   float64
}

// Point is one plotted point of a series.
type Point struct {
	X, Y float64
}

// Recorder accumulates metric events per named series and renders a
// progress board. Raw events are compacted: every CompactEvery raw
// points are averaged into one plotted point, keeping long runs cheap
// to draw.
//
// The training loop publishes Events on a channel and the Recorder
// consumes it, decoupling metric production from reporting.
type Recorder struct {
	mu           sync.Mutex
	compactEvery int
	series       map[string][]Point
	pending      map[string][]Event
	order        []string
	out          io.Writer
}

// NewRecorder creates a Recorder writing rendered boards to w.
// compactEvery raw points are averaged into one plotted point; values
// below 1 disable compaction.
func NewRecorder(compactEvery int, w io.Writer) *Recorder {
	if compactEvery < 1 {
		compactEvery = 1
	}
	return &Recorder{
		compactEvery: compactEvery,
		series:       make(map[string][]Point),
		pending:      make(map[string][]Event),
		out:          w,
	}
}

// Consume drains the event channel until it is closed, then flushes any
// partially filled compaction windows.
func (r *Recorder) Consume(events <-chan Event) {
	for ev := range events {
		r.Record(ev)
	}
	r.Flush()
}

// Record adds one raw event to its series.
func (r *Recorder) Record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.pending[ev.Series]; !seen {
		if _, plotted := r.series[ev.Series]; !plotted {
			r.order = append(r.order, ev.Series)
		}
	}

	r.pending[ev.Series] = append(r.pending[ev.Series], ev)
	if len(r.pending[ev.Series]) >= r.compactEvery {
		r.compact(ev.Series)
	}
}

// Flush compacts all partially filled windows into plotted points.
func (r *Recorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.pending))
	for name := range r.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.compact(name)
	}
}

// compact averages the pending raw events of a series into one point.
// Callers must hold the mutex.
func (r *Recorder) compact(name string) {
	raw := r.pending[name]
	if len(raw) == 0 {
		return
	}
	var sx, sy float64
	for _, ev := range raw {
		sx += ev.X
		sy += ev.Y
	}
	n := float64(len(raw))
	r.series[name] = append(r.series[name], Point{X: sx / n, Y: sy / n})
	r.pending[name] = r.pending[name][:0]
}

// Points returns the plotted points of a series.
func (r *Recorder) Points(name string) []Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Point(nil), r.series[name]...)
}

var (
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sparkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	sparkLevels = []rune("▁▂▃▄▅▆▇█")
)

// Render returns the current progress board: one sparkline row per
// series with its latest value.
func (r *Recorder) Render() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]string, 0, len(r.order))
	for _, name := range r.order {
		points := r.series[name]
		if len(points) == 0 {
			continue
		}
		latest := points[len(points)-1]
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(fmt.Sprintf("%-12s", name)),
			sparkStyle.Render(sparkline(points)),
			valueStyle.Render(fmt.Sprintf(" %.4f", latest.Y)),
		)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return ""
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

// Draw renders the board to the recorder's writer.
func (r *Recorder) Draw() {
	if r.out == nil {
		return
	}
	if board := r.Render(); board != "" {
		fmt.Fprintln(r.out, board)
	}
}

// sparkline maps the series values onto unicode block heights.
func sparkline(points []Point) string {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	var sb strings.Builder
	span := maxY - minY
	for _, p := range points {
		level := 0
		if span > 0 {
			level = int((p.Y - minY) / span * float64(len(sparkLevels)-1))
		}
		sb.WriteRune(sparkLevels[level])
	}
	return sb.String()
}
