package sequencer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go-midiplug/config"
	"go-midiplug/tone"
)

// DefaultTickRate is the grid resolution in ticks per second
const DefaultTickRate = config.DefaultTickRate

// gridPadding is the number of spare ticks after the last event, on top of
// the device's control delay, so the final note-offs have a slot.
const gridPadding = 2

var ErrInvalidDuration = errors.New("invalid sequence duration")

// Span is a tone's position on the grid, [Start, End) in tick indices
type Span struct {
	Start int
	End   int
}

// Len returns the number of ticks the span covers
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Grid is the fixed-resolution timeline: tick i sits at i/TickRate seconds
type Grid struct {
	tickRate int
	times    []float64
}

// TickRate returns the number of ticks per second
func (g Grid) TickRate() int { return g.tickRate }

// Len returns the number of ticks
func (g Grid) Len() int { return len(g.times) }

// Time returns the timestamp of tick i in seconds
func (g Grid) Time(i int) float64 { return g.times[i] }

// Closest returns the tick nearest to t seconds
func (g Grid) Closest(t float64) int {
	return ClosestIndex(g.times, t)
}

// ClosestIndex returns the index of the element of the ascending slice
// points nearest to t. When t lies exactly between two points the later
// one wins. Returns -1 for an empty slice.
func ClosestIndex(points []float64, t float64) int {
	if len(points) == 0 {
		return -1
	}
	pos := sort.Search(len(points), func(i int) bool { return points[i] > t })
	switch {
	case pos == len(points):
		return pos - 1
	case pos == 0:
		return 0
	}
	if math.Abs(t-points[pos]) <= math.Abs(t-points[pos-1]) {
		return pos
	}
	return pos - 1
}

// Offsets returns every event's absolute start and end in seconds. Rests
// are included: their delays push every later event back.
func Offsets(seq []tone.Tone) (starts, ends []float64) {
	starts = make([]float64, len(seq))
	ends = make([]float64, len(seq))
	var now float64
	for i, t := range seq {
		starts[i] = now
		ends[i] = now + t.Duration()
		now += t.Delay()
	}
	return starts, ends
}

// BuildGrid lays the sequence onto a grid of tickRate ticks per second and
// returns the span of every sounding tone, in sequence order with rests
// left out. The grid covers the whole sequence (including sustain past the
// final delay) plus padding spare ticks.
func BuildGrid(seq []tone.Tone, tickRate, padding int) (Grid, []Span, error) {
	if tickRate <= 0 {
		return Grid{}, nil, fmt.Errorf("%w: tick rate %d", ErrInvalidDuration, tickRate)
	}

	starts, ends := Offsets(seq)
	duration := tone.TotalDelay(seq)
	for _, end := range ends {
		duration = math.Max(duration, end)
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return Grid{}, nil, fmt.Errorf("%w: %v seconds", ErrInvalidDuration, duration)
	}

	size := int(math.Floor(duration*float64(tickRate))) + padding
	if size < 1 {
		size = 1
	}
	grid := Grid{tickRate: tickRate, times: make([]float64, size)}
	for i := range grid.times {
		grid.times[i] = float64(i) / float64(tickRate)
	}

	spans := make([]Span, 0, len(seq))
	for i, t := range seq {
		if t.IsRest() {
			continue
		}
		spans = append(spans, Span{Start: grid.Closest(starts[i]), End: grid.Closest(ends[i])})
	}
	return grid, spans, nil
}
