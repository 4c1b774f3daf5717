// Package curve defines how the renderer consumes continuous parameter
// data: a Curve is sampled at n evenly spaced points across a tone, a
// Generator yields one value per tick.
package curve

import "math"

// Curve is a continuous value over a tone's whole span
type Curve interface {
	// Sample evaluates the curve at n evenly spaced points, first and last
	// point included.
	Sample(n int) []float64
}

// Generator yields one value per tick. ok is false when the generator has
// no value for that tick.
type Generator interface {
	Next() (v float64, ok bool)
}

// Constant is a flat curve
type Constant float64

func (c Constant) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(c)
	}
	return out
}

// Segment is one leg of a Line: it starts at Value and moves linearly
// towards the next segment's Value over Duration.
type Segment struct {
	Value    float64 `json:"value" yaml:"value"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// Line is a piecewise-linear curve. The last segment's Duration is ignored;
// its Value is the curve's end point.
type Line struct {
	segments []Segment
	total    float64
}

// NewLine builds a line through the given segments
func NewLine(segments ...Segment) *Line {
	l := &Line{segments: append([]Segment(nil), segments...)}
	for i := 0; i < len(segments)-1; i++ {
		l.total += segments[i].Duration
	}
	return l
}

// Linear is a straight line from start to end
func Linear(start, end float64) *Line {
	return NewLine(Segment{Value: start, Duration: 1}, Segment{Value: end})
}

// At evaluates the line at absolute position x (0..total)
func (l *Line) At(x float64) float64 {
	if len(l.segments) == 0 {
		return 0
	}
	pos := 0.0
	for i := 0; i < len(l.segments)-1; i++ {
		seg, next := l.segments[i], l.segments[i+1]
		if x <= pos+seg.Duration || i == len(l.segments)-2 {
			if seg.Duration <= 0 {
				return next.Value
			}
			frac := math.Max(0, math.Min(1, (x-pos)/seg.Duration))
			return seg.Value + (next.Value-seg.Value)*frac
		}
		pos += seg.Duration
	}
	return l.segments[0].Value
}

func (l *Line) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = l.At(0)
		return out
	}
	for i := range out {
		out[i] = l.At(l.total * float64(i) / float64(n-1))
	}
	return out
}
