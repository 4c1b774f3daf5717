package curve

import "math"

// Cycle repeats a fixed list of values forever. NaN entries are holes:
// the generator reports no value for that tick.
type Cycle struct {
	values []float64
	pos    int
}

// NewCycle returns a generator cycling through values
func NewCycle(values ...float64) *Cycle {
	return &Cycle{values: append([]float64(nil), values...)}
}

func (c *Cycle) Next() (float64, bool) {
	if len(c.values) == 0 {
		return 0, false
	}
	v := c.values[c.pos]
	c.pos = (c.pos + 1) % len(c.values)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Waveform shapes for Oscillator
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Saw
	Square
)

// Oscillator is a periodic modulator running at a fixed tick rate.
// Output is Center + Depth*wave, wave in [-1, 1].
// It works both as a Generator (stateful, one tick per Next) and as a
// Curve (Sample restarts from phase 0 at one point per tick), which is
// how vibrato is expressed.
type Oscillator struct {
	Wave     Waveform
	RateHz   float64
	Depth    float64
	Center   float64
	TickRate float64

	phase float64
}

// Vibrato returns a sine oscillator around 0 with the given depth in cents
func Vibrato(rateHz, depthCents, tickRate float64) *Oscillator {
	return &Oscillator{Wave: Sine, RateHz: rateHz, Depth: depthCents, TickRate: tickRate}
}

func (o *Oscillator) value(phase float64) float64 {
	var w float64
	switch o.Wave {
	case Triangle:
		if phase < 0.5 {
			w = 4*phase - 1
		} else {
			w = 3 - 4*phase
		}
	case Saw:
		w = 1 - 2*phase
	case Square:
		if phase < 0.5 {
			w = 1
		} else {
			w = -1
		}
	default:
		w = math.Sin(2 * math.Pi * phase)
	}
	return o.Center + o.Depth*w
}

func (o *Oscillator) step() float64 {
	if o.TickRate <= 0 {
		return 0
	}
	return o.RateHz / o.TickRate
}

func (o *Oscillator) Next() (float64, bool) {
	v := o.value(o.phase)
	o.phase += o.step()
	o.phase -= math.Floor(o.phase)
	return v, true
}

func (o *Oscillator) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	phase, step := 0.0, o.step()
	for i := range out {
		out[i] = o.value(phase)
		phase += step
		phase -= math.Floor(phase)
	}
	return out
}

// Reset rewinds the oscillator to phase 0
func (o *Oscillator) Reset() {
	o.phase = 0
}
