package sequencer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"go-midiplug/curve"
	"go-midiplug/debug"
	"go-midiplug/midi"
	"go-midiplug/tone"
)

// 14-bit pitch bend: codes run from -bendCenter to bendRange-bendCenter,
// 0 is no bend
const (
	bendRange  = 16382
	bendCenter = 8191
)

// Warning records a tone whose pitch deviation left the bend range and was
// clamped
type Warning struct {
	Tone    int     // index in the sounding sequence
	Ticks   int     // number of clamped ticks
	Extreme float64 // largest deviation in cents, signed
}

func (w Warning) String() string {
	return fmt.Sprintf("tone %d: %.1f cents exceeds bend range on %d ticks", w.Tone, w.Extreme, w.Ticks)
}

// AssignChannels spreads n tones over channels round-robin
func AssignChannels(n int, channels []uint8) []uint8 {
	if len(channels) == 0 {
		return nil
	}
	out := make([]uint8, n)
	for i := range out {
		out[i] = channels[i%len(channels)]
	}
	return out
}

// BendCode converts a deviation in cents to a pitch bend value for a device
// bending maxCents up and down. clamped is set when cents was out of range.
func BendCode(cents, maxCents float64) (code int16, clamped bool) {
	percent := (cents + maxCents) / (2 * maxCents)
	switch {
	case percent > 1:
		percent, clamped = 1, true
	case percent < 0:
		percent, clamped = 0, true
	}
	return int16(math.Round(bendRange*percent) - bendCenter), clamped
}

// sampleCents samples c at n points, padding with zeros or cutting to
// exactly n values
func sampleCents(c curve.Curve, n int) []float64 {
	out := make([]float64, n)
	if c == nil || n == 0 {
		return out
	}
	copy(out, c.Sample(n))
	return out
}

// Deviation returns a tone's pitch deviation in cents for each of n ticks:
// the static offset of its key plus its glissando and vibrato.
func Deviation(t tone.Tone, offset float64, n int) []float64 {
	cents := sampleCents(t.Glissando(), n)
	vibrato := sampleCents(t.Vibrato(), n)
	for i := range cents {
		cents[i] += offset + vibrato[i]
	}
	return cents
}

// Bends holds one pitch bend value per tick for every channel
type Bends struct {
	channels []uint8
	values   [][]int16
}

// renderBends writes every tone's deviation onto its channel's timeline,
// starting delay ticks after the span start. Tones sharing a channel at the
// same tick overwrite each other; the later tone wins.
func renderBends(ticks, delay int, channels []uint8, assigned []uint8, spans []Span,
	deviations [][]float64, maxCents float64,
) (Bends, []Warning) {
	b := Bends{channels: channels, values: make([][]int16, len(channels))}
	row := make(map[uint8]int, len(channels))
	for i, ch := range channels {
		row[ch] = i
		b.values[i] = make([]int16, ticks)
	}

	var warnings []Warning
	for i, cents := range deviations {
		timeline := b.values[row[assigned[i]]]
		w := Warning{Tone: i}
		for k, c := range cents {
			code, clamped := BendCode(c, maxCents)
			if clamped {
				w.Ticks++
				if math.Abs(c) > math.Abs(w.Extreme) {
					w.Extreme = c
				}
			}
			if at := spans[i].Start + delay + k; at < ticks {
				timeline[at] = code
			}
		}
		if w.Ticks > 0 {
			debug.Warn("bend", "pitch deviation clamped",
				zap.Int("tone", i), zap.Int("ticks", w.Ticks), zap.Float64("cents", w.Extreme))
			warnings = append(warnings, w)
		}
	}
	return b, warnings
}

// Channel returns the bend timeline of channel ch
func (b Bends) Channel(ch uint8) []int16 {
	for i, c := range b.channels {
		if c == ch {
			return append([]int16(nil), b.values[i]...)
		}
	}
	return nil
}

// events returns one bucket per tick with a bend message for each channel
// whose value changed. Every channel is centred at tick 0.
func (b Bends) events() [][]midi.Event {
	if len(b.values) == 0 {
		return nil
	}
	out := make([][]midi.Event, len(b.values[0]))
	for i, ch := range b.channels {
		prev := int16(0)
		for tick, v := range b.values[i] {
			if tick == 0 || v != prev {
				out[tick] = append(out[tick], midi.Bend(ch, v))
			}
			prev = v
		}
	}
	return out
}
