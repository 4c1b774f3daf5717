package tone

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/multierr"

	"go-midiplug/config"
	"go-midiplug/curve"
)

// Empty is the frequency of a rest
const Empty = 0.0

var (
	ErrUnknownParam = errors.New("unknown device parameter")
	ErrParamRange   = errors.New("parameter value out of range")
	ErrInvalidTone  = errors.New("invalid tone")
)

// Tone is one event of a sequence. Times are in seconds; Delay is the
// distance to the next event's start, Duration how long this one sounds.
// Duration > Delay means the tone overlaps the following event(s).
//
// Parameter and volume values are one of: a number (float64, int), a
// curve.Generator (sampled once per tick), or a curve.Curve (sampled across
// the tone). Anything else is rejected when the tone is rendered.
type Tone struct {
	freq      float64
	tuning    []float64
	delay     float64
	duration  float64
	volume    any
	glissando curve.Curve
	vibrato   curve.Curve
	params    map[string]any
}

// Option configures a Tone at construction
type Option func(*Tone)

// WithVolume sets the volume: a 0..1 scalar, a curve or a generator
func WithVolume(v any) Option {
	return func(t *Tone) { t.volume = v }
}

// WithGlissando sets a pitch curve in cents
func WithGlissando(c curve.Curve) Option {
	return func(t *Tone) { t.glissando = c }
}

// WithVibrato sets a second pitch curve in cents, added to the glissando
func WithVibrato(c curve.Curve) Option {
	return func(t *Tone) { t.vibrato = c }
}

// WithTuning sets the frequencies free keys are retuned to while the tone
// sounds on a sysex-capable device
func WithTuning(freqs ...float64) Option {
	return func(t *Tone) { t.tuning = append([]float64(nil), freqs...) }
}

// WithParam sets a device parameter
func WithParam(name string, v any) Option {
	return func(t *Tone) {
		if t.params == nil {
			t.params = make(map[string]any)
		}
		t.params[name] = v
	}
}

// New builds a tone and validates its parameters against the device's
// parameter table. A nil table accepts no parameters.
func New(params config.Params, freq, delay, duration float64, opts ...Option) (Tone, error) {
	t := Tone{freq: freq, delay: delay, duration: duration}
	for _, opt := range opts {
		opt(&t)
	}
	return t, t.validate(params)
}

// Rest is a silent event that only advances time
func Rest(delay float64) Tone {
	return Tone{freq: Empty, delay: delay, duration: delay}
}

func (t Tone) validate(params config.Params) error {
	var err error
	if math.IsNaN(t.freq) || math.IsInf(t.freq, 0) || t.freq < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: frequency %v", ErrInvalidTone, t.freq))
	}
	if !(t.delay >= 0) || math.IsInf(t.delay, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: delay %v", ErrInvalidTone, t.delay))
	}
	if !(t.duration >= 0) || math.IsInf(t.duration, 0) {
		err = multierr.Append(err, fmt.Errorf("%w: duration %v", ErrInvalidTone, t.duration))
	}
	for _, f := range t.tuning {
		if !(f > 0) {
			err = multierr.Append(err, fmt.Errorf("%w: tuning frequency %v", ErrInvalidTone, f))
		}
	}
	for _, name := range t.ParamNames() {
		param, ok := params[name]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: %s", ErrUnknownParam, name))
			continue
		}
		if v, ok := Scalar(t.params[name]); ok && !param.Contains(v) {
			err = multierr.Append(err, fmt.Errorf("%w: %s = %v, want between %v and %v",
				ErrParamRange, name, v, param.Min, param.Max))
		}
	}
	return err
}

// Scalar reports whether v is a plain number and returns it as float64
func Scalar(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (t Tone) Freq() float64 { return t.freq }
func (t Tone) Delay() float64 { return t.delay }
func (t Tone) Duration() float64 { return t.duration }
func (t Tone) Volume() any { return t.volume }
func (t Tone) Glissando() curve.Curve { return t.glissando }
func (t Tone) Vibrato() curve.Curve { return t.vibrato }

// IsRest reports whether the tone is silent
func (t Tone) IsRest() bool {
	return t.freq == Empty
}

// Tuning returns a copy of the alternate tuning set
func (t Tone) Tuning() []float64 {
	return append([]float64(nil), t.tuning...)
}

// Param returns a device parameter value
func (t Tone) Param(name string) (any, bool) {
	v, ok := t.params[name]
	return v, ok
}

// ParamNames returns the names of the parameters set on the tone, sorted
func (t Tone) ParamNames() []string {
	names := make([]string, 0, len(t.params))
	for name := range t.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String is a short description for logs
func (t Tone) String() string {
	if t.IsRest() {
		return fmt.Sprintf("Rest(%.3fs)", t.delay)
	}
	return fmt.Sprintf("Tone(%.2fHz, delay=%.3fs, duration=%.3fs)", t.freq, t.delay, t.duration)
}

// withTiming returns a copy with new delay and duration
func (t Tone) withTiming(delay, duration float64) Tone {
	t.delay = delay
	t.duration = duration
	return t
}
