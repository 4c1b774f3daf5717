package sequencer

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"go-midiplug/config"
	"go-midiplug/curve"
	"go-midiplug/debug"
	"go-midiplug/midi"
	"go-midiplug/tone"
)

var ErrUnsupportedValue = errors.New("unsupported parameter value")

// defaultVelocity is used for tones without a volume
const defaultVelocity = 64

// ValueKindError reports a parameter value of a kind the renderer cannot
// sample
type ValueKindError struct {
	Param string
	Kind  string
}

func (e *ValueKindError) Error() string {
	return fmt.Sprintf("%s: %q has kind %s", ErrUnsupportedValue, e.Param, e.Kind)
}

func (e *ValueKindError) Unwrap() error {
	return ErrUnsupportedValue
}

// ControlMessages samples every parameter of t over n ticks and returns the
// control changes to send at each tick. Numbers are sent once at the first
// tick, generators are read once per tick, curves are sampled at n points.
func ControlMessages(t tone.Tone, params config.Params, channel uint8, n int) ([][]midi.Event, error) {
	if n < 1 {
		n = 1
	}
	ticks := make([][]midi.Event, n)

	for _, name := range t.ParamNames() {
		param, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", tone.ErrUnknownParam, name)
		}
		value, _ := t.Param(name)
		cc := func(v float64) midi.Event {
			return midi.CC(channel, param.Control, param.Scale(v))
		}

		if v, ok := tone.Scalar(value); ok {
			ticks[0] = append(ticks[0], cc(v))
			continue
		}
		switch v := value.(type) {
		case curve.Generator:
			for k := range ticks {
				if x, ok := v.Next(); ok {
					ticks[k] = append(ticks[k], cc(x))
				}
			}
		case curve.Curve:
			for k, x := range v.Sample(n) {
				if k < n {
					ticks[k] = append(ticks[k], cc(x))
				}
			}
		default:
			return nil, &ValueKindError{Param: name, Kind: fmt.Sprintf("%T", value)}
		}
	}
	return ticks, nil
}

// fineTuneMessage sends a static tuning offset on the profile's fine-tune
// controller
func fineTuneMessage(ft config.Param, channel uint8, cents float64) midi.Event {
	if !ft.Contains(cents) {
		debug.Warn("controls", "fine tune offset out of range",
			zap.Float64("cents", cents), zap.Float64("min", ft.Min), zap.Float64("max", ft.Max))
	}
	return midi.CC(channel, ft.Control, ft.Scale(cents))
}

// Velocity derives a note velocity from a volume value (0..1). nil gives
// the default velocity; a generator contributes its next value, a curve its
// first point.
func Velocity(volume any) (uint8, error) {
	if volume == nil {
		return defaultVelocity, nil
	}

	var v float64
	if x, ok := tone.Scalar(volume); ok {
		v = x
	} else {
		switch vol := volume.(type) {
		case curve.Generator:
			x, ok := vol.Next()
			if !ok {
				return 0, fmt.Errorf("%w: volume generator yielded no value", ErrUnsupportedValue)
			}
			v = x
		case curve.Curve:
			points := vol.Sample(3)
			if len(points) == 0 {
				return defaultVelocity, nil
			}
			v = points[0]
		default:
			return 0, &ValueKindError{Param: "volume", Kind: fmt.Sprintf("%T", volume)}
		}
	}

	velocity := int(v * 127)
	switch {
	case math.IsNaN(v) || velocity < 0:
		return 0, nil
	case velocity > 127:
		return 127, nil
	}
	return uint8(velocity), nil
}
