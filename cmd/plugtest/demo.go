package main

import (
	"go-midiplug/config"
	"go-midiplug/curve"
	"go-midiplug/tone"
)

// middle C
const root = 261.6255653005986

// just ratios over the root, including the septimal and undecimal ones
// that 12-EDO misses badly
var ratios = []float64{1, 9.0 / 8, 5.0 / 4, 11.0 / 8, 3.0 / 2, 7.0 / 4, 2}

// demoSequence builds a short microtonal phrase: a rising scale with
// overlapping sustain, a rest, a held chord with vibrato and a glissando,
// and one tone carrying its own tuning set. Parameters are only set when
// the profile knows them.
func demoSequence(p config.Profile, tickRate int) ([]tone.Tone, error) {
	var extra []tone.Option
	if _, ok := p.Params["sustain_pedal"]; ok {
		extra = append(extra,
			tone.WithParam("sustain_pedal", 0),
			tone.WithParam("strike_point", curve.Linear(1.0/64, 1.0/8)))
	}
	if _, ok := p.Params["vcf1_cutoff_frequency"]; ok {
		extra = append(extra,
			tone.WithParam("vcf1_cutoff_frequency", curve.Linear(40, 120)),
			tone.WithParam("osc_mix", 30))
	}

	var seq []tone.Tone
	add := func(freq, delay, duration float64, opts ...tone.Option) error {
		t, err := tone.New(p.Params, freq, delay, duration, append(opts, extra...)...)
		if err != nil {
			return err
		}
		seq = append(seq, t)
		return nil
	}

	scale := tone.Broadcast(ratios, func(r float64) float64 { return root * r })
	for i, f := range scale {
		if err := add(f, 0.25, 0.4, tone.WithVolume(0.4+0.05*float64(i))); err != nil {
			return nil, err
		}
	}
	seq = append(seq, tone.Rest(0.5))

	vibrato := curve.Vibrato(5, 12, float64(tickRate))
	chord := []float64{scale[0], scale[2], scale[4], scale[5]}
	for i, f := range chord {
		delay := 0.0
		if i == len(chord)-1 {
			delay = 2
		}
		if err := add(f/2, delay, 2, tone.WithVibrato(vibrato), tone.WithVolume(curve.Linear(0.7, 0.2))); err != nil {
			return nil, err
		}
	}

	if err := add(scale[3], 1, 1, tone.WithGlissando(curve.Linear(0, -150))); err != nil {
		return nil, err
	}
	if err := add(scale[4], 1.5, 1.5, tone.WithTuning(tone.Broadcast(ratios, func(r float64) float64 { return scale[4] * r / 2 })...)); err != nil {
		return nil, err
	}
	return seq, nil
}
