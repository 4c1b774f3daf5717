package sequencer

import (
	"sort"

	"go-midiplug/config"
	"go-midiplug/midi"
	"go-midiplug/tone"
	"go-midiplug/tuning"
)

// MTS single note tuning change header: realtime, all devices, tuning
// program 0, one change
var mtsHeader = [...]byte{127, 127, 8, 2, 0, 1}

// TuningMessage retunes key to freq
func TuningMessage(key uint8, freq float64) midi.Event {
	b := tuning.MTS(freq)
	data := make([]byte, 0, len(mtsHeader)+4)
	data = append(data, mtsHeader[:]...)
	data = append(data, key, b[0], b[1], b[2])
	return midi.Sysex(data...)
}

// TuningMessages returns the retuning messages sent at each tone's start.
// Devices without sysex tuning get none. On sysex devices the played key is
// retuned to the tone's exact frequency, and every key of the pool not held
// by the tone or a tone it overlaps is retuned to the tone's tuning set
// (cycled or cut to fit, both sides sorted ascending).
func TuningMessages(mode config.TuningMode, tones []tone.Tone, keys []uint8, overlaps OverlapSet, pool []uint8) [][]midi.Event {
	out := make([][]midi.Event, len(tones))
	if mode != config.TuningSysex {
		return out
	}

	for i, t := range tones {
		busy := map[uint8]bool{keys[i]: true}
		for _, j := range overlaps[i] {
			busy[keys[j]] = true
		}
		var free []uint8
		for _, k := range pool {
			if !busy[k] {
				free = append(free, k)
			}
		}
		sort.Slice(free, func(a, b int) bool { return free[a] < free[b] })

		set := t.Tuning()
		if len(set) == 0 {
			set = []float64{t.Freq()}
		}
		freqs := make([]float64, len(free))
		for k := range freqs {
			freqs[k] = set[k%len(set)]
		}
		sort.Float64s(freqs)

		msgs := make([]midi.Event, 0, len(free)+1)
		msgs = append(msgs, TuningMessage(keys[i], t.Freq()))
		for k, key := range free {
			msgs = append(msgs, TuningMessage(key, freqs[k]))
		}
		out[i] = msgs
	}
	return out
}
