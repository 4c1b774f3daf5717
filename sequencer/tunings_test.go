package sequencer

import (
	"bytes"
	"testing"

	"go-midiplug/config"
	"go-midiplug/midi"
	"go-midiplug/tone"
	"go-midiplug/tuning"
)

func sysexFor(key uint8, freq float64) []byte {
	b := tuning.MTS(freq)
	return []byte{127, 127, 8, 2, 0, 1, key, b[0], b[1], b[2]}
}

func assertSysex(t *testing.T, got []midi.Event, want ...[]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Kind != midi.SysEx || !bytes.Equal(got[i].Data, want[i]) {
			t.Fatalf("message %d = %v, want %v", i, got[i].Data, want[i])
		}
	}
}

func TestTuningMessagesRetuneFreeNeighbour(t *testing.T) {
	played := 263.15 // a few cents above middle C
	other := 270.0
	tn := mustTone(t, played, 1, 1, tone.WithTuning(other))

	got := TuningMessages(config.TuningSysex, []tone.Tone{tn}, []uint8{60}, OverlapSet{nil}, []uint8{60, 61})
	assertSysex(t, got[0], sysexFor(60, played), sysexFor(61, other))
}

func TestTuningMessagesSkipBusyKeys(t *testing.T) {
	seq := []tone.Tone{
		mustTone(t, 440, 0, 1),
		mustTone(t, 450, 1, 1),
	}
	overlaps := Overlaps(seq)
	got := TuningMessages(config.TuningSysex, seq, []uint8{60, 61}, overlaps, []uint8{60, 61, 62})

	// the first tone has no earlier neighbours and retunes everything else
	assertSysex(t, got[0], sysexFor(60, 440), sysexFor(61, 440), sysexFor(62, 440))
	// the second must leave key 60 alone
	assertSysex(t, got[1], sysexFor(61, 450), sysexFor(62, 450))
}

func TestTuningMessagesCycleAndSort(t *testing.T) {
	tn := mustTone(t, 440, 1, 1, tone.WithTuning(500, 300))
	got := TuningMessages(config.TuningSysex, []tone.Tone{tn}, []uint8{60}, OverlapSet{nil}, []uint8{60, 61, 62, 63})
	assertSysex(t, got[0],
		sysexFor(60, 440),
		sysexFor(61, 300),
		sysexFor(62, 500),
		sysexFor(63, 500),
	)

	truncated := mustTone(t, 440, 1, 1, tone.WithTuning(900, 800, 700))
	got = TuningMessages(config.TuningSysex, []tone.Tone{truncated}, []uint8{60}, OverlapSet{nil}, []uint8{60, 61, 62})
	assertSysex(t, got[0], sysexFor(60, 440), sysexFor(61, 800), sysexFor(62, 900))
}

func TestTuningMessagesNone(t *testing.T) {
	seq := []tone.Tone{mustTone(t, 440, 1, 1), mustTone(t, 450, 1, 1)}
	got := TuningMessages(config.TuningNone, seq, []uint8{69, 69}, OverlapSet{nil, nil}, fullPool())
	if len(got) != 2 || len(got[0]) != 0 || len(got[1]) != 0 {
		t.Fatalf("expected no tuning messages, got %v", got)
	}
}
