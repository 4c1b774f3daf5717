package sequencer

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-midiplug/config"
	"go-midiplug/curve"
	"go-midiplug/debug"
	"go-midiplug/midi"
	"go-midiplug/tone"
	"go-midiplug/tuning"
)

func TestAssignChannelsRoundRobin(t *testing.T) {
	got := AssignChannels(5, []uint8{0, 1, 2})
	want := []uint8{0, 1, 2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("channels = %v, want %v", got, want)
		}
	}
	if AssignChannels(3, nil) != nil {
		t.Fatal("no channels should assign nothing")
	}
}

func TestBendCode(t *testing.T) {
	cases := []struct {
		cents, max float64
		want       int16
		clamped    bool
	}{
		{0, 200, 0, false},
		{0, 1200, 0, false},
		{200, 200, 8191, false},
		{-200, 200, -8191, false},
		{100, 200, 4096, false},
		{600, 1200, 4096, false},
		{300, 200, 8191, true},
		{-1000, 200, -8191, true},
	}
	for _, tc := range cases {
		code, clamped := BendCode(tc.cents, tc.max)
		if code != tc.want || clamped != tc.clamped {
			t.Errorf("BendCode(%v, %v) = %d, %v; want %d, %v", tc.cents, tc.max, code, clamped, tc.want, tc.clamped)
		}
	}
}

func TestDeviationAddsCurves(t *testing.T) {
	tn := mustTone(t, 440, 1, 1,
		tone.WithGlissando(curve.Linear(0, 100)),
		tone.WithVibrato(curve.Constant(10)),
	)
	got := Deviation(tn, 5, 3)
	want := []float64{15, 65, 115}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deviation = %v, want %v", got, want)
		}
	}
	if got := Deviation(mustTone(t, 440, 1, 1), 0, 4); len(got) != 4 || got[3] != 0 {
		t.Fatalf("plain tone deviation = %v", got)
	}
}

func gmProfile() config.Profile {
	p, _ := config.Builtin("gm")
	return p
}

func TestZeroDeviationIsCenter(t *testing.T) {
	r, err := New([]tone.Tone{mustTone(t, 440, 0.1, 0.1)}, gmProfile())
	if err != nil {
		t.Fatal(err)
	}
	if r.Keys()[0] != 69 {
		t.Fatalf("key = %d, want 69", r.Keys()[0])
	}
	for i, c := range r.Deviations()[0] {
		if c != 0 {
			t.Fatalf("tick %d deviation = %v", i, c)
		}
	}
	for i, v := range r.Bends().Channel(r.Channels()[0]) {
		if v != 0 {
			t.Fatalf("tick %d bend = %d, want center", i, v)
		}
	}
	for _, ev := range r.Stream().Events {
		if ev.Kind == midi.PitchBend && ev.Bend != 0 {
			t.Fatalf("unexpected bend %s", ev.Event)
		}
	}
}

func TestClampedBendWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	debug.SetLogger(zap.New(core))
	t.Cleanup(debug.Disable)

	seq := []tone.Tone{
		mustTone(t, 440, 0.05, 0.05, tone.WithGlissando(curve.Constant(500))),
		mustTone(t, 440, 0.05, 0.05),
	}
	r, err := New(seq, gmProfile())
	if err != nil {
		t.Fatal(err)
	}
	warnings := r.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if w := warnings[0]; w.Tone != 0 || w.Ticks != 50 || w.Extreme != 500 {
		t.Fatalf("unexpected warning %+v", w)
	}
	if logs.FilterMessage("pitch deviation clamped").Len() != 1 {
		t.Fatalf("warning not logged: %v", logs.All())
	}
	bends := r.Bends().Channel(r.Channels()[0])
	if bends[10] != 8191 {
		t.Fatalf("bend = %d, want clamped to 8191", bends[10])
	}
}

func TestBendEventsOnlyOnChange(t *testing.T) {
	b := Bends{channels: []uint8{0, 3}, values: [][]int16{
		{0, 0, 5, 5, 0},
		{0, 0, 0, 0, 0},
	}}
	ticks := b.events()
	if len(ticks) != 5 {
		t.Fatalf("got %d ticks", len(ticks))
	}
	counts := []int{2, 0, 1, 0, 1}
	for i, want := range counts {
		if len(ticks[i]) != want {
			t.Fatalf("tick %d has %d bends, want %d", i, len(ticks[i]), want)
		}
	}
	if ev := ticks[2][0]; ev.Channel != 0 || ev.Bend != 5 {
		t.Fatalf("unexpected bend %s", ev)
	}
}

func TestSharedChannelLastToneWins(t *testing.T) {
	p := gmProfile()
	p.Channels = []int{0}
	seq := []tone.Tone{
		mustTone(t, 440, 0, 0.1, tone.WithGlissando(curve.Constant(50))),
		mustTone(t, tuning.Standard().Frequency(70), 0.1, 0.1, tone.WithGlissando(curve.Constant(-50))),
	}
	r, err := New(seq, p)
	if err != nil {
		t.Fatal(err)
	}
	bends := r.Bends().Channel(0)
	want, _ := BendCode(-50, p.MaxCents)
	if bends[50] != want {
		t.Fatalf("bend = %d, want %d from the later tone", bends[50], want)
	}
}
