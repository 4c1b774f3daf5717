package tuning

import (
	"math"
	"testing"
)

func TestEqualTemperamentReference(t *testing.T) {
	tab := Standard()
	if got := tab.Frequency(69); got != 440 {
		t.Fatalf("key 69 = %v, want 440", got)
	}
	if got := tab.Frequency(81); math.Abs(got-880) > 1e-9 {
		t.Fatalf("key 81 = %v, want 880", got)
	}
	if got := tab.Frequency(60); math.Abs(got-261.6255653) > 1e-6 {
		t.Fatalf("key 60 = %v, want ~261.6256", got)
	}
}

func TestCents(t *testing.T) {
	if got := Cents(440, 880); math.Abs(got-1200) > 1e-9 {
		t.Fatalf("octave = %v cents, want 1200", got)
	}
	if got := Cents(880, 440); math.Abs(got+1200) > 1e-9 {
		t.Fatalf("octave down = %v cents, want -1200", got)
	}
	if got := Cents(440, 440); got != 0 {
		t.Fatalf("unison = %v cents, want 0", got)
	}
}

func TestClosest(t *testing.T) {
	tab := Standard()
	keys := []uint8{60, 61, 62, 63, 64}
	cases := []struct {
		name string
		freq float64
		want int
	}{
		{"exact", tab.Frequency(62), 2},
		{"slightly above", tab.Frequency(62) * 1.01, 2},
		{"below range", 10, 0},
		{"above range", 10000, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tab.Closest(tc.freq, keys); got != tc.want {
				t.Fatalf("Closest(%v) = %d, want %d", tc.freq, got, tc.want)
			}
		})
	}
	if got := tab.Closest(440, nil); got != -1 {
		t.Fatalf("Closest on empty keys = %d, want -1", got)
	}
}

func TestRankAlternatesAroundNearest(t *testing.T) {
	tab := Standard()
	keys := []uint8{58, 59, 60, 61, 62, 63}
	got := tab.Rank(tab.Frequency(60), keys)
	want := []uint8{60, 61, 59, 62, 58, 63}
	if len(got) != len(want) {
		t.Fatalf("rank len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank = %v, want %v", got, want)
		}
	}
}

func TestRankAtEdge(t *testing.T) {
	tab := Standard()
	keys := []uint8{0, 1, 2, 3}
	got := tab.Rank(1, keys)
	want := []uint8{0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank = %v, want %v", got, want)
		}
	}
}

func TestMTS(t *testing.T) {
	cases := []struct {
		name string
		freq float64
		want [3]byte
	}{
		{"a4", 440, [3]byte{69, 0, 0}},
		{"middle c", Standard().Frequency(60), [3]byte{60, 0, 0}},
		{"quarter tone above a4", 440 * math.Pow(2, 0.5/12), [3]byte{69, 64, 0}},
		{"too low", 1, [3]byte{0, 0, 0}},
		{"too high", 100000, [3]byte{127, 127, 126}},
		{"rest", 0, [3]byte{0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MTS(tc.freq); got != tc.want {
				t.Fatalf("MTS(%v) = %v, want %v", tc.freq, got, tc.want)
			}
		})
	}
}
