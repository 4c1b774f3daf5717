package tuning

import (
	"math"
	"sort"
)

// NumKeys is the number of addressable MIDI keys
const NumKeys = 128

// Table maps MIDI keys to their nominal frequencies.
// A Table is immutable once built; share it by pointer.
type Table struct {
	freqs [NumKeys]float64
	a4    float64
}

// EqualTemperament builds the 12-EDO table with key 69 tuned to a4 Hz
func EqualTemperament(a4 float64) *Table {
	t := &Table{a4: a4}
	for k := range t.freqs {
		t.freqs[k] = a4 * math.Pow(2, float64(k-69)/12)
	}
	return t
}

// Standard is the concert-pitch table (A4 = 440 Hz)
func Standard() *Table {
	return EqualTemperament(440)
}

// A4 returns the reference frequency of key 69
func (t *Table) A4() float64 {
	return t.a4
}

// Frequency returns the nominal frequency of key
func (t *Table) Frequency(key uint8) float64 {
	if int(key) >= NumKeys {
		return t.freqs[NumKeys-1]
	}
	return t.freqs[key]
}

// frequencies returns the nominal frequencies of keys in the given order
func (t *Table) frequencies(keys []uint8) []float64 {
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = t.Frequency(k)
	}
	return out
}

// Closest returns the index into keys (sorted ascending) whose nominal
// frequency is nearest to freq. Returns -1 for an empty key list.
func (t *Table) Closest(freq float64, keys []uint8) int {
	return closestIndex(t.frequencies(keys), freq)
}

// closestIndex finds the nearest element of an ascending slice.
// Equidistant candidates resolve to the lower index.
func closestIndex(data []float64, item float64) int {
	if len(data) == 0 {
		return -1
	}
	i := sort.SearchFloat64s(data, item)
	switch {
	case i == len(data):
		return i - 1
	case i == 0:
		return 0
	}
	if math.Abs(item-data[i]) < math.Abs(item-data[i-1]) {
		return i
	}
	return i - 1
}

// Rank orders keys by preference for sounding freq: the nearest key first,
// then alternating one step above and one step below, widening outwards.
// When one side runs out the rest of the other side follows in order.
// keys must be sorted ascending.
func (t *Table) Rank(freq float64, keys []uint8) []uint8 {
	nearest := t.Closest(freq, keys)
	if nearest < 0 {
		return nil
	}

	ranking := make([]uint8, 0, len(keys))
	ranking = append(ranking, keys[nearest])
	for step := 1; len(ranking) < len(keys); step++ {
		if hi := nearest + step; hi < len(keys) {
			ranking = append(ranking, keys[hi])
		}
		if lo := nearest - step; lo >= 0 {
			ranking = append(ranking, keys[lo])
		}
	}
	return ranking
}

// Cents returns the distance from one frequency to another in cents.
// Positive when to is higher than from.
func Cents(from, to float64) float64 {
	return 1200 * math.Log2(to/from)
}
