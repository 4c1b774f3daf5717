package sequencer

import (
	"errors"
	"fmt"

	"go-midiplug/debug"
	"go-midiplug/tuning"
)

var ErrAllocationImpossible = errors.New("no key allocation found")

// AllocationError is returned when the key pool is too small for the number
// of tones sounding at once
type AllocationError struct {
	Degree int // simultaneous tones in the input
	Keys   int // size of the key pool
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%s: %d simultaneous tones, %d keys available",
		ErrAllocationImpossible, e.Degree, e.Keys)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocationImpossible
}

// progressEvery is how many search steps pass between progress lines in the
// debug log
var progressEvery = 10000

// crowded reports whether some tone and the earlier tones it overlaps all
// sound together and outnumber the pool. Overlap sets built by Overlaps
// always sound together, so for them this is exactly the impossible case.
func crowded(overlaps OverlapSet, keys int) bool {
	for i, earlier := range overlaps {
		if len(earlier) < keys {
			continue
		}
		clique := true
		for a := 0; a < len(earlier) && clique; a++ {
			for b := a + 1; b < len(earlier); b++ {
				if !overlaps.Contains(earlier[a], earlier[b]) {
					clique = false
					break
				}
			}
		}
		if clique {
			debug.Log("keys", "tone %d sounds with %d others on %d keys", i, len(earlier), keys)
			return true
		}
	}
	return false
}

// AllocateKeys assigns a key from pool to every tone so that no two
// overlapping tones share a key. Each tone prefers the key whose nominal
// frequency is nearest its own, then its neighbours alternating above and
// below. The search is a depth-first walk over those preference lists,
// undoing the most recent choice on conflict. pool must be sorted. A pool
// smaller than a group of tones that all sound together fails before the
// search starts.
func AllocateKeys(freqs []float64, overlaps OverlapSet, pool []uint8, table *tuning.Table) ([]uint8, error) {
	n := len(freqs)
	if n == 0 {
		return nil, nil
	}
	if len(overlaps) != n {
		return nil, fmt.Errorf("%w: %d frequencies, %d overlap sets", ErrInvariant, n, len(overlaps))
	}
	if len(pool) == 0 || crowded(overlaps, len(pool)) {
		return nil, &AllocationError{Degree: overlaps.Degree(), Keys: len(pool)}
	}

	rankings := make(map[float64][]uint8)
	ranks := make([][]uint8, n)
	for i, f := range freqs {
		r, ok := rankings[f]
		if !ok {
			r = table.Rank(f, pool)
			rankings[f] = r
		}
		ranks[i] = r
	}

	// choice[i] indexes ranks[i]; len(choice) tones are placed
	choice := make([]int, 1, n)
	key := func(i int) uint8 { return ranks[i][choice[i]] }

	// only the newest tone needs checking: everything before it was valid
	// when it was placed and its overlap set holds earlier tones only
	valid := func() bool {
		last := len(choice) - 1
		k := key(last)
		for _, j := range overlaps[last] {
			if key(j) == k {
				return false
			}
		}
		return true
	}

	steps := 0
	for {
		steps++
		if valid() {
			if len(choice) == n {
				break
			}
			choice = append(choice, 0)
			continue
		}
		debug.LogEvery(progressEvery, "keys", "backtracking at tone %d of %d", len(choice)-1, n)
		for choice[len(choice)-1]+1 == len(pool) {
			choice = choice[:len(choice)-1]
			if len(choice) == 0 {
				return nil, &AllocationError{Degree: overlaps.Degree(), Keys: len(pool)}
			}
		}
		choice[len(choice)-1]++
	}
	debug.Log("keys", "allocated %d tones on %d keys in %d steps", n, len(pool), steps)

	keys := make([]uint8, n)
	for i := range keys {
		keys[i] = key(i)
	}
	return keys, nil
}
