package sequencer

import "go-midiplug/tone"

// OverlapSet lists, for every sounding tone, the earlier tones still
// sounding when it starts. Indices refer to the sequence with rests
// removed and are ascending. The relation is symmetric; only the earlier
// side is stored since allocation walks the tones in playback order.
type OverlapSet [][]int

// Overlaps computes the overlap set of seq. Timing is taken from the full
// sequence so rests still move later tones back.
func Overlaps(seq []tone.Tone) OverlapSet {
	starts, ends := Offsets(seq)

	// position of every sounding tone in the filtered sequence
	index := make([]int, len(seq))
	n := 0
	for i, t := range seq {
		index[i] = -1
		if !t.IsRest() {
			index[i] = n
			n++
		}
	}

	set := make(OverlapSet, n)
	for i, t := range seq {
		if t.IsRest() || t.Duration() <= t.Delay() {
			continue
		}
		for j := i + 1; j < len(seq) && starts[j] < ends[i]; j++ {
			if index[j] >= 0 {
				set[index[j]] = append(set[index[j]], index[i])
			}
		}
	}
	return set
}

// Degree returns the largest number of tones sounding together as seen by
// the allocator: a tone plus the earlier tones it overlaps.
func (o OverlapSet) Degree() int {
	if len(o) == 0 {
		return 0
	}
	degree := 1
	for _, earlier := range o {
		if len(earlier)+1 > degree {
			degree = len(earlier) + 1
		}
	}
	return degree
}

// Contains reports whether tone j is in tone i's overlap set, in either
// direction
func (o OverlapSet) Contains(i, j int) bool {
	if i < j {
		i, j = j, i
	}
	if i >= len(o) {
		return false
	}
	for _, k := range o[i] {
		if k == j {
			return true
		}
	}
	return false
}
