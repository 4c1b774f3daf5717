package tone

// Broadcast applies op to every element of xs and returns the results in
// order. It is how whole pitch collections (tuning sets, chords) are
// transformed elementwise.
func Broadcast[S ~[]E, E, R any](xs S, op func(E) R) []R {
	if xs == nil {
		return nil
	}
	out := make([]R, len(xs))
	for i, x := range xs {
		out[i] = op(x)
	}
	return out
}

// Tie merges every rest after the first event into the event before it:
// that event's delay and duration grow by the rest's delay. A leading
// rest is kept. The input sequence is not modified.
func Tie(seq []Tone) []Tone {
	out := make([]Tone, 0, len(seq))
	for i, t := range seq {
		if i > 0 && t.IsRest() {
			prev := out[len(out)-1]
			out[len(out)-1] = prev.withTiming(prev.delay+t.delay, prev.duration+t.delay)
			continue
		}
		out = append(out, t)
	}
	return out
}

// Transpose returns a copy of seq with every frequency, including the
// tuning sets, multiplied by ratio. Rests stay rests.
func Transpose(seq []Tone, ratio float64) []Tone {
	scale := func(f float64) float64 { return f * ratio }
	return Broadcast(seq, func(t Tone) Tone {
		if t.IsRest() {
			return t
		}
		t.freq = scale(t.freq)
		t.tuning = Broadcast(t.tuning, scale)
		return t
	})
}

// TotalDelay is the sum of all delays, the start of a hypothetical event
// following the sequence
func TotalDelay(seq []Tone) float64 {
	var total float64
	for _, t := range seq {
		total += t.delay
	}
	return total
}
