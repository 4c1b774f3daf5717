package tuning

import "math"

// fineSteps is the number of MTS fine-tune steps per semitone (14 bit)
const fineSteps = 1 << 14

// MTS encodes freq as the three MIDI Tuning Standard frequency bytes:
// the equal-tempered semitone at or below freq (key 69 = 440 Hz) followed
// by the remaining fraction of a semitone as a 14-bit value, MSB first.
//
// Frequencies outside the key range are clamped to the lowest/highest
// representable value. 7F 7F 7F is reserved by MTS for "no change" and is
// never produced.
func MTS(freq float64) [3]byte {
	if freq <= 0 || math.IsNaN(freq) {
		return [3]byte{0, 0, 0}
	}

	pos := 69 + 12*math.Log2(freq/440)
	semitone := math.Floor(pos)
	fraction := math.Round((pos - semitone) * fineSteps)
	if fraction >= fineSteps {
		semitone++
		fraction = 0
	}

	switch {
	case semitone < 0:
		return [3]byte{0, 0, 0}
	case semitone > NumKeys-1:
		return [3]byte{127, 127, 126}
	}

	f := int(fraction)
	out := [3]byte{byte(semitone), byte(f >> 7 & 0x7F), byte(f & 0x7F)}
	if out == [3]byte{127, 127, 127} {
		out[2] = 126
	}
	return out
}
