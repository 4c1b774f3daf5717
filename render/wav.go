package render

import (
	"encoding/binary"
	"math"
	"os"
)

// Interleave merges left and right into one stereo sample slice
func Interleave(left, right []float32) []float32 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	out := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out
}

// EncodeWAV encodes interleaved samples as a 32-bit float WAV file
func EncodeWAV(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}

// WriteWAV writes a stereo float WAV file
func WriteWAV(path string, left, right []float32, sampleRate int) error {
	return os.WriteFile(path, EncodeWAV(Interleave(left, right), sampleRate, 2), 0644)
}
