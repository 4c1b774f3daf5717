package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"

	"go-midiplug/debug"
	"go-midiplug/midi"
)

// synthesizer is the part of meltysynth.Synthesizer the renderer drives
type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	Render(left, right []float32)
}

// newSynthesizer builds the synthesizer; tests swap it for a recorder
var newSynthesizer = func(sf *meltysynth.SoundFont, settings *meltysynth.SynthesizerSettings) (synthesizer, error) {
	return meltysynth.NewSynthesizer(sf, settings)
}

// MIDI status bytes
const (
	noteOff       = 0x80
	noteOn        = 0x90
	controlChange = 0xB0
	programChange = 0xC0
	pitchBend     = 0xE0
)

// SoundFont renders a stream in-process. The synthesizer has no MTS
// support, so sysex tunings are skipped and only pitch bend is heard.
type SoundFont struct {
	Font       *meltysynth.SoundFont
	SampleRate int
	BendRange  float64 // cents; sent to every channel before playback when set
	Tail       float64 // seconds rendered after the last event
}

// LoadSoundFont reads an .sf2 file
func LoadSoundFont(path string) (*meltysynth.SoundFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse soundfont %s: %w", path, err)
	}
	return sf, nil
}

// Render plays the stream and returns the left and right channels
func (s SoundFont) Render(stream midi.Stream) (left, right []float32, err error) {
	if s.Font == nil {
		return nil, nil, errors.New("no soundfont loaded")
	}
	if stream.TickRate <= 0 {
		return nil, nil, fmt.Errorf("invalid tick rate %d", stream.TickRate)
	}
	rate := s.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	syn, err := newSynthesizer(s.Font, meltysynth.NewSynthesizerSettings(int32(rate)))
	if err != nil {
		return nil, nil, err
	}
	if s.BendRange > 0 {
		setBendRange(syn, s.BendRange)
	}

	sampleAt := func(tick uint64) int {
		return int(math.Round(float64(tick) * float64(rate) / float64(stream.TickRate)))
	}
	total := sampleAt(stream.Len()) + int(s.Tail*float64(rate))
	left = make([]float32, total)
	right = make([]float32, total)

	pos, skipped := 0, 0
	var tick uint64
	for _, ev := range stream.Events {
		tick += uint64(ev.Delta)
		if at := sampleAt(tick); at > pos {
			syn.Render(left[pos:at], right[pos:at])
			pos = at
		}
		if !send(syn, ev.Event) {
			skipped++
		}
	}
	if pos < total {
		syn.Render(left[pos:], right[pos:])
	}
	if skipped > 0 {
		debug.Log("render", "soundfont skipped %d messages it cannot play", skipped)
	}
	return left, right, nil
}

// send forwards one event to the synthesizer. It reports false for events
// the synthesizer does not understand.
func send(syn synthesizer, ev midi.Event) bool {
	ch := int32(ev.Channel)
	switch ev.Kind {
	case midi.NoteOn:
		syn.ProcessMidiMessage(ch, noteOn, int32(ev.Key), int32(ev.Velocity))
	case midi.NoteOff:
		syn.ProcessMidiMessage(ch, noteOff, int32(ev.Key), int32(ev.Velocity))
	case midi.ControlChange:
		syn.ProcessMidiMessage(ch, controlChange, int32(ev.Control), int32(ev.Value))
	case midi.ProgramChange:
		syn.ProcessMidiMessage(ch, programChange, int32(ev.Value), 0)
	case midi.PitchBend:
		v := int32(ev.Bend) + 8192
		syn.ProcessMidiMessage(ch, pitchBend, v&0x7F, (v>>7)&0x7F)
	default:
		return false
	}
	return true
}

// setBendRange sets the pitch bend sensitivity (RPN 0) on all 16 channels
func setBendRange(syn synthesizer, cents float64) {
	semitones := int32(cents / 100)
	rest := int32(math.Round(cents - float64(semitones)*100))
	if semitones > 127 {
		semitones = 127
	}
	for ch := int32(0); ch < 16; ch++ {
		syn.ProcessMidiMessage(ch, controlChange, 101, 0)
		syn.ProcessMidiMessage(ch, controlChange, 100, 0)
		syn.ProcessMidiMessage(ch, controlChange, 6, semitones)
		syn.ProcessMidiMessage(ch, controlChange, 38, rest)
	}
}
