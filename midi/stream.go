package midi

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Timed is an event with its delay in ticks from the previous event
type Timed struct {
	Delta uint32
	Event
}

// Stream is a complete, ordered single-track message stream
type Stream struct {
	Instrument string
	TickRate   int // ticks per second
	Events     []Timed
}

// tempo of the written file. Ticks per beat are derived from it so that one
// tick lasts exactly 1/TickRate seconds.
const bpm = 120

// TicksPerBeat returns the SMF resolution that matches the tick rate
func (s Stream) TicksPerBeat() uint16 {
	return uint16(s.TickRate * 60 / bpm)
}

// Len returns the total length of the stream in ticks
func (s Stream) Len() uint64 {
	var total uint64
	for _, ev := range s.Events {
		total += uint64(ev.Delta)
	}
	return total
}

// SMF builds a single-track standard MIDI file from the stream
func (s Stream) SMF() (*smf.SMF, error) {
	if s.TickRate <= 0 {
		return nil, fmt.Errorf("invalid tick rate %d", s.TickRate)
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(s.TicksPerBeat())

	var track smf.Track
	if s.Instrument != "" {
		track.Add(0, smf.MetaInstrument(s.Instrument))
	}
	track.Add(0, smf.MetaTempo(bpm))
	for _, ev := range s.Events {
		msg := ev.Message()
		if msg == nil {
			return nil, fmt.Errorf("cannot encode %s", ev.Event)
		}
		track.Add(ev.Delta, msg)
	}
	track.Close(0)

	if err := sm.Add(track); err != nil {
		return nil, fmt.Errorf("error adding track: %w", err)
	}
	return sm, nil
}

// WriteSMF writes the stream as a standard MIDI file to w
func WriteSMF(w io.Writer, s Stream) error {
	sm, err := s.SMF()
	if err != nil {
		return err
	}
	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI data: %w", err)
	}
	return nil
}

// SaveSMF writes the stream to path. The file is written next to its
// destination and renamed into place, so a failed export never leaves a
// partial file behind.
func SaveSMF(path string, s Stream) error {
	sm, err := s.SMF()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".midiplug-*.mid")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := sm.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
