package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Kind is the type of a rendered MIDI message
type Kind uint8

// MIDI message kinds
const (
	NoteOn Kind = iota
	NoteOff
	ControlChange
	PitchBend
	SysEx
	ProgramChange
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case ControlChange:
		return "control_change"
	case PitchBend:
		return "pitchwheel"
	case SysEx:
		return "sysex"
	case ProgramChange:
		return "program_change"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a single channel or sysex message, without timing
type Event struct {
	Kind     Kind
	Channel  uint8
	Key      uint8  // NoteOn, NoteOff
	Velocity uint8  // NoteOn, NoteOff
	Control  uint8  // ControlChange
	Value    uint8  // ControlChange, ProgramChange
	Bend     int16  // PitchBend, -8192..8191, 0 = center
	Data     []byte // SysEx payload without F0/F7
}

// Message encodes the event as raw MIDI bytes
func (e Event) Message() gomidi.Message {
	switch e.Kind {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Key, e.Velocity)
	case NoteOff:
		return gomidi.NoteOffVelocity(e.Channel, e.Key, e.Velocity)
	case ControlChange:
		return gomidi.ControlChange(e.Channel, e.Control, e.Value)
	case PitchBend:
		return gomidi.Pitchbend(e.Channel, e.Bend)
	case SysEx:
		return gomidi.SysEx(e.Data)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Value)
	}
	return nil
}

func (e Event) String() string {
	switch e.Kind {
	case NoteOn, NoteOff:
		return fmt.Sprintf("%s{key=%d velocity=%d channel=%d}", e.Kind, e.Key, e.Velocity, e.Channel)
	case ControlChange:
		return fmt.Sprintf("%s{control=%d value=%d channel=%d}", e.Kind, e.Control, e.Value, e.Channel)
	case PitchBend:
		return fmt.Sprintf("%s{value=%d channel=%d}", e.Kind, e.Bend, e.Channel)
	case SysEx:
		return fmt.Sprintf("%s{%v}", e.Kind, e.Data)
	case ProgramChange:
		return fmt.Sprintf("%s{program=%d channel=%d}", e.Kind, e.Value, e.Channel)
	}
	return e.Kind.String()
}

// Constructors used by the sequencer

func On(ch, key, velocity uint8) Event {
	return Event{Kind: NoteOn, Channel: ch, Key: key, Velocity: velocity}
}

func Off(ch, key, velocity uint8) Event {
	return Event{Kind: NoteOff, Channel: ch, Key: key, Velocity: velocity}
}

func CC(ch, control, value uint8) Event {
	return Event{Kind: ControlChange, Channel: ch, Control: control, Value: value}
}

func Bend(ch uint8, value int16) Event {
	return Event{Kind: PitchBend, Channel: ch, Bend: value}
}

func Program(ch, program uint8) Event {
	return Event{Kind: ProgramChange, Channel: ch, Value: program}
}

func Sysex(data ...byte) Event {
	return Event{Kind: SysEx, Data: data}
}
