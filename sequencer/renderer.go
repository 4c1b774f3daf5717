// Package sequencer turns a sequence of tones into a single MIDI stream for
// a given device: it lays the tones on a tick grid, finds which tones
// overlap, gives every tone a key no overlapping tone uses, spreads tones
// over channels with per-channel pitch bend, and merges controls, tunings
// and notes into one ordered stream.
package sequencer

import (
	"fmt"
	"io"

	"go-midiplug/config"
	"go-midiplug/debug"
	"go-midiplug/midi"
	"go-midiplug/tone"
	"go-midiplug/tuning"
)

// Renderer is a sequence rendered for one device. Everything is computed by
// New; the accessors and exports only read.
type Renderer struct {
	profile  config.Profile
	table    *tuning.Table
	tickRate int
	tie      bool

	sequence   []tone.Tone // input, tied when requested
	tones      []tone.Tone // sounding tones only
	grid       Grid
	spans      []Span
	overlaps   OverlapSet
	keys       []uint8
	channels   []uint8
	deviations [][]float64
	bends      Bends
	warnings   []Warning
	stream     midi.Stream
}

// Option configures a Renderer
type Option func(*Renderer)

// WithTickRate sets the grid resolution in ticks per second
func WithTickRate(rate int) Option {
	return func(r *Renderer) { r.tickRate = rate }
}

// WithTable sets the frequency table keys are measured against
func WithTable(t *tuning.Table) Option {
	return func(r *Renderer) { r.table = t }
}

// WithTie merges rests into the preceding tone before rendering
func WithTie(tie bool) Option {
	return func(r *Renderer) { r.tie = tie }
}

// New renders seq for the device described by profile
func New(seq []tone.Tone, profile config.Profile, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		profile:  profile,
		table:    tuning.Standard(),
		tickRate: DefaultTickRate,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	r.sequence = append([]tone.Tone(nil), seq...)
	if r.tie {
		r.sequence = tone.Tie(r.sequence)
	}
	for _, t := range r.sequence {
		if !t.IsRest() {
			r.tones = append(r.tones, t)
		}
	}

	var err error
	r.grid, r.spans, err = BuildGrid(r.sequence, r.tickRate, profile.ControlDelay+gridPadding)
	if err != nil {
		return nil, err
	}
	r.overlaps = Overlaps(r.sequence)

	freqs := tone.Broadcast(r.tones, tone.Tone.Freq)
	pool := profile.AvailableKeys()
	r.keys, err = AllocateKeys(freqs, r.overlaps, pool, r.table)
	if err != nil {
		return nil, err
	}
	r.channels = AssignChannels(len(r.tones), profile.ChannelNumbers())

	debug.Log("render", "%s: %d events, %d tones, %d ticks, overlap degree %d",
		profile.Name, len(r.sequence), len(r.tones), r.grid.Len(), r.overlaps.Degree())

	if err := r.render(pool); err != nil {
		return nil, err
	}
	return r, nil
}

// offset is the static distance in cents from a tone's key to its
// frequency. Sysex devices retune the key itself, so nothing is left over.
func (r *Renderer) offset(i int) float64 {
	if r.profile.Tuning == config.TuningSysex {
		return 0
	}
	return tuning.Cents(r.table.Frequency(r.keys[i]), r.tones[i].Freq())
}

func (r *Renderer) render(pool []uint8) error {
	n := len(r.tones)
	notes := make([][2]midi.Event, n)
	controls := make([][][]midi.Event, n)
	r.deviations = make([][]float64, n)

	for i, t := range r.tones {
		ch, span := r.channels[i], r.spans[i]

		velocity, err := Velocity(t.Volume())
		if err != nil {
			return fmt.Errorf("tone %d: %w", i, err)
		}
		notes[i] = [2]midi.Event{midi.On(ch, r.keys[i], velocity), midi.Off(ch, r.keys[i], velocity)}

		controls[i], err = ControlMessages(t, r.profile.Params, ch, span.Len())
		if err != nil {
			return fmt.Errorf("tone %d: %w", i, err)
		}

		offset := r.offset(i)
		if ft := r.profile.FineTune; ft != nil && r.profile.Tuning != config.TuningSysex {
			controls[i][0] = append(controls[i][0], fineTuneMessage(*ft, ch, offset))
			offset = 0
		}
		r.deviations[i] = Deviation(t, offset, span.Len())
	}

	r.bends, r.warnings = renderBends(r.grid.Len(), r.profile.ControlDelay, r.profile.ChannelNumbers(),
		r.channels, r.spans, r.deviations, r.profile.MaxCents)

	tunings := TuningMessages(r.profile.Tuning, r.tones, r.keys, r.overlaps, pool)

	setup := make([]midi.Event, 0, len(r.profile.Channels))
	for _, ch := range r.profile.ChannelNumbers() {
		setup = append(setup, midi.Program(ch, r.profile.Program))
	}

	events, err := compose(composition{
		ticks:    r.grid.Len(),
		delay:    r.profile.ControlDelay,
		setup:    setup,
		spans:    r.spans,
		keys:     r.keys,
		notes:    notes,
		controls: controls,
		tunings:  tunings,
		bends:    r.bends.events(),
	})
	if err != nil {
		return err
	}
	r.stream = midi.Stream{Instrument: r.profile.InstrumentName(), TickRate: r.tickRate, Events: events}
	return nil
}

func (r *Renderer) Profile() config.Profile { return r.profile }
func (r *Renderer) Grid() Grid { return r.grid }
func (r *Renderer) Overlaps() OverlapSet { return r.overlaps }
func (r *Renderer) Bends() Bends { return r.bends }
func (r *Renderer) Stream() midi.Stream { return r.stream }

// Sequence returns the rendered sequence, after tying
func (r *Renderer) Sequence() []tone.Tone { return append([]tone.Tone(nil), r.sequence...) }

// Tones returns the sounding tones, in the order every per-tone result uses
func (r *Renderer) Tones() []tone.Tone { return append([]tone.Tone(nil), r.tones...) }

func (r *Renderer) Spans() []Span { return append([]Span(nil), r.spans...) }
func (r *Renderer) Keys() []uint8 { return append([]uint8(nil), r.keys...) }
func (r *Renderer) Channels() []uint8 { return append([]uint8(nil), r.channels...) }
func (r *Renderer) Warnings() []Warning { return append([]Warning(nil), r.warnings...) }

// Deviations returns every tone's pitch deviation in cents, one value per
// tick of its span
func (r *Renderer) Deviations() [][]float64 {
	out := make([][]float64, len(r.deviations))
	for i, d := range r.deviations {
		out[i] = append([]float64(nil), d...)
	}
	return out
}

// Duration returns the length of the grid in seconds
func (r *Renderer) Duration() float64 {
	return float64(r.grid.Len()) / float64(r.tickRate)
}

// Write writes the stream as a standard MIDI file
func (r *Renderer) Write(w io.Writer) error {
	return midi.WriteSMF(w, r.stream)
}

// Export saves the stream as a standard MIDI file at path
func (r *Renderer) Export(path string) error {
	if err := midi.SaveSMF(path, r.stream); err != nil {
		return err
	}
	debug.Log("render", "exported %s (%d messages)", path, len(r.stream.Events))
	return nil
}
