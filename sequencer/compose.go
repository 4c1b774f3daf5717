package sequencer

import (
	"errors"
	"fmt"

	"go-midiplug/midi"
)

var ErrInvariant = errors.New("internal invariant violated")

// toneMessages is everything one sounding tone contributes to the stream
type toneMessages struct {
	span     Span
	on, off  midi.Event
	controls [][]midi.Event // per tick from span start
	tuning   []midi.Event   // at span start
}

// tick collects the messages due at one grid tick, grouped by the order
// they are written in: releases first so keys are free before they are
// retuned, note-ons last so controls and bends are in place when a note
// starts.
type tick struct {
	off      []midi.Event
	tuning   []midi.Event
	controls []midi.Event
	bends    []midi.Event
	on       []midi.Event
	release  []midi.Event // note-offs of tones starting and ending on this tick
}

func (t *tick) flatten() []midi.Event {
	n := len(t.off) + len(t.tuning) + len(t.controls) + len(t.bends) + len(t.on) + len(t.release)
	out := make([]midi.Event, 0, n)
	out = append(out, t.off...)
	out = append(out, t.tuning...)
	out = append(out, t.controls...)
	out = append(out, t.bends...)
	out = append(out, t.on...)
	return append(out, t.release...)
}

// composition holds the inputs of compose. The per-tone slices must all
// describe the same tones.
type composition struct {
	ticks    int
	delay    int // ticks from controls to note-on
	setup    []midi.Event
	spans    []Span
	keys     []uint8
	notes    [][2]midi.Event
	controls [][][]midi.Event
	tunings  [][]midi.Event
	bends    [][]midi.Event
}

// compose merges all per-tone messages and the channel setup into a single
// tick-ordered list with relative deltas
func compose(c composition) ([]midi.Timed, error) {
	n := len(c.spans)
	if len(c.keys) != n || len(c.notes) != n || len(c.controls) != n || len(c.tunings) != n {
		return nil, fmt.Errorf("%w: %d spans, %d keys, %d notes, %d control sets, %d tuning sets",
			ErrInvariant, n, len(c.keys), len(c.notes), len(c.controls), len(c.tunings))
	}
	if len(c.bends) > c.ticks {
		return nil, fmt.Errorf("%w: %d bend ticks on a %d tick grid", ErrInvariant, len(c.bends), c.ticks)
	}

	ticks := make([]tick, c.ticks)
	at := func(i int) (*tick, error) {
		if i < 0 || i >= len(ticks) {
			return nil, fmt.Errorf("%w: tick %d outside grid of %d", ErrInvariant, i, len(ticks))
		}
		return &ticks[i], nil
	}

	for i := 0; i < n; i++ {
		tm := toneMessages{span: c.spans[i], on: c.notes[i][0], off: c.notes[i][1],
			controls: c.controls[i], tuning: c.tunings[i]}

		start, err := at(tm.span.Start)
		if err != nil {
			return nil, err
		}
		start.tuning = append(start.tuning, tm.tuning...)
		for k, msgs := range tm.controls {
			t, err := at(tm.span.Start + k)
			if err != nil {
				return nil, err
			}
			t.controls = append(t.controls, msgs...)
		}

		on, err := at(tm.span.Start + c.delay)
		if err != nil {
			return nil, err
		}
		on.on = append(on.on, tm.on)
		off, err := at(tm.span.End + c.delay)
		if err != nil {
			return nil, err
		}
		if tm.span.Len() == 0 {
			off.release = append(off.release, tm.off)
		} else {
			off.off = append(off.off, tm.off)
		}
	}
	for i, msgs := range c.bends {
		ticks[i].bends = msgs
	}

	events := make([]midi.Timed, 0, len(c.setup)+4*n)
	for _, ev := range c.setup {
		events = append(events, midi.Timed{Event: ev})
	}
	last := 0
	for i := range ticks {
		for _, ev := range ticks[i].flatten() {
			events = append(events, midi.Timed{Delta: uint32(i - last), Event: ev})
			last = i
		}
	}
	return events, nil
}
