package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"go-midiplug/config"
	"go-midiplug/sequencer"
	"go-midiplug/theme"
)

// lanes is the number of columns in the key map
const lanes = 64

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return durafmt.Parse(d.Round(time.Millisecond)).LimitFirstN(2).String()
}

func row(th *theme.Theme, label, value string) string {
	return th.Label().Render(label) + th.Value().Render(value)
}

func listProfiles(cfg *config.Config, th *theme.Theme) {
	names := config.BuiltinNames()
	for _, p := range cfg.Profiles {
		if _, ok := config.Builtin(p.Name); !ok {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)

	var boxes []string
	for _, name := range names {
		p, _ := cfg.Profile(name)
		title := p.Name
		if name == cfg.DefaultProfile {
			title += " (default)"
		}
		lines := []string{
			th.Title().Render(title),
			row(th, "instrument", p.InstrumentName()),
			row(th, "channels", fmt.Sprintf("%d", len(p.Channels))),
			row(th, "keys", fmt.Sprintf("%d", len(p.AvailableKeys()))),
			row(th, "tuning", string(p.Tuning)),
			row(th, "bend range", fmt.Sprintf("±%g ct", p.MaxCents)),
			row(th, "params", humanize.Comma(int64(len(p.Params)))),
		}
		if p.ControlDelay > 0 {
			lines = append(lines, row(th, "control delay", fmt.Sprintf("%d ticks", p.ControlDelay)))
		}
		boxes = append(boxes, th.Box().Render(strings.Join(lines, "\n")))
	}
	fmt.Println(lipgloss.JoinVertical(lipgloss.Left, boxes...))
}

// report summarises a render: sizes, allocation and a map of which keys
// sound when, coloured by pitch deviation
func report(th *theme.Theme, r *sequencer.Renderer, took time.Duration) string {
	p := r.Profile()
	keys := r.Keys()
	lines := []string{
		th.Title().Render("render " + p.Name),
		row(th, "tones", fmt.Sprintf("%d (%d events)", len(r.Tones()), len(r.Sequence()))),
		row(th, "duration", formatDuration(time.Duration(r.Duration()*float64(time.Second)))),
		row(th, "messages", humanize.Comma(int64(len(r.Stream().Events)))),
		row(th, "overlap", fmt.Sprintf("%d voices", r.Overlaps().Degree())),
		row(th, "computed in", formatDuration(took)),
	}
	for _, w := range r.Warnings() {
		lines = append(lines, th.Alert().Render("! "+w.String()))
	}
	if len(keys) > 0 {
		lines = append(lines, "", keyMap(th, r))
	}
	return th.Box().Render(strings.Join(lines, "\n"))
}

func keyMap(th *theme.Theme, r *sequencer.Renderer) string {
	keys, spans, tones := r.Keys(), r.Spans(), r.Tones()
	devs := r.Deviations()
	ticks := r.Grid().Len()
	col := func(tick int) int { return tick * lanes / ticks }

	used := map[uint8]bool{}
	for _, k := range keys {
		used[k] = true
	}
	var order []uint8
	for k := range used {
		order = append(order, k)
	}
	sort.Slice(order, func(a, b int) bool { return order[a] > order[b] })

	var out []string
	for _, key := range order {
		cells := make([]string, lanes)
		for c := range cells {
			cells[c] = lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.Idle))
		}
		for i, k := range keys {
			if k != key {
				continue
			}
			var mean float64
			for _, d := range devs[i] {
				mean += d / float64(len(devs[i]))
			}
			style := lipgloss.NewStyle().Foreground(th.Deviation(mean, r.Profile().MaxCents))
			sym := th.Symbols.Sounding
			if len(tones[i].Tuning()) > 0 {
				sym = th.Symbols.Retuned
			}
			start, end := col(spans[i].Start), col(spans[i].End)
			for c := start; c <= end && c < lanes; c++ {
				cells[c] = style.Render(string(sym))
			}
			if start < lanes {
				cells[start] = style.Render(string(th.Symbols.Onset))
			}
		}
		out = append(out, fmt.Sprintf("%s %s", th.Label().Width(5).Render(fmt.Sprintf("%3d", key)), strings.Join(cells, "")))
	}
	return strings.Join(out, "\n")
}
