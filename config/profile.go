package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

// ErrInvalidProfile is wrapped by every profile validation failure
var ErrInvalidProfile = errors.New("invalid device profile")

// TuningMode says how a device can be retuned
type TuningMode string

const (
	// TuningSysex devices understand MTS single-note tuning messages
	TuningSysex TuningMode = "sysex"
	// TuningNone devices can only be corrected through pitch bend
	TuningNone TuningMode = "none"
)

// Param is one entry of a device parameter table: the value domain a tone
// may use and the controller number it is sent on.
type Param struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Control uint8   `json:"control" yaml:"control"`
}

// Contains reports whether v lies within the declared domain.
// Domains may be declared descending (Min > Max).
func (p Param) Contains(v float64) bool {
	lo, hi := p.Min, p.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// Scale maps v from [Min, Max] onto the controller range 0..127
func (p Param) Scale(v float64) uint8 {
	percent := (v - p.Min) / (p.Max - p.Min)
	scaled := int(127 * percent)
	switch {
	case scaled < 0:
		return 0
	case scaled > 127:
		return 127
	}
	return uint8(scaled)
}

// Params is a device parameter table keyed by parameter name
type Params map[string]Param

// Names returns the parameter names in sorted order
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile describes a target synthesizer
type Profile struct {
	Name       string `json:"name" yaml:"name"`
	Instrument string `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Program    uint8  `json:"program,omitempty" yaml:"program,omitempty"`

	Channels []int      `json:"channels" yaml:"channels"`
	Keys     []int      `json:"keys,omitempty" yaml:"keys,omitempty"` // empty = all 128
	Tuning   TuningMode `json:"tuning" yaml:"tuning"`
	MaxCents float64    `json:"maxCents" yaml:"maxCents"` // pitch-bend range, up and down

	// ControlDelay is the number of ticks between a tone's controls and its note-on
	ControlDelay int `json:"controlDelay,omitempty" yaml:"controlDelay,omitempty"`

	Params   Params `json:"params,omitempty" yaml:"params,omitempty"`
	FineTune *Param `json:"fineTune,omitempty" yaml:"fineTune,omitempty"`

	// Renderer is the external program that turns a MIDI file into audio
	Renderer string `json:"renderer,omitempty" yaml:"renderer,omitempty"`
}

// AvailableKeys returns the key pool sorted ascending
func (p Profile) AvailableKeys() []uint8 {
	if len(p.Keys) == 0 {
		keys := make([]uint8, 128)
		for i := range keys {
			keys[i] = uint8(i)
		}
		return keys
	}
	sorted := append([]int(nil), p.Keys...)
	sort.Ints(sorted)
	keys := make([]uint8, len(sorted))
	for i, k := range sorted {
		keys[i] = uint8(k)
	}
	return keys
}

// ChannelNumbers returns the channel list as MIDI channel numbers
func (p Profile) ChannelNumbers() []uint8 {
	out := make([]uint8, len(p.Channels))
	for i, ch := range p.Channels {
		out[i] = uint8(ch)
	}
	return out
}

// InstrumentName falls back to the profile name
func (p Profile) InstrumentName() string {
	if p.Instrument != "" {
		return p.Instrument
	}
	return p.Name
}

// Validate reports every problem with the profile at once
func (p Profile) Validate() error {
	var err error
	if len(p.Channels) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %q has no channels", ErrInvalidProfile, p.Name))
	}
	seenCh := make(map[int]bool)
	for _, ch := range p.Channels {
		if ch < 0 || ch > 15 {
			err = multierr.Append(err, fmt.Errorf("%w: %q channel %d out of range 0..15", ErrInvalidProfile, p.Name, ch))
		}
		if seenCh[ch] {
			err = multierr.Append(err, fmt.Errorf("%w: %q channel %d listed twice", ErrInvalidProfile, p.Name, ch))
		}
		seenCh[ch] = true
	}
	seenKey := make(map[int]bool)
	for _, k := range p.Keys {
		if k < 0 || k > 127 {
			err = multierr.Append(err, fmt.Errorf("%w: %q key %d out of range 0..127", ErrInvalidProfile, p.Name, k))
		}
		if seenKey[k] {
			err = multierr.Append(err, fmt.Errorf("%w: %q key %d listed twice", ErrInvalidProfile, p.Name, k))
		}
		seenKey[k] = true
	}
	switch p.Tuning {
	case TuningSysex, TuningNone:
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %q unknown tuning mode %q", ErrInvalidProfile, p.Name, p.Tuning))
	}
	if p.MaxCents <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %q maxCents must be positive", ErrInvalidProfile, p.Name))
	}
	if p.ControlDelay < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %q negative control delay", ErrInvalidProfile, p.Name))
	}
	for _, name := range p.Params.Names() {
		param := p.Params[name]
		if param.Min == param.Max {
			err = multierr.Append(err, fmt.Errorf("%w: %q param %s has an empty domain", ErrInvalidProfile, p.Name, name))
		}
		if param.Control > 127 {
			err = multierr.Append(err, fmt.Errorf("%w: %q param %s control %d out of range", ErrInvalidProfile, p.Name, name, param.Control))
		}
	}
	if p.FineTune != nil && p.FineTune.Min == p.FineTune.Max {
		err = multierr.Append(err, fmt.Errorf("%w: %q fine-tune has an empty domain", ErrInvalidProfile, p.Name))
	}
	return err
}

// LoadProfile reads a profile from a .json, .yaml or .yml file
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, p.Validate()
}
