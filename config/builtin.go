package config

import "sort"

func allChannelsExcept(skip ...int) []int {
	var out []int
next:
	for ch := 0; ch < 16; ch++ {
		for _, s := range skip {
			if ch == s {
				continue next
			}
		}
		out = append(out, ch)
	}
	return out
}

// Pianoteq parameter table (controller assignments of the "complete"
// MIDI mapping)
var pianoteqParams = Params{
	"unison_width":           {0, 20, 2},
	"hammer_noise":           {0.2, 3, 3},
	"diapason":               {220, 880, 5},
	"octave_stretching":      {0.95, 3, 6},
	"unison_balance":         {-1, 1, 7},
	"direct_sound_duration":  {0, 5, 8},
	"hammer_hard_piano":      {0, 2, 9},
	"spectrum_profile_1":     {-15, 15, 10},
	"spectrum_profile_2":     {-15, 15, 11},
	"spectrum_profile_3":     {-15, 15, 12},
	"spectrum_profile_4":     {-15, 15, 13},
	"spectrum_profile_5":     {-15, 15, 14},
	"spectrum_profile_6":     {-15, 15, 15},
	"spectrum_profile_7":     {-15, 15, 16},
	"spectrum_profile_8":     {-15, 15, 17},
	"strike_point":           {1.0 / 64, 1.0 / 2, 18},
	"pinch_harmonic_point":   {1.0 / 64, 1.0 / 2, 19},
	"pickup_symmetry":        {0, 1, 20},
	"pickup_distance":        {0.2, 2, 21},
	"soft_level":             {0, 1, 22},
	"impedance":              {0.3, 3, 23},
	"cutoff":                 {0.3, 3, 24},
	"q_factor":               {0.2, 5, 25},
	"string_length":          {0.8, 10, 26},
	"sympathetic_resonance":  {0, 5, 27},
	"duplex_scale_resonance": {0, 20, 28},
	"quadratic_effect":       {0, 20, 29},
	"damper_noise":           {-85, 12, 30},
	"damper_position":        {1.0 / 64, 1.0 / 2, 31},
	"last_damper":            {0, 128, 32},
	"pedal_noise":            {-70, 25, 33},
	"key_release_noise":      {-70, 25, 34},
	"damping_duration":       {0.03, 10, 35},
	"mute":                   {0, 1, 36},
	"hammer_tine_noise":      {-100, 25, 40},
	"blooming_energy":        {0, 2, 41},
	"blooming_inertia":       {0.1, 3, 42},
	"aftertouch":             {0, 1, 43},
	"post_effect_gain":       {-12, 12, 44},
	"bounce_switch":          {0, 1, 45},
	"bounce_delay":           {10, 250, 46},
	"bounce_sync":            {0, 1, 47},
	"bounce_sync_speed":      {16, 1.0 / 8, 48},
	"bounce_velocity_speed":  {0, 100, 49},
	"bounce_delay_loss":      {0, 100, 50},
	"bounce_velocity_loss":   {0, 100, 51},
	"bounce_humanization":    {0, 100, 52},
	"sustain_pedal":          {0, 1, 53},
	"soft_pedal":             {0, 1, 54},
	"sostenuto_pedal":        {0, 1, 55},
	"harmonic_pedal":         {0, 1, 56},
	"rattle_pedal":           {0, 1, 57},
	"celeste_pedal":          {0, 1, 59},
	"super_sostenuto":        {0, 1, 60},
	"pinch_harmonic_pedal":   {0, 1, 61},
	"glissando_pedal":        {0, 1, 62},
	"reversed_sustain":       {0, 1, 66},
	"mozart_rail":            {0, 1, 67},
	"stereo_width":           {0, 5, 72},
	"lid_position":           {0, 1, 73},
	"output_mode":            {0, 3, 74},
	"head_x_position":        {-10, 10, 77},
	"head_y_position":        {-6, 6, 78},
	"head_z_position":        {0, 3.5, 79},
	"head_diameter":          {10, 50, 80},
	"head_angle":             {-180, 180, 81},
	"reverb_switch":          {0, 1, 91},
	"sound_speed":            {200, 500, 92},
	"wall_distance":          {0, 6, 93},
	"hammer_hard_mezzo":      {0, 2, 94},
	"hammer_hard_forte":      {0, 2, 95},
	"effect1_switch":         {0, 1, 102},
}

// U-He Diva. CC 2 is taken by the fine-tune control.
var divaParams = Params{
	"volume_curve":          {0, 1, 3},
	"vcf1_feedback":         {0, 100, 4},
	"vcf1_filter_fm":        {-24, 24, 7},
	"vcf1_freq_mod_depth":   {-120, 120, 12},
	"vcf1_freq_mod_depth2":  {-120, 120, 10},
	"vcf1_cutoff_frequency": {30, 150, 14},
	"vcf1_resonance":        {0, 100, 17},
	"lfo2_delay":            {0, 100, 20},
	"lfo2_depth_mod":        {0, 100, 21},
	"lfo2_freq_mod":         {0, 100, 23},
	"lfo2_phase":            {0, 100, 24},
	"lfo2_rate":             {-5, 5, 25},
	"osc_vibrato":           {0, 100, 26},
	"osc_mix":               {0, 100, 27},
	"osc_fm":                {0, 100, 28},
	"osc_noise_volume":      {0, 100, 29},
	"osc_tune_mod_depth1":   {-24, 24, 33},
	"osc_tune_mod_depth2":   {-24, 24, 32},
}

func builtins() map[string]Profile {
	return map[string]Profile{
		"pianoteq": {
			Name:         "pianoteq",
			Instrument:   "Acoustic Grand Piano",
			Channels:     allChannelsExcept(9), // pianoteq ignores channel 10
			Tuning:       TuningSysex,
			MaxCents:     1200,
			ControlDelay: 40,
			Params:       pianoteqParams,
			Renderer:     "pianoteq",
		},
		"diva": {
			Name:     "diva",
			Channels: []int{0}, // monophonic
			Tuning:   TuningNone,
			MaxCents: 1200,
			Params:   divaParams,
			FineTune: &Param{Min: -100, Max: 100, Control: 2},
		},
		"bliss": {
			Name:     "bliss",
			Channels: []int{0},
			Tuning:   TuningNone,
			MaxCents: 1200,
		},
		"gm": {
			Name:       "gm",
			Instrument: "Acoustic Grand Piano",
			Channels:   allChannelsExcept(),
			Tuning:     TuningNone,
			MaxCents:   200,
		},
	}
}

// Builtin looks up a built-in profile by name
func Builtin(name string) (Profile, bool) {
	p, ok := builtins()[name]
	return p, ok
}

// BuiltinNames lists the built-in profile names
func BuiltinNames() []string {
	var names []string
	for name := range builtins() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
