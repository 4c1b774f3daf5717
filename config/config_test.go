package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
)

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			p, ok := Builtin(name)
			if !ok {
				t.Fatalf("builtin %q missing", name)
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("validate: %v", err)
			}
		})
	}
}

func TestPianoteqSkipsChannelNine(t *testing.T) {
	p, _ := Builtin("pianoteq")
	if len(p.Channels) != 15 {
		t.Fatalf("channels = %d, want 15", len(p.Channels))
	}
	for _, ch := range p.Channels {
		if ch == 9 {
			t.Fatal("channel 9 should not be available")
		}
	}
	if p.Tuning != TuningSysex {
		t.Fatalf("tuning = %q, want sysex", p.Tuning)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	p := Profile{
		Name:     "broken",
		Channels: []int{3, 3, 16},
		Keys:     []int{60, 60},
		Tuning:   "mts",
		Params:   Params{"flat": {Min: 1, Max: 1, Control: 7}},
	}
	err := p.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("error %v does not wrap ErrInvalidProfile", err)
	}
	// duplicate channel, channel range, duplicate key, tuning, maxCents, param domain
	if got := len(multierr.Errors(err)); got != 6 {
		t.Fatalf("got %d problems, want 6: %v", got, err)
	}
}

func TestParamScale(t *testing.T) {
	cases := []struct {
		name  string
		param Param
		v     float64
		want  uint8
	}{
		{"min", Param{Min: 0, Max: 1}, 0, 0},
		{"max", Param{Min: 0, Max: 1}, 1, 127},
		{"middle", Param{Min: -15, Max: 15}, 0, 63},
		{"descending domain", Param{Min: 16, Max: 0.125}, 16, 0},
		{"clamp above", Param{Min: 0, Max: 1}, 2, 127},
		{"clamp below", Param{Min: 0, Max: 1}, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.param.Scale(tc.v); got != tc.want {
				t.Fatalf("Scale(%v) = %d, want %d", tc.v, got, tc.want)
			}
		})
	}
	if !(Param{Min: 16, Max: 0.125}).Contains(1) {
		t.Fatal("descending domain should contain 1")
	}
}

func TestAvailableKeys(t *testing.T) {
	if got := len(Profile{}.AvailableKeys()); got != 128 {
		t.Fatalf("default pool = %d keys, want 128", got)
	}
	got := Profile{Keys: []int{64, 60, 62}}.AvailableKeys()
	want := []uint8{60, 62, 64}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestLoadProfileYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "organ.yaml")
	yamlData := `name: organ
channels: [0, 1]
keys: [60, 61, 62]
tuning: sysex
maxCents: 200
params:
  drawbar:
    min: 0
    max: 8
    control: 12
`
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProfile(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if p.Name != "organ" || len(p.Channels) != 2 || p.Tuning != TuningSysex {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Params["drawbar"].Control != 12 {
		t.Fatalf("drawbar control = %d, want 12", p.Params["drawbar"].Control)
	}

	jsonPath := filepath.Join(dir, "lead.json")
	jsonData := `{"channels":[0],"tuning":"none","maxCents":1200}`
	if err := os.WriteFile(jsonPath, []byte(jsonData), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProfile(jsonPath)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if p.Name != "lead" {
		t.Fatalf("name = %q, want file stem", p.Name)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.TickRate() != DefaultTickRate {
		t.Fatalf("tick rate = %d, want default", cfg.TickRate())
	}

	gm, _ := Builtin("gm")
	gm.Name = "pianoteq" // shadows the built-in
	cfg.AddProfile(gm)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	p, ok := loaded.Profile("")
	if !ok {
		t.Fatal("default profile not found")
	}
	if p.Tuning != TuningNone {
		t.Fatalf("user profile should shadow built-in, got tuning %q", p.Tuning)
	}
	if _, ok := loaded.Profile("bliss"); !ok {
		t.Fatal("built-in fallback missing")
	}
}
