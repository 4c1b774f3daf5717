package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestEventMessageBytes(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want []byte
	}{
		{"note on", On(1, 60, 100), []byte{0x91, 60, 100}},
		{"note off", Off(2, 61, 64), []byte{0x82, 61, 64}},
		{"control change", CC(0, 7, 127), []byte{0xB0, 7, 127}},
		{"pitch bend center", Bend(0, 0), []byte{0xE0, 0x00, 0x40}},
		{"pitch bend max", Bend(3, 8191), []byte{0xE3, 0x7F, 0x7F}},
		{"program", Program(9, 5), []byte{0xC9, 5}},
		{"sysex", Sysex(127, 127, 8, 2, 0, 1, 60, 60, 0, 0), []byte{0xF0, 127, 127, 8, 2, 0, 1, 60, 60, 0, 0, 0xF7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := []byte(tc.ev.Message())
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("bytes = % X, want % X", got, tc.want)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	if got := On(0, 60, 64).String(); got != "note_on{key=60 velocity=64 channel=0}" {
		t.Fatalf("String() = %q", got)
	}
	if got := Bend(2, -5).String(); got != "pitchwheel{value=-5 channel=2}" {
		t.Fatalf("String() = %q", got)
	}
}

func testStream() Stream {
	return Stream{
		Instrument: "Test Piano",
		TickRate:   1000,
		Events: []Timed{
			{Delta: 0, Event: Program(0, 0)},
			{Delta: 0, Event: Sysex(127, 127, 8, 2, 0, 1, 60, 60, 0, 0)},
			{Delta: 40, Event: On(0, 60, 64)},
			{Delta: 500, Event: Off(0, 60, 64)},
		},
	}
}

func TestStreamLenAndResolution(t *testing.T) {
	s := testStream()
	if got := s.Len(); got != 540 {
		t.Fatalf("Len() = %d, want 540", got)
	}
	if got := s.TicksPerBeat(); got != 500 {
		t.Fatalf("TicksPerBeat() = %d, want 500", got)
	}
}

func TestWriteSMF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSMF(&buf, testStream()); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Fatalf("missing header: % X", data[:8])
	}
	if !bytes.Contains(data, []byte("Test Piano")) {
		t.Fatal("instrument name missing")
	}
	sysex := []byte{127, 127, 8, 2, 0, 1, 60, 60, 0, 0, 0xF7}
	if !bytes.Contains(data, sysex) {
		t.Fatal("sysex payload missing")
	}
}

func TestWriteSMFRejectsBadTickRate(t *testing.T) {
	s := testStream()
	s.TickRate = 0
	if err := WriteSMF(&bytes.Buffer{}, s); err == nil {
		t.Fatal("expected error for zero tick rate")
	}
}

func TestSaveSMFLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mid")
	if err := SaveSMF(path, testStream()); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.mid" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}

	bad := testStream()
	bad.TickRate = -1
	if err := SaveSMF(filepath.Join(dir, "bad.mid"), bad); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.mid")); !os.IsNotExist(err) {
		t.Fatal("failed export left a file behind")
	}
}
