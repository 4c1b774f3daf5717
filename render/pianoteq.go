// Package render turns exported MIDI into audio, either by handing the file
// to an external renderer or by playing the stream through a SoundFont.
package render

import (
	"fmt"
	"os/exec"
	"strconv"

	"go-midiplug/debug"
)

// DefaultSampleRate is used when a renderer has no rate set
const DefaultSampleRate = 44100

// Pianoteq runs the Pianoteq command line renderer
type Pianoteq struct {
	Path    string // executable, "pianoteq" when empty
	Rate    int
	Stereo  bool
	Preset  string
	FXP     string
	Verbose bool
}

// Args returns the command line that renders mid into wav
func (p Pianoteq) Args(mid, wav string) []string {
	rate := p.Rate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	args := []string{
		"--rate", strconv.Itoa(rate),
		"--bit-depth", "32",
		"--midimapping", "complete",
	}
	if !p.Verbose {
		args = append(args, "--quiet")
	}
	if !p.Stereo {
		args = append(args, "--mono")
	}
	if p.Preset != "" {
		args = append(args, "--preset", p.Preset)
	}
	if p.FXP != "" {
		args = append(args, "--fxp", p.FXP)
	}
	return append(args, "--midi", mid, "--wav", wav)
}

// Start launches the renderer and returns without waiting for it. The
// caller may Wait on the returned command.
func (p Pianoteq) Start(mid, wav string) (*exec.Cmd, error) {
	path := p.Path
	if path == "" {
		path = "pianoteq"
	}
	cmd := exec.Command(path, p.Args(mid, wav)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}
	debug.Log("render", "started %s (pid %d) for %s", path, cmd.Process.Pid, mid)
	return cmd, nil
}
