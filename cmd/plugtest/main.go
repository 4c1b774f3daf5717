package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"go-midiplug/config"
	"go-midiplug/debug"
	"go-midiplug/render"
	"go-midiplug/sequencer"
	"go-midiplug/theme"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	if os.Getenv("MIDIPLUG_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	th := loadTheme()

	switch os.Args[1] {
	case "profiles":
		listProfiles(cfg, th)
	case "demo":
		if len(os.Args) < 3 {
			usage()
			return
		}
		err = demo(cfg, th, os.Args[2], arg(3))
	case "wav":
		if len(os.Args) < 3 {
			usage()
			return
		}
		err = wav(cfg, th, os.Args[2], arg(3))
	case "add":
		if len(os.Args) < 3 {
			usage()
			return
		}
		err = addProfile(cfg, os.Args[2])
	default:
		usage()
	}
	if err != nil {
		fail(err)
	}
}

func arg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	debug.Disable()
	os.Exit(1)
}

func usage() {
	fmt.Println("midiplug test tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  profiles                 - List device profiles")
	fmt.Println("  demo <out.mid> [profile] - Render the demo phrase to a MIDI file")
	fmt.Println("  wav <out.wav> [profile]  - Render the demo phrase to audio")
	fmt.Println("  add <profile.yaml|json>  - Save a profile file to the user config")
	fmt.Println("")
	fmt.Println("MIDIPLUG_DEBUG=1 writes a debug log, MIDIPLUG_PALETTE=<file.gpl> sets colours")
}

func loadTheme() *theme.Theme {
	if path := os.Getenv("MIDIPLUG_PALETTE"); path != "" {
		p, err := theme.LoadGPL(path)
		if err == nil {
			return theme.New(p)
		}
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
	}
	return theme.New(nil)
}

func profile(cfg *config.Config, name string) (config.Profile, error) {
	p, ok := cfg.Profile(name)
	if !ok {
		return config.Profile{}, fmt.Errorf("unknown profile %q (have %s)", name, strings.Join(config.BuiltinNames(), ", "))
	}
	return p, nil
}

func renderDemo(cfg *config.Config, name string) (*sequencer.Renderer, time.Duration, error) {
	p, err := profile(cfg, name)
	if err != nil {
		return nil, 0, err
	}
	seq, err := demoSequence(p, cfg.TickRate())
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	r, err := sequencer.New(seq, p, sequencer.WithTickRate(cfg.TickRate()))
	return r, time.Since(start), err
}

func demo(cfg *config.Config, th *theme.Theme, out, name string) error {
	r, took, err := renderDemo(cfg, name)
	if err != nil {
		return err
	}
	if err := r.Export(out); err != nil {
		return err
	}
	info, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Println(report(th, r, took))
	fmt.Println(th.Value().Render(fmt.Sprintf("wrote %s (%s)", out, humanize.Bytes(uint64(info.Size())))))

	if r.Profile().Renderer != "" {
		fmt.Println(th.Label().Render("hint") + th.Value().Render("run `wav` to render audio through "+r.Profile().Renderer))
	}
	return nil
}

func wav(cfg *config.Config, th *theme.Theme, out, name string) error {
	r, took, err := renderDemo(cfg, name)
	if err != nil {
		return err
	}
	fmt.Println(report(th, r, took))

	rate := cfg.Output.SampleRate
	if rate <= 0 {
		rate = render.DefaultSampleRate
	}
	if r.Profile().Renderer != "" {
		mid := strings.TrimSuffix(out, filepath.Ext(out)) + ".mid"
		if err := r.Export(mid); err != nil {
			return err
		}
		cmd, err := render.Pianoteq{Path: r.Profile().Renderer, Rate: rate}.Start(mid, out)
		if err != nil {
			return err
		}
		fmt.Println(th.Value().Render(fmt.Sprintf("%s rendering %s in the background (pid %d)", r.Profile().Renderer, out, cmd.Process.Pid)))
		return cmd.Process.Release()
	}

	if cfg.Output.SoundFont == "" {
		return fmt.Errorf("profile %q needs output.soundFont in the config", r.Profile().Name)
	}
	sf, err := render.LoadSoundFont(cfg.Output.SoundFont)
	if err != nil {
		return err
	}
	start := time.Now()
	left, right, err := render.SoundFont{Font: sf, SampleRate: rate, BendRange: r.Profile().MaxCents, Tail: 1}.Render(r.Stream())
	if err != nil {
		return err
	}
	if err := render.WriteWAV(out, left, right, rate); err != nil {
		return err
	}
	fmt.Println(th.Value().Render(fmt.Sprintf("wrote %s: %s frames in %s", out,
		humanize.Comma(int64(len(left))), formatDuration(time.Since(start)))))
	return nil
}

func addProfile(cfg *config.Config, path string) error {
	p, err := config.LoadProfile(path)
	if err != nil {
		return err
	}
	cfg.AddProfile(p)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("saved profile %q\n", p.Name)
	return nil
}
