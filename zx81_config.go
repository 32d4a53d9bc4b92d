// zx81_config.go - Command line configuration for the ZX81 shell

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const ZX81_WINDOW_TITLE = "ZX81 - Intuition Engine"

// ZX81Options holds the parsed command line
type ZX81Options struct {
	ROMPath    string
	Steps      int
	Backend    string
	Scale      int
	Frames     uint64
	Fullscreen bool
	StatusBar  bool
	StatsView  bool
	Paste      string
	Dump       bool
	AtlasPath  string
}

// ConfigError reports a command line value that cannot be used
type ConfigError struct {
	Flag    string
	Value   string
	Details string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid -%s %q: %s", e.Flag, e.Value, e.Details)
}

func newZX81FlagSet(opts *ZX81Options, steps, frames *string) *flag.FlagSet {
	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.ROMPath, "rom", DEFAULT_ROM_PATH, "8K ZX81 ROM image")
	flagSet.StringVar(steps, "steps", strconv.Itoa(DEFAULT_STEPS_PER_FRAME), "Instructions executed per frame (hex or decimal)")
	flagSet.StringVar(&opts.Backend, "backend", HOST_BACKEND_WINDOW, "Host backend: window, term or headless")
	flagSet.IntVar(&opts.Scale, "scale", DEFAULT_SCALE, "Window scale factor (1-4)")
	flagSet.StringVar(frames, "frames", "0", "Stop after this many frames (0 runs until quit)")
	flagSet.BoolVar(&opts.Fullscreen, "fullscreen", false, "Start in fullscreen")
	flagSet.BoolVar(&opts.StatusBar, "status", false, "Show the status bar (F12 toggles)")
	flagSet.BoolVar(&opts.StatsView, "statsview", false, "Serve Go runtime charts at "+STATSVIEW_ADDRESS)
	flagSet.StringVar(&opts.Paste, "paste", "", "Text to type once the machine is running")
	flagSet.BoolVar(&opts.Dump, "dump", false, "Print the screen as text on exit")
	flagSet.StringVar(&opts.AtlasPath, "atlas", "", "Write the character set atlas as PNG and exit")
	return flagSet
}

// parseZX81Flags parses args (without the program name). flag.ErrHelp is
// returned unchanged when usage was requested.
func parseZX81Flags(args []string) (ZX81Options, error) {
	var (
		opts   ZX81Options
		steps  string
		frames string
	)

	flagSet := newZX81FlagSet(&opts, &steps, &frames)
	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./zx81 [-rom zx81.rom] [-backend window|term|headless] [-steps 100000] [-scale 1] [rom]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if flagSet.NArg() > 0 {
		opts.ROMPath = flagSet.Arg(0)
	}

	n, err := strconv.ParseUint(steps, 0, 31)
	if err != nil || n == 0 {
		return opts, &ConfigError{Flag: "steps", Value: steps, Details: "must be a positive integer"}
	}
	opts.Steps = int(n)

	opts.Frames, err = strconv.ParseUint(frames, 0, 64)
	if err != nil {
		return opts, &ConfigError{Flag: "frames", Value: frames, Details: "must be a non-negative integer"}
	}

	switch opts.Backend {
	case HOST_BACKEND_WINDOW, HOST_BACKEND_TERMINAL, HOST_BACKEND_HEADLESS:
	default:
		return opts, &ConfigError{Flag: "backend", Value: opts.Backend, Details: "unknown backend"}
	}

	if opts.Backend == HOST_BACKEND_HEADLESS && opts.Frames == 0 && opts.AtlasPath == "" {
		return opts, &ConfigError{Flag: "frames", Value: frames, Details: "headless runs need a frame limit"}
	}

	opts.Paste = strings.ReplaceAll(opts.Paste, `\n`, "\n")
	opts.Scale = ClampScale(opts.Scale)
	return opts, nil
}

// loadROM reads a ROM image from disk and checks its size.
func loadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ROMError{Path: path, Err: err}
	}
	if len(data) != ZX81_ROM_SIZE {
		return nil, &ROMError{Path: path, Size: len(data)}
	}
	return data, nil
}

// displayConfig builds the host surface settings from the options.
func (o ZX81Options) displayConfig() DisplayConfig {
	return DisplayConfig{
		Width:      ZX81_SCREEN_WIDTH,
		Height:     ZX81_SCREEN_HEIGHT,
		Scale:      o.Scale,
		Title:      ZX81_WINDOW_TITLE,
		Fullscreen: o.Fullscreen,
		StatusBar:  o.StatusBar,
	}
}

// writeAtlasPNG renders the character set of rom to a PNG file.
func writeAtlasPNG(path string, rom []byte) error {
	atlas, err := BuildCharsetAtlas(rom)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := atlas.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
