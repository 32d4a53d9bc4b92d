// main.go - ZX81 shell entry point

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
	"errors"
	"flag"
	"fmt"
	"os"
)

// textTyper is implemented by backends that can type text into the machine
type textTyper interface {
	TypeText(text string) int
}

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ZX81 \033[38;2;255;110;147mon the \033[38;2;255;200;147mIntuition Engine\033[0m")
	fmt.Println("Sinclair ZX81 BASIC shell: 8K ROM, 32x24 display file, 40-key matrix.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	opts, err := parseZX81Flags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Backend != HOST_BACKEND_TERMINAL {
		boilerPlate()
	}
	if opts.StatsView {
		launchStatsView(os.Stdout)
	}

	rom, err := loadROM(opts.ROMPath)
	if err != nil {
		fmt.Printf("Failed to load ROM: %v\n", err)
		os.Exit(1)
	}

	if opts.AtlasPath != "" {
		if err := writeAtlasPNG(opts.AtlasPath, rom); err != nil {
			fmt.Printf("Failed to write atlas: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Written %dx%d atlas to %s\n", CHARSET_ATLAS_WIDTH, CHARSET_ATLAS_HEIGHT, opts.AtlasPath)
		return
	}

	host, err := NewHostBackend(opts.Backend)
	if err != nil {
		fmt.Printf("Failed to initialize host: %v\n", err)
		os.Exit(1)
	}

	machine, err := NewZX81Machine(ZX81Config{
		ROM:           rom,
		StepsPerFrame: opts.Steps,
		MaxFrames:     opts.Frames,
		Display:       opts.displayConfig(),
	}, host, NewZ80Engine)
	if err != nil {
		fmt.Printf("Failed to initialize ZX81: %v\n", err)
		os.Exit(1)
	}

	if opts.Paste != "" {
		if typer, ok := host.(textTyper); ok {
			typer.TypeText(opts.Paste)
		}
	}

	runErr := machine.Run()
	if err := machine.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close: %v\n", err)
	}

	if opts.Dump {
		for _, line := range DisplayFileText(machine.Memory()) {
			fmt.Println(line)
		}
	}

	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
		os.Exit(1)
	}
}
