// zx81_config_test.go - ZX81 command line configuration test suite

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
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestConfig_Defaults tests the values used with no arguments
func TestConfig_Defaults(t *testing.T) {
	opts, err := parseZX81Flags(nil)
	if err != nil {
		t.Fatalf("parseZX81Flags failed: %v", err)
	}
	if opts.ROMPath != DEFAULT_ROM_PATH {
		t.Errorf("Expected ROM path %q, got %q", DEFAULT_ROM_PATH, opts.ROMPath)
	}
	if opts.Steps != DEFAULT_STEPS_PER_FRAME {
		t.Errorf("Expected %d steps, got %d", DEFAULT_STEPS_PER_FRAME, opts.Steps)
	}
	if opts.Backend != HOST_BACKEND_WINDOW {
		t.Errorf("Expected window backend, got %q", opts.Backend)
	}
	if opts.Scale != 1 || opts.Frames != 0 {
		t.Errorf("Expected scale 1 and no frame limit, got %d and %d", opts.Scale, opts.Frames)
	}
}

// TestConfig_Values tests explicit flags and the positional ROM path
func TestConfig_Values(t *testing.T) {
	opts, err := parseZX81Flags([]string{
		"-steps", "0x8000",
		"-backend", "headless",
		"-frames", "50",
		"-scale", "9",
		"-paste", `10 PRINT 1\nRUN\n`,
		"-status",
		"roms/zx81.rom",
	})
	if err != nil {
		t.Fatalf("parseZX81Flags failed: %v", err)
	}
	if opts.Steps != 0x8000 {
		t.Errorf("Expected 32768 steps, got %d", opts.Steps)
	}
	if opts.Frames != 50 {
		t.Errorf("Expected 50 frames, got %d", opts.Frames)
	}
	if opts.Scale != 4 {
		t.Errorf("Expected scale clamped to 4, got %d", opts.Scale)
	}
	if opts.ROMPath != "roms/zx81.rom" {
		t.Errorf("Expected positional ROM path, got %q", opts.ROMPath)
	}
	if opts.Paste != "10 PRINT 1\nRUN\n" {
		t.Errorf("Expected escaped newlines expanded, got %q", opts.Paste)
	}
	if !opts.StatusBar {
		t.Error("Expected status bar enabled")
	}

	dc := opts.displayConfig()
	if dc.Width != ZX81_SCREEN_WIDTH || dc.Height != ZX81_SCREEN_HEIGHT || dc.Scale != 4 || !dc.StatusBar {
		t.Errorf("Unexpected display config %+v", dc)
	}
}

// TestConfig_Errors tests rejected command lines
func TestConfig_Errors(t *testing.T) {
	cases := [][]string{
		{"-steps", "0"},
		{"-steps", "-5"},
		{"-steps", "lots"},
		{"-frames", "x"},
		{"-backend", "vga"},
		{"-backend", "headless"},
	}
	for _, args := range cases {
		_, err := parseZX81Flags(args)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%v: expected ConfigError, got %v", args, err)
		}
	}

	if _, err := parseZX81Flags([]string{"-nope"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

// TestConfig_Help tests that -h reports flag.ErrHelp
func TestConfig_Help(t *testing.T) {
	if _, err := parseZX81Flags([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

// TestLoadROM tests loading ROM images from disk
func TestLoadROM(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "zx81.rom")
	if err := os.WriteFile(good, newTestROM(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	rom, err := loadROM(good)
	if err != nil {
		t.Fatalf("loadROM failed: %v", err)
	}
	if len(rom) != ZX81_ROM_SIZE {
		t.Errorf("Expected %d bytes, got %d", ZX81_ROM_SIZE, len(rom))
	}

	short := filepath.Join(dir, "short.rom")
	if err := os.WriteFile(short, make([]byte, 4096), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var romErr *ROMError
	if _, err := loadROM(short); !errors.As(err, &romErr) || romErr.Size != 4096 {
		t.Errorf("Expected ROMError with size 4096, got %v", err)
	}

	_, err = loadROM(filepath.Join(dir, "missing.rom"))
	if !errors.As(err, &romErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ROMError wrapping ErrNotExist, got %v", err)
	}
}

// TestWriteAtlasPNG tests the atlas export round trip through image/png
func TestWriteAtlasPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := writeAtlasPNG(path, newTestROM()); err != nil {
		t.Fatalf("writeAtlasPNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != CHARSET_ATLAS_WIDTH || b.Dy() != CHARSET_ATLAS_HEIGHT {
		t.Errorf("Expected %dx%d, got %dx%d", CHARSET_ATLAS_WIDTH, CHARSET_ATLAS_HEIGHT, b.Dx(), b.Dy())
	}

	toColor := func(c [4]uint8) color.RGBA { return color.RGBA{c[0], c[1], c[2], c[3]} }
	// Glyph 0 row 0 is blank, row 1 has its top bit set
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != toColor(ZX81ColorPaper) {
		t.Errorf("Expected paper at (0,0), got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(0, 2)).(color.RGBA); got != toColor(ZX81ColorInk) {
		t.Errorf("Expected ink at (0,2), got %v", got)
	}

	if err := writeAtlasPNG(path, make([]byte, 16)); err == nil {
		t.Error("Expected error for short ROM")
	}
}
