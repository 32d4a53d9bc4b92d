// zx81_constants.go - Sinclair ZX81 hardware constants

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

/*
zx81_constants.go - Sinclair ZX81 Hardware Constants

This file defines the address map, keyboard matrix layout and display geometry
used by the ZX81 emulation shell.

Address Map:
  0x0000-0x1FFF  8K BASIC ROM
  0x2000-0x3FFF  ROM ghost (the same 8K mirrored once)
  0x4000-0xFFFF  RAM (writable)
  0x8000-0xFFFF  floating-bus region for instruction fetches

Keyboard:
  8 half-rows of 5 keys, selected by the high byte of an even I/O port.
  Rows are active-low: a cleared bit means the key in that column is down.

Display:
  24 rows of 32 character codes, each row terminated by a NEWLINE (0x76).
  The display file is located through the D_FILE system variable.
*/

package main

// =============================================================================
// Memory Map
// =============================================================================

const (
	ZX81_MEMORY_SIZE = 0x10000

	// ROM image and its ghost copy
	ZX81_ROM_SIZE  = 0x2000
	ZX81_ROM_BASE  = 0x0000
	ZX81_ROM_GHOST = ZX81_ROM_BASE + ZX81_ROM_SIZE

	// Writes below this address are discarded
	ZX81_RAM_START = 0x4000

	// Instruction fetches at or above this address go through the floating bus
	ZX81_FLOAT_BASE = 0x8000
	ZX81_FLOAT_MASK = 0x7FFF
	ZX81_FLOAT_BIT  = 0x40 // Bit 6 of the underlying byte must be set
)

// =============================================================================
// ROM Patches
// =============================================================================

const (
	// DISPLAY-5 generates the picture in real time; the shell redraws the
	// display file itself, so the routine is turned into an early return.
	ZX81_DISPLAY5_ADDR = 0x02B5
	Z80_OPCODE_RET     = 0xC9
)

// =============================================================================
// System Variables
// =============================================================================

const (
	// D_FILE - 16-bit little-endian pointer to the start of the display file
	ZX81_D_FILE = 0x400C
)

// =============================================================================
// Display File Layout
// =============================================================================

const (
	ZX81_TEXT_ROWS    = 24
	ZX81_TEXT_COLUMNS = 32
	ZX81_NEWLINE      = 0x76 // Row terminator
)

// =============================================================================
// Character Set
// =============================================================================

const (
	// Glyph bitmaps: 64 characters x 8 rows, one byte per row, MSB leftmost
	ZX81_CHARSET_ADDR   = 0x1E00
	ZX81_CHARSET_GLYPHS = 64
	ZX81_GLYPH_ROWS     = 8

	// Inverse-video characters are the normal codes with bit 7 set
	ZX81_INVERSE_OFFSET = 128

	// Atlas cells are addressed by character code
	CHARSET_CELLS      = 256
	CHARSET_PIXEL_SIZE = 2 // Each ROM pixel becomes a 2x2 block
	CHARSET_CELL_SIZE  = 8 * CHARSET_PIXEL_SIZE

	CHARSET_ATLAS_WIDTH  = CHARSET_CELLS * CHARSET_CELL_SIZE // 4096
	CHARSET_ATLAS_HEIGHT = CHARSET_CELL_SIZE                 // 16
)

// =============================================================================
// Screen
// =============================================================================

const (
	ZX81_SCREEN_WIDTH  = ZX81_TEXT_COLUMNS * CHARSET_CELL_SIZE // 512
	ZX81_SCREEN_HEIGHT = ZX81_TEXT_ROWS * CHARSET_CELL_SIZE    // 384
)

// Ink and paper colours as packed RGBA bytes
var (
	ZX81ColorInk   = [4]uint8{0, 0, 0, 255}
	ZX81ColorPaper = [4]uint8{255, 255, 255, 255}
)

// =============================================================================
// Keyboard Matrix
// =============================================================================

const (
	ZX81_KEYBOARD_ROWS    = 8
	ZX81_KEYBOARD_COLUMNS = 5

	// Scan code encoding: row in bits 5-7, one-hot column in bits 0-4
	ZX81_SCAN_ROW_SHIFT   = 5
	ZX81_SCAN_COLUMN_MASK = 0x1F

	// Value of an idle row (no keys down)
	ZX81_ROW_IDLE = 0xFF

	// Returned by a keyboard read that selects no row
	ZX81_NO_ROW_SELECTED = 0xFF
)

// =============================================================================
// I/O Ports
// =============================================================================

const (
	// The keyboard answers every port with bit 0 clear
	ZX81_KEYBOARD_PORT_MASK = 0x01

	// Value read from ports no device decodes
	ZX81_FLOATING_PORT = 0xFF
)

// =============================================================================
// Emulation Defaults
// =============================================================================

const (
	// Instructions executed per frame slice. Higher values run the CPU faster
	// but sample the keyboard less often.
	DEFAULT_STEPS_PER_FRAME = 100000

	DEFAULT_ROM_PATH = "zx81.rom"
	DEFAULT_SCALE    = 1
)
