// zx81_memory.go - ZX81 memory bus for the Intuition Engine

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
zx81_memory.go - ZX81 Memory Bus

This module owns the flat 64K address space of the ZX81 and implements the
three access paths the Z80 uses: instruction fetch, data read and data write.

Core Features:

    64K of memory held in a fixed-size array, so every 16-bit address is valid.
    The 8K BASIC ROM is loaded at 0x0000 and ghosted once at 0x2000.
    Writes below 0x4000 are discarded, so both ROM copies stay identical.
    Instruction fetches at 0x8000 and above read through the floating bus.

Floating Bus:

    On the real machine the upper 32K echoes the lower half, and the video
    circuitry forces a NOP onto the data bus during an opcode fetch whenever
    bit 6 of the fetched byte is clear. Fetch reproduces that: the byte is
    taken from address & 0x7FFF and returned only if bit 6 is set, otherwise
    zero (NOP). Ordinary data reads always see the raw stored byte.
*/

package main

import "fmt"

// ROMError reports a ROM image that could not be loaded or has the wrong size
type ROMError struct {
	Path string // Source of the image, empty for in-memory data
	Size int    // Size of the rejected image
	Err  error  // Underlying error if any
}

func (e *ROMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rom %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("rom %q: expected %d bytes, got %d", e.Path, ZX81_ROM_SIZE, e.Size)
}

func (e *ROMError) Unwrap() error {
	return e.Err
}

type ZX81Memory struct {
	/*
		ZX81Memory holds the complete address space of the machine.

		It is owned by the single emulation goroutine and needs no locking:
		the engine, the keyboard and the redraw all run sequentially.
	*/

	memory [ZX81_MEMORY_SIZE]byte
}

func NewZX81Memory() *ZX81Memory {
	return &ZX81Memory{}
}

func (m *ZX81Memory) Setup(rom []byte) error {
	/*
		Setup prepares the address space for a cold start.

		RAM is cleared, the ROM image is copied into the primary window and
		again into the ghost window above it, and DISPLAY-5 is patched to a
		RET in both copies. The video routine is not needed because the
		frame orchestrator redraws the display file itself.

		The ROM must be exactly ZX81_ROM_SIZE bytes.
	*/

	if len(rom) != ZX81_ROM_SIZE {
		return &ROMError{Size: len(rom)}
	}

	for i := range m.memory {
		m.memory[i] = 0
	}

	copy(m.memory[ZX81_ROM_BASE:ZX81_ROM_BASE+ZX81_ROM_SIZE], rom)
	copy(m.memory[ZX81_ROM_GHOST:ZX81_ROM_GHOST+ZX81_ROM_SIZE], rom)

	m.memory[ZX81_ROM_BASE+ZX81_DISPLAY5_ADDR] = Z80_OPCODE_RET
	m.memory[ZX81_ROM_GHOST+ZX81_DISPLAY5_ADDR] = Z80_OPCODE_RET
	return nil
}

func (m *ZX81Memory) Fetch(addr uint16) byte {
	/*
		Fetch returns the byte seen by an opcode fetch.

		Below 0x8000 this is the stored byte. At 0x8000 and above the byte
		comes from the lower half and reads as zero unless bit 6 is set.
	*/

	if addr < ZX81_FLOAT_BASE {
		return m.memory[addr]
	}

	b := m.memory[addr&ZX81_FLOAT_MASK]
	if b&ZX81_FLOAT_BIT != 0 {
		return b
	}
	return 0
}

// Read returns the stored byte at addr.
func (m *ZX81Memory) Read(addr uint16) byte {
	return m.memory[addr]
}

// Write stores value unless addr lies in the ROM window.
func (m *ZX81Memory) Write(addr uint16, value byte) {
	if addr < ZX81_RAM_START {
		return
	}
	m.memory[addr] = value
}

// ReadWord reads a little-endian 16-bit value; the high byte wraps at 0xFFFF.
func (m *ZX81Memory) ReadWord(addr uint16) uint16 {
	return uint16(m.memory[addr]) | uint16(m.memory[addr+1])<<8
}

// Poke stores value without write protection.
func (m *ZX81Memory) Poke(addr uint16, value byte) {
	m.memory[addr] = value
}
