// engine_z80.go - Z80 execution engine adapter for the ZX81 shell

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
engine_z80.go - Z80 Execution Engine Adapter

The instruction set is provided by github.com/koron-go/z80. This adapter
presents the ZX81 machine bus to that CPU:

  - The opcode read of each instruction (the M1 cycle) goes through
    ZX81Bus.Fetch, so the floating-bus rule applies to code running at
    0x8000 and above. A CB, DD, ED or FD prefix re-arms M1 for the byte that
    follows it, except in DD CB / FD CB forms where the displacement and the
    final opcode are plain reads. Operands are always plain reads.
  - The library passes only the low byte of the port on IN/OUT. The high
    byte is rebuilt from the register the instruction puts on A8-A15:
    A for IN A,(n) and OUT (n),A, B for the (C) forms the ROM uses to scan
    the keyboard.
*/

package main

import "github.com/koron-go/z80"

const (
	z80OpcodeInAN  = 0xDB // IN A,(n)
	z80OpcodeOutNA = 0xD3 // OUT (n),A

	z80PrefixCB = 0xCB
	z80PrefixDD = 0xDD
	z80PrefixED = 0xED
	z80PrefixFD = 0xFD
)

type Z80Engine struct {
	cpu *z80.CPU
	bus ZX81Bus

	m1      bool // next read at PC is an opcode fetch
	indexed bool // last opcode fetched was DD or FD
	opcode  byte // last byte fetched in an M1 cycle
}

// NewZ80Engine is the EngineFactory for the koron-go/z80 CPU.
func NewZ80Engine(bus ZX81Bus) ExecutionEngine {
	e := &Z80Engine{bus: bus}
	e.cpu = &z80.CPU{
		Memory: e,
		IO:     e,
	}
	return e
}

func (e *Z80Engine) Step() {
	e.m1 = true
	e.cpu.Step()
}

// Reset clears the register file; PC returns to 0 with interrupts disabled.
func (e *Z80Engine) Reset() {
	e.cpu.States = z80.States{}
	e.m1 = false
	e.indexed = false
	e.opcode = 0
}

func (e *Z80Engine) Get(addr uint16) uint8 {
	if !e.m1 || addr != e.cpu.PC {
		return e.bus.Read(addr)
	}

	b := e.bus.Fetch(addr)
	e.opcode = b
	switch b {
	case z80PrefixDD, z80PrefixFD, z80PrefixED:
		e.indexed = b != z80PrefixED
	case z80PrefixCB:
		e.m1 = !e.indexed
		e.indexed = false
	default:
		e.m1 = false
		e.indexed = false
	}
	return b
}

func (e *Z80Engine) Set(addr uint16, value uint8) {
	e.bus.Write(addr, value)
}

func (e *Z80Engine) In(port uint8) uint8 {
	return e.bus.In(e.fullPort(port))
}

func (e *Z80Engine) Out(port uint8, value uint8) {
	e.bus.Out(e.fullPort(port), value)
}

func (e *Z80Engine) fullPort(port uint8) uint16 {
	hi := e.cpu.BC.Hi
	if e.opcode == z80OpcodeInAN || e.opcode == z80OpcodeOutNA {
		hi = e.cpu.AF.Hi
	}
	return uint16(hi)<<8 | uint16(port)
}
