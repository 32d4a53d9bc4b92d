// zx81_bus.go - Z80-facing machine bus for the ZX81

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

// ZX81Bus is the capability set an execution engine is given at
// construction. Fetch is used for opcode (M1) reads only.
type ZX81Bus interface {
	Fetch(addr uint16) byte
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	In(port uint16) byte
	Out(port uint16, value byte)
}

// ExecutionEngine executes one instruction per Step against the bus it was
// built with.
type ExecutionEngine interface {
	Step()
	Reset()
}

// EngineFactory builds an engine wired to bus.
type EngineFactory func(bus ZX81Bus) ExecutionEngine

// ZX81MachineBus routes engine accesses to the memory and the keyboard.
type ZX81MachineBus struct {
	mem      *ZX81Memory
	keyboard *ZX81Keyboard
}

func NewZX81MachineBus(mem *ZX81Memory, keyboard *ZX81Keyboard) *ZX81MachineBus {
	return &ZX81MachineBus{mem: mem, keyboard: keyboard}
}

func (b *ZX81MachineBus) Fetch(addr uint16) byte {
	return b.mem.Fetch(addr)
}

func (b *ZX81MachineBus) Read(addr uint16) byte {
	return b.mem.Read(addr)
}

func (b *ZX81MachineBus) Write(addr uint16, value byte) {
	b.mem.Write(addr, value)
}

// In answers even ports with the keyboard; nothing else drives the data
// bus during an input cycle.
func (b *ZX81MachineBus) In(port uint16) byte {
	if port&ZX81_KEYBOARD_PORT_MASK == 0 {
		return b.keyboard.PortRead(port)
	}
	return ZX81_FLOATING_PORT
}

// Out is ignored: the shell emulates no output devices.
func (b *ZX81MachineBus) Out(port uint16, value byte) {}
