// zx81_bus_test.go - ZX81 machine bus test suite

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

import "testing"

func newTestBus(t *testing.T) (*ZX81MachineBus, *ZX81Memory, *ZX81Keyboard) {
	t.Helper()
	mem := NewZX81Memory()
	if err := mem.Setup(newTestROM()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	kb := NewZX81Keyboard()
	return NewZX81MachineBus(mem, kb), mem, kb
}

// TestZX81Bus_EvenPortReadsKeyboard tests keyboard decoding on even ports
func TestZX81Bus_EvenPortReadsKeyboard(t *testing.T) {
	bus, _, kb := newTestBus(t)
	kb.KeyDown(KeyEnter)

	if got := bus.In(0xBFFE); got != 0xFE {
		t.Errorf("Expected NEWLINE down (0xFE), got 0x%02X", got)
	}
	if got := bus.In(0xBF00); got != 0xFE {
		t.Errorf("Expected any even port to decode, got 0x%02X", got)
	}
}

// TestZX81Bus_OddPortFloats tests that odd ports read 0xFF
func TestZX81Bus_OddPortFloats(t *testing.T) {
	bus, _, kb := newTestBus(t)
	kb.KeyDown(KeyEnter)

	if got := bus.In(0xBFFF); got != ZX81_FLOATING_PORT {
		t.Errorf("Expected 0x%02X, got 0x%02X", ZX81_FLOATING_PORT, got)
	}
}

// TestZX81Bus_MemoryPaths tests that the bus forwards to memory
func TestZX81Bus_MemoryPaths(t *testing.T) {
	bus, mem, _ := newTestBus(t)

	bus.Write(0x0010, 0x99)
	if bus.Read(0x0010) != mem.Read(0x0010) || mem.Read(0x0010) == 0x99 {
		t.Error("Expected ROM write through the bus to be ignored")
	}

	bus.Write(0x4300, 0x3F)
	if got := bus.Read(0x4300); got != 0x3F {
		t.Errorf("Expected 0x3F, got 0x%02X", got)
	}
	if got := bus.Fetch(0xC300); got != 0x00 {
		t.Errorf("Expected floating fetch 0x00, got 0x%02X", got)
	}

	// Out has no effect on anything observable
	bus.Out(0x00FE, 0x55)
	if got := bus.Read(0x4300); got != 0x3F {
		t.Errorf("Expected memory unchanged after Out, got 0x%02X", got)
	}
}
