// zx81_test_helpers_test.go - Shared fixtures for the ZX81 test suite

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

// newTestROM returns an 8K image with a recognisable byte pattern and a
// character set where glyph n row 0 holds n and the other rows hold 0x81.
func newTestROM() []byte {
	rom := make([]byte, ZX81_ROM_SIZE)
	for i := range rom {
		rom[i] = byte(i ^ i>>8)
	}
	for glyph := range ZX81_CHARSET_GLYPHS {
		base := ZX81_CHARSET_ADDR + glyph*ZX81_GLYPH_ROWS
		rom[base] = byte(glyph)
		for row := 1; row < ZX81_GLYPH_ROWS; row++ {
			rom[base+row] = 0x81
		}
	}
	return rom
}

// keyboardPort returns an even port that selects one half-row.
func keyboardPort(row int) uint16 {
	return uint16(^byte(1<<row))<<8 | 0xFE
}

// fakeEngine counts calls and lets a test observe the bus between steps.
type fakeEngine struct {
	bus    ZX81Bus
	steps  int
	resets int
	onStep func(bus ZX81Bus)
}

func (e *fakeEngine) Step() {
	e.steps++
	if e.onStep != nil {
		e.onStep(e.bus)
	}
}

func (e *fakeEngine) Reset() {
	e.resets++
}

// newTestMachine builds a machine on a headless host with a fake engine.
func newTestMachine(steps int, maxFrames uint64) (*ZX81Machine, *HeadlessBackend, *fakeEngine, error) {
	host := NewHeadlessBackend()
	engine := &fakeEngine{}
	m, err := NewZX81Machine(ZX81Config{
		ROM:           newTestROM(),
		StepsPerFrame: steps,
		MaxFrames:     maxFrames,
	}, host, func(bus ZX81Bus) ExecutionEngine {
		engine.bus = bus
		return engine
	})
	return m, host, engine, err
}
