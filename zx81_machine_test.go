// zx81_machine_test.go - ZX81 frame orchestrator test suite

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
	"testing"
)

func mustTestMachine(t *testing.T, steps int, maxFrames uint64) (*ZX81Machine, *HeadlessBackend, *fakeEngine) {
	t.Helper()
	m, host, engine, err := newTestMachine(steps, maxFrames)
	if err != nil {
		t.Fatalf("NewZX81Machine failed: %v", err)
	}
	return m, host, engine
}

// pokeDisplayFile builds a full display file at the usual 0x407D. Each
// slice in rows fills the start of the matching text row.
func pokeDisplayFile(mem *ZX81Memory, rows ...[]byte) {
	const base = 0x407D
	mem.Write(ZX81_D_FILE, base&0xFF)
	mem.Write(ZX81_D_FILE+1, base>>8)

	addr := uint16(base)
	mem.Write(addr, ZX81_NEWLINE)
	for row := range ZX81_TEXT_ROWS {
		for col := range ZX81_TEXT_COLUMNS {
			addr++
			var code byte
			if row < len(rows) && col < len(rows[row]) {
				code = rows[row][col]
			}
			mem.Write(addr, code)
		}
		addr++
		mem.Write(addr, ZX81_NEWLINE)
	}
}

// failingPresentHost is a headless host whose Present always fails.
type failingPresentHost struct {
	*HeadlessBackend
	err error
}

func (h *failingPresentHost) Present() error {
	return h.err
}

// TestZX81Machine_BadROMIsFatal tests that setup fails before the host opens
func TestZX81Machine_BadROMIsFatal(t *testing.T) {
	host := NewHeadlessBackend()
	_, err := NewZX81Machine(ZX81Config{ROM: make([]byte, 100)}, host, func(bus ZX81Bus) ExecutionEngine {
		t.Error("Engine must not be built for a bad ROM")
		return &fakeEngine{}
	})

	var romErr *ROMError
	if !errors.As(err, &romErr) {
		t.Fatalf("Expected ROMError, got %v", err)
	}
	if host.opened {
		t.Error("Expected host to stay closed")
	}
}

// TestZX81Machine_HostOpenFailure tests that a host failure aborts setup
func TestZX81Machine_HostOpenFailure(t *testing.T) {
	_, err := NewZX81Machine(ZX81Config{
		ROM:     newTestROM(),
		Display: DisplayConfig{Width: -1, Height: 10},
	}, NewHeadlessBackend(), func(bus ZX81Bus) ExecutionEngine { return &fakeEngine{} })

	var hostErr *HostError
	if !errors.As(err, &hostErr) {
		t.Fatalf("Expected HostError, got %v", err)
	}
}

// TestZX81Machine_DefaultSteps tests the default slice length
func TestZX81Machine_DefaultSteps(t *testing.T) {
	m, _, engine := mustTestMachine(t, 0, 0)
	if _, err := m.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if engine.steps != DEFAULT_STEPS_PER_FRAME {
		t.Errorf("Expected %d steps, got %d", DEFAULT_STEPS_PER_FRAME, engine.steps)
	}
}

// TestZX81Machine_StepsPerFrame tests that every frame executes exactly one slice
func TestZX81Machine_StepsPerFrame(t *testing.T) {
	m, host, engine := mustTestMachine(t, 1234, 0)

	for range 3 {
		quit, err := m.RunFrame()
		if err != nil || quit {
			t.Fatalf("RunFrame: quit=%v err=%v", quit, err)
		}
	}
	if engine.steps != 3*1234 {
		t.Errorf("Expected %d steps, got %d", 3*1234, engine.steps)
	}
	if host.Frames() != 3 || m.Frames() != 3 {
		t.Errorf("Expected 3 frames, got host=%d machine=%d", host.Frames(), m.Frames())
	}
	if host.Blits() != 3*ZX81_TEXT_ROWS*ZX81_TEXT_COLUMNS {
		t.Errorf("Expected %d blits, got %d", 3*ZX81_TEXT_ROWS*ZX81_TEXT_COLUMNS, host.Blits())
	}
}

// TestZX81Machine_RedrawFirstRow tests the display file walk and the blitted pixels
func TestZX81Machine_RedrawFirstRow(t *testing.T) {
	m, host, _ := mustTestMachine(t, 1, 0)

	// Glyph n row 0 holds n in the test ROM, so 0x3F draws 00111111
	pokeDisplayFile(m.Memory(), []byte{0x3F, 0x3F | ZX81_INVERSE_OFFSET, 0x00})

	if err := m.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}

	// 0x3F normal: columns 0-1 paper, columns 2-7 ink
	if got := host.PixelAt(0, 0); got != ZX81ColorPaper {
		t.Errorf("(0,0): expected paper, got %v", got)
	}
	if got := host.PixelAt(4, 1); got != ZX81ColorInk {
		t.Errorf("(4,1): expected ink, got %v", got)
	}
	// 0xBF inverse at column 1
	if got := host.PixelAt(16, 0); got != ZX81ColorInk {
		t.Errorf("(16,0): expected ink, got %v", got)
	}
	if got := host.PixelAt(20, 1); got != ZX81ColorPaper {
		t.Errorf("(20,1): expected paper, got %v", got)
	}
	// Space at column 2: row 0 all paper
	if got := host.PixelAt(32, 0); got != ZX81ColorPaper {
		t.Errorf("(32,0): expected paper, got %v", got)
	}
	// Second text row starts at y=16 and holds spaces: row 1 of glyph 0 is 0x81
	if got := host.PixelAt(0, 18); got != ZX81ColorInk {
		t.Errorf("(0,18): expected ink, got %v", got)
	}
}

// TestZX81Machine_RedrawSkipsRowTerminator tests that each text row starts after the NEWLINE
func TestZX81Machine_RedrawSkipsRowTerminator(t *testing.T) {
	m, host, _ := mustTestMachine(t, 1, 0)

	// Row 1 opens with 0x3F (00111111); the terminator 0x76 would be an all-ink cell
	pokeDisplayFile(m.Memory(), nil, []byte{0x3F})

	if err := m.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	if got := host.PixelAt(0, 16); got != ZX81ColorPaper {
		t.Errorf("(0,16): expected paper, got %v", got)
	}
	if got := host.PixelAt(4, 17); got != ZX81ColorInk {
		t.Errorf("(4,17): expected ink, got %v", got)
	}
	// Column 1 of row 1 is a space again
	if got := host.PixelAt(20, 16); got != ZX81ColorPaper {
		t.Errorf("(20,16): expected paper, got %v", got)
	}
	// Last cell of row 0 is a space, not the row terminator
	if got := host.PixelAt(31*CHARSET_CELL_SIZE+4, 0); got != ZX81ColorPaper {
		t.Errorf("(%d,0): expected paper, got %v", 31*CHARSET_CELL_SIZE+4, got)
	}
}

// TestZX81Machine_RedrawWrappingDFile tests that a D_FILE near 0xFFFF wraps instead of failing
func TestZX81Machine_RedrawWrappingDFile(t *testing.T) {
	m, host, _ := mustTestMachine(t, 1, 0)
	m.Memory().Write(ZX81_D_FILE, 0xF0)
	m.Memory().Write(ZX81_D_FILE+1, 0xFF)

	if err := m.Redraw(); err != nil {
		t.Fatalf("Redraw failed: %v", err)
	}
	if host.Blits() != ZX81_TEXT_ROWS*ZX81_TEXT_COLUMNS {
		t.Errorf("Expected %d blits, got %d", ZX81_TEXT_ROWS*ZX81_TEXT_COLUMNS, host.Blits())
	}
	if host.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", host.Frames())
	}
}

// TestZX81Machine_PresentErrors tests how Present failures are reported
func TestZX81Machine_PresentErrors(t *testing.T) {
	hostErr := &HostError{Operation: "present", Details: "device lost"}
	host := &failingPresentHost{HeadlessBackend: NewHeadlessBackend(), err: hostErr}
	m, err := NewZX81Machine(ZX81Config{ROM: newTestROM(), StepsPerFrame: 1}, host,
		func(bus ZX81Bus) ExecutionEngine { return &fakeEngine{bus: bus} })
	if err != nil {
		t.Fatalf("NewZX81Machine failed: %v", err)
	}

	// A HostError is passed through as is
	if err := m.Redraw(); err != hostErr {
		t.Errorf("Expected the backend HostError unchanged, got %v", err)
	}

	// Anything else is wrapped once
	plain := errors.New("write failed")
	host.err = plain
	err = m.Redraw()
	var wrapped *HostError
	if !errors.As(err, &wrapped) || wrapped.Err != plain {
		t.Fatalf("Expected HostError wrapping %v, got %v", plain, err)
	}
	if wrapped.Operation != "present" {
		t.Errorf("Expected operation present, got %q", wrapped.Operation)
	}
}

// TestZX81Machine_InputAppliedBetweenSlices tests that a slice never sees a key change
func TestZX81Machine_InputAppliedBetweenSlices(t *testing.T) {
	m, host, engine := mustTestMachine(t, 4, 0)

	var seen []byte
	engine.onStep = func(bus ZX81Bus) {
		seen = append(seen, bus.In(keyboardPort(1)))
	}

	host.QueueEvents(HostEvent{Type: EventKeyDown, Key: KeyA})
	if _, err := m.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if _, err := m.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}

	for i, v := range seen[:4] {
		if v != ZX81_ROW_IDLE {
			t.Errorf("frame 1 step %d: expected 0xFF, got 0x%02X", i, v)
		}
	}
	for i, v := range seen[4:] {
		if v != 0xFE {
			t.Errorf("frame 2 step %d: expected 0xFE, got 0x%02X", i, v)
		}
	}
}

// TestZX81Machine_QuitSkipsRedraw tests that quit stops the frame before drawing
func TestZX81Machine_QuitSkipsRedraw(t *testing.T) {
	m, host, engine := mustTestMachine(t, 10, 0)

	host.QueueEvents(
		HostEvent{Type: EventKeyDown, Key: KeyQ},
		HostEvent{Type: EventQuit},
		HostEvent{Type: EventKeyDown, Key: KeyW},
	)

	quit, err := m.RunFrame()
	if err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if !quit {
		t.Fatal("Expected quit")
	}
	if engine.steps != 10 {
		t.Errorf("Expected the slice to complete (10 steps), got %d", engine.steps)
	}
	if host.Blits() != 0 || host.Frames() != 0 {
		t.Errorf("Expected no redraw, got %d blits and %d frames", host.Blits(), host.Frames())
	}
	if got := m.Keyboard().PortRead(keyboardPort(2)); got != 0xFE {
		t.Errorf("Expected Q applied before quit (0xFE), got 0x%02X", got)
	}
}

// TestZX81Machine_RunStopsOnQuit tests that Run returns after a quit event
func TestZX81Machine_RunStopsOnQuit(t *testing.T) {
	m, host, _ := mustTestMachine(t, 1, 0)
	host.QueueEvents(HostEvent{Type: EventQuit})

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.Frames() != 0 {
		t.Errorf("Expected 0 frames, got %d", m.Frames())
	}
}

// TestZX81Machine_RunFrameLimit tests the frame limit
func TestZX81Machine_RunFrameLimit(t *testing.T) {
	m, host, engine := mustTestMachine(t, 7, 5)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.Frames() != 5 || host.Frames() != 5 {
		t.Errorf("Expected 5 frames, got machine=%d host=%d", m.Frames(), host.Frames())
	}
	if engine.steps != 35 {
		t.Errorf("Expected 35 steps, got %d", engine.steps)
	}
}

// TestZX81Machine_HardReset tests the reset event
func TestZX81Machine_HardReset(t *testing.T) {
	m, host, engine := mustTestMachine(t, 1, 0)
	m.Memory().Write(0x4100, 0x55)
	m.Keyboard().KeyDown(KeyZ)

	host.QueueEvents(HostEvent{Type: EventReset})
	if _, err := m.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}

	if engine.resets != 1 {
		t.Errorf("Expected 1 engine reset, got %d", engine.resets)
	}
	if got := m.Memory().Read(0x4100); got != 0 {
		t.Errorf("Expected RAM cleared, got 0x%02X", got)
	}
	if got := m.Memory().Read(ZX81_DISPLAY5_ADDR); got != Z80_OPCODE_RET {
		t.Errorf("Expected DISPLAY-5 patch after reset, got 0x%02X", got)
	}
	for i, r := range m.Keyboard().Rows() {
		if r != ZX81_ROW_IDLE {
			t.Errorf("Expected row %d idle after reset, got 0x%02X", i, r)
		}
	}
}

// TestZX81Machine_TypedTextReachesMatrix tests typist chords through the frame loop
func TestZX81Machine_TypedTextReachesMatrix(t *testing.T) {
	m, host, _ := mustTestMachine(t, 1, 0)
	if n := host.TypeText("A"); n != 1 {
		t.Fatalf("Expected 1 typed character, got %d", n)
	}

	rowA := func() byte { return m.Keyboard().PortRead(keyboardPort(1)) }

	// Frame 1 presents and emits key-down; frame 2 drains it
	for range 2 {
		if _, err := m.RunFrame(); err != nil {
			t.Fatalf("RunFrame failed: %v", err)
		}
	}
	if got := rowA(); got != 0xFE {
		t.Fatalf("Expected A held, got 0x%02X", got)
	}

	for range 3 {
		if _, err := m.RunFrame(); err != nil {
			t.Fatalf("RunFrame failed: %v", err)
		}
	}
	if got := rowA(); got != ZX81_ROW_IDLE {
		t.Errorf("Expected A released, got 0x%02X", got)
	}
}

// TestZX81Machine_RecordsStatus tests that frames are counted in the runtime status
func TestZX81Machine_RecordsStatus(t *testing.T) {
	m, _, _ := mustTestMachine(t, 50, 0)
	m.status = &runtimeStatusStore{}

	for range 2 {
		if _, err := m.RunFrame(); err != nil {
			t.Fatalf("RunFrame failed: %v", err)
		}
	}
	s := m.status.snapshot()
	if s.frames != 2 || s.instructions != 100 || s.stepsPerFrame != 50 {
		t.Errorf("Expected 2 frames/100 instructions/50 steps, got %d/%d/%d", s.frames, s.instructions, s.stepsPerFrame)
	}
}
