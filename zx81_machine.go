// zx81_machine.go - ZX81 frame orchestrator

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
zx81_machine.go - ZX81 Frame Orchestrator

ZX81Machine owns the memory, the keyboard matrix, the glyph atlas and the
execution engine, and runs them one frame at a time:

 1. Execute slice: the engine steps a fixed number of instructions.
 2. Drain input: every pending host event is applied to the keyboard
    matrix. A quit event stops the drain and ends the loop.
 3. Redraw: the display file is walked and one atlas cell is blitted per
    character, then the frame is presented.

Everything runs on the caller's goroutine. The engine never sees the
keyboard change in the middle of a slice, and neither a slice nor a redraw
is interrupted once started.
*/

package main

import (
	"errors"
	"fmt"
	"time"
)

// ZX81Config carries everything needed to build a machine
type ZX81Config struct {
	ROM           []byte
	StepsPerFrame int
	MaxFrames     uint64 // 0 runs until the host asks to quit
	Display       DisplayConfig
}

type ZX81Machine struct {
	mem      *ZX81Memory
	keyboard *ZX81Keyboard
	bus      *ZX81MachineBus
	engine   ExecutionEngine
	host     HostBackend
	atlas    *GlyphAtlas
	status   *runtimeStatusStore

	rom           []byte
	stepsPerFrame int
	maxFrames     uint64
	frames        uint64
}

// NewZX81Machine opens the host surface, builds and loads the glyph atlas
// and prepares memory for a cold start. Any failure here is fatal for the
// caller: the frame loop must not be entered.
func NewZX81Machine(config ZX81Config, host HostBackend, newEngine EngineFactory) (*ZX81Machine, error) {
	steps := config.StepsPerFrame
	if steps <= 0 {
		steps = DEFAULT_STEPS_PER_FRAME
	}

	m := &ZX81Machine{
		mem:           NewZX81Memory(),
		keyboard:      NewZX81Keyboard(),
		host:          host,
		status:        runtimeStatus,
		rom:           config.ROM,
		stepsPerFrame: steps,
		maxFrames:     config.MaxFrames,
	}
	m.bus = NewZX81MachineBus(m.mem, m.keyboard)

	if err := m.mem.Setup(m.rom); err != nil {
		return nil, err
	}

	atlas, err := BuildCharsetAtlas(m.rom)
	if err != nil {
		return nil, err
	}
	m.atlas = atlas

	display := config.Display
	if display.Width == 0 || display.Height == 0 {
		display.Width = ZX81_SCREEN_WIDTH
		display.Height = ZX81_SCREEN_HEIGHT
	}
	if err := host.Open(display); err != nil {
		return nil, err
	}
	if err := host.LoadAtlas(atlas); err != nil {
		_ = host.Close()
		return nil, err
	}

	m.engine = newEngine(m.bus)
	return m, nil
}

// Run executes frames until the host requests quit or the frame limit is hit.
func (m *ZX81Machine) Run() error {
	for {
		quit, err := m.RunFrame()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if m.maxFrames > 0 && m.frames >= m.maxFrames {
			return nil
		}
	}
}

// RunFrame executes one slice, drains the input queue and redraws. It
// reports true once a quit event has been seen; no redraw happens then.
func (m *ZX81Machine) RunFrame() (bool, error) {
	start := time.Now()

	m.executeSlice()

	if m.drainInput() {
		return true, nil
	}

	if err := m.Redraw(); err != nil {
		return false, err
	}

	m.frames++
	m.status.recordFrame(m.stepsPerFrame, time.Since(start))
	return false, nil
}

func (m *ZX81Machine) executeSlice() {
	for range m.stepsPerFrame {
		m.engine.Step()
	}
}

// drainInput applies pending host events and returns true on quit.
func (m *ZX81Machine) drainInput() bool {
	for {
		ev, ok := m.host.PollEvent()
		if !ok {
			return false
		}
		switch ev.Type {
		case EventKeyDown:
			m.keyboard.KeyDown(ev.Key)
		case EventKeyUp:
			m.keyboard.KeyUp(ev.Key)
		case EventReset:
			m.HardReset()
		case EventQuit:
			return true
		}
	}
}

// Redraw walks the display file and blits one atlas cell per character.
//
// D_FILE points at the NEWLINE that opens the display file, so the pointer
// is advanced before every character read and once more after each row to
// step over the row's terminator. The pointer is 16 bits wide and wraps, so
// a corrupt D_FILE draws garbage rather than failing.
func (m *ZX81Machine) Redraw() error {
	dfile := m.mem.ReadWord(ZX81_D_FILE)

	for row := range ZX81_TEXT_ROWS {
		for col := range ZX81_TEXT_COLUMNS {
			dfile++
			code := m.mem.Read(dfile)
			m.host.Blit(m.atlas.CellRect(code), col*CHARSET_CELL_SIZE, row*CHARSET_CELL_SIZE)
		}
		dfile++
	}

	if err := m.host.Present(); err != nil {
		var hostErr *HostError
		if errors.As(err, &hostErr) {
			return err
		}
		return &HostError{Operation: "present", Details: fmt.Sprintf("frame %d", m.frames), Err: err}
	}
	return nil
}

// HardReset returns the machine to its power-on state.
func (m *ZX81Machine) HardReset() {
	// The ROM was validated when the machine was built.
	_ = m.mem.Setup(m.rom)
	m.keyboard.Reset()
	m.engine.Reset()
	m.status.recordReset()
}

func (m *ZX81Machine) Memory() *ZX81Memory {
	return m.mem
}

func (m *ZX81Machine) Keyboard() *ZX81Keyboard {
	return m.keyboard
}

func (m *ZX81Machine) Frames() uint64 {
	return m.frames
}

func (m *ZX81Machine) Close() error {
	return m.host.Close()
}
