// host_backend_term.go - ANSI terminal host backend for the ZX81 shell

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
host_backend_term.go - Terminal Host Backend

Renders the 32x24 character screen with ANSI escapes and reads the keyboard
from stdin in raw mode. The blitter only sees atlas rectangles, so each
source rectangle is turned back into a character code from its X offset.

Terminal keys arrive as characters, not as key-down/key-up pairs, so every
byte goes through the typist, which holds each chord for a few frames.

    Ctrl+C / Ctrl+D   quit
    Ctrl+R            hard reset
    arrow keys        ZX81 cursor keys
*/

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	TERM_FRAME_INTERVAL = 20 * time.Millisecond // 50 Hz

	termKeyQuit  = 0x03 // Ctrl+C
	termKeyEOF   = 0x04 // Ctrl+D
	termKeyReset = 0x12 // Ctrl+R
	termKeyEsc   = 0x1B
)

// Escape sequence parser states
const (
	termEscNone = iota
	termEscStart
	termEscCSI
)

type TerminalBackend struct {
	mu     sync.Mutex
	out    io.Writer
	grid   [ZX81_TEXT_ROWS][ZX81_TEXT_COLUMNS]byte
	events []HostEvent
	typist *keyTypist
	esc    int

	// Incomplete UTF-8 sequence left by the last read
	pendingUTF8 []byte

	atlasLoaded bool
	frames      uint64
	lastPresent time.Time

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func NewTerminalBackend() *TerminalBackend {
	return &TerminalBackend{
		out:    os.Stdout,
		typist: newKeyTypist(),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Open puts stdin in raw mode and starts the reader goroutine.
func (h *TerminalBackend) Open(config DisplayConfig) error {
	h.fd = int(os.Stdin.Fd())
	if !term.IsTerminal(h.fd) {
		return &HostError{Operation: "open", Details: "stdin is not a terminal"}
	}

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		return &HostError{Operation: "open", Details: "failed to set raw mode", Err: err}
	}
	h.oldTermState = oldState

	if err := h.startInput(); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		return &HostError{Operation: "open", Details: "failed to start stdin reader", Err: err}
	}

	// Clear screen, hide cursor
	fmt.Fprint(h.out, "\x1b[2J\x1b[?25l")
	return nil
}

// feed translates raw terminal bytes into typist chords and control events.
// Multi-byte UTF-8 sequences are decoded as one rune, even when a read
// splits them.
func (h *TerminalBackend) feed(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.pendingUTF8) > 0 {
		data = append(h.pendingUTF8, data...)
		h.pendingUTF8 = nil
	}

	for i := 0; i < len(data); i++ {
		b := data[i]
		switch h.esc {
		case termEscStart:
			if b == '[' {
				h.esc = termEscCSI
			} else {
				h.esc = termEscNone
			}
			continue
		case termEscCSI:
			h.esc = termEscNone
			switch b {
			case 'A':
				h.typist.TypeKeys(KeyArrowUp)
			case 'B':
				h.typist.TypeKeys(KeyArrowDown)
			case 'C':
				h.typist.TypeKeys(KeyArrowRight)
			case 'D':
				h.typist.TypeKeys(KeyArrowLeft)
			}
			continue
		}

		switch {
		case b == termKeyEsc:
			h.esc = termEscStart
		case b == termKeyQuit, b == termKeyEOF:
			h.events = append(h.events, HostEvent{Type: EventQuit})
		case b == termKeyReset:
			h.events = append(h.events, HostEvent{Type: EventReset})
		case b < utf8.RuneSelf:
			h.typist.Type(string(rune(b)))
		default:
			if !utf8.FullRune(data[i:]) {
				h.pendingUTF8 = append([]byte(nil), data[i:]...)
				return
			}
			r, size := utf8.DecodeRune(data[i:])
			h.typist.Type(string(r))
			i += size - 1
		}
	}
}

func (h *TerminalBackend) LoadAtlas(atlas *GlyphAtlas) error {
	if atlas == nil {
		return &HostError{Operation: "atlas load", Details: "nil atlas"}
	}
	h.mu.Lock()
	h.atlasLoaded = true
	h.mu.Unlock()
	return nil
}

func (h *TerminalBackend) PollEvent() (HostEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) == 0 {
		return HostEvent{}, false
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev, true
}

// TypeText queues text through the typist.
func (h *TerminalBackend) TypeText(text string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.typist.Type(text)
}

// Blit records the character whose atlas cell starts at src.X.
func (h *TerminalBackend) Blit(src Rect, dstX, dstY int) {
	if src.X < 0 || src.X >= CHARSET_ATLAS_WIDTH || dstX < 0 || dstY < 0 {
		return
	}
	row := dstY / CHARSET_CELL_SIZE
	col := dstX / CHARSET_CELL_SIZE
	if row >= ZX81_TEXT_ROWS || col >= ZX81_TEXT_COLUMNS {
		return
	}
	h.mu.Lock()
	h.grid[row][col] = byte(src.X / CHARSET_CELL_SIZE)
	h.mu.Unlock()
}

// Present redraws the whole screen and sleeps to hold the frame rate.
func (h *TerminalBackend) Present() error {
	if !h.lastPresent.IsZero() {
		if wait := TERM_FRAME_INTERVAL - time.Since(h.lastPresent); wait > 0 {
			time.Sleep(wait)
		}
	}
	h.lastPresent = time.Now()

	h.mu.Lock()
	screen := h.render()
	h.frames++
	h.events = append(h.events, h.typist.Tick()...)
	h.mu.Unlock()

	if _, err := io.WriteString(h.out, screen); err != nil {
		return &HostError{Operation: "present", Details: "terminal write failed", Err: err}
	}
	return nil
}

func (h *TerminalBackend) render() string {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for _, line := range h.grid {
		reversed := false
		for _, code := range line {
			r, inverse := ZX81Rune(code)
			if inverse != reversed {
				if inverse {
					sb.WriteString("\x1b[7m")
				} else {
					sb.WriteString("\x1b[0m")
				}
				reversed = inverse
			}
			sb.WriteRune(r)
		}
		if reversed {
			sb.WriteString("\x1b[0m")
		}
		sb.WriteString("\r\n")
	}

	s := runtimeStatus.snapshot()
	fmt.Fprintf(&sb, "\x1b[2K%5.1f FPS  %6.2f MIPS  ^R reset  ^C quit\r\n", s.FramesPerSecond(), s.MIPS())
	return sb.String()
}

// Close stops the reader and restores the terminal.
func (h *TerminalBackend) Close() error {
	if h.oldTermState == nil {
		return nil
	}
	h.stopInput()
	_ = term.Restore(h.fd, h.oldTermState)
	h.oldTermState = nil
	fmt.Fprint(h.out, "\x1b[0m\x1b[?25h\r\n")
	return nil
}
