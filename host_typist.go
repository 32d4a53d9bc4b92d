// host_typist.go - Timed key chords for pasted and terminal text

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
host_typist.go - Key Typist

The ZX81 ROM only notices a key that stays down across several keyboard
scans, and a key pressed and released inside one input drain is never seen
at all. The typist turns text into chords (SHIFT plus a key for symbols)
and releases them over a number of presented frames:

    frame 0          key-down events for the chord
    frames 1..hold   chord held
    next frame       key-up events, then gap frames of silence
*/

package main

const (
	TYPIST_HOLD_FRAMES = 2
	TYPIST_GAP_FRAMES  = 2
	TYPIST_MAX_CHORDS  = 4096
	PASTE_MAX_BYTES    = 4096
)

type keyChord []HostKey

type keyTypist struct {
	pending    []keyChord
	held       keyChord
	wait       int
	holdFrames int
	gapFrames  int
}

func newKeyTypist() *keyTypist {
	return &keyTypist{
		holdFrames: TYPIST_HOLD_FRAMES,
		gapFrames:  TYPIST_GAP_FRAMES,
	}
}

// Type queues text and returns the number of characters that could be typed.
// Characters with no ZX81 key are skipped.
func (t *keyTypist) Type(text string) int {
	typed := 0
	for _, r := range text {
		chord, ok := chordForRune(r)
		if !ok {
			continue
		}
		if !t.queue(chord) {
			break
		}
		typed++
	}
	return typed
}

// TypeKeys queues a single chord of host keys.
func (t *keyTypist) TypeKeys(keys ...HostKey) {
	if len(keys) == 0 {
		return
	}
	t.queue(keyChord(keys))
}

func (t *keyTypist) queue(chord keyChord) bool {
	if len(t.pending) >= TYPIST_MAX_CHORDS {
		return false
	}
	t.pending = append(t.pending, chord)
	return true
}

// Busy reports whether chords are still queued or held.
func (t *keyTypist) Busy() bool {
	return t.held != nil || len(t.pending) > 0
}

// Tick advances the typist by one frame and returns the events to deliver.
func (t *keyTypist) Tick() []HostEvent {
	if t.wait > 0 {
		t.wait--
		return nil
	}

	if t.held != nil {
		events := make([]HostEvent, 0, len(t.held))
		for i := len(t.held) - 1; i >= 0; i-- {
			events = append(events, HostEvent{Type: EventKeyUp, Key: t.held[i]})
		}
		t.held = nil
		t.wait = t.gapFrames
		return events
	}

	if len(t.pending) == 0 {
		return nil
	}

	chord := t.pending[0]
	t.pending = t.pending[1:]
	events := make([]HostEvent, 0, len(chord))
	for _, key := range chord {
		events = append(events, HostEvent{Type: EventKeyDown, Key: key})
	}
	t.held = chord
	t.wait = t.holdFrames
	return events
}

var letterKeys = [26]HostKey{
	KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
	KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
}

var digitKeys = [10]HostKey{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

// Symbols printed on the keys and reached with SHIFT
var shiftedSymbols = map[rune]HostKey{
	':': KeyZ,
	';': KeyX,
	'?': KeyC,
	'/': KeyV,
	'"': KeyP,
	')': KeyO,
	'(': KeyI,
	'$': KeyU,
	'=': KeyL,
	'+': KeyK,
	'-': KeyJ,
	',': KeyPeriod,
	'>': KeyM,
	'<': KeyN,
	'*': KeyB,
	'£': KeySpace,
}

func chordForRune(r rune) (keyChord, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return keyChord{letterKeys[r-'A']}, true
	case r >= 'a' && r <= 'z':
		return keyChord{letterKeys[r-'a']}, true
	case r >= '0' && r <= '9':
		return keyChord{digitKeys[r-'0']}, true
	}

	switch r {
	case ' ':
		return keyChord{KeySpace}, true
	case '\n', '\r':
		return keyChord{KeyEnter}, true
	case '.':
		return keyChord{KeyPeriod}, true
	case '\b', 0x7F:
		return keyChord{KeyBackspace}, true
	}

	if key, ok := shiftedSymbols[r]; ok {
		return keyChord{KeyShiftLeft, key}, true
	}
	return nil, false
}

func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

func capPasteText(raw []byte, limit int) []byte {
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit]
}
