// zx81_keyboard.go - ZX81 keyboard matrix emulation

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
zx81_keyboard.go - ZX81 Keyboard Matrix

The ZX81 keyboard is 40 keys wired as 8 half-rows of 5. The CPU selects
half-rows by clearing bits in the high byte of an even port address and reads
the row back with the pressed keys as cleared bits in 0-4.

Half-row layout (column bit 0 first):

    0: SHIFT Z X C V     4: 0 9 8 7 6
    1: A S D F G         5: P O I U Y
    2: Q W E R T         6: NEWLINE L K J H
    3: 1 2 3 4 5         7: SPACE . M N B

Host keys are mapped to a scan code byte: the row in bits 5-7 and a one-hot
column mask in bits 0-4. Compound keys (RUBOUT and the cursor keys) press
SHIFT together with a second key. Each contact counts the host keys holding
it, so releasing a cursor key leaves SHIFT closed while a Shift key is
still down.
*/

package main

import "math/bits"

// scanCode packs a matrix position as row<<5 | column bit
func scanCode(row int, column byte) byte {
	return byte(row<<ZX81_SCAN_ROW_SHIFT) | column&ZX81_SCAN_COLUMN_MASK
}

var zx81KeyMap = map[HostKey]byte{
	KeyShiftLeft:  scanCode(0, 0x01),
	KeyShiftRight: scanCode(0, 0x01),
	KeyZ:          scanCode(0, 0x02),
	KeyX:          scanCode(0, 0x04),
	KeyC:          scanCode(0, 0x08),
	KeyV:          scanCode(0, 0x10),

	KeyA: scanCode(1, 0x01),
	KeyS: scanCode(1, 0x02),
	KeyD: scanCode(1, 0x04),
	KeyF: scanCode(1, 0x08),
	KeyG: scanCode(1, 0x10),

	KeyQ: scanCode(2, 0x01),
	KeyW: scanCode(2, 0x02),
	KeyE: scanCode(2, 0x04),
	KeyR: scanCode(2, 0x08),
	KeyT: scanCode(2, 0x10),

	Key1: scanCode(3, 0x01),
	Key2: scanCode(3, 0x02),
	Key3: scanCode(3, 0x04),
	Key4: scanCode(3, 0x08),
	Key5: scanCode(3, 0x10),

	Key0: scanCode(4, 0x01),
	Key9: scanCode(4, 0x02),
	Key8: scanCode(4, 0x04),
	Key7: scanCode(4, 0x08),
	Key6: scanCode(4, 0x10),

	KeyP: scanCode(5, 0x01),
	KeyO: scanCode(5, 0x02),
	KeyI: scanCode(5, 0x04),
	KeyU: scanCode(5, 0x08),
	KeyY: scanCode(5, 0x10),

	KeyEnter: scanCode(6, 0x01),
	KeyL:     scanCode(6, 0x02),
	KeyK:     scanCode(6, 0x04),
	KeyJ:     scanCode(6, 0x08),
	KeyH:     scanCode(6, 0x10),

	KeySpace:  scanCode(7, 0x01),
	KeyPeriod: scanCode(7, 0x02),
	KeyM:      scanCode(7, 0x04),
	KeyN:      scanCode(7, 0x08),
	KeyB:      scanCode(7, 0x10),
}

// Keys that close two matrix contacts at once. RUBOUT is SHIFT+0 and the
// cursor keys are SHIFT+5..8.
var zx81CompoundKeys = map[HostKey][2]byte{
	KeyBackspace:  {scanCode(0, 0x01), scanCode(4, 0x01)},
	KeyArrowLeft:  {scanCode(0, 0x01), scanCode(3, 0x10)},
	KeyArrowDown:  {scanCode(0, 0x01), scanCode(4, 0x10)},
	KeyArrowUp:    {scanCode(0, 0x01), scanCode(4, 0x08)},
	KeyArrowRight: {scanCode(0, 0x01), scanCode(4, 0x04)},
}

// ZX81Keyboard holds the state of the eight half-rows.
type ZX81Keyboard struct {
	rows   [ZX81_KEYBOARD_ROWS]byte
	keyMap map[HostKey]byte

	holds [ZX81_KEYBOARD_ROWS][ZX81_KEYBOARD_COLUMNS]uint8
	down  map[HostKey]bool
}

func NewZX81Keyboard() *ZX81Keyboard {
	kb := &ZX81Keyboard{keyMap: zx81KeyMap}
	kb.Reset()
	return kb
}

// Reset releases every key.
func (kb *ZX81Keyboard) Reset() {
	for i := range kb.rows {
		kb.rows[i] = ZX81_ROW_IDLE
	}
	kb.holds = [ZX81_KEYBOARD_ROWS][ZX81_KEYBOARD_COLUMNS]uint8{}
	kb.down = make(map[HostKey]bool)
}

// Lookup returns the scan code for key, or false if the key is not wired
// to the matrix.
func (kb *ZX81Keyboard) Lookup(key HostKey) (byte, bool) {
	code, ok := kb.keyMap[key]
	return code, ok
}

// PortRead decodes the row select in the high byte of port. The first
// cleared bit, counting from bit 0, selects the row. A port that selects no
// row reads as ZX81_NO_ROW_SELECTED.
//
// Callers only route even ports here; the low bit is not checked again.
func (kb *ZX81Keyboard) PortRead(port uint16) byte {
	sel := port >> 8
	for i := range ZX81_KEYBOARD_ROWS {
		if sel&1 == 0 {
			return kb.rows[i]
		}
		sel >>= 1
	}
	return ZX81_NO_ROW_SELECTED
}

// KeyDown closes the contacts of key. A repeated KeyDown for a key that is
// already down is ignored.
func (kb *ZX81Keyboard) KeyDown(key HostKey) {
	if kb.down[key] {
		return
	}
	if pair, ok := zx81CompoundKeys[key]; ok {
		kb.down[key] = true
		kb.press(pair[0])
		kb.press(pair[1])
		return
	}
	if code, ok := kb.Lookup(key); ok {
		kb.down[key] = true
		kb.press(code)
	}
}

// KeyUp opens the contacts of key that no other held key still closes.
func (kb *ZX81Keyboard) KeyUp(key HostKey) {
	if !kb.down[key] {
		return
	}
	delete(kb.down, key)
	if pair, ok := zx81CompoundKeys[key]; ok {
		kb.release(pair[0])
		kb.release(pair[1])
		return
	}
	if code, ok := kb.Lookup(key); ok {
		kb.release(code)
	}
}

func (kb *ZX81Keyboard) press(code byte) {
	row := code >> ZX81_SCAN_ROW_SHIFT
	mask := code & ZX81_SCAN_COLUMN_MASK
	kb.holds[row][bits.TrailingZeros8(mask)]++
	kb.rows[row] &^= mask
}

func (kb *ZX81Keyboard) release(code byte) {
	row := code >> ZX81_SCAN_ROW_SHIFT
	mask := code & ZX81_SCAN_COLUMN_MASK
	col := bits.TrailingZeros8(mask)
	if kb.holds[row][col] > 0 {
		kb.holds[row][col]--
	}
	if kb.holds[row][col] == 0 {
		kb.rows[row] |= mask
	}
}

// Rows returns a copy of the matrix state.
func (kb *ZX81Keyboard) Rows() [ZX81_KEYBOARD_ROWS]byte {
	return kb.rows
}
