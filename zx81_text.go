// zx81_text.go - ZX81 character codes as printable text

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

import "strings"

// zx81Runes maps the 64 ZX81 character codes to Unicode. Codes 1-10 are the
// block graphics.
var zx81Runes = [ZX81_CHARSET_GLYPHS]rune{
	' ', '▘', '▝', '▀', '▖', '▌', '▞', '▛', '▒', '▄', '▀',
	'"', '£', '$', ':', '?', '(', ')', '>', '<', '=', '+', '-', '*', '/', ';', ',', '.',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

// ZX81Rune converts a display code to a rune and reports inverse video.
// Codes outside the two character sets render as '?'.
func ZX81Rune(code byte) (rune, bool) {
	inverse := code&ZX81_INVERSE_OFFSET != 0
	base := code &^ ZX81_INVERSE_OFFSET
	if base >= ZX81_CHARSET_GLYPHS {
		return '?', inverse
	}
	return zx81Runes[base], inverse
}

// DisplayFileText walks the display file the same way the redraw does and
// returns one string per screen row. Inverse video is dropped.
func DisplayFileText(mem *ZX81Memory) []string {
	lines := make([]string, 0, ZX81_TEXT_ROWS)
	dfile := mem.ReadWord(ZX81_D_FILE)

	var sb strings.Builder
	for range ZX81_TEXT_ROWS {
		sb.Reset()
		for range ZX81_TEXT_COLUMNS {
			dfile++
			r, _ := ZX81Rune(mem.Read(dfile))
			sb.WriteRune(r)
		}
		dfile++
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}
