// zx81_charset.go - ZX81 character set atlas builder

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
zx81_charset.go - ZX81 Character Set Atlas

The ZX81 has no bitmap display: every screen cell is one of 64 characters
whose 8x8 patterns live in the ROM at 0x1E00, shown either normally or in
inverse video (character code + 128).

BuildCharsetAtlas turns those patterns into a single RGBA strip that holds a
16x16 cell for every character code, so a redraw is nothing more than 768
rectangle copies. Each ROM pixel becomes a 2x2 block. A set bit is ink in the
normal cell and paper in the inverse cell; a clear bit is the opposite.

Atlas layout (one row of 256 cells):

    codes   0- 63  normal glyphs
    codes  64-127  unused (ink)
    codes 128-191  inverse glyphs
    codes 192-255  unused (ink)
*/

package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// GlyphAtlas is an immutable RGBA image of all character cells.
type GlyphAtlas struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// BuildCharsetAtlas renders the 64 ROM glyphs and their inverse set. rom is
// the 8K ROM image.
func BuildCharsetAtlas(rom []byte) (*GlyphAtlas, error) {
	end := ZX81_CHARSET_ADDR + ZX81_CHARSET_GLYPHS*ZX81_GLYPH_ROWS
	if len(rom) < end {
		return nil, &ROMError{Size: len(rom), Err: fmt.Errorf("character set needs %d bytes", end)}
	}

	atlas := &GlyphAtlas{
		Width:  CHARSET_ATLAS_WIDTH,
		Height: CHARSET_ATLAS_HEIGHT,
		Stride: CHARSET_ATLAS_WIDTH * 4,
	}
	atlas.Pix = make([]byte, atlas.Stride*atlas.Height)
	for i := 0; i < len(atlas.Pix); i += 4 {
		copy(atlas.Pix[i:i+4], ZX81ColorInk[:])
	}

	addr := ZX81_CHARSET_ADDR
	for glyph := range ZX81_CHARSET_GLYPHS {
		normalX := glyph * CHARSET_CELL_SIZE
		inverseX := (glyph + ZX81_INVERSE_OFFSET) * CHARSET_CELL_SIZE

		for row := range ZX81_GLYPH_ROWS {
			b := rom[addr]
			addr++

			for col := range 8 {
				normal, inverse := ZX81ColorPaper, ZX81ColorInk
				if b&0x80 != 0 {
					normal, inverse = ZX81ColorInk, ZX81ColorPaper
				}
				atlas.fillBlock(normalX+col*CHARSET_PIXEL_SIZE, row*CHARSET_PIXEL_SIZE, normal)
				atlas.fillBlock(inverseX+col*CHARSET_PIXEL_SIZE, row*CHARSET_PIXEL_SIZE, inverse)
				b <<= 1
			}
		}
	}
	return atlas, nil
}

func (a *GlyphAtlas) fillBlock(x, y int, c [4]uint8) {
	for dy := range CHARSET_PIXEL_SIZE {
		off := (y+dy)*a.Stride + x*4
		for dx := range CHARSET_PIXEL_SIZE {
			copy(a.Pix[off+dx*4:off+dx*4+4], c[:])
		}
	}
}

// CellRect returns the source rectangle of a character code.
func (a *GlyphAtlas) CellRect(code byte) Rect {
	return Rect{X: int(code) * CHARSET_CELL_SIZE, Y: 0, W: CHARSET_CELL_SIZE, H: CHARSET_CELL_SIZE}
}

// PixelAt returns the RGBA colour at (x, y).
func (a *GlyphAtlas) PixelAt(x, y int) [4]uint8 {
	off := y*a.Stride + x*4
	return [4]uint8{a.Pix[off], a.Pix[off+1], a.Pix[off+2], a.Pix[off+3]}
}

// Image wraps the atlas pixels in an image.RGBA without copying.
func (a *GlyphAtlas) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    a.Pix,
		Stride: a.Stride,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// WritePNG encodes the atlas as a PNG image.
func (a *GlyphAtlas) WritePNG(w io.Writer) error {
	return png.Encode(w, a.Image())
}
