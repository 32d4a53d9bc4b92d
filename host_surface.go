// host_surface.go - Software RGBA surface shared by the ebiten and headless backends

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

// softSurface is an RGBA frame buffer that accepts rectangle copies from a
// glyph atlas. Blits are clipped to the surface.
type softSurface struct {
	pix    []byte
	width  int
	height int
	atlas  *GlyphAtlas
}

func newSoftSurface(width, height int) *softSurface {
	return &softSurface{
		pix:    make([]byte, width*height*4),
		width:  width,
		height: height,
	}
}

func (s *softSurface) blit(src Rect, dstX, dstY int) {
	if s.atlas == nil {
		return
	}
	w, h := src.W, src.H
	if src.X < 0 || src.Y < 0 || src.X+w > s.atlas.Width || src.Y+h > s.atlas.Height {
		return
	}
	if dstX < 0 || dstY < 0 {
		return
	}
	w = min(w, s.width-dstX)
	h = min(h, s.height-dstY)
	if w <= 0 || h <= 0 {
		return
	}

	rowBytes := w * 4
	for dy := range h {
		srcOff := (src.Y+dy)*s.atlas.Stride + src.X*4
		dstOff := ((dstY+dy)*s.width + dstX) * 4
		copy(s.pix[dstOff:dstOff+rowBytes], s.atlas.Pix[srcOff:srcOff+rowBytes])
	}
}

func (s *softSurface) pixelAt(x, y int) [4]uint8 {
	off := (y*s.width + x) * 4
	return [4]uint8{s.pix[off], s.pix[off+1], s.pix[off+2], s.pix[off+3]}
}
