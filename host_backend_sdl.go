//go:build sdl && !headless

// host_backend_sdl.go - SDL2 window backend for the ZX81 shell

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
host_backend_sdl.go - SDL2 Window Backend

Build with -tags sdl to use SDL2 instead of Ebiten for the window backend.
The glyph atlas is uploaded once as a texture and every Blit is a renderer
copy from it, so a frame costs 768 texture copies and one Present.

SDL must be driven from the thread that initialised it; the frame loop runs
on the main goroutine, which is locked to its OS thread in init.
*/

package main

import (
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

type SDLHost struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	atlas    *sdl.Texture
	typist   *keyTypist
	events   []HostEvent
}

func newWindowBackend() (HostBackend, error) {
	return &SDLHost{typist: newKeyTypist()}, nil
}

func (s *SDLHost) Open(config DisplayConfig) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return &HostError{Operation: "open", Details: "SDL init failed", Err: err}
	}

	scale := ClampScale(config.Scale)
	flags := uint32(sdl.WINDOW_SHOWN)
	if config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	s.window, err = sdl.CreateWindow(config.Title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(config.Width*scale), int32(config.Height*scale),
		flags)
	if err != nil {
		sdl.Quit()
		return &HostError{Operation: "open", Details: "window creation failed", Err: err}
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, uint32(sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		s.window.Destroy()
		sdl.Quit()
		return &HostError{Operation: "open", Details: "renderer creation failed", Err: err}
	}
	if err := s.renderer.SetScale(float32(scale), float32(scale)); err != nil {
		return &HostError{Operation: "open", Details: "renderer scale failed", Err: err}
	}

	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
	return nil
}

// LoadAtlas uploads the atlas pixels as a static texture.
func (s *SDLHost) LoadAtlas(atlas *GlyphAtlas) error {
	if atlas == nil {
		return &HostError{Operation: "atlas load", Details: "nil atlas"}
	}
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(atlas.Width), int32(atlas.Height), 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return &HostError{Operation: "atlas load", Details: "surface creation failed", Err: err}
	}
	defer surface.Free()

	pix := surface.Pixels()
	pitch := int(surface.Pitch)
	for y := range atlas.Height {
		copy(pix[y*pitch:y*pitch+atlas.Width*4], atlas.Pix[y*atlas.Stride:y*atlas.Stride+atlas.Width*4])
	}

	s.atlas, err = s.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return &HostError{Operation: "atlas load", Details: "texture creation failed", Err: err}
	}
	return nil
}

func (s *SDLHost) PollEvent() (HostEvent, bool) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			s.events = append(s.events, HostEvent{Type: EventQuit})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			if ev.Keysym.Sym == sdl.K_F10 {
				if ev.Type == sdl.KEYDOWN {
					s.events = append(s.events, HostEvent{Type: EventReset})
				}
				continue
			}
			hk, ok := translateSDLKey(ev.Keysym.Sym)
			if !ok {
				continue
			}
			switch ev.Type {
			case sdl.KEYDOWN:
				s.events = append(s.events, HostEvent{Type: EventKeyDown, Key: hk})
			case sdl.KEYUP:
				s.events = append(s.events, HostEvent{Type: EventKeyUp, Key: hk})
			}
		}
	}

	if len(s.events) == 0 {
		return HostEvent{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func (s *SDLHost) Blit(src Rect, dstX, dstY int) {
	if s.atlas == nil {
		return
	}
	srcRect := &sdl.Rect{X: int32(src.X), Y: int32(src.Y), W: int32(src.W), H: int32(src.H)}
	dstRect := &sdl.Rect{X: int32(dstX), Y: int32(dstY), W: int32(src.W), H: int32(src.H)}
	_ = s.renderer.Copy(s.atlas, srcRect, dstRect)
}

func (s *SDLHost) Present() error {
	s.renderer.Present()
	s.events = append(s.events, s.typist.Tick()...)
	return nil
}

// TypeText queues text through the typist.
func (s *SDLHost) TypeText(text string) int {
	return s.typist.Type(text)
}

func (s *SDLHost) Close() error {
	if s.atlas != nil {
		_ = s.atlas.Destroy()
		s.atlas = nil
	}
	if s.renderer != nil {
		_ = s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		_ = s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}

var sdlHostKeys = map[sdl.Keycode]HostKey{
	sdl.K_a: KeyA, sdl.K_b: KeyB, sdl.K_c: KeyC, sdl.K_d: KeyD,
	sdl.K_e: KeyE, sdl.K_f: KeyF, sdl.K_g: KeyG, sdl.K_h: KeyH,
	sdl.K_i: KeyI, sdl.K_j: KeyJ, sdl.K_k: KeyK, sdl.K_l: KeyL,
	sdl.K_m: KeyM, sdl.K_n: KeyN, sdl.K_o: KeyO, sdl.K_p: KeyP,
	sdl.K_q: KeyQ, sdl.K_r: KeyR, sdl.K_s: KeyS, sdl.K_t: KeyT,
	sdl.K_u: KeyU, sdl.K_v: KeyV, sdl.K_w: KeyW, sdl.K_x: KeyX,
	sdl.K_y: KeyY, sdl.K_z: KeyZ,

	sdl.K_0: Key0, sdl.K_1: Key1, sdl.K_2: Key2, sdl.K_3: Key3, sdl.K_4: Key4,
	sdl.K_5: Key5, sdl.K_6: Key6, sdl.K_7: Key7, sdl.K_8: Key8, sdl.K_9: Key9,

	sdl.K_LSHIFT:    KeyShiftLeft,
	sdl.K_RSHIFT:    KeyShiftRight,
	sdl.K_RETURN:    KeyEnter,
	sdl.K_KP_ENTER:  KeyEnter,
	sdl.K_SPACE:     KeySpace,
	sdl.K_PERIOD:    KeyPeriod,
	sdl.K_BACKSPACE: KeyBackspace,
	sdl.K_LEFT:      KeyArrowLeft,
	sdl.K_DOWN:      KeyArrowDown,
	sdl.K_UP:        KeyArrowUp,
	sdl.K_RIGHT:     KeyArrowRight,
	sdl.K_COMMA:     KeyComma,
	sdl.K_ESCAPE:    KeyEscape,
	sdl.K_TAB:       KeyTab,
}

func translateSDLKey(sym sdl.Keycode) (HostKey, bool) {
	hk, ok := sdlHostKeys[sym]
	return hk, ok
}
