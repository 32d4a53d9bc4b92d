//go:build !headless && !sdl

// host_backend_ebiten.go - Ebiten window backend for the ZX81 shell

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
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

type EbitenHost struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	title       string
	fullscreen  bool
	scale       int
	windowedW   int
	windowedH   int
	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	vsyncChan   chan struct{}
	done        chan struct{}

	// Rendered by the orchestrator, copied to frameBuffer on Present
	surface *softSurface

	eventMutex sync.Mutex
	events     []HostEvent
	typist     *keyTypist

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool
}

func newWindowBackend() (HostBackend, error) {
	return NewEbitenHost(), nil
}

func NewEbitenHost() *EbitenHost {
	return &EbitenHost{
		scale:     1,
		vsyncChan: make(chan struct{}, 1),
		done:      make(chan struct{}),
		typist:    newKeyTypist(),
	}
}

func (eh *EbitenHost) Open(config DisplayConfig) error {
	if eh.running {
		return nil
	}
	if config.Width <= 0 || config.Height <= 0 {
		return &HostError{Operation: "open", Details: "display size must be positive"}
	}

	eh.bufferMutex.Lock()
	eh.width = config.Width
	eh.height = config.Height
	eh.title = config.Title
	eh.scale = ClampScale(config.Scale)
	eh.windowedW = eh.width * eh.scale
	eh.windowedH = eh.height * eh.scale
	eh.fullscreen = config.Fullscreen
	eh.showStatusBar = config.StatusBar
	eh.frameBuffer = make([]byte, eh.width*eh.height*4)
	eh.surface = newSoftSurface(eh.width, eh.height)
	eh.done = make(chan struct{})
	eh.bufferMutex.Unlock()

	eh.running = true
	ebiten.SetWindowSize(eh.windowedW, eh.windowedH)
	ebiten.SetWindowTitle(eh.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eh.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eh.running = false
			eh.bufferMutex.RLock()
			done := eh.done
			eh.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eh); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	select {
	case <-eh.vsyncChan:
	case <-eh.done:
		return &HostError{Operation: "open", Details: "window closed during startup"}
	}
	return nil
}

func (eh *EbitenHost) LoadAtlas(atlas *GlyphAtlas) error {
	if atlas == nil {
		return &HostError{Operation: "atlas load", Details: "nil atlas"}
	}
	eh.bufferMutex.Lock()
	defer eh.bufferMutex.Unlock()
	if eh.surface == nil {
		return &HostError{Operation: "atlas load", Details: "backend not open"}
	}
	eh.surface.atlas = atlas
	return nil
}

func (eh *EbitenHost) PollEvent() (HostEvent, bool) {
	eh.eventMutex.Lock()
	defer eh.eventMutex.Unlock()
	if len(eh.events) == 0 {
		return HostEvent{}, false
	}
	ev := eh.events[0]
	eh.events = eh.events[1:]
	return ev, true
}

func (eh *EbitenHost) pushEvent(ev HostEvent) {
	eh.eventMutex.Lock()
	eh.events = append(eh.events, ev)
	eh.eventMutex.Unlock()
}

// Blit draws into the off-screen surface only; the window sees it on Present.
func (eh *EbitenHost) Blit(src Rect, dstX, dstY int) {
	eh.surface.blit(src, dstX, dstY)
}

// Present hands the finished frame to the window and waits for the next
// vsync, which paces the frame loop to the display refresh.
func (eh *EbitenHost) Present() error {
	eh.bufferMutex.Lock()
	copy(eh.frameBuffer, eh.surface.pix)
	done := eh.done
	eh.bufferMutex.Unlock()

	eh.eventMutex.Lock()
	eh.events = append(eh.events, eh.typist.Tick()...)
	eh.eventMutex.Unlock()

	select {
	case <-eh.vsyncChan:
	case <-done:
		eh.pushEvent(HostEvent{Type: EventQuit})
	}
	return nil
}

func (eh *EbitenHost) Close() error {
	eh.running = false
	return nil
}

func (eh *EbitenHost) Update() error {
	if ebiten.IsWindowBeingClosed() {
		eh.pushEvent(HostEvent{Type: EventQuit})
		return ebiten.Termination
	}
	if !eh.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eh.bufferMutex.Lock()
		eh.fullscreen = !eh.fullscreen
		ebiten.SetFullscreen(eh.fullscreen)
		if !eh.fullscreen {
			ebiten.SetWindowSize(eh.windowedW, eh.windowedH)
		}
		eh.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		eh.pushEvent(HostEvent{Type: EventReset})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eh.bufferMutex.Lock()
		eh.showStatusBar = !eh.showStatusBar
		eh.bufferMutex.Unlock()
	}
	eh.handleKeyboardInput()
	return nil
}

func (eh *EbitenHost) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eh.handleClipboardPaste()
		return
	}

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if hk, ok := translateEbitenKey(key); ok {
			eh.pushEvent(HostEvent{Type: EventKeyDown, Key: hk})
		}
	}
	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		if hk, ok := translateEbitenKey(key); ok {
			eh.pushEvent(HostEvent{Type: EventKeyUp, Key: hk})
		}
	}
}

var ebitenHostKeys = map[ebiten.Key]HostKey{
	ebiten.KeyA: KeyA, ebiten.KeyB: KeyB, ebiten.KeyC: KeyC, ebiten.KeyD: KeyD,
	ebiten.KeyE: KeyE, ebiten.KeyF: KeyF, ebiten.KeyG: KeyG, ebiten.KeyH: KeyH,
	ebiten.KeyI: KeyI, ebiten.KeyJ: KeyJ, ebiten.KeyK: KeyK, ebiten.KeyL: KeyL,
	ebiten.KeyM: KeyM, ebiten.KeyN: KeyN, ebiten.KeyO: KeyO, ebiten.KeyP: KeyP,
	ebiten.KeyQ: KeyQ, ebiten.KeyR: KeyR, ebiten.KeyS: KeyS, ebiten.KeyT: KeyT,
	ebiten.KeyU: KeyU, ebiten.KeyV: KeyV, ebiten.KeyW: KeyW, ebiten.KeyX: KeyX,
	ebiten.KeyY: KeyY, ebiten.KeyZ: KeyZ,

	ebiten.KeyDigit0: Key0, ebiten.KeyDigit1: Key1, ebiten.KeyDigit2: Key2,
	ebiten.KeyDigit3: Key3, ebiten.KeyDigit4: Key4, ebiten.KeyDigit5: Key5,
	ebiten.KeyDigit6: Key6, ebiten.KeyDigit7: Key7, ebiten.KeyDigit8: Key8,
	ebiten.KeyDigit9: Key9,

	ebiten.KeyShiftLeft:   KeyShiftLeft,
	ebiten.KeyShiftRight:  KeyShiftRight,
	ebiten.KeyEnter:       KeyEnter,
	ebiten.KeyNumpadEnter: KeyEnter,
	ebiten.KeySpace:       KeySpace,
	ebiten.KeyPeriod:      KeyPeriod,
	ebiten.KeyBackspace:   KeyBackspace,
	ebiten.KeyArrowLeft:   KeyArrowLeft,
	ebiten.KeyArrowDown:   KeyArrowDown,
	ebiten.KeyArrowUp:     KeyArrowUp,
	ebiten.KeyArrowRight:  KeyArrowRight,
	ebiten.KeyComma:       KeyComma,
	ebiten.KeyEscape:      KeyEscape,
	ebiten.KeyTab:         KeyTab,
}

func translateEbitenKey(key ebiten.Key) (HostKey, bool) {
	hk, ok := ebitenHostKeys[key]
	return hk, ok
}

func (eh *EbitenHost) handleClipboardPaste() {
	eh.clipboardOnce.Do(func() {
		eh.clipboardOK = clipboard.Init() == nil
	})
	if !eh.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	data = capPasteText(normalizePasteText(data), PASTE_MAX_BYTES)
	eh.eventMutex.Lock()
	eh.typist.Type(string(data))
	eh.eventMutex.Unlock()
}

// TypeText queues text through the typist, as a paste would.
func (eh *EbitenHost) TypeText(text string) int {
	eh.eventMutex.Lock()
	defer eh.eventMutex.Unlock()
	return eh.typist.Type(text)
}

func (eh *EbitenHost) Draw(screen *ebiten.Image) {
	if eh.window == nil {
		eh.window = ebiten.NewImage(eh.width, eh.height)
	}

	eh.bufferMutex.RLock()
	eh.window.WritePixels(eh.frameBuffer)
	showStatusBar := eh.showStatusBar
	eh.bufferMutex.RUnlock()
	screen.DrawImage(eh.window, nil)
	if showStatusBar {
		eh.drawRuntimeStatusBar(screen)
	}

	eh.frameCount++
	select {
	case eh.vsyncChan <- struct{}{}:
	default:
	}
}

func (eh *EbitenHost) Layout(_, _ int) (int, int) {
	return eh.width, eh.height
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	offColor := color.RGBA{120, 120, 120, 255}
	onColor := color.RGBA{0, 220, 90, 255}

	text.Draw(screen, label, face, x, baselineY, labelColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := offColor
		if token.enabled {
			c = onColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

func (eh *EbitenHost) drawRuntimeStatusBar(screen *ebiten.Image) {
	s := runtimeStatus.snapshot()

	eh.eventMutex.Lock()
	typing := eh.typist.Busy()
	eh.eventMutex.Unlock()

	barHeight := 30
	if barHeight >= eh.height {
		return
	}
	y := eh.height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eh.width), float64(barHeight), color.RGBA{0, 0, 0, 180})

	drawStatusLine(screen, 6, y+13, "ZX81 ", []statusToken{
		{name: fmt.Sprintf("%5.1f FPS", s.FramesPerSecond()), enabled: true},
		{name: "|", enabled: false},
		{name: fmt.Sprintf("%6.2f MIPS", s.MIPS()), enabled: true},
		{name: "|", enabled: false},
		{name: "PASTE", enabled: typing},
	})

	legendColor := color.RGBA{160, 160, 160, 255}
	legend := "F10 Reset  F11 Fullscreen  F12 Status Bar"
	legendW := text.BoundString(basicfont.Face7x13, legend).Dx()
	legendX := max(eh.width-legendW-6, 6)
	text.Draw(screen, legend, basicfont.Face7x13, legendX, y+26, legendColor)
}
