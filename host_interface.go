// host_interface.go - Host video/input backend interface for the ZX81 shell

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
)

// HostError provides detailed error context for host backend operations
type HostError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("host %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("host %s failed: %s", e.Operation, e.Details)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// HostKey is a backend-neutral key identifier. Backends translate their
// native key codes into these values before queueing events.
type HostKey int

const (
	KeyUnknown HostKey = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyShiftLeft
	KeyShiftRight
	KeyEnter
	KeySpace
	KeyPeriod
	KeyBackspace
	KeyArrowLeft
	KeyArrowDown
	KeyArrowUp
	KeyArrowRight
	KeyComma
	KeyEscape
	KeyTab
)

// HostEventType tells the frame orchestrator what a polled event means
type HostEventType int

const (
	EventKeyDown HostEventType = iota
	EventKeyUp
	EventQuit
	EventReset // Hard reset requested by the user
)

type HostEvent struct {
	Type HostEventType
	Key  HostKey
}

// Rect is a rectangle in pixels
type Rect struct {
	X, Y, W, H int
}

// DisplayConfig contains the presentation surface settings
type DisplayConfig struct {
	Width      int
	Height     int
	Scale      int // Integer scaling factor for the window
	Title      string
	Fullscreen bool
	StatusBar  bool
}

// HostBackend is the video/input service the frame orchestrator drives.
// PollEvent must not block; it returns false once the queue is empty.
type HostBackend interface {
	Open(config DisplayConfig) error
	LoadAtlas(atlas *GlyphAtlas) error
	PollEvent() (HostEvent, bool)
	Blit(src Rect, dstX, dstY int)
	Present() error
	Close() error
}

// Predefined host backend names
const (
	HOST_BACKEND_WINDOW   = "window"
	HOST_BACKEND_TERMINAL = "term"
	HOST_BACKEND_HEADLESS = "headless"
)

// NewHostBackend creates a host backend by name
func NewHostBackend(name string) (HostBackend, error) {
	switch name {
	case HOST_BACKEND_WINDOW, "":
		return newWindowBackend()
	case HOST_BACKEND_TERMINAL:
		return NewTerminalBackend(), nil
	case HOST_BACKEND_HEADLESS:
		return NewHeadlessBackend(), nil
	}
	return nil, &HostError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend: %q", name),
	}
}

func ClampScale(scale int) int {
	if scale < 1 {
		return 1
	}
	if scale > 4 {
		return 4
	}
	return scale
}
