// host_backend_headless.go - In-memory host backend for batch runs and tests

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

import "sync"

// HeadlessBackend renders into memory and delivers events that were queued
// in advance or typed through its typist.
type HeadlessBackend struct {
	mu      sync.Mutex
	config  DisplayConfig
	surface *softSurface
	events  []HostEvent
	typist  *keyTypist
	opened  bool
	frames  uint64
	blits   uint64
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{typist: newKeyTypist()}
}

func (h *HeadlessBackend) Open(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &HostError{Operation: "open", Details: "display size must be positive"}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config = config
	h.surface = newSoftSurface(config.Width, config.Height)
	h.opened = true
	return nil
}

func (h *HeadlessBackend) LoadAtlas(atlas *GlyphAtlas) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.opened {
		return &HostError{Operation: "atlas load", Details: "backend not open"}
	}
	h.surface.atlas = atlas
	return nil
}

func (h *HeadlessBackend) PollEvent() (HostEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) == 0 {
		return HostEvent{}, false
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev, true
}

func (h *HeadlessBackend) Blit(src Rect, dstX, dstY int) {
	h.mu.Lock()
	h.surface.blit(src, dstX, dstY)
	h.blits++
	h.mu.Unlock()
}

func (h *HeadlessBackend) Present() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames++
	h.events = append(h.events, h.typist.Tick()...)
	return nil
}

func (h *HeadlessBackend) Close() error {
	h.mu.Lock()
	h.opened = false
	h.mu.Unlock()
	return nil
}

// QueueEvents appends events to be returned by PollEvent.
func (h *HeadlessBackend) QueueEvents(events ...HostEvent) {
	h.mu.Lock()
	h.events = append(h.events, events...)
	h.mu.Unlock()
}

// TypeText feeds text through the typist, one chord every few frames.
func (h *HeadlessBackend) TypeText(text string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.typist.Type(text)
}

func (h *HeadlessBackend) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

func (h *HeadlessBackend) Blits() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blits
}

func (h *HeadlessBackend) PixelAt(x, y int) [4]uint8 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface.pixelAt(x, y)
}
