// Copyright 2026 Yigithan Sonmez. All rights reserved.

//go:build !linux

package memwin

import "fmt"

// MMapWindow is the non-Linux fallback: the mmap-backed implementation
// is built on Linux only, so every other platform gets a plain
// slice-backed region with the same exported surface as the Linux
// implementation.
type MMapWindow struct {
	*FlatWindow
}

// NewMMap reserves size zero-filled bytes starting at guest address base.
// On non-Linux platforms this is a thin wrapper over FlatWindow.
func NewMMap(base Address, size int) (*MMapWindow, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memwin: invalid mmap size %d", size)
	}
	return &MMapWindow{FlatWindow: NewFlat(base, make([]byte, size))}, nil
}

// Close is a no-op outside Linux; the backing slice is left for the GC.
func (w *MMapWindow) Close() error { return nil }
