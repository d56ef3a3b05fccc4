// Copyright 2026 Yigithan Sonmez. All rights reserved.

//go:build linux

package memwin

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// MMapWindow is a Window backed by an anonymous mmap'd region rather
// than a Go slice. The region is always one that NewMMap maps itself;
// an MMapWindow cannot wrap a mapping the embedder already holds.
type MMapWindow struct {
	base Address
	mem  []byte
}

// NewMMap reserves size bytes of anonymous memory starting at guest
// address base and returns a Window over it. The returned region is
// zero-filled.
func NewMMap(base Address, size int) (*MMapWindow, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memwin: invalid mmap size %d", size)
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("memwin: mmap: %w", err)
	}
	return &MMapWindow{base: base, mem: mem}, nil
}

// Word implements Window. See FlatWindow.Word for the out-of-range rules;
// they are identical here.
func (w *MMapWindow) Word(addr Address) uint64 {
	if addr < w.base {
		return 0
	}
	off := uint64(addr - w.base)
	if off+8 > uint64(len(w.mem)) {
		return 0
	}
	return binary.LittleEndian.Uint64(w.mem[off : off+8])
}

// Bytes returns the mapped region.
func (w *MMapWindow) Bytes() []byte { return w.mem }

// Close unmaps the region. The Window must not be used afterward.
func (w *MMapWindow) Close() error {
	if w.mem == nil {
		return nil
	}
	err := unix.Munmap(w.mem)
	w.mem = nil
	return err
}
