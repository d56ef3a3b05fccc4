// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"errors"
	"testing"

	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

func TestInvalidateSurfaceAddressEvicts(t *testing.T) {
	s := newTestStore()
	if _, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x1000, Format: pixfmt.A8R8G8B8, Width: 32, Height: 32, Pitch: 128,
	}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := s.InvalidateSurfaceAddress(nil, 0x1000, false); err != nil {
		t.Fatalf("InvalidateSurfaceAddress: %v", err)
	}
	if s.ColorSurfaceCount() != 0 {
		t.Fatalf("ColorSurfaceCount: got %d, want 0", s.ColorSurfaceCount())
	}
	if s.InvalidatedCount() != 1 {
		t.Fatalf("InvalidatedCount: got %d, want 1", s.InvalidatedCount())
	}
}

func TestInvalidateSurfaceAddressRefusesBoundAddress(t *testing.T) {
	s := newTestStore()
	d, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x1000, Format: pixfmt.A8R8G8B8, Width: 32, Height: 32, Pitch: 128,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	s.reg.boundColor[0] = boundSlot{address: 0x1000, desc: d}

	err = s.InvalidateSurfaceAddress(nil, 0x1000, false)
	if !errors.Is(err, ErrBoundAddress) {
		t.Fatalf("error: got %v, want ErrBoundAddress", err)
	}
	if s.ColorSurfaceCount() != 1 {
		t.Fatal("a refused invalidation must leave the surface registered")
	}
}

func TestInvalidateSurfaceAddressMissingAddressIsNoop(t *testing.T) {
	s := newTestStore()
	if err := s.InvalidateSurfaceAddress(nil, 0xDEAD, false); err != nil {
		t.Fatalf("invalidating an address with no entry should not error: %v", err)
	}
}
