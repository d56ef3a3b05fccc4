// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"testing"

	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

func TestGetMergedTextureMemoryRegionFindsContainedSurface(t *testing.T) {
	s := newTestStore()
	// A small surface fully contained within a larger address range.
	inner, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x1100, Format: pixfmt.A8R8G8B8, Width: 16, Height: 16, Pitch: 64,
	})
	if err != nil {
		t.Fatalf("bind inner: %v", err)
	}
	inner.syncTag(s.mem)

	_, _, overlaps := s.GetMergedTextureMemoryRegion(nil, MergedTextureMemoryRegionParams{
		Address: 0x1000, Width: 256, Height: 256, Pitch: 1024,
	})
	if len(overlaps) != 1 {
		t.Fatalf("overlaps: got %d, want 1", len(overlaps))
	}
	if overlaps[0].Surface != inner {
		t.Fatal("the returned overlap should reference the inner surface's descriptor")
	}
}

func TestGetMergedTextureMemoryRegionEvictsStaleSurfaces(t *testing.T) {
	s := newTestStore()
	inner, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x1100, Format: pixfmt.A8R8G8B8, Width: 16, Height: 16, Pitch: 64,
	})
	if err != nil {
		t.Fatalf("bind inner: %v", err)
	}
	inner.syncTag(s.mem)
	// Mutate guest memory underneath the fingerprinted surface without
	// going through OnWrite, simulating an external modification.
	fw := s.mem.(interface{ Bytes() []byte })
	fw.Bytes()[0x1100] ^= 0xFF

	_, _, overlaps := s.GetMergedTextureMemoryRegion(nil, MergedTextureMemoryRegionParams{
		Address: 0x1000, Width: 256, Height: 256, Pitch: 1024,
	})
	if len(overlaps) != 0 {
		t.Fatalf("a stale surface must not appear in the fresh overlap list: got %d", len(overlaps))
	}
	if s.ColorSurfaceCount() != 0 {
		t.Fatalf("stale surface should have been pruned from the color map: count=%d", s.ColorSurfaceCount())
	}
	if s.InvalidatedCount() != 1 {
		t.Fatalf("pruned surface should land in the invalidated pool: count=%d", s.InvalidatedCount())
	}
}

// TestGetMergedTextureMemoryRegionProjectsDestinationOffset exercises a
// candidate whose base address lies at or after the query's base address
// (A >= T): the overlap's contribution is positioned with a destination
// offset into the query rectangle, and is reported clipped when it runs
// past either of the query's edges.
func TestGetMergedTextureMemoryRegionProjectsDestinationOffset(t *testing.T) {
	s := newTestStore()
	inner, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x01000400, Format: pixfmt.A8R8G8B8, Width: 64, Height: 64, Pitch: 256,
	})
	if err != nil {
		t.Fatalf("bind inner: %v", err)
	}
	inner.SetWriteAAMode(pixfmt.AACenter1Sample)
	inner.onWrite(0, s.mem)

	_, _, overlaps := s.GetMergedTextureMemoryRegion(nil, MergedTextureMemoryRegionParams{
		Address: 0x01000000, Width: 128, Height: 64, Pitch: 256,
	})
	if len(overlaps) != 1 {
		t.Fatalf("overlaps: got %d, want 1", len(overlaps))
	}
	ov := overlaps[0]
	if ov.DstY != 4 || ov.DstX != 0 {
		t.Fatalf("destination offset: got (%d,%d), want (0,4)", ov.DstX, ov.DstY)
	}
	if ov.SrcX != 0 || ov.SrcY != 0 {
		t.Fatalf("source offset should be zero on the A>=T branch: got (%d,%d)", ov.SrcX, ov.SrcY)
	}
	if ov.Width != 64 || ov.Height != 60 {
		t.Fatalf("dimensions: got %dx%d, want 64x60", ov.Width, ov.Height)
	}
	if !ov.IsClipped {
		t.Fatal("the contribution runs past the query's bottom edge and must be reported clipped")
	}
}

func TestGetMergedTextureMemoryRegionPrunesEvenWhenBound(t *testing.T) {
	s := newTestStore()
	d, err := s.BindAddressAsColor(nil, ColorBindParams{
		Address: 0x1100, Format: pixfmt.A8R8G8B8, Width: 16, Height: 16, Pitch: 64,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	d.syncTag(s.mem)
	s.reg.boundColor[0] = boundSlot{address: 0x1100, desc: d}

	fw := s.mem.(interface{ Bytes() []byte })
	fw.Bytes()[0x1100] ^= 0xFF

	s.GetMergedTextureMemoryRegion(nil, MergedTextureMemoryRegionParams{
		Address: 0x1000, Width: 256, Height: 256, Pitch: 1024,
	})
	if s.reg.boundColor[0].live() {
		t.Fatal("a stale surface's bound slot must be cleared even though normal invalidation refuses bound addresses")
	}
}
