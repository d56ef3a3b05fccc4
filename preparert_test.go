// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"testing"

	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

func TestPrepareRenderTargetBindsAccordingToMRTLayout(t *testing.T) {
	s := newTestStore()
	err := s.PrepareRenderTarget(nil, RenderTargetParams{
		ColorFormat: pixfmt.A8R8G8B8,
		ClipWidth:   64,
		ClipHeight:  64,
		MRTLayout:   pixfmt.MRTPair,
		ColorAddresses: [4]memwin.Address{0x1000, 0x2000},
		ColorPitches:   [4]int{256, 256},
	})
	if err != nil {
		t.Fatalf("PrepareRenderTarget: %v", err)
	}
	if s.BoundColor(0) == nil || s.BoundColor(1) == nil {
		t.Fatal("MRTPair should bind slots 0 and 1")
	}
	if s.BoundColor(2) != nil || s.BoundColor(3) != nil {
		t.Fatal("MRTPair must not bind slots 2 and 3")
	}
	if s.BoundDepth() != nil {
		t.Fatal("no depth address was requested: BoundDepth should be nil")
	}
}

func TestPrepareRenderTargetBindsColorAndDepth(t *testing.T) {
	s := newTestStore()
	err := s.PrepareRenderTarget(nil, RenderTargetParams{
		ColorFormat:    pixfmt.A8R8G8B8,
		DepthFormat:    pixfmt.Z16,
		ClipWidth:      64,
		ClipHeight:     64,
		MRTLayout:      pixfmt.MRTSingle,
		ColorAddresses: [4]memwin.Address{0x1000},
		ColorPitches:   [4]int{256},
		DepthAddress:   0x9000,
		DepthPitch:     128,
	})
	if err != nil {
		t.Fatalf("PrepareRenderTarget: %v", err)
	}
	if s.BoundColor(0) == nil {
		t.Fatal("MRTSingle should bind slot 0")
	}
	if s.BoundDepth() == nil {
		t.Fatal("a nonzero depth address should bind the depth slot")
	}
}

func TestPrepareRenderTargetRetiresPreviousBindSet(t *testing.T) {
	s := newTestStore()
	params := RenderTargetParams{
		ColorFormat:    pixfmt.A8R8G8B8,
		ClipWidth:      64,
		ClipHeight:     64,
		MRTLayout:      pixfmt.MRTSingle,
		ColorAddresses: [4]memwin.Address{0x1000},
		ColorPitches:   [4]int{256},
	}
	if err := s.PrepareRenderTarget(nil, params); err != nil {
		t.Fatalf("first PrepareRenderTarget: %v", err)
	}
	first := s.BoundColor(0)

	params.ColorAddresses[0] = 0x2000
	if err := s.PrepareRenderTarget(nil, params); err != nil {
		t.Fatalf("second PrepareRenderTarget: %v", err)
	}
	if s.BoundColor(0) == first {
		t.Fatal("a fresh PrepareRenderTarget must retire the previously bound descriptor")
	}
}
