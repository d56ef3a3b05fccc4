// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// RenderTargetParams are the arguments to PrepareRenderTarget.
type RenderTargetParams struct {
	ColorFormat pixfmt.ColorFormat
	DepthFormat pixfmt.DepthFormat
	ClipWidth   int
	ClipHeight  int
	MRTLayout   pixfmt.MRTLayout
	AAMode      pixfmt.AAMode

	ColorAddresses [4]memwin.Address
	ColorPitches   [4]int
	DepthAddress   memwin.Address
	DepthPitch     int
}

// PrepareRenderTarget updates the bind set: it retires the
// previously bound surfaces to sampleable state, binds the color
// surfaces named by the requested MRT layout, and — if a nonzero depth
// address is given — binds the depth surface too. Depth is always bound
// last, after every color slot.
func (s *Store) PrepareRenderTarget(ctx backend.CommandContext, p RenderTargetParams) error {
	// 1. Advance cache_tag, lazily invalidating the cached memory tree.
	s.reg.cacheTag = s.nextSharedTag()

	// 2. Retire previously bound color slots to sampleable.
	for i := range s.reg.boundColor {
		slot := &s.reg.boundColor[i]
		if slot.live() {
			slot.desc.saveAAMode()
			s.traits.PrepareRTTForSampling(ctx, slot.desc.Handle())
			slot.clear()
		}
	}

	// 3. Bind color surfaces named by the MRT layout, in order.
	for _, i := range pixfmt.GetRTTIndexes(p.MRTLayout) {
		addr := p.ColorAddresses[i]
		if addr == 0 {
			continue
		}
		d, err := s.BindAddressAsColor(ctx, ColorBindParams{
			Address: addr,
			Format:  p.ColorFormat,
			AAMode:  p.AAMode,
			Width:   p.ClipWidth,
			Height:  p.ClipHeight,
			Pitch:   p.ColorPitches[i],
		})
		if err != nil {
			return err
		}
		s.reg.boundColor[i] = boundSlot{address: addr, desc: d}
	}

	// 4. Retire the previously bound depth slot to sampleable.
	if s.reg.boundDepth.live() {
		s.reg.boundDepth.desc.saveAAMode()
		s.traits.PrepareDSForSampling(ctx, s.reg.boundDepth.desc.Handle())
		s.reg.boundDepth.clear()
	}

	// 5. No depth requested: stop here.
	if p.DepthAddress == 0 {
		return nil
	}

	// 6. Bind the depth surface.
	d, err := s.BindAddressAsDepth(ctx, DepthBindParams{
		Address: p.DepthAddress,
		Format:  p.DepthFormat,
		AAMode:  p.AAMode,
		Width:   p.ClipWidth,
		Height:  p.ClipHeight,
		Pitch:   p.DepthPitch,
	})
	if err != nil {
		return err
	}
	s.reg.boundDepth = boundSlot{address: p.DepthAddress, desc: d}
	return nil
}
