// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import "github.com/SonmezYigithan/rpcs3/memwin"

// footprint returns the guest byte range [lo, hi) a stored surface
// occupies, scaled by its read AA mode the same way the Overlap Engine's
// range filter extends a candidate's footprint before testing it against
// a query.
func footprint(addr memwin.Address, d *Descriptor) (lo, hi memwin.Address) {
	h := d.Handle()
	bytes := h.RsxPitch() * h.SurfaceHeight() * d.ReadAAMode().BindFactor()
	return addr, addr + memwin.Address(bytes)
}

// generateRenderTargetMemoryTree rebuilds the registry's memory tree: for
// every currently bound surface, it finds every other stored surface
// (color or depth — aliasing crosses that type boundary) whose base
// address falls inside the bound surface's guest memory range, and
// — measuring entirely in the bound surface's own pitch/bpp space —
// checks that the candidate's full row width and full height both fit
// starting from that offset. A candidate that fits is recorded at its
// full, unclipped width and height: the memory tree names what
// potentially aliases, not how much of it is currently visible.
func (s *Store) generateRenderTargetMemoryTree() []memTreeBlock {
	slots := s.reg.boundSlots()
	tree := make([]memTreeBlock, 0, len(slots))

	for _, slot := range slots {
		boundAddr, bound := slot.address, slot.desc
		boundHandle := bound.Handle()
		rsxPitch := boundHandle.RsxPitch()
		memoryEnd := boundAddr + memwin.Address(rsxPitch*boundHandle.SurfaceHeight())

		var overlaps []OverlapRecord
		for _, m := range [2]struct {
			own     map[memwin.Address]*Descriptor
			isDepth bool
		}{
			{s.reg.colorMap, false},
			{s.reg.depthMap, true},
		} {
			for addr, other := range m.own {
				if other == bound {
					continue
				}
				if addr <= boundAddr || addr >= memoryEnd {
					continue
				}
				oh := other.Handle()
				offset := int(addr - boundAddr)
				offsetY := offset / rsxPitch
				offsetX := offset % rsxPitch

				fitsW := offsetX+oh.BytesPerPixel()*oh.SurfaceWidth() <= rsxPitch
				fitsH := (offsetY+oh.SurfaceHeight())*rsxPitch <= rsxPitch*boundHandle.SurfaceHeight()
				if !fitsW || !fitsH {
					continue
				}

				overlaps = append(overlaps, OverlapRecord{
					Surface: other,
					Address: addr,
					IsDepth: m.isDepth,
					OffsetX: offsetX / boundHandle.BytesPerPixel(),
					OffsetY: offsetY,
					Width:   oh.SurfaceWidth(),
					Height:  oh.SurfaceHeight(),
				})
			}
		}
		tree = append(tree, memTreeBlock{boundAddress: boundAddr, overlaps: overlaps})
	}
	return tree
}

// MemoryTree returns the registry's cached memory tree, rebuilding it
// lazily — only when it has never been built, or the cache_tag has
// advanced past the tag stamped on the cached tree (a prior bind or
// eviction changed the bind set or map contents since).
func (s *Store) MemoryTree() []memTreeBlock {
	if s.reg.memoryTree == nil || s.reg.memoryTag != s.reg.cacheTag {
		s.reg.memoryTree = s.generateRenderTargetMemoryTree()
		s.reg.memoryTag = s.reg.cacheTag
	}
	return s.reg.memoryTree
}
