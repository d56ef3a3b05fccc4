// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
)

// OnWrite applies the effects of a draw call that just wrote to bound
// surfaces: addr names a single bound surface to refresh, or is 0 to mean
// every bound surface ("all bound surfaces" — a broadcast write such as a
// clear touching the whole bind set).
//
// A broadcast call first checks write_tag against cache_tag: back-to-back
// broadcasts with no intervening bind-set change are a no-op, since the
// second one would only restamp surfaces with the tag they already
// carry. Addressed calls always proceed and reuse whatever write_tag the
// last broadcast left behind.
func (s *Store) OnWrite(ctx backend.CommandContext, addr memwin.Address) {
	if addr == 0 {
		if s.reg.writeTag == s.reg.cacheTag {
			return
		}
		s.reg.writeTag = s.reg.cacheTag
	}

	for _, block := range s.MemoryTree() {
		if addr != 0 && block.boundAddress != addr {
			continue
		}
		for _, ov := range block.overlaps {
			ov.Surface.dirty = true
		}
	}

	for i := range s.reg.boundColor {
		slot := &s.reg.boundColor[i]
		if slot.live() && (addr == 0 || slot.address == addr) {
			slot.desc.onWrite(s.reg.writeTag, s.mem)
		}
	}
	if s.reg.boundDepth.live() && (addr == 0 || s.reg.boundDepth.address == addr) {
		s.reg.boundDepth.desc.onWrite(s.reg.writeTag, s.mem)
	}
}
