// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import "github.com/SonmezYigithan/rpcs3/memwin"

// boundSlot is a non-owning (address, descriptor) reference into one of
// the registry's maps, valid only until the next PrepareRenderTarget call.
type boundSlot struct {
	address memwin.Address
	desc    *Descriptor
}

// live reports whether the slot currently references a surface.
func (b *boundSlot) live() bool { return b.address != 0 }

// clear nulls the slot.
func (b *boundSlot) clear() { *b = boundSlot{} }

// registry is the Surface Registry: two
// address-indexed maps, the bound-slot vectors, the invalidated pool,
// range trackers, and the tag machinery driving lazy memory-tree
// recomputation.
type registry struct {
	colorMap map[memwin.Address]*Descriptor
	depthMap map[memwin.Address]*Descriptor

	invalidated *invalidatedPool

	boundColor [4]boundSlot
	boundDepth boundSlot

	colorRange rangeTracker
	depthRange rangeTracker

	cacheTag  uint64
	writeTag  uint64
	memoryTag uint64

	memoryTree []memTreeBlock
}

func newRegistry() registry {
	return registry{
		colorMap:    make(map[memwin.Address]*Descriptor),
		depthMap:    make(map[memwin.Address]*Descriptor),
		invalidated: newInvalidatedPool(),
	}
}

// maps returns the map for the given type ("own") along with the
// opposite ("alien") map.
func (r *registry) maps(isDepth bool) (own, alien map[memwin.Address]*Descriptor) {
	if isDepth {
		return r.depthMap, r.colorMap
	}
	return r.colorMap, r.depthMap
}

func (r *registry) ownRange(isDepth bool) *rangeTracker {
	if isDepth {
		return &r.depthRange
	}
	return &r.colorRange
}

// isBound reports whether addr is currently referenced by any bound
// slot of the given type.
func (r *registry) isBound(addr memwin.Address, isDepth bool) bool {
	if isDepth {
		return r.boundDepth.address == addr
	}
	for i := range r.boundColor {
		if r.boundColor[i].address == addr {
			return true
		}
	}
	return false
}

// clearBoundReferencesTo nulls any bound slot currently pointing at
// addr, keeping a bound slot from outliving the map entry it points to
// when addr's map entry is evicted out from under a bind.
func (r *registry) clearBoundReferencesTo(addr memwin.Address, isDepth bool) {
	if isDepth {
		if r.boundDepth.address == addr {
			r.boundDepth.clear()
		}
		return
	}
	for i := range r.boundColor {
		if r.boundColor[i].address == addr {
			r.boundColor[i].clear()
		}
	}
}

// boundSlots returns every currently bound slot (4 color + 1 depth), in
// the order the memory-tree builder and OnWrite propagation walk them.
func (r *registry) boundSlots() []*boundSlot {
	slots := make([]*boundSlot, 0, 5)
	for i := range r.boundColor {
		if r.boundColor[i].live() {
			slots = append(slots, &r.boundColor[i])
		}
	}
	if r.boundDepth.live() {
		slots = append(slots, &r.boundDepth)
	}
	return slots
}

// memTreeBlock is the per-bound-surface block the Memory-Tree Builder
// produces: the set of other stored surfaces contained
// within one bound surface's guest memory range.
type memTreeBlock struct {
	boundAddress memwin.Address
	overlaps     []OverlapRecord
}

// OverlapRecord is one entry of a memTreeBlock: a stored surface found
// to lie within a bound surface's memory footprint.
type OverlapRecord struct {
	Surface *Descriptor
	Address memwin.Address
	// IsDepth records whether Surface is a depth surface, so that a
	// color-bound target's memory tree can dirty an aliased depth
	// surface and vice versa.
	IsDepth       bool
	OffsetX       int
	OffsetY       int
	Width, Height int
}
