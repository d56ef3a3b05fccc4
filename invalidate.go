// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
)

// evict removes the entry at addr/isDepth from its map, notifies the
// backend, nulls any bound slot that referenced it, and pushes it onto
// the invalidated pool. If force is false and addr is currently bound,
// evict refuses and returns false — the bound-address refusal
// InvalidateSurfaceAddress applies. GetMergedTextureMemoryRegion's
// stale-surface pruning calls with force true, since a surface that has
// become stale still must leave its bound slot.
func (s *Store) evict(ctx backend.CommandContext, addr memwin.Address, isDepth bool, force bool) bool {
	own, _ := s.reg.maps(isDepth)
	d, ok := own[addr]
	if !ok {
		return false
	}
	if !force && s.reg.isBound(addr, isDepth) {
		logger().Warn("invalidate refused: address is bound", "address", addr, "depth", isDepth)
		return false
	}
	s.traits.NotifySurfaceInvalidated(d.storage)
	delete(own, addr)
	s.reg.clearBoundReferencesTo(addr, isDepth)
	s.reg.invalidated.push(d)
	s.reg.cacheTag = s.nextSharedTag()
	return true
}

// invalidateSingleSurface is the unconditional internal eviction
// primitive a stale-surface scan uses to prune every address on its
// dirty list, bypassing the bound-address refusal that the public
// InvalidateSurfaceAddress applies.
func (s *Store) invalidateSingleSurface(ctx backend.CommandContext, addr memwin.Address, isDepth bool) {
	s.evict(ctx, addr, isDepth, true)
}

// InvalidateSurfaceAddress is the caller-facing eviction operation: it
// drops the registered surface at addr (of the given type) into the
// invalidated pool, unless addr is currently bound, in which case it
// logs a warning and returns ErrBoundAddress without touching anything.
func (s *Store) InvalidateSurfaceAddress(ctx backend.CommandContext, addr memwin.Address, isDepth bool) error {
	if s.reg.isBound(addr, isDepth) {
		logger().Warn("invalidate refused: address is bound", "address", addr, "depth", isDepth)
		return ErrBoundAddress
	}
	s.evict(ctx, addr, isDepth, false)
	return nil
}

// NotifyMemoryStructureChanged bumps cache_tag, forcing the next
// MemoryTree call to rebuild lazily rather than reuse a cached tree. Call
// it whenever a map is mutated outside the normal bind/prepare flow, e.g.
// after a bulk InvalidateSurfaceAddress sweep.
func (s *Store) NotifyMemoryStructureChanged() {
	s.reg.cacheTag = s.nextSharedTag()
}
