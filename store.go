// Copyright 2026 Yigithan Sonmez. All rights reserved.

// Package rsx implements the render-surface store: an in-memory cache
// mediating between a guest GPU's memory-addressed color/depth render
// targets and a host graphics backend's concrete surface resources.
//
// A Store is constructed with its two external collaborators — a
// backend.Traits capability and a memwin.Window over guest memory — and
// thereafter exposes the bind/rebind protocol, the invalidation list,
// the overlap-query oracle, and the readback pack. It is single-threaded
// cooperative: callers must serialize all calls.
package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
)

// Store is the render-surface store.
type Store struct {
	traits backend.Traits
	mem    memwin.Window
	reg    registry

	// tagCounter backs nextSharedTag; every PrepareRenderTarget call, every
	// eviction, and every NotifyMemoryStructureChanged call draws a fresh
	// value from it. OnWrite never draws one: a broadcast copies cache_tag
	// into write_tag, and an addressed OnWrite reuses whatever write_tag
	// the last broadcast left behind.
	tagCounter uint64
}

// New creates a Store over the given Backend Traits implementation and
// Guest Memory Window.
func New(traits backend.Traits, mem memwin.Window) *Store {
	return &Store{traits: traits, mem: mem, reg: newRegistry()}
}

// nextSharedTag returns a fresh monotonically-increasing stamp.
func (s *Store) nextSharedTag() uint64 {
	s.tagCounter++
	return s.tagCounter
}

// ColorSurfaceCount and DepthSurfaceCount report the number of entries
// currently registered under each map.
func (s *Store) ColorSurfaceCount() int { return len(s.reg.colorMap) }
func (s *Store) DepthSurfaceCount() int { return len(s.reg.depthMap) }

// InvalidatedCount reports the number of entries in the invalidated
// pool.
func (s *Store) InvalidatedCount() int { return s.reg.invalidated.len() }

// ColorSurfaceAt and DepthSurfaceAt look up a registered descriptor by
// address. A miss panics: callers are expected to already know the
// address is registered before asking for it.
func (s *Store) ColorSurfaceAt(addr memwin.Address) *Descriptor {
	d, ok := s.reg.colorMap[addr]
	if !ok {
		fatalf("get_surface_at: no color surface at %#x", addr)
	}
	return d
}

func (s *Store) DepthSurfaceAt(addr memwin.Address) *Descriptor {
	d, ok := s.reg.depthMap[addr]
	if !ok {
		fatalf("get_surface_at: no depth surface at %#x", addr)
	}
	return d
}

// BoundColor returns the descriptor bound at color slot i (0-3), or nil
// if the slot is unbound.
func (s *Store) BoundColor(i int) *Descriptor {
	if !s.reg.boundColor[i].live() {
		return nil
	}
	return s.reg.boundColor[i].desc
}

// BoundDepth returns the currently bound depth descriptor, or nil.
func (s *Store) BoundDepth() *Descriptor {
	if !s.reg.boundDepth.live() {
		return nil
	}
	return s.reg.boundDepth.desc
}

// TrimInvalidated evicts the oldest entries of the invalidated pool past
// max, returning what was evicted so the caller can release any
// backend-side resources at its own discretion. Final destruction of a
// pooled surface is left entirely to the caller; this just bounds how
// long the pool is allowed to grow before that happens.
func (s *Store) TrimInvalidated(max int) []*Descriptor {
	return s.reg.invalidated.trim(max)
}
