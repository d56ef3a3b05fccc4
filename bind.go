// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// ColorBindParams are the per-call arguments to BindAddressAsColor.
type ColorBindParams struct {
	Address memwin.Address
	Format  pixfmt.ColorFormat
	AAMode  pixfmt.AAMode
	Width   int
	Height  int
	Pitch   int
}

// DepthBindParams are the per-call arguments to BindAddressAsDepth.
type DepthBindParams struct {
	Address memwin.Address
	Format  pixfmt.DepthFormat
	AAMode  pixfmt.AAMode
	Width   int
	Height  int
	Pitch   int
}

// BindAddressAsColor implements the Bind Engine's bind_address_as_color
// protocol.
func (s *Store) BindAddressAsColor(ctx backend.CommandContext, p ColorBindParams) (*Descriptor, error) {
	return s.bindAddress(ctx, bindArgs{
		isDepth: false,
		address: p.Address,
		color:   p.Format,
		aaMode:  p.AAMode,
		width:   p.Width,
		height:  p.Height,
		pitch:   p.Pitch,
	})
}

// BindAddressAsDepth implements bind_address_as_depth, the depth
// analogue of BindAddressAsColor.
func (s *Store) BindAddressAsDepth(ctx backend.CommandContext, p DepthBindParams) (*Descriptor, error) {
	return s.bindAddress(ctx, bindArgs{
		isDepth: true,
		address: p.Address,
		depth:   p.Format,
		aaMode:  p.AAMode,
		width:   p.Width,
		height:  p.Height,
		pitch:   p.Pitch,
	})
}

// bindArgs collects the shape of a bind call so the color and depth
// entry points can share one implementation of the symmetric protocol.
type bindArgs struct {
	isDepth bool
	address memwin.Address
	color   pixfmt.ColorFormat
	depth   pixfmt.DepthFormat
	aaMode  pixfmt.AAMode
	width   int
	height  int
	pitch   int
}

func (a bindArgs) formatMatches(ctx backend.Traits, stg backend.Storage, lenient bool) bool {
	if a.isDepth {
		return ctx.DSHasFormatWidthHeight(stg, a.depth, a.width, a.height, lenient)
	}
	return ctx.RTTHasFormatWidthHeight(stg, a.color, a.width, a.height, lenient)
}

func (a bindArgs) createParams(prior backend.Surface) backend.CreateParams {
	return backend.CreateParams{
		Address:       a.address,
		ColorFormat:   a.color,
		DepthFormat:   a.depth,
		IsDepth:       a.isDepth,
		Width:         a.width,
		Height:        a.height,
		Pitch:         a.pitch,
		PriorContents: prior,
	}
}

func (s *Store) prepareForDrawing(ctx backend.CommandContext, isDepth bool, h backend.Surface) {
	if isDepth {
		s.traits.PrepareDSForDrawing(ctx, h)
	} else {
		s.traits.PrepareRTTForDrawing(ctx, h)
	}
}

// bindAddress is the shared implementation of bind_address_as_color /
// bind_address_as_depth.
func (s *Store) bindAddress(ctx backend.CommandContext, a bindArgs) (*Descriptor, error) {
	ownMap, alienMap := s.reg.maps(a.isDepth)
	ownRange := s.reg.ownRange(a.isDepth)

	// 1. Alien eviction.
	var convertSurface backend.Surface
	if alien, ok := alienMap[a.address]; ok {
		s.traits.NotifySurfaceInvalidated(alien.storage)
		convertSurface = alien.Handle()
		s.reg.invalidated.push(alien)
		delete(alienMap, a.address)
		s.reg.clearBoundReferencesTo(a.address, !a.isDepth)
	}

	// 2. Own-type match at A.
	var oldSurface *Descriptor
	if own, ok := ownMap[a.address]; ok {
		if a.formatMatches(s.traits, own.storage, false) {
			s.prepareForDrawing(ctx, a.isDepth, own.Handle())
			if s.traits.SurfaceIsPitchCompatible(own.storage, a.pitch) {
				s.traits.NotifySurfacePersist(own.storage)
			} else {
				s.traits.InvalidateSurfaceContents(ctx, own.Handle(), nil, a.address, a.pitch)
				own.queueTag(a.address)
			}
			return own, nil
		}
		oldSurface = own
		delete(ownMap, a.address)
	}

	// 3. Extend the own-type range.
	aaFactor := a.aaMode.BindFactor()
	ownRange.extend(a.address, a.address+memwin.Address(a.pitch*a.height*aaFactor))

	// 4. Pick bit-source.
	contentsToCopy := convertSurface
	if oldSurface != nil {
		contentsToCopy = oldSurface.Handle()
	}

	// 5. Invalidated-pool scan.
	match := func(d *Descriptor) bool {
		return d.isDepth == a.isDepth && a.formatMatches(s.traits, d.storage, true)
	}
	var installed *Descriptor
	if elem := s.reg.invalidated.find(match); elem != nil {
		reused := elem.Value.(*Descriptor)
		if oldSurface != nil {
			s.reg.invalidated.replace(elem, oldSurface)
		} else {
			s.reg.invalidated.remove(elem)
		}

		// Ordering caveat: color prepares before
		// invalidating; depth invalidates before preparing.
		if a.isDepth {
			s.traits.InvalidateSurfaceContents(ctx, reused.Handle(), contentsToCopy, a.address, a.pitch)
			s.traits.PrepareDSForDrawing(ctx, reused.Handle())
		} else {
			s.traits.PrepareRTTForDrawing(ctx, reused.Handle())
			s.traits.InvalidateSurfaceContents(ctx, reused.Handle(), contentsToCopy, a.address, a.pitch)
		}
		reused.queueTag(a.address)
		installed = reused
	} else {
		// 6. No pool hit and old_surface exists: push it.
		if oldSurface != nil {
			s.reg.invalidated.push(oldSurface)
		}
		// 7. Create a fresh surface.
		storage, err := s.traits.CreateNewSurface(ctx, a.createParams(contentsToCopy))
		if err != nil {
			return nil, err
		}
		installed = newDescriptor(storage, a.address, a.isDepth)
	}

	// 8. Install.
	ownMap[a.address] = installed
	return installed, nil
}
