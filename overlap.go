// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"sort"

	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
)

// SurfaceOverlap is one entry of a GetMergedTextureMemoryRegion result: a
// stored surface whose guest footprint intersects the query region.
//
// At most one of (SrcX, SrcY) or (DstX, DstY) is nonzero, depending on
// which of the query rectangle and the candidate starts first in guest
// memory: SrcX/SrcY locate the sampled sub-rect inside the candidate
// when the query's top-left lies inside it; DstX/DstY locate the
// candidate's contribution inside the query rectangle when the
// candidate starts at or after the query's base address.
type SurfaceOverlap struct {
	Surface *Descriptor
	Address memwin.Address
	IsDepth bool

	SrcX, SrcY int
	DstX, DstY int
	Width      int
	Height     int

	// IsClipped reports whether the candidate's contribution was cut
	// short by the query rectangle's bounds (or vice versa).
	IsClipped bool
}

// MergedTextureMemoryRegionParams are the arguments to
// GetMergedTextureMemoryRegion.
type MergedTextureMemoryRegionParams struct {
	Address memwin.Address
	Width   int
	Height  int
	Pitch   int
}

// GetMergedTextureMemoryRegion answers a texture-sample lookup query: it
// scans the color and depth maps (each short-circuited by its range
// tracker) for stored surfaces whose guest footprint intersects
// [address, address+pitch*height), splitting hits into fresh overlaps
// (still matching their memory fingerprint) and a dirty list of surfaces
// whose fingerprint no longer matches current guest memory. Each
// candidate's own read AA mode, not a query-wide setting, drives its
// projection math — different stored surfaces can carry different AA
// modes at the moment they're sampled. The dirty list is then evicted
// unconditionally — even if one of those addresses happens to be bound
// — since a stale bound surface cannot go on masquerading as live
// contents.
//
// It returns the query range [lo, hi), widened to cover the footprint of
// every fresh overlap found, along with those overlaps, sorted by
// ascending LastUseTag with ties broken by ascending Width*Height.
func (s *Store) GetMergedTextureMemoryRegion(ctx backend.CommandContext, p MergedTextureMemoryRegionParams) (lo, hi memwin.Address, overlaps []SurfaceOverlap) {
	qlo := p.Address
	qhi := p.Address + memwin.Address(p.Pitch*p.Height)

	var dirty []struct {
		addr    memwin.Address
		isDepth bool
	}
	lo, hi = qlo, qhi

	for _, m := range [2]struct {
		own     map[memwin.Address]*Descriptor
		rng     *rangeTracker
		isDepth bool
	}{
		{s.reg.colorMap, &s.reg.colorRange, false},
		{s.reg.depthMap, &s.reg.depthRange, true},
	} {
		if !m.rng.overlaps(qlo, qhi) {
			continue
		}
		for addr, d := range m.own {
			olo, ohi := footprint(addr, d)
			if addr >= qhi || ohi <= qlo {
				continue
			}
			h := d.Handle()
			h.ReadBarrier(ctx)
			if !d.test(s.mem) {
				dirty = append(dirty, struct {
					addr    memwin.Address
					isDepth bool
				}{addr, m.isDepth})
				continue
			}

			scaleX, scaleY := d.ReadAAMode().ScaleX(), d.ReadAAMode().ScaleY()
			var ov SurfaceOverlap
			if addr < p.Address {
				// The texture's top-left lies inside the candidate.
				intRW, intRH := p.Width/scaleX, p.Height/scaleY
				offset := int(p.Address - addr)
				srcY := (offset / p.Pitch) / scaleY
				srcX := ((offset % p.Pitch) / h.BytesPerPixel()) / scaleX
				width := min(intRW, h.SurfaceWidth()-srcX)
				height := min(intRH, h.SurfaceHeight()-srcY)
				if width <= 0 || height <= 0 {
					continue
				}
				ov = SurfaceOverlap{
					SrcX: srcX, SrcY: srcY,
					Width: width, Height: height,
					IsClipped: width < intRW || height < intRH,
				}
			} else {
				// The candidate starts at or after the texture's base.
				intSW, intSH := h.SurfaceWidth()*scaleX, h.SurfaceHeight()*scaleY
				offset := int(addr - p.Address)
				dstY := offset / p.Pitch
				dstX := (offset % p.Pitch) / h.BytesPerPixel()
				width := min(intSW, p.Width-dstX)
				height := min(intSH, p.Height-dstY)
				if width <= 0 || height <= 0 {
					continue
				}
				isClipped := width < p.Width || height < p.Height
				ov = SurfaceOverlap{
					DstX: dstX, DstY: dstY,
					Width: width / scaleX, Height: height / scaleY,
					IsClipped: isClipped,
				}
			}

			ov.Surface = d
			ov.Address = addr
			ov.IsDepth = m.isDepth
			overlaps = append(overlaps, ov)

			if olo < lo {
				lo = olo
			}
			if ohi > hi {
				hi = ohi
			}
		}
	}

	for _, stale := range dirty {
		s.invalidateSingleSurface(ctx, stale.addr, stale.isDepth)
	}
	if len(dirty) > 0 {
		s.NotifyMemoryStructureChanged()
	}

	if len(overlaps) >= 2 {
		sort.SliceStable(overlaps, func(i, j int) bool {
			ti, tj := overlaps[i].Surface.LastUseTag(), overlaps[j].Surface.LastUseTag()
			if ti != tj {
				return ti < tj
			}
			return overlaps[i].Width*overlaps[i].Height < overlaps[j].Width*overlaps[j].Height
		})
	}

	return lo, hi, overlaps
}
