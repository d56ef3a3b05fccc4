// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// nsamples is the X-pattern sample count.
const nsamples = 5

// fingerprintSample is one (guest_address, u64_value) pair from a
// Descriptor's memory fingerprint. A zero Address terminates the array.
type fingerprintSample struct {
	addr  memwin.Address
	value uint64
}

// Descriptor is the Surface Descriptor: per-surface metadata
// layered over a backend-owned host surface.
type Descriptor struct {
	storage backend.Storage
	isDepth bool

	// address is the guest base address this descriptor's fingerprint
	// is currently armed against. It tracks whichever address the
	// surface is installed at, which can change across a reuse from
	// the invalidated pool.
	address memwin.Address

	lastUseTag uint64
	samples    [nsamples]fingerprintSample
	dirty      bool

	// oldContents is a predecessor surface whose bits should be
	// copy-blitted in before first use; always a forward pointer, never
	// a cycle.
	oldContents *Descriptor

	readAAMode  pixfmt.AAMode
	writeAAMode pixfmt.AAMode

	// tile is passthrough-only guest tile metadata; the store never
	// interprets it.
	tile any
}

// newDescriptor wraps a freshly created or freshly reused host surface.
func newDescriptor(storage backend.Storage, addr memwin.Address, isDepth bool) *Descriptor {
	d := &Descriptor{storage: storage, isDepth: isDepth}
	d.queueTag(addr)
	return d
}

// Handle borrows the host surface out of the owning storage.
func (d *Descriptor) Handle() backend.Surface { return d.storage.Get() }

// Address returns the guest base address the descriptor's fingerprint is
// currently armed against.
func (d *Descriptor) Address() memwin.Address { return d.address }

// IsDepthSurface reports whether this descriptor names a depth surface.
func (d *Descriptor) IsDepthSurface() bool { return d.isDepth }

// LastUseTag returns the recency stamp GetMergedTextureMemoryRegion
// orders its overlap results by.
func (d *Descriptor) LastUseTag() uint64 { return d.lastUseTag }

// Dirty reports whether a dependent memory region may have been
// externally modified since the last on_write.
func (d *Descriptor) Dirty() bool { return d.dirty }

// OldContents returns the predecessor surface set by SetOldContents, if
// any.
func (d *Descriptor) OldContents() *Descriptor { return d.oldContents }

// ReadAAMode and WriteAAMode return the antialiasing mode in effect for
// the descriptor's most recent sampling/drawing operation.
func (d *Descriptor) ReadAAMode() pixfmt.AAMode  { return d.readAAMode }
func (d *Descriptor) WriteAAMode() pixfmt.AAMode { return d.writeAAMode }

// SetWriteAAMode records the AA mode a caller is about to draw with.
func (d *Descriptor) SetWriteAAMode(m pixfmt.AAMode) { d.writeAAMode = m }

// Tile returns the opaque guest tile metadata pointer.
func (d *Descriptor) Tile() any { return d.tile }

// SetTile sets the opaque guest tile metadata pointer.
func (d *Descriptor) SetTile(t any) { d.tile = t }

// sampleOffsets computes the X-pattern byte offsets from base: index 0
// is always armed; index 1 only if native pitch >= 16; indices 2-4 only
// if the surface is taller than one
// row (and native pitch >= 16, since sampleOffsets returns after arming
// index 0 alone when native pitch is too small to need the rest).
func sampleOffsets(nativePitch, rsxPitch, height int) (offsets [nsamples]int, armed int) {
	offsets[0] = 0
	if nativePitch < 16 {
		return offsets, 1
	}
	offsets[1] = nativePitch - 8
	if height <= 1 {
		return offsets, 2
	}
	offsets[2] = (height - 1) * rsxPitch
	offsets[3] = (height-1)*rsxPitch + nativePitch - 8
	offsets[4] = (height/2)*rsxPitch + nativePitch/2
	return offsets, nsamples
}

// queueTag arms the X-pattern sample addresses against base. It does not
// read guest memory; it only fills in the .addr fields, clearing .value.
func (d *Descriptor) queueTag(base memwin.Address) {
	d.address = base
	for i := range d.samples {
		d.samples[i] = fingerprintSample{}
	}
	h := d.Handle()
	offsets, armed := sampleOffsets(h.NativePitch(), h.RsxPitch(), h.SurfaceHeight())
	for i := 0; i < armed; i++ {
		d.samples[i].addr = base + memwin.Address(offsets[i])
	}
}

// syncTag snapshots the current guest memory word into .value for each
// armed sample, stopping at the first terminator.
func (d *Descriptor) syncTag(mem memwin.Window) {
	for i := range d.samples {
		if d.samples[i].addr == 0 {
			return
		}
		d.samples[i].value = mem.Word(d.samples[i].addr)
	}
}

// test reports whether every armed fingerprint sample still matches
// guest memory. A dirty surface still participates —
// the caller is expected to have already acted on Dirty(), and this logs
// a Debug notice rather than withholding the read.
func (d *Descriptor) test(mem memwin.Window) bool {
	if d.dirty {
		logger().Debug("test called on a dirty surface", "address", d.address)
	}
	for i := range d.samples {
		s := d.samples[i]
		if s.addr == 0 {
			break
		}
		if mem.Word(s.addr) != s.value {
			return false
		}
	}
	return true
}

// onWrite applies the effects of a draw targeting this surface: if tag
// is nonzero, it becomes the new LastUseTag; the
// fingerprint values are refreshed; read_aa_mode takes over from
// write_aa_mode; dirty and old_contents are cleared together.
func (d *Descriptor) onWrite(tag uint64, mem memwin.Window) {
	if tag != 0 {
		d.lastUseTag = tag
	}
	d.syncTag(mem)
	d.readAAMode = d.writeAAMode
	d.dirty = false
	d.oldContents = nil
}

// saveAAMode transitions the descriptor from draw target to sampleable:
// the mode it was just drawn with becomes the mode it will be sampled
// with, and the write mode resets to unscaled.
func (d *Descriptor) saveAAMode() {
	d.readAAMode = d.writeAAMode
	d.writeAAMode = pixfmt.AA1x
}

// setOldContents records other as a bit-source to blit in before this
// surface's first use, unless the two surfaces disagree on rsx pitch:
// a pitch mismatch is treated as incompatible content, clearing
// the pointer instead of carrying it forward.
func (d *Descriptor) setOldContents(other *Descriptor) {
	if other != nil && other.Handle().RsxPitch() == d.Handle().RsxPitch() {
		d.oldContents = other
		return
	}
	d.oldContents = nil
}
