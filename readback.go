// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// ReadbackColor implements the color path of the readback operation:
// it issues a download, repacks the result from the backend's
// native download stride down to a tightly packed guest-visible stride,
// and — for formats the table marks as needing it — byte-swaps each
// element to big-endian order. It returns the packed bytes and the
// stride they are packed at.
func (s *Store) ReadbackColor(ctx backend.CommandContext, d *Descriptor) ([]byte, int, error) {
	h := d.Handle()
	h.ReadBarrier(ctx)

	obj, err := s.traits.IssueDownloadCommand(ctx, h)
	if err != nil {
		return nil, 0, err
	}
	defer s.traits.UnmapDownloadedBuffer(obj)
	raw, err := s.traits.MapDownloadedBuffer(obj)
	if err != nil {
		return nil, 0, err
	}

	f := h.ColorFormat()
	packedPitch := pixfmt.GetPackedPitch(f, h.SurfaceWidth())
	packed := repack(raw, h.NativePitch(), packedPitch, h.SurfaceHeight())
	if f.ByteSwap() {
		byteSwapRows(packed, packedPitch, h.SurfaceHeight(), f.BytesPerPixel())
	}
	return packed, packedPitch, nil
}

// ReadbackDepth implements the depth/stencil path of the readback
// operation: depth is always downloaded and repacked; the stencil
// byte, when the format carries one, is downloaded and repacked
// separately from its own row stride of max(width, StencilRowAlign)
// bytes; that stride is not rounded up to a multiple of StencilRowAlign
// (stencilBytes is nil when the format has no stencil plane).
func (s *Store) ReadbackDepth(ctx backend.CommandContext, d *Descriptor) (depthBytes []byte, depthPitch int, stencilBytes []byte, stencilPitch int, err error) {
	h := d.Handle()
	h.ReadBarrier(ctx)

	obj, err := s.traits.IssueDepthDownloadCommand(ctx, h)
	if err != nil {
		return nil, 0, nil, 0, err
	}
	raw, err := s.traits.MapDownloadedBuffer(obj)
	if err != nil {
		s.traits.UnmapDownloadedBuffer(obj)
		return nil, 0, nil, 0, err
	}
	f := h.DepthFormat()
	depthPitch = f.BytesPerPixel() * h.SurfaceWidth()
	depthBytes = repack(raw, h.NativePitch(), depthPitch, h.SurfaceHeight())
	s.traits.UnmapDownloadedBuffer(obj)

	if !f.HasStencil() {
		return depthBytes, depthPitch, nil, 0, nil
	}

	sobj, err := s.traits.IssueStencilDownloadCommand(ctx, h)
	if err != nil {
		return depthBytes, depthPitch, nil, 0, err
	}
	sraw, err := s.traits.MapDownloadedBuffer(sobj)
	if err != nil {
		s.traits.UnmapDownloadedBuffer(sobj)
		return depthBytes, depthPitch, nil, 0, err
	}
	stencilPitch = h.SurfaceWidth()
	if stencilPitch < pixfmt.StencilRowAlign {
		stencilPitch = pixfmt.StencilRowAlign
	}
	stencilBytes = repack(sraw, stencilPitch, h.SurfaceWidth(), h.SurfaceHeight())
	s.traits.UnmapDownloadedBuffer(sobj)
	stencilPitch = h.SurfaceWidth()

	return depthBytes, depthPitch, stencilBytes, stencilPitch, nil
}

// repack copies height rows of srcPitch*height bytes down to a tightly
// packed dstPitch*height buffer, discarding the backend's row padding.
func repack(src []byte, srcPitch, dstPitch, height int) []byte {
	dst := make([]byte, dstPitch*height)
	n := min(srcPitch, dstPitch)
	for y := 0; y < height; y++ {
		so, do := y*srcPitch, y*dstPitch
		if so+n > len(src) {
			break
		}
		copy(dst[do:do+n], src[so:so+n])
	}
	return dst
}

// byteSwapRows reverses the byte order of every elemSize-wide element in
// a packed, row-major buffer, in place.
func byteSwapRows(buf []byte, pitch, height, elemSize int) {
	if elemSize <= 1 {
		return
	}
	for y := 0; y < height; y++ {
		row := buf[y*pitch : y*pitch+pitch]
		for x := 0; x+elemSize <= len(row); x += elemSize {
			elem := row[x : x+elemSize]
			for i, j := 0, elemSize-1; i < j; i, j = i+1, j-1 {
				elem[i], elem[j] = elem[j], elem[i]
			}
		}
	}
}
