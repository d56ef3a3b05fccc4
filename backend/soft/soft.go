// Copyright 2026 Yigithan Sonmez. All rights reserved.

// Package soft is a reference, in-process implementation of the Backend
// Traits capability (package backend). It allocates no real GPU
// resources — "surfaces" are plain byte buffers — so it plays the role of
// a concrete trait implementation real enough to exercise the core logic
// end to end, without a real device.
package soft

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/SonmezYigithan/rpcs3/backend"
	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// Backend is a backend.Traits implementation backed by host memory.
type Backend struct {
	// Lenient, when true, makes RTTHasFormatWidthHeight and
	// DSHasFormatWidthHeight accept a surface whose width/height are
	// merely >= the requested size when the caller passes lenient=true.
	Lenient bool
}

// New creates a software Backend.
func New() *Backend { return &Backend{} }

// surface is both a backend.Storage and a backend.Surface: ownership and
// borrowing collapse to the same Go value here since there is no
// separate host handle to distinguish them from.
type surface struct {
	addr          memwin.Address
	colorFmt      pixfmt.ColorFormat
	depthFmt      pixfmt.DepthFormat
	isDepth       bool
	width, height int
	nativePitch   int
	rsxPitch      int
	bpp           int
	pixels        []byte
	stencil       []byte
}

func (s *surface) Get() backend.Surface { return s }

func (s *surface) SurfaceWidth() int               { return s.width }
func (s *surface) SurfaceHeight() int              { return s.height }
func (s *surface) RsxPitch() int                   { return s.rsxPitch }
func (s *surface) NativePitch() int                { return s.nativePitch }
func (s *surface) BytesPerPixel() int              { return s.bpp }
func (s *surface) IsDepthSurface() bool            { return s.isDepth }
func (s *surface) ColorFormat() pixfmt.ColorFormat { return s.colorFmt }
func (s *surface) DepthFormat() pixfmt.DepthFormat { return s.depthFmt }
func (s *surface) ReadBarrier(backend.CommandContext) {
	// No host GPU writes to wait on; storage is plain memory.
}

func bppOf(p backend.CreateParams) int {
	if p.IsDepth {
		bpp := p.DepthFormat.BytesPerPixel()
		if p.DepthFormat.HasStencil() {
			return bpp + 1
		}
		return bpp
	}
	return p.ColorFormat.BytesPerPixel()
}

// CreateNewSurface implements backend.Traits.
func (b *Backend) CreateNewSurface(ctx backend.CommandContext, p backend.CreateParams) (backend.Storage, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("soft: invalid surface size %dx%d", p.Width, p.Height)
	}
	bpp := bppOf(p)
	nativePitch := p.Width * bpp
	s := &surface{
		addr:        p.Address,
		colorFmt:    p.ColorFormat,
		depthFmt:    p.DepthFormat,
		isDepth:     p.IsDepth,
		width:       p.Width,
		height:      p.Height,
		nativePitch: nativePitch,
		rsxPitch:    p.Pitch,
		bpp:         bpp,
		pixels:      make([]byte, nativePitch*p.Height),
	}
	if p.IsDepth && p.DepthFormat.HasStencil() {
		stencilPitch := pixfmt.StencilRowAlign
		if p.Width > stencilPitch {
			stencilPitch = p.Width
		}
		s.stencil = make([]byte, stencilPitch*p.Height)
	}
	if p.PriorContents != nil {
		blitPitched(s.pixels, s.nativePitch, s.bpp, p.Width, p.Height, p.PriorContents)
	}
	return s, nil
}

func (b *Backend) RTTHasFormatWidthHeight(stg backend.Storage, f pixfmt.ColorFormat, width, height int, lenient bool) bool {
	s := stg.(*surface)
	if s.isDepth || s.colorFmt != f {
		return false
	}
	return shapeMatches(s.width, s.height, width, height, lenient && b.Lenient)
}

func (b *Backend) DSHasFormatWidthHeight(stg backend.Storage, f pixfmt.DepthFormat, width, height int, lenient bool) bool {
	s := stg.(*surface)
	if !s.isDepth || s.depthFmt != f {
		return false
	}
	return shapeMatches(s.width, s.height, width, height, lenient && b.Lenient)
}

func shapeMatches(haveW, haveH, wantW, wantH int, lenient bool) bool {
	if lenient {
		return haveW >= wantW && haveH >= wantH
	}
	return haveW == wantW && haveH == wantH
}

func (b *Backend) SurfaceIsPitchCompatible(stg backend.Storage, pitch int) bool {
	s := stg.(*surface)
	return s.rsxPitch == pitch
}

func (b *Backend) PrepareRTTForDrawing(backend.CommandContext, backend.Surface)   {}
func (b *Backend) PrepareRTTForSampling(backend.CommandContext, backend.Surface) {}
func (b *Backend) PrepareDSForDrawing(backend.CommandContext, backend.Surface)   {}
func (b *Backend) PrepareDSForSampling(backend.CommandContext, backend.Surface) {}

func (b *Backend) NotifySurfaceInvalidated(backend.Storage) {}
func (b *Backend) NotifySurfacePersist(backend.Storage)     {}

// InvalidateSurfaceContents implements backend.Traits. When source is
// non-nil its pixels are blitted in (pitched, width/height clamped to
// the destination); the destination's pitch is then updated regardless.
func (b *Backend) InvalidateSurfaceContents(ctx backend.CommandContext, s backend.Surface, source backend.Surface, addr memwin.Address, pitch int) {
	dst := s.(*surface)
	dst.rsxPitch = pitch
	if source == nil {
		clear(dst.pixels)
		return
	}
	blitPitched(dst.pixels, dst.nativePitch, dst.bpp, dst.width, dst.height, source)
}

// blitPitched copies min(dst, src) rows/columns from source into a
// nativePitch-strided destination buffer. For the common 4-byte-per-pixel
// case it goes through golang.org/x/image/draw so the copy benefits from
// that package's tuned Draw loop; other bit depths fall back to a manual
// row copy, since draw.Image requires a color.Model this reference
// backend has no reason to invent for 8/16/32-bit-per-element depth or
// HDR formats.
func blitPitched(dst []byte, dstPitch, bpp, dstW, dstH int, src backend.Surface) {
	w := min(dstW, src.SurfaceWidth())
	h := min(dstH, src.SurfaceHeight())
	if w <= 0 || h <= 0 {
		return
	}
	srcBuf, srcPitch, ok := rawBytes(src)
	if !ok {
		return
	}
	if bpp == 4 {
		dstImg := &image.NRGBA{Pix: dst, Stride: dstPitch, Rect: image.Rect(0, 0, dstW, dstH)}
		srcImg := &image.NRGBA{Pix: srcBuf, Stride: srcPitch, Rect: image.Rect(0, 0, w, h)}
		xdraw.NearestNeighbor.Scale(dstImg, image.Rect(0, 0, w, h), srcImg, srcImg.Bounds(), xdraw.Src, nil)
		return
	}
	rowBytes := w * bpp
	for y := 0; y < h; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowBytes], srcBuf[y*srcPitch:y*srcPitch+rowBytes])
	}
}

// rawBytes extracts the pixel buffer and native pitch from a
// backend.Surface produced by this package. Surfaces from a different
// Traits implementation cannot be blitted from here.
func rawBytes(s backend.Surface) ([]byte, int, bool) {
	if sf, ok := s.(*surface); ok {
		return sf.pixels, sf.nativePitch, true
	}
	return nil, 0, false
}

func (b *Backend) GetSurfaceInfo(s backend.Surface, out *backend.SurfaceInfo) {
	sf := s.(*surface)
	out.SurfaceWidth = sf.width
	out.SurfaceHeight = sf.height
	out.NativePitch = sf.nativePitch
	out.RsxPitch = sf.rsxPitch
	out.BytesPerPixel = sf.bpp
}

// download is the DownloadObject this backend returns: a pitched copy of
// the surface's current bytes, taken eagerly since there is no real
// asynchronous host GPU to wait on.
type download struct {
	data  []byte
	pitch int
}

var errNilSurface = errors.New("soft: download of nil surface")

func (b *Backend) IssueDownloadCommand(ctx backend.CommandContext, s backend.Surface) (backend.DownloadObject, error) {
	sf, ok := s.(*surface)
	if !ok || sf == nil {
		return nil, errNilSurface
	}
	buf := make([]byte, len(sf.pixels))
	copy(buf, sf.pixels)
	return &download{data: buf, pitch: sf.nativePitch}, nil
}

func (b *Backend) IssueDepthDownloadCommand(ctx backend.CommandContext, s backend.Surface) (backend.DownloadObject, error) {
	return b.IssueDownloadCommand(ctx, s)
}

func (b *Backend) IssueStencilDownloadCommand(ctx backend.CommandContext, s backend.Surface) (backend.DownloadObject, error) {
	sf, ok := s.(*surface)
	if !ok || sf == nil || sf.stencil == nil {
		return nil, errNilSurface
	}
	buf := make([]byte, len(sf.stencil))
	copy(buf, sf.stencil)
	pitch := pixfmt.StencilRowAlign
	if sf.width > pitch {
		pitch = sf.width
	}
	return &download{data: buf, pitch: pitch}, nil
}

func (b *Backend) MapDownloadedBuffer(obj backend.DownloadObject) ([]byte, error) {
	d, ok := obj.(*download)
	if !ok || d == nil {
		return nil, errors.New("soft: map of invalid download object")
	}
	return d.data, nil
}

func (b *Backend) UnmapDownloadedBuffer(backend.DownloadObject) {}
