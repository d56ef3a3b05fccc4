// Copyright 2026 Yigithan Sonmez. All rights reserved.

// Package pixfmt is the Format Registry external collaborator:
// pixel-format metadata that the render-surface store needs but does not
// own — bytes-per-pixel, aligned vs. packed download pitch, and the RTT
// slot list for a given MRT layout.
package pixfmt

import "fmt"

// ColorFormat enumerates the color surface formats named in the readback
// shape table.
type ColorFormat int

const (
	A8B8G8R8 ColorFormat = iota
	X8B8G8R8
	A8R8G8B8
	X8R8G8B8
	X32
	B8
	G8B8
	R5G6B5
	X1R5G5B5Z
	X1R5G5B5O
	W16Z16Y16X16
	W32Z32Y32X32
)

// DepthFormat enumerates the depth/stencil surface formats.
type DepthFormat int

const (
	Z16 DepthFormat = iota
	Z24S8
)

// BytesPerPixel returns the element size of a color format, in bytes.
func (f ColorFormat) BytesPerPixel() int {
	switch f {
	case A8B8G8R8, X8B8G8R8, A8R8G8B8, X8R8G8B8, X32:
		return 4
	case B8:
		return 1
	case G8B8, R5G6B5, X1R5G5B5Z, X1R5G5B5O:
		return 2
	case W16Z16Y16X16:
		return 8
	case W32Z32Y32X32:
		return 16
	default:
		panic(fmt.Sprintf("pixfmt: undefined ColorFormat %d", f))
	}
}

// ByteSwap reports whether a downloaded element of this format must be
// repacked as big-endian during readback.
func (f ColorFormat) ByteSwap() bool {
	switch f {
	case A8B8G8R8, X8B8G8R8, A8R8G8B8, X8R8G8B8, X32, G8B8, R5G6B5, X1R5G5B5Z, X1R5G5B5O:
		return true
	default:
		// B8 has no multi-byte element to swap; the 64/128-bit float
		// formats are left as-is pending a later pass.
		return false
	}
}

// BytesPerPixel returns the depth element size in bytes, not including
// any interleaved stencil byte.
func (f DepthFormat) BytesPerPixel() int {
	switch f {
	case Z16:
		return 2
	case Z24S8:
		return 4
	default:
		panic(fmt.Sprintf("pixfmt: undefined DepthFormat %d", f))
	}
}

// HasStencil reports whether the format carries an interleaved stencil
// byte that must be downloaded separately.
func (f DepthFormat) HasStencil() bool { return f == Z24S8 }

// StencilRowAlign is the minimum row stride, in bytes, of the separate
// stencil download path, which uses max(width, StencilRowAlign); it is
// also the row alignment GetAlignedDepthPitch rounds up to.
const StencilRowAlign = 256

// GetAlignedPitch returns the host download stride for a color surface of
// the given width: the format's element size times the width, rounded up
// to a reasonable GPU row alignment. Real backends can have tighter or
// looser requirements; 256 bytes matches common host APIs and
// StencilRowAlign.
func GetAlignedPitch(f ColorFormat, width int) int {
	return alignUp(width*f.BytesPerPixel(), 256)
}

// GetPackedPitch returns the tightly-packed guest-visible stride for a
// color surface of the given width.
func GetPackedPitch(f ColorFormat, width int) int {
	return width * f.BytesPerPixel()
}

// GetAlignedDepthPitch returns the host download stride for a depth
// surface of the given width, rounded up to a multiple of
// StencilRowAlign.
func GetAlignedDepthPitch(f DepthFormat, width int) int {
	return alignUp(width*f.BytesPerPixel(), StencilRowAlign)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// MRTLayout identifies the enabled subset of color render targets.
type MRTLayout int

const (
	// MRTNone draws to no color target (depth-only).
	MRTNone MRTLayout = iota
	// MRTSingle draws to render target 0 only.
	MRTSingle
	// MRTSingleAndZCullOnly is semantically the same as MRTSingle.
	MRTSingleAndZCullOnly
	// MRTPair draws to render targets 0 and 1.
	MRTPair
	// MRTTriple draws to render targets 0, 1 and 2.
	MRTTriple
	// MRTQuad draws to render targets 0, 1, 2 and 3.
	MRTQuad
)

// GetRTTIndexes returns the ordered subset of {0,1,2,3} active for the
// given MRT layout.
func GetRTTIndexes(layout MRTLayout) []int {
	switch layout {
	case MRTNone:
		return nil
	case MRTSingle, MRTSingleAndZCullOnly:
		return []int{0}
	case MRTPair:
		return []int{0, 1}
	case MRTTriple:
		return []int{0, 1, 2}
	case MRTQuad:
		return []int{0, 1, 2, 3}
	default:
		panic(fmt.Sprintf("pixfmt: undefined MRTLayout %d", layout))
	}
}

// AAMode is the antialiasing mode in effect for a surface's most recent
// sampling or drawing operation. Bind and overlap math only ever compare
// a mode against "diagonal_centered_2_samples" and "center_1_sample" as
// if picking points on a larger ordered scale, so the full scale is made
// explicit here as an enum rather than two magic booleans.
type AAMode int

const (
	AA1x AAMode = iota
	AACenter1Sample
	AADiagonalCentered2Samples
	AARotated4Samples
	AASquareOffset4Samples
)

// ScaleX returns the horizontal AA scale factor used by the Overlap
// Engine.
func (a AAMode) ScaleX() int {
	if a > AACenter1Sample {
		return 2
	}
	return 1
}

// ScaleY returns the vertical AA scale factor.
func (a AAMode) ScaleY() int {
	if a > AADiagonalCentered2Samples {
		return 2
	}
	return 1
}

// BindFactor returns the single AA factor used by the Bind Engine to
// extend a registry range.
func (a AAMode) BindFactor() int {
	if a <= AADiagonalCentered2Samples {
		return 1
	}
	return 2
}
