// Copyright 2026 Yigithan Sonmez. All rights reserved.

// Package backend declares the Backend Traits capability set: the
// host-graphics-API operations the render-surface store
// needs but does not implement itself. A concrete graphics backend
// (Vulkan, D3D12, Metal, or — for testing — backend/soft) satisfies
// Traits and is handed to rsx.New.
//
// It is an interface-only contract: the real work is delegated to a
// platform-specific implementation, with backend/soft standing in for
// tests and local development.
package backend

import (
	"github.com/SonmezYigithan/rpcs3/memwin"
	"github.com/SonmezYigithan/rpcs3/pixfmt"
)

// CommandContext is an opaque, backend-defined handle threaded through
// calls that must be recorded against a particular command stream. The
// store never inspects it.
type CommandContext any

// Surface is the capability every concrete surface object exposes.
type Surface interface {
	SurfaceWidth() int
	SurfaceHeight() int
	RsxPitch() int
	NativePitch() int
	BytesPerPixel() int
	IsDepthSurface() bool

	// ColorFormat and DepthFormat report the pixel format a surface was
	// created with — whichever of the pair applies given IsDepthSurface.
	// The Readback Pack needs this to decide whether a
	// downloaded element must be byte-swapped.
	ColorFormat() pixfmt.ColorFormat
	DepthFormat() pixfmt.DepthFormat

	// ReadBarrier forces any pending host GPU writes targeting this
	// surface to become visible before the store samples its memory
	// fingerprint.
	ReadBarrier(ctx CommandContext)
}

// Storage is the owned resource a registry slot holds; Get borrows a
// Surface handle out of it.
type Storage interface {
	Get() Surface
}

// SurfaceInfo is the fixed-size geometry record returned by
// GetSurfaceInfo.
type SurfaceInfo struct {
	SurfaceWidth  int
	SurfaceHeight int
	NativePitch   int
	RsxPitch      int
	BytesPerPixel int
}

// DownloadObject is an in-flight or completed readback request returned
// by the Issue*DownloadCommand methods.
type DownloadObject interface{}

// CreateParams bundles the arguments to CreateNewSurface so that both
// the color and depth bind paths can share one call shape.
type CreateParams struct {
	Address       memwin.Address
	ColorFormat   pixfmt.ColorFormat
	DepthFormat   pixfmt.DepthFormat
	IsDepth       bool
	Width, Height int
	Pitch         int
	// PriorContents, if non-nil, is a bit-source the new surface's
	// initial contents may be blitted from.
	PriorContents Surface
}

// Traits is the full Backend Traits capability set.
type Traits interface {
	// CreateNewSurface allocates a new host surface.
	CreateNewSurface(ctx CommandContext, p CreateParams) (Storage, error)

	// RTTHasFormatWidthHeight reports whether stg is usable, with no
	// reallocation, as a color surface of the given shape. If lenient is
	// set, the backend may apply a looser match (e.g. size round-up) at
	// its own discretion.
	RTTHasFormatWidthHeight(stg Storage, f pixfmt.ColorFormat, width, height int, lenient bool) bool

	// DSHasFormatWidthHeight is the depth analogue of
	// RTTHasFormatWidthHeight.
	DSHasFormatWidthHeight(stg Storage, f pixfmt.DepthFormat, width, height int, lenient bool) bool

	// SurfaceIsPitchCompatible reports whether stg can serve a request
	// at the given guest (rsx) pitch without reallocation.
	SurfaceIsPitchCompatible(stg Storage, pitch int) bool

	// PrepareRTTForDrawing and PrepareRTTForSampling transition a color
	// surface between being a draw target and a sampled texture.
	PrepareRTTForDrawing(ctx CommandContext, s Surface)
	PrepareRTTForSampling(ctx CommandContext, s Surface)

	// PrepareDSForDrawing and PrepareDSForSampling are the depth/stencil
	// analogues.
	PrepareDSForDrawing(ctx CommandContext, s Surface)
	PrepareDSForSampling(ctx CommandContext, s Surface)

	// NotifySurfaceInvalidated and NotifySurfacePersist are bookkeeping
	// hooks fired when a surface is evicted or, conversely, reused
	// as-is.
	NotifySurfaceInvalidated(stg Storage)
	NotifySurfacePersist(stg Storage)

	// InvalidateSurfaceContents declares a surface's current bits
	// garbage, optionally blitting in bits from source.
	InvalidateSurfaceContents(ctx CommandContext, s Surface, source Surface, addr memwin.Address, pitch int)

	// GetSurfaceInfo fills out with s's geometry.
	GetSurfaceInfo(s Surface, out *SurfaceInfo)

	// IssueDownloadCommand, IssueDepthDownloadCommand and
	// IssueStencilDownloadCommand queue a readback and return a token
	// for MapDownloadedBuffer/UnmapDownloadedBuffer.
	IssueDownloadCommand(ctx CommandContext, s Surface) (DownloadObject, error)
	IssueDepthDownloadCommand(ctx CommandContext, s Surface) (DownloadObject, error)
	IssueStencilDownloadCommand(ctx CommandContext, s Surface) (DownloadObject, error)

	// MapDownloadedBuffer exposes the downloaded bytes for obj, pitched
	// according to the backend's native download stride.
	MapDownloadedBuffer(obj DownloadObject) ([]byte, error)
	// UnmapDownloadedBuffer releases the mapping obtained above.
	UnmapDownloadedBuffer(obj DownloadObject)
}
