package engine2D

import "math"

// Viewport is the square region the scene is drawn into.
type Viewport struct {
	// Size is the logical edge length: min(window width, window height).
	Size int
	// PixelRatio is the device pixel ratio after capping.
	PixelRatio float64
	// PixelSize is Size scaled by PixelRatio, the framebuffer edge length.
	PixelSize int
	// OffsetX and OffsetY centre the square inside the window, in logical pixels.
	OffsetX int
	OffsetY int
}

// ComputeViewport derives the square viewport for a window of the given
// logical size. The pixel ratio is capped at maxRatio; non-positive ratios
// count as 1. The edge length never drops below 1.
func ComputeViewport(width, height int, pixelRatio, maxRatio float64) Viewport {
	size := min(width, height)
	if size < 1 {
		size = 1
	}

	ratio := pixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if maxRatio > 0 {
		ratio = math.Min(ratio, maxRatio)
	}

	pixelSize := int(math.Round(float64(size) * ratio))
	if pixelSize < 1 {
		pixelSize = 1
	}

	return Viewport{
		Size:       size,
		PixelRatio: ratio,
		PixelSize:  pixelSize,
		OffsetX:    max(width-size, 0) / 2,
		OffsetY:    max(height-size, 0) / 2,
	}
}
