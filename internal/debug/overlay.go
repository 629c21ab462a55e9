// Package debug draws the F8 overlay on top of the composite.
package debug

import (
	"fmt"
	"runtime"
	"time"

	"wavescene/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Overlay struct {
	fontSize   int32
	lineHeight int32
	padding    int32
	background rl.Color

	// Memory stats are sampled once a second; ReadMemStats stops the world.
	lastSample time.Time
	memStats   runtime.MemStats
}

func NewOverlay() *Overlay {
	return &Overlay{
		fontSize:   16,
		lineHeight: 20,
		padding:    10,
		background: rl.NewColor(0, 0, 0, 170),
	}
}

func (o *Overlay) sample() {
	if time.Since(o.lastSample) < time.Second {
		return
	}
	runtime.ReadMemStats(&o.memStats)
	o.lastSample = time.Now()
}

func (o *Overlay) lines(ctx *engine2D.RenderContext) []string {
	anim := ctx.Animation
	vp := ctx.Viewport()

	mode := "composite"
	if anim.DisplayBothLayers {
		mode = "composite + wave"
	}

	return []string{
		fmt.Sprintf("FPS: %d (%.2f ms)", rl.GetFPS(), rl.GetFrameTime()*1000),
		fmt.Sprintf("Time: %.2f", anim.ElapsedTime),
		fmt.Sprintf("Zoom: %.3f -> %.2f", anim.Zoom.Current, anim.Zoom.Target),
		fmt.Sprintf("Clicks: %d (%s)", anim.ToggleCount, mode),
		fmt.Sprintf("Drawables: hidden %d, visible %d", ctx.Hidden.Len(), ctx.Visible.Len()),
		fmt.Sprintf("Surface: %dx%d", ctx.Surface.Size(), ctx.Surface.Size()),
		fmt.Sprintf("Viewport: %d @ %.2fx (%d px)", vp.Size, vp.PixelRatio, vp.PixelSize),
		fmt.Sprintf("Heap: %.2f MB", float64(o.memStats.HeapAlloc)/1024/1024),
	}
}

// Draw renders the overlay in the top-left corner. Call between
// rl.BeginDrawing and rl.EndDrawing.
func (o *Overlay) Draw(ctx *engine2D.RenderContext) {
	o.sample()
	lines := o.lines(ctx)

	width := int32(0)
	for _, line := range lines {
		if w := rl.MeasureText(line, o.fontSize); w > width {
			width = w
		}
	}
	height := int32(len(lines)) * o.lineHeight

	rl.DrawRectangle(o.padding/2, o.padding/2, width+o.padding, height+o.padding, o.background)
	for i, line := range lines {
		rl.DrawText(line, o.padding, o.padding+int32(i)*o.lineHeight, o.fontSize, rl.RayWhite)
	}
}
