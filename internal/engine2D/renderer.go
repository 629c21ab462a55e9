package engine2D

import (
	"fmt"

	"wavescene/internal/assets"
	"wavescene/internal/config"
	"wavescene/internal/utils"
)

// Options are the constants the render context is built with.
type Options struct {
	TimeStep      float64
	Zoom          Zoom
	GeometrySize  float64
	Segments      int
	MaxPixelRatio float64
}

// OptionsFromConfig copies the render tunables out of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		TimeStep: cfg.TimeStep,
		Zoom: Zoom{
			Target:  cfg.Zoom.Initial,
			Current: cfg.Zoom.Initial,
			Min:     cfg.Zoom.Min,
			Max:     cfg.Zoom.Max,
			Speed:   cfg.Zoom.Speed,
			Step:    cfg.Zoom.Step,
		},
		GeometrySize:  cfg.Geometry.Size,
		Segments:      cfg.Geometry.Segments,
		MaxPixelRatio: cfg.Window.MaxPixelRatio,
	}
}

// RenderContext owns everything the frame loop, the input handlers and the
// resize handler touch.
type RenderContext struct {
	Hidden  *Scene
	Visible *Scene

	Wave      *Drawable
	Composite *Drawable
	Geometry  *Geometry
	Surface   Surface
	Animation Animation

	gpu              GPU
	waveProgram      Program
	compositeProgram Program
	viewport         Viewport
	maxPixelRatio    float64
	clones           int
}

// NewRenderContext links both programs, builds the two scenes and creates the
// offscreen surface for a window of the given logical size.
func NewRenderContext(gpu GPU, sources assets.ShaderSources, opts Options, width, height int, pixelRatio float64) (*RenderContext, error) {
	waveProgram, err := gpu.LinkProgram(ProgramWave, "greenStripes", sources.WaveVertex, sources.WaveFragment)
	if err != nil {
		return nil, fmt.Errorf("link wave program: %w", err)
	}
	compositeProgram, err := gpu.LinkProgram(ProgramComposite, "pingpong", sources.CompositeVertex, sources.CompositeFragment)
	if err != nil {
		gpu.UnloadProgram(waveProgram)
		return nil, fmt.Errorf("link composite program: %w", err)
	}

	ctx := &RenderContext{
		Hidden:           NewScene("hidden"),
		Visible:          NewScene("visible"),
		Geometry:         NewGeometry(opts.GeometrySize, opts.Segments),
		Animation:        Animation{TimeStep: opts.TimeStep, Zoom: opts.Zoom},
		gpu:              gpu,
		waveProgram:      waveProgram,
		compositeProgram: compositeProgram,
		maxPixelRatio:    opts.MaxPixelRatio,
	}

	ctx.viewport = ComputeViewport(width, height, pixelRatio, opts.MaxPixelRatio)
	gpu.SetViewport(ctx.viewport)

	surface, err := gpu.CreateSurface(ctx.viewport.Size)
	if err != nil {
		gpu.UnloadProgram(compositeProgram)
		gpu.UnloadProgram(waveProgram)
		return nil, fmt.Errorf("create offscreen surface: %w", err)
	}
	ctx.Surface = surface

	ctx.Wave = NewDrawable("wave", ctx.Geometry, Material{
		Program: waveProgram,
		Params:  Params{Resolution: Vec2{X: 1, Y: 1}},
	})
	ctx.Composite = NewDrawable("pingpong", ctx.Geometry, Material{
		Program:     compositeProgram,
		Params:      Params{Resolution: Vec2{X: 1, Y: 1}, Texture: surface},
		DoubleSided: true,
	})

	// Both scenes are fresh, so neither Add can fail.
	_ = ctx.Hidden.Add(ctx.Wave)
	_ = ctx.Visible.Add(ctx.Composite)

	ctx.applyScale(ctx.Animation.Zoom.Current)

	utils.Info("Renderer: Scene ready (viewport %d, surface %dx%d, ratio %.2f)",
		ctx.viewport.Size, surface.Size(), surface.Size(), ctx.viewport.PixelRatio)
	return ctx, nil
}

// Viewport returns the square the scene currently renders into.
func (c *RenderContext) Viewport() Viewport {
	return c.viewport
}

func (c *RenderContext) eachDrawable(fn func(d *Drawable)) {
	for _, d := range c.Hidden.Drawables() {
		fn(d)
	}
	for _, d := range c.Visible.Drawables() {
		fn(d)
	}
}

func (c *RenderContext) applyScale(zoom float64) {
	c.eachDrawable(func(d *Drawable) {
		d.Scale = Vec2{X: zoom, Y: zoom}
	})
}

// Frame runs one iteration of the render loop: advance time, push it to every
// drawable, render hidden into the surface, render visible to the screen, then
// ease the zoom and apply it.
func (c *RenderContext) Frame() {
	t := c.Animation.Tick()
	c.eachDrawable(func(d *Drawable) {
		d.Material.Params.Time = t
	})

	c.gpu.RenderToSurface(c.Hidden, c.Surface)
	c.gpu.RenderToScreen(c.Visible)

	c.applyScale(c.Animation.Zoom.Advance())
}

// Wheel applies one wheel notch. deltaY follows the browser convention:
// negative scrolls up and zooms in.
func (c *RenderContext) Wheel(deltaY float64) {
	c.Animation.Zoom.Nudge(deltaY)
	utils.Debug("Renderer: Zoom target %.2f", c.Animation.Zoom.Target)
}

// Click flips the display mode. Entering dual mode adds a copy of the wave to
// the visible scene; leaving it removes everything but the composite.
func (c *RenderContext) Click() {
	both := c.Animation.Toggle()

	if both {
		c.clones++
		clone := CloneDrawable(c.Wave, fmt.Sprintf("wave-visible-%d", c.clones))
		_ = c.Visible.Add(clone) // clones start detached
	} else {
		removed := c.Visible.RemoveExcept(c.Composite)
		utils.Debug("Renderer: Removed %d transient drawables", removed)
	}

	mode := "pingpong only"
	if both {
		mode = "both layers"
	}
	utils.Info("Renderer: Click count %d", c.Animation.ToggleCount)
	utils.Info("Renderer: Display mode: %s", mode)
}

// Resize recomputes the viewport for a new window size. The offscreen surface
// is recreated when its edge length changes; on failure the old surface stays.
func (c *RenderContext) Resize(width, height int, pixelRatio float64) error {
	vp := ComputeViewport(width, height, pixelRatio, c.maxPixelRatio)
	c.viewport = vp
	c.gpu.SetViewport(vp)

	if c.Surface == nil || c.Surface.Size() != vp.Size {
		surface, err := c.gpu.CreateSurface(vp.Size)
		if err != nil {
			return fmt.Errorf("recreate offscreen surface at %d: %w", vp.Size, err)
		}
		if c.Surface != nil {
			c.gpu.DestroySurface(c.Surface)
		}
		c.Surface = surface
		utils.Debug("Renderer: Offscreen surface recreated at %dx%d", vp.Size, vp.Size)
	}

	c.eachDrawable(func(d *Drawable) {
		d.Material.Params.Resolution = Vec2{X: 1, Y: 1}
		if d.Material.Params.Texture != nil {
			d.Material.Params.Texture = c.Surface
		}
	})
	return nil
}

// Close releases the surface and both programs.
func (c *RenderContext) Close() {
	if c.Surface != nil {
		c.gpu.DestroySurface(c.Surface)
		c.Surface = nil
	}
	c.gpu.UnloadProgram(c.compositeProgram)
	c.gpu.UnloadProgram(c.waveProgram)
}
