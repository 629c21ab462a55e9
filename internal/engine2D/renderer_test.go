package engine2D

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavescene/internal/assets"
	"wavescene/internal/config"
)

func testSources() assets.ShaderSources {
	return assets.ShaderSources{
		WaveVertex:        "wave vs",
		WaveFragment:      "wave fs",
		CompositeVertex:   "pp vs",
		CompositeFragment: "pp fs",
	}
}

func newTestContext(t *testing.T, width, height int) (*RenderContext, *fakeGPU) {
	t.Helper()
	gpu := newFakeGPU()
	ctx, err := NewRenderContext(gpu, testSources(), OptionsFromConfig(config.Default()), width, height, 1)
	require.NoError(t, err)
	return ctx, gpu
}

func TestNewRenderContextBuildsScenes(t *testing.T) {
	ctx, gpu := newTestContext(t, 800, 600)

	assert.Equal(t, 600, ctx.Viewport().Size)
	require.Len(t, gpu.created, 1)
	assert.Equal(t, 600, ctx.Surface.Size())

	assert.Equal(t, []*Drawable{ctx.Wave}, ctx.Hidden.Drawables())
	assert.Equal(t, []*Drawable{ctx.Composite}, ctx.Visible.Drawables())

	assert.Equal(t, ProgramWave, ctx.Wave.Material.Program.Kind())
	assert.Equal(t, ProgramComposite, ctx.Composite.Material.Program.Kind())
	assert.Nil(t, ctx.Wave.Material.Params.Texture)
	assert.Equal(t, ctx.Surface, ctx.Composite.Material.Params.Texture)
	assert.Same(t, ctx.Wave.Geometry, ctx.Composite.Geometry)
	assert.Equal(t, Vec2{X: 1, Y: 1}, ctx.Wave.Material.Params.Resolution)
	assert.Equal(t, Vec2{X: 1, Y: 1}, ctx.Composite.Material.Params.Resolution)
	assert.Equal(t, 100, ctx.Geometry.Segments)
}

func TestNewRenderContextFailures(t *testing.T) {
	t.Run("wave link", func(t *testing.T) {
		gpu := newFakeGPU()
		gpu.linkErr[ProgramWave] = errors.New("no uTime")
		_, err := NewRenderContext(gpu, testSources(), OptionsFromConfig(config.Default()), 640, 480, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wave")
		assert.Empty(t, gpu.created)
	})

	t.Run("composite link releases wave", func(t *testing.T) {
		gpu := newFakeGPU()
		gpu.linkErr[ProgramComposite] = errors.New("no tDiffuse")
		_, err := NewRenderContext(gpu, testSources(), OptionsFromConfig(config.Default()), 640, 480, 1)
		require.Error(t, err)
		require.Len(t, gpu.unloaded, 1)
		assert.Equal(t, ProgramWave, gpu.unloaded[0].Kind())
	})

	t.Run("surface creation releases both", func(t *testing.T) {
		gpu := newFakeGPU()
		gpu.createErr = errors.New("fbo incomplete")
		_, err := NewRenderContext(gpu, testSources(), OptionsFromConfig(config.Default()), 640, 480, 1)
		require.Error(t, err)
		assert.Len(t, gpu.unloaded, 2)
	})
}

func TestFrameOrdersPasses(t *testing.T) {
	ctx, gpu := newTestContext(t, 512, 512)
	ctx.Click()

	ctx.Frame()

	require.Len(t, gpu.calls, 2)
	offscreen, screen := gpu.calls[0], gpu.calls[1]

	assert.Equal(t, "surface", offscreen.pass)
	assert.Equal(t, "hidden", offscreen.scene)
	assert.Equal(t, ctx.Surface, offscreen.target)

	assert.Equal(t, "screen", screen.pass)
	assert.Equal(t, "visible", screen.scene)
	assert.Equal(t, ctx.Surface, screen.sampled[0], "composite samples the surface written this frame")

	// Time is pushed to every drawable before either pass runs.
	assert.InDelta(t, 0.01, offscreen.times[0], 1e-12)
	for _, tm := range screen.times {
		assert.InDelta(t, 0.01, tm, 1e-12)
	}
}

func TestFrameAdvancesTimeByFixedStep(t *testing.T) {
	ctx, _ := newTestContext(t, 300, 300)

	for i := 0; i < 250; i++ {
		ctx.Frame()
	}

	assert.InDelta(t, 2.5, ctx.Animation.ElapsedTime, 1e-9)
	assert.InDelta(t, 2.5, ctx.Wave.Material.Params.Time, 1e-9)
	assert.InDelta(t, 2.5, ctx.Composite.Material.Params.Time, 1e-9)
}

func TestZoomConvergesGeometrically(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		start  float64
		frames int
	}{
		{name: "zoom in", target: 2.0, start: 1.0, frames: 10},
		{name: "zoom out", target: 0.5, start: 1.7, frames: 37},
		{name: "already there", target: 1.0, start: 1.0, frames: 5},
		{name: "long run", target: 1.3, start: 0.5, frames: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t, 400, 400)
			ctx.Animation.Zoom.Target = tt.target
			ctx.Animation.Zoom.Current = tt.start
			speed := ctx.Animation.Zoom.Speed

			for i := 0; i < tt.frames; i++ {
				ctx.Frame()
			}

			want := tt.target - (tt.target-tt.start)*math.Pow(1-speed, float64(tt.frames))
			assert.InDelta(t, want, ctx.Animation.Zoom.Current, 1e-9)

			for _, d := range append(ctx.Hidden.Drawables(), ctx.Visible.Drawables()...) {
				assert.InDelta(t, want, d.Scale.X, 1e-9)
				assert.InDelta(t, want, d.Scale.Y, 1e-9)
			}
		})
	}
}

func TestZoomNeverReachesTargetExactly(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)
	ctx.Animation.Zoom.Target = 1.5

	for i := 0; i < 50; i++ {
		ctx.Frame()
		assert.Less(t, ctx.Animation.Zoom.Current, 1.5)
	}
}

func TestWheelKeepsTargetInBounds(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)
	zoom := &ctx.Animation.Zoom
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		delta := float64(rng.Intn(3)-1) * (1 + rng.Float64()*100)
		ctx.Wheel(delta)
		require.GreaterOrEqual(t, zoom.Target, zoom.Min)
		require.LessOrEqual(t, zoom.Target, zoom.Max)
	}

	for i := 0; i < 100; i++ {
		ctx.Wheel(-1)
	}
	assert.Equal(t, zoom.Max, zoom.Target)

	for i := 0; i < 100; i++ {
		ctx.Wheel(120)
	}
	assert.Equal(t, zoom.Min, zoom.Target)
}

func TestWheelUpSteps(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)
	require.Equal(t, 1.0, ctx.Animation.Zoom.Target)

	for i := 0; i < 5; i++ {
		ctx.Wheel(-100)
	}
	assert.InDelta(t, 1.5, ctx.Animation.Zoom.Target, 1e-9)

	ctx.Wheel(-3)
	assert.InDelta(t, 1.6, ctx.Animation.Zoom.Target, 1e-9)

	ctx.Wheel(0)
	assert.InDelta(t, 1.6, ctx.Animation.Zoom.Target, 1e-9, "zero delta is ignored")
}

func TestClickTogglesLayers(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)
	require.Equal(t, 1, ctx.Visible.Len())

	ctx.Click()
	assert.Equal(t, 1, ctx.Animation.ToggleCount)
	assert.True(t, ctx.Animation.DisplayBothLayers)
	require.Equal(t, 2, ctx.Visible.Len())

	clone := ctx.Visible.Drawables()[1]
	assert.NotSame(t, ctx.Wave, clone)
	assert.Same(t, ctx.Wave.Geometry, clone.Geometry)
	assert.Equal(t, ctx.Wave.Material.Program, clone.Material.Program)
	assert.Same(t, ctx.Visible, clone.Scene())
	assert.Same(t, ctx.Hidden, ctx.Wave.Scene(), "the original wave stays hidden")

	clone.Material.Params.Resolution = Vec2{X: 9, Y: 9}
	assert.Equal(t, Vec2{X: 1, Y: 1}, ctx.Wave.Material.Params.Resolution, "params are copied by value")

	ctx.Click()
	assert.Equal(t, 2, ctx.Animation.ToggleCount)
	assert.False(t, ctx.Animation.DisplayBothLayers)
	assert.Equal(t, []*Drawable{ctx.Composite}, ctx.Visible.Drawables())
	assert.Nil(t, clone.Scene())
}

func TestClickParity(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)

	for clicks := 1; clicks <= 9; clicks++ {
		ctx.Click()
		ctx.Frame()
		if clicks%2 == 1 {
			assert.Equal(t, 2, ctx.Visible.Len(), "after %d clicks", clicks)
		} else {
			assert.Equal(t, 1, ctx.Visible.Len(), "after %d clicks", clicks)
		}
	}
	assert.Equal(t, 1, ctx.Hidden.Len())
}

func TestLeavingDualModeRemovesAnyNumberOfExtras(t *testing.T) {
	ctx, _ := newTestContext(t, 400, 400)
	ctx.Click()
	for i := 0; i < 3; i++ {
		require.NoError(t, ctx.Visible.Add(CloneDrawable(ctx.Wave, "extra")))
	}
	require.Equal(t, 5, ctx.Visible.Len())

	ctx.Click()
	assert.Equal(t, []*Drawable{ctx.Composite}, ctx.Visible.Drawables())
}

func TestResize(t *testing.T) {
	ctx, gpu := newTestContext(t, 800, 600)
	first := ctx.Surface

	require.NoError(t, ctx.Resize(1024, 2048, 3))
	assert.Equal(t, 1024, ctx.Viewport().Size)
	assert.Equal(t, 2.0, ctx.Viewport().PixelRatio)
	assert.Equal(t, 2048, ctx.Viewport().PixelSize)
	assert.Equal(t, 1024, ctx.Surface.Size())
	assert.Equal(t, []Surface{first}, gpu.destroyed)
	assert.Equal(t, ctx.Surface, ctx.Composite.Material.Params.Texture)

	last := gpu.viewports[len(gpu.viewports)-1]
	assert.Equal(t, ctx.Viewport(), last)
}

func TestResizeIsIdempotent(t *testing.T) {
	ctx, gpu := newTestContext(t, 800, 600)
	ctx.Wheel(-1)
	ctx.Click()
	ctx.Frame()

	require.NoError(t, ctx.Resize(1000, 700, 1))
	surface := ctx.Surface
	zoom := ctx.Animation.Zoom
	toggles := ctx.Animation.ToggleCount
	created := len(gpu.created)

	require.NoError(t, ctx.Resize(1000, 700, 1))

	assert.Equal(t, surface.Size(), ctx.Surface.Size())
	assert.Equal(t, 700, ctx.Surface.Size())
	assert.Equal(t, created, len(gpu.created), "same size does not recreate")
	assert.Equal(t, zoom, ctx.Animation.Zoom)
	assert.Equal(t, toggles, ctx.Animation.ToggleCount)
}

func TestResizeResetsResolution(t *testing.T) {
	ctx, _ := newTestContext(t, 800, 600)
	ctx.Click()
	for _, d := range append(ctx.Hidden.Drawables(), ctx.Visible.Drawables()...) {
		d.Material.Params.Resolution = Vec2{X: 800, Y: 600}
	}

	require.NoError(t, ctx.Resize(640, 480, 1))

	for _, d := range append(ctx.Hidden.Drawables(), ctx.Visible.Drawables()...) {
		assert.Equal(t, Vec2{X: 1, Y: 1}, d.Material.Params.Resolution, d.Name)
	}
	assert.Nil(t, ctx.Visible.Drawables()[1].Material.Params.Texture, "wave clone never samples the surface")
}

func TestResizeKeepsOldSurfaceOnFailure(t *testing.T) {
	ctx, gpu := newTestContext(t, 800, 600)
	old := ctx.Surface
	gpu.createErr = errors.New("out of memory")

	err := ctx.Resize(300, 300, 1)
	require.Error(t, err)
	assert.Same(t, old, ctx.Surface)
	assert.Empty(t, gpu.destroyed)
}

func TestClose(t *testing.T) {
	ctx, gpu := newTestContext(t, 800, 600)
	surface := ctx.Surface

	ctx.Close()

	assert.Equal(t, []Surface{surface}, gpu.destroyed)
	assert.Len(t, gpu.unloaded, 2)
	assert.Nil(t, ctx.Surface)
}
