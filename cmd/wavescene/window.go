package main

import (
	"fmt"

	"wavescene/internal/assets"
	"wavescene/internal/config"
	"wavescene/internal/debug"
	"wavescene/internal/engine2D"
	"wavescene/internal/engine2D/backend"
	"wavescene/internal/input"
	"wavescene/internal/platform"
	"wavescene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	cfg          config.Config
	gpu          *backend.Raylib
	ctx          *engine2D.RenderContext
	controller   *input.Controller
	x11          *platform.X11
	debugOverlay *debug.Overlay
}

// NewWindow opens the raylib window and builds the render context on it.
// Nothing is left open when it returns an error.
func NewWindow(cfg config.Config, sources assets.ShaderSources) (*Window, error) {
	platform.OpenWindow(cfg.Window)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("window %q could not be created", cfg.Window.Title)
	}

	window := &Window{
		cfg:          cfg,
		gpu:          backend.NewRaylib(cfg.Camera),
		debugOverlay: debug.NewOverlay(),
	}

	ctx, err := engine2D.NewRenderContext(
		window.gpu,
		sources,
		engine2D.OptionsFromConfig(cfg),
		rl.GetScreenWidth(),
		rl.GetScreenHeight(),
		platform.PixelRatio(),
	)
	if err != nil {
		window.gpu.Close()
		rl.CloseWindow()
		return nil, err
	}
	window.ctx = ctx

	var windowSource input.Source = platform.NewWindowSource()
	eventSources := []input.Source{windowSource}
	if cfg.Window.Wallpaper {
		if x, err := window.attachDesktop(); err != nil {
			utils.Warn("Wallpaper: %v; running as a normal window", err)
		} else {
			// Pointer buttons come from the root window only, so a click
			// raylib also sees is not counted twice.
			window.x11 = x
			eventSources = []input.Source{input.WithoutPointer(windowSource), x}
		}
	}

	window.controller = input.NewController(ctx, eventSources...)
	window.controller.OnDebugToggle = func() {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}

	return window, nil
}

// attachDesktop pushes the window below the desktop and returns the X11
// connection used to read pointer buttons from the root window.
func (window *Window) attachDesktop() (*platform.X11, error) {
	x, err := platform.InitX11()
	if err != nil {
		return nil, err
	}

	id, err := x.FindWindowByTitle(window.cfg.Window.Title)
	if err != nil {
		x.Close()
		return nil, err
	}
	if err := x.MarkDesktop(id); err != nil {
		x.Close()
		return nil, err
	}
	return x, nil
}

func (window *Window) Run() {
	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

// Update applies the input gathered since the last frame.
func (window *Window) Update() {
	window.controller.Pump()
}

func (window *Window) Draw() {
	rl.ClearBackground(rl.Blank)
	window.ctx.Frame()

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.ctx)
	}
}

func (window *Window) Close() {
	if window.x11 != nil {
		window.x11.Close()
	}
	window.ctx.Close()
	window.gpu.Close()
	rl.CloseWindow()
	utils.Info("Window: Closed")
}
