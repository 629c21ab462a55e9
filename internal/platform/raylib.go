// Package platform owns the raylib window and the event sources that feed
// the input controller.
package platform

import (
	"wavescene/internal/config"
	"wavescene/internal/input"
	"wavescene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OpenWindow creates the raylib window described by cfg.
func OpenWindow(cfg config.Window) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagWindowTransparent)
	if cfg.Antialias {
		flags |= rl.FlagMsaa4xHint
	}
	if cfg.Wallpaper {
		flags |= rl.FlagWindowUndecorated
	}
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	if cfg.Wallpaper {
		monitor := rl.GetCurrentMonitor()
		rl.SetWindowPosition(0, 0)
		rl.SetWindowSize(rl.GetMonitorWidth(monitor), rl.GetMonitorHeight(monitor))
	}

	utils.Info("Window: %dx%d opened (ratio %.2f)", rl.GetScreenWidth(), rl.GetScreenHeight(), PixelRatio())
}

// PixelRatio is the device pixel ratio of the window's monitor.
func PixelRatio() float64 {
	scale := rl.GetWindowScaleDPI()
	if scale.X <= 0 {
		return 1
	}
	return float64(scale.X)
}

// WindowSource reports input the raylib window received this frame.
type WindowSource struct {
	width, height int
	ratio         float64
}

func NewWindowSource() *WindowSource {
	return &WindowSource{
		width:  rl.GetScreenWidth(),
		height: rl.GetScreenHeight(),
		ratio:  PixelRatio(),
	}
}

func (s *WindowSource) Poll(events []input.Event) []input.Event {
	// raylib reports wheel-up as positive; events use the browser sign.
	if move := rl.GetMouseWheelMove(); move != 0 {
		events = append(events, input.WheelEvent{DeltaY: -float64(move)})
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		events = append(events, input.ClickEvent{})
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		events = append(events, input.KeyEvent{Key: input.KeyDebug})
	}

	width, height, ratio := rl.GetScreenWidth(), rl.GetScreenHeight(), PixelRatio()
	if rl.IsWindowResized() || width != s.width || height != s.height || ratio != s.ratio {
		s.width, s.height, s.ratio = width, height, ratio
		events = append(events, input.ResizeEvent{Width: width, Height: height, PixelRatio: ratio})
	}

	return events
}
