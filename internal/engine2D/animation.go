package engine2D

import "math"

// Zoom eases Current toward Target by a fixed fraction every frame.
type Zoom struct {
	Target  float64
	Current float64
	Min     float64
	Max     float64
	Speed   float64
	Step    float64
}

func (z *Zoom) clamp(v float64) float64 {
	return math.Max(z.Min, math.Min(z.Max, v))
}

// Nudge moves Target one step against the sign of deltaY: a negative
// (wheel-up) delta zooms in. A zero delta leaves Target unchanged.
func (z *Zoom) Nudge(deltaY float64) {
	var sign float64
	switch {
	case deltaY > 0:
		sign = 1
	case deltaY < 0:
		sign = -1
	default:
		return
	}
	z.Target = z.clamp(z.Target - sign*z.Step)
}

// Advance moves Current a Speed fraction of the remaining distance to Target.
func (z *Zoom) Advance() float64 {
	z.Current += (z.Target - z.Current) * z.Speed
	return z.Current
}

// Animation is the per-frame state read by the render loop.
type Animation struct {
	ElapsedTime       float64
	TimeStep          float64
	Zoom              Zoom
	DisplayBothLayers bool
	ToggleCount       int
}

// Tick advances the clock by the fixed step and returns the new time.
func (a *Animation) Tick() float64 {
	a.ElapsedTime += a.TimeStep
	return a.ElapsedTime
}

// Toggle counts a click and returns the resulting display mode.
func (a *Animation) Toggle() bool {
	a.ToggleCount++
	a.DisplayBothLayers = a.ToggleCount%2 == 1
	return a.DisplayBothLayers
}
