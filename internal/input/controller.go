// Package input turns window events into render-context state changes.
package input

import "wavescene/internal/utils"

// Event is one of WheelEvent, ClickEvent, ResizeEvent or KeyEvent.
type Event interface {
	isEvent()
}

// WheelEvent carries a scroll delta with the browser sign convention:
// negative DeltaY means the wheel moved up.
type WheelEvent struct {
	DeltaY float64
}

type ClickEvent struct{}

// ResizeEvent reports the new logical window size and device pixel ratio.
type ResizeEvent struct {
	Width, Height int
	PixelRatio    float64
}

// KeyEvent reports a pressed key by name.
type KeyEvent struct {
	Key string
}

func (WheelEvent) isEvent()  {}
func (ClickEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (KeyEvent) isEvent()    {}

// KeyDebug toggles the debug overlay.
const KeyDebug = "F8"

// Target is the state the controller drives. *engine2D.RenderContext satisfies it.
type Target interface {
	Wheel(deltaY float64)
	Click()
	Resize(width, height int, pixelRatio float64) error
}

// Source produces the events that arrived since the previous poll.
type Source interface {
	Poll(events []Event) []Event
}

// PointerFilter drops wheel and click events from a source whose pointer
// input is already reported by another one.
type PointerFilter struct {
	Source Source
	buf    []Event
}

func WithoutPointer(src Source) *PointerFilter {
	return &PointerFilter{Source: src}
}

func (f *PointerFilter) Poll(events []Event) []Event {
	f.buf = f.Source.Poll(f.buf[:0])
	for _, ev := range f.buf {
		switch ev.(type) {
		case WheelEvent, ClickEvent:
			continue
		}
		events = append(events, ev)
	}
	return events
}

type Controller struct {
	target  Target
	sources []Source
	buf     []Event

	// OnDebugToggle runs when the debug key is pressed.
	OnDebugToggle func()
}

func NewController(target Target, sources ...Source) *Controller {
	return &Controller{target: target, sources: sources}
}

// Dispatch applies one event and reports whether it was consumed. Wheel
// events are always consumed so the host never scrolls.
func (c *Controller) Dispatch(ev Event) bool {
	switch e := ev.(type) {
	case WheelEvent:
		c.target.Wheel(e.DeltaY)
		return true
	case ClickEvent:
		c.target.Click()
		return true
	case ResizeEvent:
		if err := c.target.Resize(e.Width, e.Height, e.PixelRatio); err != nil {
			utils.Error("Input: Resize to %dx%d failed: %v", e.Width, e.Height, err)
		}
		return true
	case KeyEvent:
		if e.Key == KeyDebug && c.OnDebugToggle != nil {
			c.OnDebugToggle()
			return true
		}
	}
	return false
}

// Pump polls every source and dispatches the events in arrival order. It
// runs to completion before the next frame is drawn.
func (c *Controller) Pump() int {
	c.buf = c.buf[:0]
	for _, src := range c.sources {
		c.buf = src.Poll(c.buf)
	}
	for _, ev := range c.buf {
		c.Dispatch(ev)
	}
	return len(c.buf)
}
