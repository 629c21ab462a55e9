package platform

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"wavescene/internal/input"
	"wavescene/internal/utils"
)

// X11 talks to the X server directly. In wallpaper mode the window sits
// under the desktop and receives no pointer events, so buttons are read from
// the root window instead.
type X11 struct {
	Conn *xgb.Conn
	Root xproto.Window

	// Desktop is the wallpaper window. Buttons are only reported while the
	// pointer is over it; zero reports buttons anywhere on the screen.
	Desktop xproto.Window

	lastMask   uint16
	clickArmed bool
	pollFails  int
}

func InitX11() (*X11, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	x := &X11{Conn: conn, Root: setup.DefaultScreen(conn).Root}

	// Seed the mask so a button held at startup is neither a press nor a click.
	if reply, err := xproto.QueryPointer(conn, x.Root).Reply(); err == nil {
		x.lastMask = reply.Mask
	}
	return x, nil
}

func (x *X11) Close() {
	if x.Conn != nil {
		x.Conn.Close()
	}
}

// onDesktop reports whether child, the top-level window under the pointer,
// is the wallpaper. Over bare root (child 0) the wallpaper is what is visible.
func (x *X11) onDesktop(child xproto.Window) bool {
	return x.Desktop == 0 || child == x.Desktop || child == 0
}

// Poll turns root-window button transitions over the wallpaper into events: a
// button 1 press and release on it is a click, a button 4 or 5 press is a
// wheel notch up or down. Wheel "presses" are momentary, so notches between
// two polls can be missed.
func (x *X11) Poll(events []input.Event) []input.Event {
	reply, err := xproto.QueryPointer(x.Conn, x.Root).Reply()
	if err != nil {
		x.pollFails++
		if x.pollFails == 1 {
			utils.Warn("X11: QueryPointer failed: %v", err)
		}
		return events
	}
	x.pollFails = 0

	mask := reply.Mask
	pressed := mask &^ x.lastMask
	released := x.lastMask &^ mask
	x.lastMask = mask
	over := x.onDesktop(reply.Child)

	if pressed&xproto.ButtonMask1 != 0 {
		x.clickArmed = over
	}
	if !over {
		if released&xproto.ButtonMask1 != 0 {
			x.clickArmed = false
		}
		return events
	}

	if pressed&xproto.ButtonMask4 != 0 {
		events = append(events, input.WheelEvent{DeltaY: -1})
	}
	if pressed&xproto.ButtonMask5 != 0 {
		events = append(events, input.WheelEvent{DeltaY: 1})
	}
	if released&xproto.ButtonMask1 != 0 && x.clickArmed {
		x.clickArmed = false
		events = append(events, input.ClickEvent{})
	}
	return events
}

func (x *X11) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(x.Conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// FindWindowByTitle searches the window manager's client list for a window
// whose WM_NAME equals title.
func (x *X11) FindWindowByTitle(title string) (xproto.Window, error) {
	clientList, err := x.atom("_NET_CLIENT_LIST")
	if err != nil {
		return 0, err
	}

	reply, err := xproto.GetProperty(x.Conn, false, x.Root, clientList, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return 0, fmt.Errorf("read _NET_CLIENT_LIST: %w", err)
	}

	for i := 0; i+4 <= len(reply.Value); i += 4 {
		window := xproto.Window(xgb.Get32(reply.Value[i:]))
		name, err := xproto.GetProperty(x.Conn, false, window, xproto.AtomWmName, xproto.AtomString, 0, 1024).Reply()
		if err != nil {
			continue
		}
		if string(name.Value) == title {
			return window, nil
		}
	}
	return 0, errors.New("window " + title + " not found in _NET_CLIENT_LIST")
}

// MarkDesktop sets _NET_WM_WINDOW_TYPE_DESKTOP so the window manager keeps the
// window below everything else, like a wallpaper.
func (x *X11) MarkDesktop(window xproto.Window) error {
	windowType, err := x.atom("_NET_WM_WINDOW_TYPE")
	if err != nil {
		return err
	}
	desktop, err := x.atom("_NET_WM_WINDOW_TYPE_DESKTOP")
	if err != nil {
		return err
	}

	data := make([]byte, 4)
	xgb.Put32(data, uint32(desktop))
	err = xproto.ChangePropertyChecked(x.Conn, xproto.PropModeReplace, window, windowType, xproto.AtomAtom, 32, 1, data).Check()
	if err != nil {
		return fmt.Errorf("set _NET_WM_WINDOW_TYPE on 0x%x: %w", uint32(window), err)
	}

	x.Desktop = window
	utils.Info("X11: Window 0x%x marked as desktop", uint32(window))
	return nil
}
