package engine2D

import (
	"errors"
	"fmt"
)

// ErrForeignDrawable is returned when adding a drawable another scene still owns.
var ErrForeignDrawable = errors.New("drawable belongs to another scene")

// Scene is an ordered set of drawables rendered together in one pass.
type Scene struct {
	Name      string
	drawables []*Drawable
}

func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// Add appends d. Adding a drawable the scene already owns is a no-op.
func (s *Scene) Add(d *Drawable) error {
	switch d.scene {
	case s:
		return nil
	case nil:
	default:
		return fmt.Errorf("add %s to %s: %w (%s)", d.Name, s.Name, ErrForeignDrawable, d.scene.Name)
	}
	d.scene = s
	s.drawables = append(s.drawables, d)
	return nil
}

// Remove detaches d and reports whether it was present.
func (s *Scene) Remove(d *Drawable) bool {
	for i, child := range s.drawables {
		if child == d {
			copy(s.drawables[i:], s.drawables[i+1:])
			s.drawables[len(s.drawables)-1] = nil
			s.drawables = s.drawables[:len(s.drawables)-1]
			d.scene = nil
			return true
		}
	}
	return false
}

// RemoveExcept detaches every drawable other than keep and returns how many
// were removed.
func (s *Scene) RemoveExcept(keep *Drawable) int {
	kept := s.drawables[:0]
	removed := 0
	for _, child := range s.drawables {
		if child == keep {
			kept = append(kept, child)
			continue
		}
		child.scene = nil
		removed++
	}
	for i := len(kept); i < len(s.drawables); i++ {
		s.drawables[i] = nil
	}
	s.drawables = kept
	return removed
}

// Drawables returns the live drawables in draw order. The slice must not be modified.
func (s *Scene) Drawables() []*Drawable {
	return s.drawables
}

func (s *Scene) Len() int {
	return len(s.drawables)
}

func (s *Scene) Contains(d *Drawable) bool {
	return d.scene == s
}
