package engine2D

// Drawable is the unit of rendering: shared geometry, an owned material and a scale.
type Drawable struct {
	Name     string
	Geometry *Geometry
	Material Material
	Scale    Vec2

	scene *Scene
}

func NewDrawable(name string, geometry *Geometry, material Material) *Drawable {
	return &Drawable{
		Name:     name,
		Geometry: geometry,
		Material: material,
		Scale:    Vec2{X: 1, Y: 1},
	}
}

// CloneDrawable builds a detached copy of src. The geometry handle is shared;
// material parameters and scale are copied by value.
func CloneDrawable(src *Drawable, name string) *Drawable {
	return &Drawable{
		Name:     name,
		Geometry: src.Geometry,
		Material: src.Material,
		Scale:    src.Scale,
	}
}

// Scene returns the scene that currently owns the drawable, or nil.
func (d *Drawable) Scene() *Scene {
	return d.scene
}
