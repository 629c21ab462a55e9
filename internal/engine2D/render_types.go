package engine2D

// Vec2 is a pair of floats used for scales and shader resolution values.
type Vec2 struct {
	X, Y float64
}

// Geometry describes the flat subdivided square every drawable is built on.
// It is created once and never mutated; backends upload it on first use and
// key their GPU copy by pointer.
type Geometry struct {
	Size     float64
	Segments int
}

func NewGeometry(size float64, segments int) *Geometry {
	return &Geometry{Size: size, Segments: segments}
}

// ProgramKind identifies which of the two shader programs a material uses.
type ProgramKind uint8

const (
	ProgramWave      ProgramKind = iota // wave generator, drawn offscreen
	ProgramComposite                    // ping-pong composite, reads the offscreen surface
)

func (k ProgramKind) String() string {
	switch k {
	case ProgramWave:
		return "wave"
	case ProgramComposite:
		return "composite"
	}
	return "unknown"
}

// Program is a linked GPU program. Backends return their own implementation
// and type-assert it back when drawing.
type Program interface {
	Kind() ProgramKind
	Name() string
}

// Surface is a square offscreen color+depth target.
type Surface interface {
	Size() int
}

// Params is the typed uniform block shared by both programs.
type Params struct {
	Time       float64
	Resolution Vec2
	// Texture is the surface sampled by the composite program; nil for the wave.
	Texture Surface
}

// Material is a program plus this drawable's own parameter values.
type Material struct {
	Program     Program
	Params      Params
	DoubleSided bool
}
