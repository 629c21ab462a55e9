package shader

import (
	"errors"
	"fmt"

	"wavescene/internal/engine2D"
	"wavescene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrMissingUniform is returned when a program lacks a uniform it must expose.
var ErrMissingUniform = errors.New("required uniform missing")

// Uniform names shared by both programs.
const (
	UniformTime       = "uTime"
	UniformResolution = "resolution"
	UniformTexture    = "tDiffuse"
)

// Parameters holds resolved uniform locations; -1 means the program does not
// use that uniform.
type Parameters struct {
	Time       int32
	Resolution int32
	Texture    int32
}

// ResolveShaderLocations queries a shader for every uniform the scene sets.
func ResolveShaderLocations(shader rl.Shader) Parameters {
	return Parameters{
		Time:       rl.GetShaderLocation(shader, UniformTime),
		Resolution: rl.GetShaderLocation(shader, UniformResolution),
		Texture:    rl.GetShaderLocation(shader, UniformTexture),
	}
}

// Validate checks the locations a program of the given kind needs. GLSL
// compilers drop unused uniforms, so only the ones the pipeline depends on
// are required.
func (p Parameters) Validate(kind engine2D.ProgramKind) error {
	if p.Time == -1 {
		return fmt.Errorf("%s program: %w: %s", kind, ErrMissingUniform, UniformTime)
	}
	if kind == engine2D.ProgramComposite && p.Texture == -1 {
		return fmt.Errorf("%s program: %w: %s", kind, ErrMissingUniform, UniformTexture)
	}
	if p.Resolution == -1 {
		utils.Debug("Shader: %s program does not use %s", kind, UniformResolution)
	}
	return nil
}
