package shader

import (
	"wavescene/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ApplyParams pushes a drawable's uniform values into its program. Samplers
// are bound through the material maps by the backend, not here.
func ApplyParams(program *Program, params engine2D.Params) {
	shader := program.Shader
	parameters := &program.Parameters

	if parameters.Time != -1 {
		rl.SetShaderValue(shader, parameters.Time, []float32{float32(params.Time)}, rl.ShaderUniformFloat)
	}
	if parameters.Resolution != -1 {
		rl.SetShaderValue(shader, parameters.Resolution, vec2(params.Resolution), rl.ShaderUniformVec2)
	}
}
