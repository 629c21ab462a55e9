package shader

import (
	"wavescene/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func vec2(v engine2D.Vec2) []float32 {
	return []float32{float32(v.X), float32(v.Y)}
}

// BindSampler points the material's diffuse slot at the program's sampler
// uniform, so raylib binds the diffuse texture to it on every draw.
func BindSampler(program *Program) {
	if program.Parameters.Texture == -1 {
		return
	}
	program.Shader.UpdateLocation(int32(rl.ShaderLocMapDiffuse), program.Parameters.Texture)
}
