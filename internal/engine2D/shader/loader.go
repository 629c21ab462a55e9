package shader

import (
	"fmt"
	"strings"

	"wavescene/internal/engine2D"
	"wavescene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultVersion is prepended to sources that do not declare a GLSL version.
const DefaultVersion = "#version 330"

// Program is a linked raylib shader with its uniform locations resolved.
type Program struct {
	kind       engine2D.ProgramKind
	name       string
	Shader     rl.Shader
	Parameters Parameters
}

func (p *Program) Kind() engine2D.ProgramKind { return p.kind }
func (p *Program) Name() string               { return p.name }

// PreprocessShader strips a byte order mark and makes sure the source opens
// with a #version directive.
func PreprocessShader(source string) string {
	source = strings.TrimPrefix(source, "\ufeff")
	trimmed := strings.TrimLeft(source, " \t\r\n")
	if strings.HasPrefix(trimmed, "#version") {
		return trimmed
	}

	var sb strings.Builder
	sb.WriteString(DefaultVersion)
	sb.WriteString("\n")
	sb.WriteString(source)
	return sb.String()
}

// LoadProgram compiles a vertex/fragment pair and resolves its uniforms.
// Compiler diagnostics arrive through raylib's trace log.
func LoadProgram(kind engine2D.ProgramKind, name, vertex, fragment string) (*Program, error) {
	if strings.TrimSpace(vertex) == "" || strings.TrimSpace(fragment) == "" {
		return nil, fmt.Errorf("shader %s: vertex and fragment sources are required", name)
	}

	vSource := PreprocessShader(vertex)
	fSource := PreprocessShader(fragment)

	utils.Debug("Shader: Compiling %s (%s)", name, kind)

	var shader rl.Shader
	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("shader %s: compilation panic: %v", name, r)
			}
		}()
		shader = rl.LoadShaderFromMemory(vSource, fSource)
	}()
	if panicErr != nil {
		return nil, panicErr
	}

	if shader.ID == 0 {
		return nil, fmt.Errorf("shader %s: failed to compile or link", name)
	}

	params := ResolveShaderLocations(shader)
	if err := params.Validate(kind); err != nil {
		rl.UnloadShader(shader)
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}

	program := &Program{kind: kind, name: name, Shader: shader, Parameters: params}
	BindSampler(program)

	utils.Info("Shader: %s - Loaded successfully (ID: %d)", name, shader.ID)
	return program, nil
}

// Unload releases the GPU program.
func (p *Program) Unload() {
	if p == nil || p.Shader.ID == 0 {
		return
	}
	rl.UnloadShader(p.Shader)
	p.Shader = rl.Shader{}
}
