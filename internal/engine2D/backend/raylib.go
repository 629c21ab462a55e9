// Package backend draws engine2D scenes with raylib.
package backend

import (
	"fmt"
	"math"

	"wavescene/internal/config"
	"wavescene/internal/engine2D"
	"wavescene/internal/engine2D/shader"
	"wavescene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type renderSurface struct {
	target rl.RenderTexture2D
	size   int
}

func (s *renderSurface) Size() int { return s.size }

// Raylib implements engine2D.GPU. It must be created after rl.InitWindow.
type Raylib struct {
	camera     rl.Camera3D
	projection rl.Matrix
	viewport   engine2D.Viewport
	ClearColor rl.Color

	meshes    map[*engine2D.Geometry]rl.Mesh
	materials map[*shader.Program]rl.Material
}

func NewRaylib(cam config.Camera) *Raylib {
	return &Raylib{
		camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, float32(cam.Distance)),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			float32(cam.FovY),
			rl.CameraPerspective,
		),
		// Every pass renders into a square, so the aspect is fixed at 1.
		projection: rl.MatrixPerspective(float32(cam.FovY*math.Pi/180), 1, float32(cam.Near), float32(cam.Far)),
		ClearColor: rl.Blank,
		meshes:     make(map[*engine2D.Geometry]rl.Mesh),
		materials:  make(map[*shader.Program]rl.Material),
	}
}

func (r *Raylib) LinkProgram(kind engine2D.ProgramKind, name, vertex, fragment string) (engine2D.Program, error) {
	program, err := shader.LoadProgram(kind, name, vertex, fragment)
	if err != nil {
		return nil, err
	}

	material := rl.LoadMaterialDefault()
	material.Shader = program.Shader
	r.materials[program] = material
	return program, nil
}

func (r *Raylib) UnloadProgram(p engine2D.Program) {
	program, ok := p.(*shader.Program)
	if !ok {
		return
	}
	// The material is dropped rather than unloaded: rl.UnloadMaterial would
	// also free whatever surface texture is still bound to its diffuse map.
	delete(r.materials, program)
	program.Unload()
}

func (r *Raylib) CreateSurface(size int) (engine2D.Surface, error) {
	target := rl.LoadRenderTexture(int32(size), int32(size))
	if target.ID == 0 {
		return nil, fmt.Errorf("render texture %dx%d: framebuffer not created", size, size)
	}
	rl.SetTextureFilter(target.Texture, rl.FilterBilinear)
	utils.Debug("Backend: Render texture %d created (%dx%d)", target.ID, size, size)
	return &renderSurface{target: target, size: size}, nil
}

func (r *Raylib) DestroySurface(s engine2D.Surface) {
	surface, ok := s.(*renderSurface)
	if !ok {
		return
	}
	rl.UnloadRenderTexture(surface.target)
}

func (r *Raylib) SetViewport(v engine2D.Viewport) {
	r.viewport = v
}

func (r *Raylib) RenderToSurface(scene *engine2D.Scene, target engine2D.Surface) {
	surface, ok := target.(*renderSurface)
	if !ok {
		return
	}

	rl.BeginTextureMode(surface.target)
	rl.ClearBackground(r.ClearColor)
	r.beginCamera()
	r.drawScene(scene)
	rl.EndMode3D()
	rl.EndTextureMode()
}

// RenderToScreen draws into the centred square of the current framebuffer.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (r *Raylib) RenderToScreen(scene *engine2D.Scene) {
	renderW, renderH := rl.GetRenderWidth(), rl.GetRenderHeight()
	x, y, size := r.screenSquare(renderW, renderH)

	rl.Viewport(x, y, size, size)
	r.beginCamera()
	r.drawScene(scene)
	rl.EndMode3D()
	rl.Viewport(0, 0, int32(renderW), int32(renderH))
}

// screenSquare maps the logical viewport to framebuffer pixels, origin at the
// bottom-left as GL expects.
func (r *Raylib) screenSquare(renderW, renderH int) (x, y, size int32) {
	fbScale := 1.0
	if w := rl.GetScreenWidth(); w > 0 {
		fbScale = float64(renderW) / float64(w)
	}

	s := math.Round(float64(r.viewport.Size) * fbScale)
	offX := math.Round(float64(r.viewport.OffsetX) * fbScale)
	offY := math.Round(float64(r.viewport.OffsetY) * fbScale)

	return int32(offX), int32(float64(renderH) - offY - s), int32(s)
}

func (r *Raylib) beginCamera() {
	rl.BeginMode3D(r.camera)
	rl.SetMatrixProjection(r.projection)
}

func (r *Raylib) mesh(g *engine2D.Geometry) rl.Mesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	m := rl.GenMeshPlane(float32(g.Size), float32(g.Size), g.Segments, g.Segments)
	r.meshes[g] = m
	utils.Debug("Backend: Uploaded plane %.1f with %d segments (%d vertices)", g.Size, g.Segments, m.VertexCount)
	return m
}

// transform stands the XZ plane up to face the camera, then applies the
// drawable's scale.
func transform(scale engine2D.Vec2) rl.Matrix {
	return rl.MatrixMultiply(
		rl.MatrixRotateX(math.Pi/2),
		rl.MatrixScale(float32(scale.X), float32(scale.Y), 1),
	)
}

func (r *Raylib) drawScene(scene *engine2D.Scene) {
	for _, d := range scene.Drawables() {
		program, ok := d.Material.Program.(*shader.Program)
		if !ok {
			continue
		}
		material, ok := r.materials[program]
		if !ok {
			continue
		}

		shader.ApplyParams(program, d.Material.Params)

		diffuse := material.GetMap(int32(rl.MapDiffuse))
		if surface, ok := d.Material.Params.Texture.(*renderSurface); ok {
			diffuse.Texture = surface.target.Texture
		}

		if d.Material.DoubleSided {
			rl.DisableBackfaceCulling()
		}
		rl.DrawMesh(r.mesh(d.Geometry), material, transform(d.Scale))
		if d.Material.DoubleSided {
			rl.EnableBackfaceCulling()
		}
	}
}

// Close frees the uploaded meshes. Programs and surfaces are released by
// their owners.
func (r *Raylib) Close() {
	for g, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, g)
	}
}
