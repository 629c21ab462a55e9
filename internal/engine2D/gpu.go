package engine2D

// GPU is the graphics backend the render context drives. All calls happen on
// the render thread.
type GPU interface {
	// LinkProgram compiles a program and resolves its uniforms. Missing
	// required uniforms are reported here rather than at draw time.
	LinkProgram(kind ProgramKind, name, vertex, fragment string) (Program, error)
	UnloadProgram(p Program)

	CreateSurface(size int) (Surface, error)
	DestroySurface(s Surface)

	// SetViewport sizes the on-screen square.
	SetViewport(v Viewport)

	// RenderToSurface clears target's color and depth, then draws scene into it.
	RenderToSurface(scene *Scene, target Surface)
	// RenderToScreen draws scene into the on-screen square.
	RenderToScreen(scene *Scene)
}
