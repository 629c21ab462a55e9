package engine2D

import (
	"errors"
	"fmt"
)

type fakeProgram struct {
	kind ProgramKind
	name string
}

func (p *fakeProgram) Kind() ProgramKind { return p.kind }
func (p *fakeProgram) Name() string      { return p.name }

type fakeSurface struct {
	id   int
	size int
}

func (s *fakeSurface) Size() int { return s.size }

// drawCall snapshots what a pass saw when it ran.
type drawCall struct {
	pass    string
	scene   string
	target  Surface
	times   []float64
	scales  []Vec2
	sampled []Surface
}

type fakeGPU struct {
	calls       []drawCall
	created     []*fakeSurface
	destroyed   []Surface
	unloaded    []Program
	viewports   []Viewport
	linkErr     map[ProgramKind]error
	createErr   error
	nextSurface int
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{linkErr: map[ProgramKind]error{}}
}

func (g *fakeGPU) LinkProgram(kind ProgramKind, name, vertex, fragment string) (Program, error) {
	if err := g.linkErr[kind]; err != nil {
		return nil, err
	}
	if vertex == "" || fragment == "" {
		return nil, errors.New("empty source")
	}
	return &fakeProgram{kind: kind, name: name}, nil
}

func (g *fakeGPU) UnloadProgram(p Program) {
	g.unloaded = append(g.unloaded, p)
}

func (g *fakeGPU) CreateSurface(size int) (Surface, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextSurface++
	s := &fakeSurface{id: g.nextSurface, size: size}
	g.created = append(g.created, s)
	return s, nil
}

func (g *fakeGPU) DestroySurface(s Surface) {
	g.destroyed = append(g.destroyed, s)
}

func (g *fakeGPU) SetViewport(v Viewport) {
	g.viewports = append(g.viewports, v)
}

func (g *fakeGPU) record(pass string, scene *Scene, target Surface) {
	call := drawCall{pass: pass, scene: scene.Name, target: target}
	for _, d := range scene.Drawables() {
		call.times = append(call.times, d.Material.Params.Time)
		call.scales = append(call.scales, d.Scale)
		call.sampled = append(call.sampled, d.Material.Params.Texture)
	}
	g.calls = append(g.calls, call)
}

func (g *fakeGPU) RenderToSurface(scene *Scene, target Surface) {
	g.record("surface", scene, target)
}

func (g *fakeGPU) RenderToScreen(scene *Scene) {
	g.record("screen", scene, nil)
}

func (g *fakeGPU) String() string {
	return fmt.Sprintf("fakeGPU{calls: %d, surfaces: %d}", len(g.calls), len(g.created))
}
