package lights

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/material"
	"github.com/google/go-cmp/cmp"
)

// floorTracer is a large diffuse floor at y=0
type floorTracer struct {
	floor *geometry.Quad
}

func newFloorTracer() *floorTracer {
	floor := geometry.NewQuad(core.NewVec3(-50, 0, -50), core.NewVec3(0, 0, 100), core.NewVec3(100, 0, 0),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return &floorTracer{floor: floor}
}

func (f *floorTracer) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	return f.floor.Hit(ray, 1e-4, math.Inf(1))
}

func (f *floorTracer) BoundingBox() core.AABB {
	return f.floor.BoundingBox()
}

func TestGenerator_DirectOnly(t *testing.T) {
	sources := []Source{
		NewPointSource(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)),
		NewQuadSource(core.NewVec3(0, 3, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(5, 5, 5)),
	}
	gen := NewGenerator(newFloorTracer(), sources, GeneratorConfig{DirectLightsPerSource: 4, Seed: 7})

	list := NewLightList()
	stats, err := gen.Generate(context.Background(), 0, list, core.NopReporter{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stats.Direct != 5 || stats.Indirect != 0 || stats.Walks != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	omni, dir, oriented := list.Counts()
	if omni != 1 || dir != 0 || oriented != 4 {
		t.Errorf("Counts() = %d, %d, %d", omni, dir, oriented)
	}
}

func TestGenerator_IndirectLightsOnFloor(t *testing.T) {
	sources := []Source{NewPointSource(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))}
	gen := NewGenerator(newFloorTracer(), sources, GeneratorConfig{Seed: 11, MaxWalkDepth: 4})

	list := NewLightList()
	stats, err := gen.Generate(context.Background(), 100, list, core.NopReporter{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if stats.Indirect != 100 {
		t.Fatalf("Expected 100 indirect lights, got %d", stats.Indirect)
	}
	if stats.Walks < stats.Indirect {
		t.Errorf("Each walk deposits at most one light on a single floor, got %d walks", stats.Walks)
	}

	for _, l := range list.Oriented {
		if math.Abs(l.Position.Y) > 1e-9 {
			t.Errorf("Indirect light %v is not on the floor", l.Position)
		}
		if l.Normal.Y != 1 {
			t.Errorf("Indirect light normal %v should face the emitter", l.Normal)
		}
		if l.Radiance.MaxComponent() <= 0 {
			t.Errorf("Indirect light has no radiance: %v", l.Radiance)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	sources := []Source{NewPointSource(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))}
	run := func() *LightList {
		gen := NewGenerator(newFloorTracer(), sources, GeneratorConfig{Seed: 3})
		list := NewLightList()
		if _, err := gen.Generate(context.Background(), 50, list, core.NopReporter{}); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		return list
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Errorf("Generation is not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	sources := []Source{NewPointSource(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))}
	gen := NewGenerator(newFloorTracer(), sources, GeneratorConfig{Seed: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.Generate(ctx, 10, NewLightList(), core.NopReporter{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
