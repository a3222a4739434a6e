package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

func TestQuadSource_DirectLightsIntegrateEmitter(t *testing.T) {
	radiance := core.NewVec3(4, 2, 1)
	source := NewQuadSource(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 2), radiance)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	lights := source.DirectLights(9, sampler)
	if len(lights) != 9 {
		t.Fatalf("Expected 9 lights, got %d", len(lights))
	}

	var total core.Vec3
	for _, l := range lights {
		oriented, ok := l.(OrientedLight)
		if !ok {
			t.Fatalf("Expected oriented light, got %T", l)
		}
		if oriented.Normal != source.Normal {
			t.Errorf("Light normal %v differs from quad normal %v", oriented.Normal, source.Normal)
		}
		if oriented.Position.Y != 2 {
			t.Errorf("Light %v is not on the quad", oriented.Position)
		}
		total = total.Add(oriented.Radiance)
	}

	want := radiance.Multiply(source.Area)
	if total.Subtract(want).Length() > 1e-9 {
		t.Errorf("Summed radiance %v, expected radiance*area %v", total, want)
	}
}

func TestSources_PointLike(t *testing.T) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	point := NewPointSource(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))
	if got := point.DirectLights(16, sampler); len(got) != 1 || got[0].Kind() != KindOmni {
		t.Errorf("Point source should produce one omni light, got %v", got)
	}

	sun := NewDirectionalSource(core.NewVec3(0, -2, 0), core.NewVec3(1, 1, 1))
	got := sun.DirectLights(16, sampler)
	if len(got) != 1 || got[0].Kind() != KindDirectional {
		t.Fatalf("Directional source should produce one directional light, got %v", got)
	}
	if n := got[0].(DirLight).Normal; math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Directional light normal should be unit length, got %v", n)
	}
}

func TestDirectionalSource_EmissionCoversBounds(t *testing.T) {
	sun := NewDirectionalSource(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1))
	bounds := core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	for i := 0; i < 100; i++ {
		sample, ok := sun.SampleEmission(bounds, sampler)
		if !ok {
			t.Fatal("Expected an emission sample")
		}
		if sample.Ray.Origin.Y <= bounds.Max.Y {
			t.Fatalf("Emission origin %v should start above the scene", sample.Ray.Origin)
		}
		if sample.Ray.Direction != sun.Direction {
			t.Fatalf("Emission direction %v, expected %v", sample.Ray.Direction, sun.Direction)
		}
	}

	if _, ok := sun.SampleEmission(core.EmptyAABB(), sampler); ok {
		t.Error("Empty bounds should not produce an emission sample")
	}
}
