package scene

import (
	"math"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/google/go-cmp/cmp"
)

func TestRegistry_BuildsEveryScene(t *testing.T) {
	want := []string{"cornell", "default", "sphere", "spheregrid"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Fatalf("unexpected scene names (-want +got):\n%s", diff)
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			if s.BVH == nil {
				t.Fatal("Scene was not preprocessed")
			}
			if len(s.Sources) == 0 {
				t.Error("Scene has no light sources")
			}
			if s.BoundingBox().IsEmpty() {
				t.Error("Scene has empty bounds")
			}

			// The center of the frame should see geometry in every built-in scene
			ray := s.GenerateRay(0.5, 0.5, core.NewVec2(0.5, 0.5))
			if _, hit := s.Intersect(ray); !hit {
				t.Error("Center camera ray missed the scene")
			}
		})
	}
}

func TestRegistry_UnknownScene(t *testing.T) {
	if _, err := New("nope"); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}

func TestScene_CameraOverride(t *testing.T) {
	s, err := New("sphere", geometry.CameraConfig{AspectRatio: 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.AspectRatio != 2 || s.CameraConfig.VFov != 35 {
		t.Errorf("Override not merged: %+v", s.CameraConfig)
	}
}

func TestScene_IntersectAny(t *testing.T) {
	s := NewScene("test", geometry.CameraConfig{Center: core.NewVec3(0, 0, 5), VFov: 40})
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil))
	s.Preprocess()

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if !s.IntersectAny(ray, 10) {
		t.Error("Sphere should block the ray")
	}
	if s.IntersectAny(ray, 3.5) {
		t.Error("Sphere lies beyond tMax")
	}

	si, hit := s.Intersect(ray)
	if !hit || math.Abs(si.T-4) > 1e-9 {
		t.Errorf("Expected hit at t=4, got %v", si)
	}
}

func TestBackgrounds(t *testing.T) {
	gradient := GradientBackground{Top: core.NewVec3(0, 0, 1), Bottom: core.NewVec3(1, 0, 0)}
	tests := []struct {
		name      string
		direction core.Vec3
		want      core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)},
		{"straight down", core.NewVec3(0, -3, 0), core.NewVec3(1, 0, 0)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.5, 0, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gradient.Radiance(tt.direction)
			if got.Subtract(tt.want).Length() > 1e-12 {
				t.Errorf("Radiance(%v) = %v, want %v", tt.direction, got, tt.want)
			}
		})
	}

	constant := ConstantBackground{Color: core.NewVec3(0.2, 0.3, 0.4)}
	if constant.Radiance(core.NewVec3(0, 1, 0)) != constant.Color {
		t.Error("Constant background should ignore the direction")
	}
}
