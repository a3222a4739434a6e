package renderer

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/integrator"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/material"
	"github.com/df07/go-manylight-renderer/pkg/scene"
	"github.com/google/go-cmp/cmp"
)

// headlightScene is a diffuse sphere lit by a point light at the camera, so
// every visible surface point receives light
func headlightScene() *scene.Scene {
	eye := core.NewVec3(0, 0, 4)
	s := scene.NewScene("headlight", geometry.CameraConfig{
		Center:      eye,
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1,
		VFov:        35,
	})
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, 0, 0), 1,
		material.NewLambertian(core.NewVec3(0.7, 0.6, 0.5))))
	s.AddPointLight(eye, core.NewVec3(10, 10, 10))
	s.Sky = scene.ConstantBackground{Color: core.NewVec3(0.1, 0.2, 0.3)}
	s.Preprocess()
	return s
}

func smallConfig() Config {
	config := DefaultConfig()
	config.Width = 24
	config.Height = 20
	config.SamplesPerPixel = 1
	config.IndirectLights = 0
	config.GroupCount = 16
	config.NeighborCount = 4
	config.ClusterBudget = 8
	config.NumWorkers = 4
	config.Seed = 7
	return config
}

func render(t *testing.T, s *scene.Scene, config Config) *Result {
	t.Helper()
	r, err := NewRenderer(s, config, nil)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	result, err := r.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return result
}

func TestRender_SingleLightMatchesDirectLighting(t *testing.T) {
	s := headlightScene()
	config := smallConfig()
	config.RecordCutSize = true
	result := render(t, s, config)

	if result.Lights.Len() != 1 {
		t.Fatalf("expected one virtual light, got %s", result.Lights)
	}
	for g, cut := range result.Cuts {
		want := []lights.ScaledLight{{LightIndex: 0, Weight: core.NewVec3(1, 1, 1)}}
		if diff := cmp.Diff(want, cut); diff != "" {
			t.Fatalf("group %d cut (-want +got):\n%s", g, diff)
		}
	}

	// Shoot again and evaluate the light directly at every sample
	shot, err := integrator.Shoot(context.Background(), core.SerialRunner{}, s, config.Width, config.Height, 1,
		integrator.ShootOptions{MaxSpecularDepth: config.MaxSpecularDepth, Seed: config.Seed})
	if err != nil {
		t.Fatal(err)
	}
	clamp := integrator.ClampDistanceSquared(s.BoundingBox(), config.MinClampFraction)
	want := NewImage(config.Width, config.Height, false)
	for _, p := range shot.Points {
		c := integrator.LightContribution(s, result.Lights.At(0), &p.SI, p.Wo, clamp)
		want.Add(p.X, config.Height-1-p.Y, c.Add(p.Emission).MultiplyVec(p.Weight).Multiply(p.Strength))
	}
	for _, b := range shot.Background {
		want.Add(b.X, config.Height-1-b.Y, b.Radiance.Multiply(b.Strength))
	}

	for row := 0; row < config.Height; row++ {
		for x := 0; x < config.Width; x++ {
			got, expected := result.Image.At(x, row), want.At(x, row)
			if math.Abs(got.X-expected.X) > 1e-5 || math.Abs(got.Y-expected.Y) > 1e-5 || math.Abs(got.Z-expected.Z) > 1e-5 {
				t.Errorf("pixel %d,%d = %v, want %v", x, row, got, expected)
			}
		}
	}

	// Every ray is either a gather point or a background sample
	stats := result.Stats
	if stats.GatherPoints+stats.Background != stats.Rays {
		t.Errorf("gather points %d + background %d != rays %d", stats.GatherPoints, stats.Background, stats.Rays)
	}
	if stats.GatherPoints == 0 || stats.Background == 0 {
		t.Errorf("expected both sphere and background samples: %+v", stats)
	}
	for i, n := range result.Image.CutSizes {
		if n > 1 {
			t.Errorf("pixel %d evaluated %d lights", i, n)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	s, err := scene.New("cornell")
	if err != nil {
		t.Fatal(err)
	}
	config := smallConfig()
	config.IndirectLights = 300
	config.DirectLightsPerSource = 16
	config.SamplesPerPixel = 2

	first := render(t, s, config)
	config.NumWorkers = 1
	second := render(t, s, config)

	if diff := cmp.Diff(first.Image, second.Image); diff != "" {
		t.Errorf("images differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Cuts, second.Cuts); diff != "" {
		t.Errorf("cuts differ between runs (-first +second):\n%s", diff)
	}
}

func TestRender_Variants(t *testing.T) {
	s, err := scene.New("cornell")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"light groups", func(c *Config) { c.LightGroupCount = 4 }},
		{"scanlines", func(c *Config) { c.FinalMode = integrator.FinalScanlines }},
		{"projection", func(c *Config) { c.Cluster.ProjectedDim = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := smallConfig()
			config.IndirectLights = 200
			config.DirectLightsPerSource = 8
			tt.modify(&config)

			result := render(t, s, config)
			if result.Stats.Lights != result.Lights.Len() || result.Lights.Len() == 0 {
				t.Fatalf("unexpected light count %d", result.Stats.Lights)
			}
			if result.Stats.Shaded == 0 {
				t.Error("nothing was shaded")
			}
			for g, cut := range result.Cuts {
				for _, sl := range cut {
					if sl.LightIndex < 0 || sl.LightIndex >= result.Lights.Len() {
						t.Fatalf("group %d references light %d", g, sl.LightIndex)
					}
				}
			}
			if lum := result.Image.AverageLuminance(); !(lum > 0) || math.IsInf(lum, 0) {
				t.Errorf("average luminance %g", lum)
			}
		})
	}
}

func TestRender_NoLights(t *testing.T) {
	s := headlightScene()
	s.Sources = nil
	result := render(t, s, smallConfig())

	if result.Lights.Len() != 0 || result.Stats.Representatives != 0 {
		t.Errorf("expected no lights, got %d lights and %d representatives", result.Lights.Len(), result.Stats.Representatives)
	}
	// Only the background remains
	sky := core.NewVec3(0.1, 0.2, 0.3)
	corner := result.Image.At(0, 0)
	if math.Abs(corner.X-sky.X) > 1e-6 || math.Abs(corner.Y-sky.Y) > 1e-6 || math.Abs(corner.Z-sky.Z) > 1e-6 {
		t.Errorf("corner pixel = %v, want the sky %v", corner, sky)
	}
	center := result.Image.At(12, 10)
	if !center.IsZero() {
		t.Errorf("unlit sphere pixel = %v, want black", center)
	}
}

func TestRender_Cancelled(t *testing.T) {
	r, err := NewRenderer(headlightScene(), smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestNewRenderer_Errors(t *testing.T) {
	if _, err := NewRenderer(nil, DefaultConfig(), nil); err == nil {
		t.Error("expected an error for a nil scene")
	}
	unprocessed := scene.NewScene("raw", geometry.CameraConfig{})
	if _, err := NewRenderer(unprocessed, DefaultConfig(), nil); err == nil {
		t.Error("expected an error for a scene without BVH")
	}
	bad := DefaultConfig()
	bad.Width = 0
	if _, err := NewRenderer(headlightScene(), bad, nil); err == nil {
		t.Error("expected an error for an invalid config")
	}
}

func TestShareBudget(t *testing.T) {
	tests := []struct {
		name   string
		budget int
		sizes  []int
		want   []int
	}{
		{"exact", 10, []int{5, 3, 2}, []int{5, 3, 2}},
		{"leftover to largest", 10, []int{7, 7, 7}, []int{4, 3, 3}},
		{"small groups take from the largest", 10, []int{50, 1, 1, 1}, []int{7, 1, 1, 1}},
		{"more groups than budget", 3, []int{100, 1, 1, 1, 1}, []int{1, 1, 1, 1, 1}},
		{"single group", 300, []int{42}, []int{300}},
		{"no groups", 5, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, shareBudget(tt.budget, tt.sizes)); diff != "" {
				t.Errorf("shareBudget(%d, %v) mismatch (-want +got):\n%s", tt.budget, tt.sizes, diff)
			}
		})
	}
}

func TestShareBudget_SumsToBudget(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		budget := 1 + random.Intn(400)
		sizes := make([]int, 1+random.Intn(30))
		for i := range sizes {
			sizes[i] = 1 + random.Intn(200)
		}

		shares := shareBudget(budget, sizes)
		sum := 0
		for i, n := range shares {
			if n < 1 {
				t.Fatalf("trial %d: group %d got %d representatives", trial, i, n)
			}
			sum += n
		}
		if want := max(budget, len(sizes)); sum != want {
			t.Errorf("trial %d: shares sum to %d, want %d (budget %d, %d groups)", trial, sum, want, budget, len(sizes))
		}
	}
}
