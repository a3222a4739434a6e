package integrator

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/material"
	"github.com/df07/go-manylight-renderer/pkg/scene"
)

const (
	// rayEpsilon offsets rays leaving a surface
	rayEpsilon = 1e-4
	// shadowEpsilon shortens shadow rays so the light's own surface never occludes it
	shadowEpsilon = 1e-4
	// DefaultMaxSpecularDepth bounds the delta bounces of a camera path
	DefaultMaxSpecularDepth = 10
)

// Scene is what the integrator needs from the scene: ray queries, the
// camera and the background
type Scene interface {
	Intersect(ray core.Ray) (*material.SurfaceInteraction, bool)
	IntersectAny(ray core.Ray, tMax float64) bool
	BoundingBox() core.AABB
	GenerateRay(u, v float64, lens core.Vec2) core.Ray
	Background() scene.Background
}

// GatherPoint is the first smooth surface reached by a camera sample
type GatherPoint struct {
	X, Y        int                         // Pixel in shoot order, Y counts rows from the bottom
	SI          material.SurfaceInteraction // Surface at the gather point
	Wo          core.Vec3                   // Direction back along the camera path
	Weight      core.Vec3                   // Throughput of the specular chain
	Emission    core.Vec3                   // Radiance emitted toward Wo
	SampleIndex int
	Strength    float64 // 1 / samples per pixel
}

// BackgroundPixel is a camera sample that left the scene
type BackgroundPixel struct {
	X, Y     int
	Radiance core.Vec3 // Background radiance times the specular throughput
	Strength float64
}

// pathOutcome is how a specular chain ended
type pathOutcome int

const (
	outcomeSurface    pathOutcome = iota // reached a smooth surface
	outcomeBackground                    // escaped the scene
	outcomeExhausted                     // ran out of specular depth
	outcomeLost                          // absorbed or zero throughput
)

// specularPath is the result of following a camera ray through delta bounces
type specularPath struct {
	outcome    pathOutcome
	si         *material.SurfaceInteraction
	wo         core.Vec3
	throughput core.Vec3
	escape     core.Vec3 // direction of the escaping ray
}

// traceSpecular follows delta bounces until the first surface with a smooth
// component. Camera shooting and scanline rendering share it.
func traceSpecular(s Scene, ray core.Ray, maxDepth int, sampler core.Sampler) specularPath {
	throughput := core.NewVec3(1, 1, 1)
	for depth := 0; ; depth++ {
		si, hit := s.Intersect(ray)
		if !hit {
			return specularPath{outcome: outcomeBackground, throughput: throughput, escape: ray.Direction}
		}

		wo := ray.Direction.Negate()
		if si.Material.HasSmooth() {
			return specularPath{outcome: outcomeSurface, si: si, wo: wo, throughput: throughput}
		}
		if depth >= maxDepth {
			return specularPath{outcome: outcomeExhausted, throughput: throughput, escape: ray.Direction}
		}

		sample, ok := si.Material.SampleCos(wo, si, sampler)
		if !ok || !sample.IsDelta {
			return specularPath{outcome: outcomeLost}
		}
		throughput = throughput.MultiplyVec(sample.Throughput)
		if throughput.IsZero() {
			return specularPath{outcome: outcomeLost}
		}
		ray = core.NewRay(si.Point.Add(sample.Direction.Multiply(rayEpsilon)), sample.Direction)
	}
}
