package lights

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// QuadSource is a rectangular area emitter. The embedded quad carries an
// emissive material so camera rays see the light.
type QuadSource struct {
	*geometry.Quad
	Radiance core.Vec3
	Area     float64
}

// NewQuadSource creates a one-sided quad emitter facing along u × v
func NewQuadSource(corner, u, v, radiance core.Vec3) *QuadSource {
	quad := geometry.NewQuad(corner, u, v, material.NewEmissive(radiance))
	return &QuadSource{
		Quad:     quad,
		Radiance: radiance,
		Area:     quad.Area(),
	}
}

// DirectLights places n oriented lights on a stratified grid over the quad.
// Each carries radiance * area / n so together they integrate the emitter.
func (q *QuadSource) DirectLights(n int, sampler core.Sampler) []Light {
	n = max(1, n)
	strata := core.StrataFor(n)
	radiance := q.Radiance.Multiply(q.Area / float64(n))

	result := make([]Light, 0, n)
	for i := 0; i < n; i++ {
		uv := core.StratifiedSample(i, strata, sampler.Get2D())
		result = append(result, OrientedLight{
			Position: q.PointAt(uv.X, uv.Y),
			Normal:   q.Normal,
			Radiance: radiance,
		})
	}
	return result
}

// SampleEmission samples a uniform point and a cosine-weighted direction
func (q *QuadSource) SampleEmission(bounds core.AABB, sampler core.Sampler) (EmissionSample, bool) {
	if q.Area <= 0 {
		return EmissionSample{}, false
	}
	uv := sampler.Get2D()
	point := q.PointAt(uv.X, uv.Y)
	direction := core.SampleCosineHemisphere(q.Normal, sampler.Get2D()).Normalize()

	// Le * cos / ((1/A) * (cos/π)) = Le * A * π
	return EmissionSample{
		Ray:    core.NewRay(point, direction),
		Weight: q.Radiance.Multiply(q.Area * math.Pi),
	}, true
}

func (q *QuadSource) Power(bounds core.AABB) float64 {
	return math.Pi * q.Area * q.Radiance.Luminance()
}
