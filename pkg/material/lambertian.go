package material

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

func (l *Lambertian) HasDelta() bool  { return false }
func (l *Lambertian) HasSmooth() bool { return true }

// EvalSmoothCos returns albedo/π * cos(wi, n), zero below the surface
func (l *Lambertian) EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3 {
	cosTheta := wi.Dot(si.Normal)
	if cosTheta <= 0 || wo.Dot(si.Normal) <= 0 {
		return core.Vec3{}
	}
	albedo := l.Albedo.At(si)
	return albedo.Multiply(cosTheta / math.Pi)
}

// SampleCos draws a cosine-weighted direction; the throughput reduces to the albedo
func (l *Lambertian) SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool) {
	wi := core.SampleCosineHemisphere(si.Normal, sampler.Get2D()).Normalize()
	cosTheta := wi.Dot(si.Normal)
	if cosTheta <= 0 {
		return BSDFSample{}, false
	}

	return BSDFSample{
		Direction:  wi,
		Throughput: l.Albedo.At(si),
		PDF:        cosTheta / math.Pi,
	}, true
}

// Emission is zero for reflective surfaces
func (l *Lambertian) Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}
