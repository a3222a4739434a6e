package material

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Tint            core.Vec3 // Transmission color, white for clear glass
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: core.NewVec3(1, 1, 1)}
}

func (d *Dielectric) HasDelta() bool  { return true }
func (d *Dielectric) HasSmooth() bool { return false }

// EvalSmoothCos is always zero, both lobes are delta
func (d *Dielectric) EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// SampleCos picks reflection or refraction with probability equal to the
// Fresnel reflectance, so the throughput is just the tint.
func (d *Dielectric) SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool) {
	refractionRatio := d.RefractiveIndex
	if si.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := wo.Negate().Normalize()
	cosTheta := math.Min(-unitDirection.Dot(si.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	throughput := core.NewVec3(1, 1, 1)
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflect(unitDirection, si.Normal)
	} else {
		direction = refractVector(unitDirection, si.Normal, refractionRatio)
		throughput = d.Tint
	}

	return BSDFSample{
		Direction:  direction.Normalize(),
		Throughput: throughput,
		IsDelta:    true,
	}, true
}

// Emission is zero for glass
func (d *Dielectric) Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// refractVector calculates the refraction of a vector using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
