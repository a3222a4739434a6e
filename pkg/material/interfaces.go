package material

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Material is the BSDF capability the renderer consumes. Directions follow the
// usual convention: wo points away from the surface toward the viewer, wi
// points away from the surface toward the light.
type Material interface {
	// HasDelta reports whether the BSDF has a perfectly specular component
	HasDelta() bool

	// HasSmooth reports whether the BSDF has a non-delta component
	HasSmooth() bool

	// EvalSmoothCos evaluates the smooth part f(wo, wi) * |cos(wi, n)|.
	// Delta components never contribute here.
	EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3

	// SampleCos samples an incoming direction. Throughput is f*cos/pdf for
	// smooth samples and the specular reflectance for delta samples.
	SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool)

	// Emission returns the radiance emitted toward wo
	Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3
}

// BSDFSample contains the result of sampling a material
type BSDFSample struct {
	Direction  core.Vec3 // Sampled incoming direction (unit length)
	Throughput core.Vec3 // Weight to multiply the path throughput with
	PDF        float64   // Solid angle density, zero for delta samples
	IsDelta    bool      // Whether the sample came from a delta component
}

// SurfaceInteraction contains information about a ray-surface intersection
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Shading normal, flipped to face the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	UV        core.Vec2 // Surface parameterization
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// Frame returns an orthonormal shading frame (tangent, bitangent, normal)
func (si *SurfaceInteraction) Frame() (core.Vec3, core.Vec3, core.Vec3) {
	t, b := core.OrthonormalBasis(si.Normal)
	return t, b, si.Normal
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
