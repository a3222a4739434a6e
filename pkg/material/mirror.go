package material

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Mirror represents a perfectly specular reflector
type Mirror struct {
	Albedo core.Vec3 // Specular reflectance
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Albedo: albedo}
}

func (m *Mirror) HasDelta() bool  { return true }
func (m *Mirror) HasSmooth() bool { return false }

// EvalSmoothCos is always zero, a mirror has no smooth lobe
func (m *Mirror) EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// SampleCos returns the mirror direction of wo
func (m *Mirror) SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool) {
	wi := reflect(wo.Negate(), si.Normal).Normalize()
	if wi.Dot(si.Normal) <= 0 {
		return BSDFSample{}, false
	}
	return BSDFSample{
		Direction:  wi,
		Throughput: m.Albedo,
		IsDelta:    true,
	}, true
}

// Emission is zero for mirrors
func (m *Mirror) Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}
