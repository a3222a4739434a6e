package material

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Emissive represents a light-emitting surface that reflects nothing.
// It reports a smooth lobe so camera paths stop on it and record emission.
type Emissive struct {
	Radiance core.Vec3 // Emitted radiance
	TwoSided bool      // Emit from the back face as well
}

// NewEmissive creates a new one-sided emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Radiance: emission}
}

func (e *Emissive) HasDelta() bool  { return false }
func (e *Emissive) HasSmooth() bool { return true }

// EvalSmoothCos is zero: lights don't reflect, they only emit
func (e *Emissive) EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// SampleCos never scatters
func (e *Emissive) SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool) {
	return BSDFSample{}, false
}

// Emission returns the emitted radiance on the front face
func (e *Emissive) Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3 {
	if !si.FrontFace && !e.TwoSided {
		return core.Vec3{}
	}
	return e.Radiance
}
