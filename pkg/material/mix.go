package material

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Mix blends a smooth base with a delta coat, e.g. varnished wood or plastic.
// The gather stage stops on it because it carries a smooth lobe; the coat
// only shows up in reflected light paths.
type Mix struct {
	Base  Material // Smooth component
	Coat  Material // Delta component
	Ratio float64  // 0.0 = all base, 1.0 = all coat
}

// NewMix creates a new mix material
func NewMix(base, coat Material, ratio float64) *Mix {
	return &Mix{
		Base:  base,
		Coat:  coat,
		Ratio: math.Max(0.0, math.Min(ratio, 1.0)),
	}
}

func (m *Mix) HasDelta() bool {
	return (m.Ratio > 0 && m.Coat.HasDelta()) || (m.Ratio < 1 && m.Base.HasDelta())
}

func (m *Mix) HasSmooth() bool {
	return (m.Ratio < 1 && m.Base.HasSmooth()) || (m.Ratio > 0 && m.Coat.HasSmooth())
}

// EvalSmoothCos weights the smooth lobes of both components
func (m *Mix) EvalSmoothCos(wo, wi core.Vec3, si *SurfaceInteraction) core.Vec3 {
	base := m.Base.EvalSmoothCos(wo, wi, si).Multiply(1.0 - m.Ratio)
	coat := m.Coat.EvalSmoothCos(wo, wi, si).Multiply(m.Ratio)
	return base.Add(coat)
}

// SampleCos chooses a component by ratio; the selection probability cancels
// against the mixing weight.
func (m *Mix) SampleCos(wo core.Vec3, si *SurfaceInteraction, sampler core.Sampler) (BSDFSample, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Coat.SampleCos(wo, si, sampler)
	}
	return m.Base.SampleCos(wo, si, sampler)
}

// Emission mixes the emission of both components
func (m *Mix) Emission(wo core.Vec3, si *SurfaceInteraction) core.Vec3 {
	return m.Base.Emission(wo, si).Multiply(1.0 - m.Ratio).Add(m.Coat.Emission(wo, si).Multiply(m.Ratio))
}
