package integrator

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// ClampDistanceSquared returns the minimum squared light distance used to
// avoid the singularity near point-like lights: (diagonal/2 * fraction)²
func ClampDistanceSquared(bounds core.AABB, fraction float64) float64 {
	d := bounds.Diagonal() / 2 * fraction
	return d * d
}

// LightContribution returns the radiance light reflects toward wo at si,
// with visibility resolved by a shadow ray. Back-facing configurations and
// occluded lights contribute zero.
func LightContribution(s Scene, light lights.Light, si *material.SurfaceInteraction, wo core.Vec3, clampDistSqr float64) core.Vec3 {
	switch l := light.(type) {
	case lights.OmniDirLight:
		return OmniContribution(s, l, si, wo, clampDistSqr)
	case lights.DirLight:
		return DirContribution(s, l, si, wo)
	case lights.OrientedLight:
		return OrientedContribution(s, l, si, wo, clampDistSqr)
	}
	return core.Vec3{}
}

// ListContribution evaluates the light with global index i of list
func ListContribution(s Scene, list *lights.LightList, i int, si *material.SurfaceInteraction, wo core.Vec3, clampDistSqr float64) core.Vec3 {
	if i < len(list.Omni) {
		return OmniContribution(s, list.Omni[i], si, wo, clampDistSqr)
	}
	i -= len(list.Omni)
	if i < len(list.Directional) {
		return DirContribution(s, list.Directional[i], si, wo)
	}
	i -= len(list.Directional)
	return OrientedContribution(s, list.Oriented[i], si, wo, clampDistSqr)
}

// OmniContribution is intensity * f / max(clamp, d²)
func OmniContribution(s Scene, l lights.OmniDirLight, si *material.SurfaceInteraction, wo core.Vec3, clampDistSqr float64) core.Vec3 {
	wi, distSqr, dist := toLight(si.Point, l.Position)
	if dist == 0 {
		return core.Vec3{}
	}
	f := si.Material.EvalSmoothCos(wo, wi, si)
	if f.IsZero() || occluded(s, si.Point, wi, dist) {
		return core.Vec3{}
	}
	return l.Intensity.MultiplyVec(f).Multiply(1.0 / math.Max(clampDistSqr, distSqr))
}

// OrientedContribution is radiance * cos(nL, -wi) * f / max(clamp, d²)
func OrientedContribution(s Scene, l lights.OrientedLight, si *material.SurfaceInteraction, wo core.Vec3, clampDistSqr float64) core.Vec3 {
	wi, distSqr, dist := toLight(si.Point, l.Position)
	if dist == 0 {
		return core.Vec3{}
	}
	cosLight := l.Normal.Dot(wi.Negate())
	if cosLight <= 0 {
		return core.Vec3{}
	}
	f := si.Material.EvalSmoothCos(wo, wi, si)
	if f.IsZero() || occluded(s, si.Point, wi, dist) {
		return core.Vec3{}
	}
	return l.Radiance.MultiplyVec(f).Multiply(cosLight / math.Max(clampDistSqr, distSqr))
}

// DirContribution is radiance * f with an unbounded shadow ray
func DirContribution(s Scene, l lights.DirLight, si *material.SurfaceInteraction, wo core.Vec3) core.Vec3 {
	wi := l.Normal.Negate()
	f := si.Material.EvalSmoothCos(wo, wi, si)
	if f.IsZero() || s.IntersectAny(core.NewRay(si.Point, wi), math.Inf(1)) {
		return core.Vec3{}
	}
	return l.Radiance.MultiplyVec(f)
}

func toLight(from, to core.Vec3) (wi core.Vec3, distSqr, dist float64) {
	d := to.Subtract(from)
	distSqr = d.LengthSquared()
	dist = math.Sqrt(distSqr)
	if dist == 0 {
		return core.Vec3{}, 0, 0
	}
	return d.Multiply(1.0 / dist), distSqr, dist
}

func occluded(s Scene, p, wi core.Vec3, dist float64) bool {
	return s.IntersectAny(core.NewRay(p, wi), dist*(1-shadowEpsilon))
}
