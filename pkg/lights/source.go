package lights

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Source is a real emitter of the scene. Sources are turned into virtual
// lights directly and are the starting points of the light random walks.
type Source interface {
	// DirectLights converts the emitter into virtual lights. n is the number
	// of lights requested for area emitters; point-like emitters return one.
	DirectLights(n int, sampler core.Sampler) []Light

	// SampleEmission samples a ray leaving the emitter. bounds is the finite
	// extent of the scene, needed by lights at infinity.
	SampleEmission(bounds core.AABB, sampler core.Sampler) (EmissionSample, bool)

	// Power returns the emitted flux used to choose between sources
	Power(bounds core.AABB) float64
}

// EmissionSample is the first segment of a light path
type EmissionSample struct {
	Ray    core.Ray  // Ray leaving the emitter
	Weight core.Vec3 // Le * cos / (pdfPos * pdfDir)
}

// PointSource is an isotropic point emitter
type PointSource struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointSource creates a point source
func NewPointSource(position, intensity core.Vec3) *PointSource {
	return &PointSource{Position: position, Intensity: intensity}
}

func (p *PointSource) DirectLights(n int, sampler core.Sampler) []Light {
	return []Light{OmniDirLight{Position: p.Position, Intensity: p.Intensity}}
}

// SampleEmission picks a uniform direction on the sphere
func (p *PointSource) SampleEmission(bounds core.AABB, sampler core.Sampler) (EmissionSample, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return EmissionSample{
		Ray:    core.NewRay(p.Position, direction),
		Weight: p.Intensity.Multiply(4 * math.Pi),
	}, true
}

func (p *PointSource) Power(bounds core.AABB) float64 {
	return 4 * math.Pi * p.Intensity.Luminance()
}

// DirectionalSource is a distant emitter such as the sun. Direction is the
// direction the light travels in.
type DirectionalSource struct {
	Direction core.Vec3
	Radiance  core.Vec3
}

// NewDirectionalSource creates a directional source, normalizing direction
func NewDirectionalSource(direction, radiance core.Vec3) *DirectionalSource {
	return &DirectionalSource{Direction: direction.Normalize(), Radiance: radiance}
}

func (d *DirectionalSource) DirectLights(n int, sampler core.Sampler) []Light {
	return []Light{DirLight{Normal: d.Direction, Radiance: d.Radiance}}
}

// SampleEmission samples a disk covering the scene bounds, placed behind the
// scene and perpendicular to the light direction
func (d *DirectionalSource) SampleEmission(bounds core.AABB, sampler core.Sampler) (EmissionSample, bool) {
	if bounds.IsEmpty() {
		return EmissionSample{}, false
	}
	center := bounds.Center()
	radius := bounds.Diagonal() / 2
	if radius <= 0 {
		return EmissionSample{}, false
	}

	right, up := core.OrthonormalBasis(d.Direction)
	disk := core.SamplePointInUnitDisk(sampler.Get2D())
	diskPoint := center.Add(right.Multiply(disk.X * radius)).Add(up.Multiply(disk.Y * radius))
	origin := diskPoint.Subtract(d.Direction.Multiply(radius))

	// Planar density is 1/(πR²), the direction is fixed
	return EmissionSample{
		Ray:    core.NewRay(origin, d.Direction),
		Weight: d.Radiance.Multiply(math.Pi * radius * radius),
	}, true
}

func (d *DirectionalSource) Power(bounds core.AABB) float64 {
	radius := bounds.Diagonal() / 2
	return math.Pi * radius * radius * d.Radiance.Luminance()
}
