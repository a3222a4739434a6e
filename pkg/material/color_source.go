package material

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
)

// ColorSource gives the diffuse reflectance of a surface at a hit point. Light
// walks and the final pass both read it through Lambertian, so it must depend
// on the interaction only.
type ColorSource interface {
	At(si *SurfaceInteraction) core.Vec3
}

// SolidColor is the same reflectance everywhere
type SolidColor core.Vec3

// NewSolidColor wraps a constant reflectance
func NewSolidColor(color core.Vec3) SolidColor {
	return SolidColor(color)
}

func (c SolidColor) At(*SurfaceInteraction) core.Vec3 {
	return core.Vec3(c)
}
