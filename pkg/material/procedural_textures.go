package material

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Checkerboard is a world-space 3D checker pattern
type Checkerboard struct {
	Even, Odd core.Vec3
	Scale     float64 // Size of one check in world units
}

// NewCheckerboard creates a procedural checker color source
func NewCheckerboard(even, odd core.Vec3, scale float64) *Checkerboard {
	if scale <= 0 {
		scale = 1
	}
	return &Checkerboard{Even: even, Odd: odd, Scale: scale}
}

// At picks the check color at the hit point
func (c *Checkerboard) At(si *SurfaceInteraction) core.Vec3 {
	point := si.Point
	ix := int(math.Floor(point.X / c.Scale))
	iy := int(math.Floor(point.Y / c.Scale))
	iz := int(math.Floor(point.Z / c.Scale))
	if (ix+iy+iz)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
