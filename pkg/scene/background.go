package scene

import "github.com/df07/go-manylight-renderer/pkg/core"

// Background is the radiance arriving from outside the scene
type Background interface {
	Radiance(direction core.Vec3) core.Vec3
}

// ConstantBackground has the same color in every direction
type ConstantBackground struct {
	Color core.Vec3
}

func (c ConstantBackground) Radiance(direction core.Vec3) core.Vec3 {
	return c.Color
}

// GradientBackground blends from Bottom to Top with the Y of the direction
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

func (g GradientBackground) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
