package grouping

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// normScaleDivisor relates the normal extent to the position extent
const normScaleDivisor = 8

// Element is anything placed by position and orientation: gather points or lights
type Element struct {
	Position core.Vec3
	Normal   core.Vec3
}

// Point6 is a position followed by a scaled normal
type Point6 [6]float64

// Key builds the 6D point of e
func Key(e Element, normScale float64) Point6 {
	return Point6{
		e.Position.X, e.Position.Y, e.Position.Z,
		e.Normal.X * normScale, e.Normal.Y * normScale, e.Normal.Z * normScale,
	}
}

// DistanceSquared returns the squared Euclidean distance between two points
func (p Point6) DistanceSquared(q Point6) float64 {
	var d float64
	for i := range p {
		diff := p[i] - q[i]
		d += diff * diff
	}
	return d
}

// Bounds6 is an axis aligned box in 6D
type Bounds6 struct {
	Min, Max Point6
}

// EmptyBounds6 returns an inverted box that any Extend call will overwrite
func EmptyBounds6() Bounds6 {
	var b Bounds6
	for i := range b.Min {
		b.Min[i] = math.Inf(1)
		b.Max[i] = math.Inf(-1)
	}
	return b
}

// Extend grows the box to contain p
func (b *Bounds6) Extend(p Point6) {
	for i := range p {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// WidestAxis returns the axis with the largest extent and that extent
func (b Bounds6) WidestAxis() (int, float64) {
	axis, extent := 0, b.Max[0]-b.Min[0]
	for i := 1; i < 6; i++ {
		if e := b.Max[i] - b.Min[i]; e > extent {
			axis, extent = i, e
		}
	}
	return axis, extent
}

// Center returns the center coordinate along axis
func (b Bounds6) Center(axis int) float64 {
	return 0.5 * (b.Min[axis] + b.Max[axis])
}

// NormScale returns the factor applied to normals so that the normal extent
// is comparable to the position extent: the average bounding box side / 8
func NormScale(elems []Element) float64 {
	box := core.EmptyAABB()
	for _, e := range elems {
		box = box.Extend(e.Position)
	}
	size := box.Size()
	scale := (size.X + size.Y + size.Z) / 3 / normScaleDivisor
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 1
	}
	return scale
}
