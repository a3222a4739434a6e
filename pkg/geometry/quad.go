package geometry

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Normal vector (computed from U × V)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: n·p = d
	W        core.Vec3         // Cached n / (n·(u×v)) for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        normal.Multiply(1.0 / normal.Dot(cross)),
	}
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// PointAt returns the point at barycentric coordinates (a, b) in [0,1]²
func (q *Quad) PointAt(a, b float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(a)).Add(q.V.Multiply(b))
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	si := &material.SurfaceInteraction{
		T:        t,
		Point:    hitPoint,
		Material: q.Material,
		UV:       core.NewVec2(alpha, beta),
	}
	si.SetFaceNormal(ray, q.Normal)
	return si, true
}

// BoundingBox returns the bounding box of the quad, padded on flat axes
func (q *Quad) BoundingBox() core.AABB {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
	const pad = 1e-4
	if box.Max.X-box.Min.X < pad {
		box.Min.X, box.Max.X = box.Min.X-pad, box.Max.X+pad
	}
	if box.Max.Y-box.Min.Y < pad {
		box.Min.Y, box.Max.Y = box.Min.Y-pad, box.Max.Y+pad
	}
	if box.Max.Z-box.Min.Z < pad {
		box.Min.Z, box.Max.Z = box.Min.Z-pad, box.Max.Z+pad
	}
	return box
}
