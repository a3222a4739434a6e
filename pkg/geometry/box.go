package geometry

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// Box is a rectangular block made of 6 quads, rotated around the Y axis
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each axis
	RotY     float64           // Rotation around Y in radians
	Material material.Material // Material for all faces
}

// NewBox creates a new box
func NewBox(center, size core.Vec3, rotY float64, mat material.Material) *Box {
	return &Box{Center: center, Size: size, RotY: rotY, Material: mat}
}

// Faces returns the 6 quads with outward facing normals
func (b *Box) Faces() []Shape {
	cosR, sinR := math.Cos(b.RotY), math.Sin(b.RotY)
	transform := func(x, y, z float64) core.Vec3 {
		p := core.NewVec3(x*b.Size.X, y*b.Size.Y, z*b.Size.Z)
		return core.NewVec3(cosR*p.X+sinR*p.Z, p.Y, -sinR*p.X+cosR*p.Z).Add(b.Center)
	}

	c := [8]core.Vec3{
		transform(-1, -1, -1), transform(1, -1, -1), transform(1, 1, -1), transform(-1, 1, -1),
		transform(-1, -1, 1), transform(1, -1, 1), transform(1, 1, 1), transform(-1, 1, 1),
	}

	return []Shape{
		NewQuad(c[4], c[5].Subtract(c[4]), c[7].Subtract(c[4]), b.Material), // +Z
		NewQuad(c[1], c[0].Subtract(c[1]), c[2].Subtract(c[1]), b.Material), // -Z
		NewQuad(c[5], c[1].Subtract(c[5]), c[6].Subtract(c[5]), b.Material), // +X
		NewQuad(c[0], c[4].Subtract(c[0]), c[3].Subtract(c[0]), b.Material), // -X
		NewQuad(c[7], c[6].Subtract(c[7]), c[3].Subtract(c[7]), b.Material), // +Y
		NewQuad(c[0], c[1].Subtract(c[0]), c[4].Subtract(c[0]), b.Material), // -Y
	}
}
