package scene

import (
	"math"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// rayEpsilon is the minimum hit distance, avoids self-intersection
const rayEpsilon = 1e-4

// Scene contains all the elements needed for rendering. It is read-only
// once Preprocess has run and may be shared between goroutines.
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Shapes       []geometry.Shape // Objects in the scene
	Sources      []lights.Source  // Real emitters
	Sky          Background       // nil when rays escaping the scene see nothing
	BVH          *geometry.BVH    // Acceleration structure for ray-object intersection
}

// NewScene creates an empty scene with the given camera
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
	}
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}

// Preprocess builds the acceleration structure
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes)
}

// Intersect returns the closest surface hit by the ray
func (s *Scene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	return s.BVH.Hit(ray, rayEpsilon, math.Inf(1))
}

// IntersectAny reports whether anything blocks the ray before tMax
func (s *Scene) IntersectAny(ray core.Ray, tMax float64) bool {
	return s.BVH.HitAny(ray, rayEpsilon, tMax)
}

// BoundingBox returns the bounds of the finite geometry
func (s *Scene) BoundingBox() core.AABB {
	return s.BVH.BoundingBox()
}

// GenerateRay returns the camera ray through screen position (u, v)
func (s *Scene) GenerateRay(u, v float64, lens core.Vec2) core.Ray {
	return s.Camera.GetRay(u, v, lens)
}

// Background returns the radiance seen by escaping rays, nil if there is none
func (s *Scene) Background() Background {
	return s.Sky
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	quadLight := lights.NewQuadSource(corner, u, v, emission)
	s.Sources = append(s.Sources, quadLight)
	s.Shapes = append(s.Shapes, quadLight.Quad)
}

// AddPointLight adds an isotropic point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Sources = append(s.Sources, lights.NewPointSource(position, intensity))
}

// AddDirectionalLight adds a distant light travelling along direction
func (s *Scene) AddDirectionalLight(direction, radiance core.Vec3) {
	s.Sources = append(s.Sources, lights.NewDirectionalSource(direction, radiance))
}

// AddBox adds the six faces of a box to the scene
func (s *Scene) AddBox(box *geometry.Box) {
	s.Shapes = append(s.Shapes, box.Faces()...)
}
