package scene

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// NewSphereScene creates a single diffuse sphere lit by one point light in
// front of a black background
func NewSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        35.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene("sphere", cameraConfig)
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0,
		material.NewLambertian(core.NewVec3(0.7, 0.6, 0.5))))
	s.AddPointLight(core.NewVec3(0.5, 0.8, 3.5), core.NewVec3(8, 8, 8))
	s.Sky = ConstantBackground{}

	return s
}
