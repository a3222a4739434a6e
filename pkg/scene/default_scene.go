package scene

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, sun and sky
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene("default", cameraConfig)

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	mirror := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8))
	glass := material.NewDielectric(1.5)
	checker := material.NewTexturedLambertian(material.NewCheckerboard(
		core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1), 0.5))

	// Glossy red: a mirror coat over a diffuse base
	coatedRed := material.NewMix(lambertianRed, mirror, 0.2)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, lambertianGreen),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.2, -0.5), 0.2, lambertianBlue),
		NewGroundQuad(core.NewVec3(0, 0, -1), 20.0, checker),
	)

	s.AddDirectionalLight(core.NewVec3(-0.4, -1, -0.3), core.NewVec3(3.0, 2.8, 2.6))
	s.AddPointLight(core.NewVec3(1.5, 2.0, 0.5), core.NewVec3(2.0, 1.8, 1.5))
	s.Sky = GradientBackground{
		Top:    core.NewVec3(0.5, 0.7, 1.0), // blue sky
		Bottom: core.NewVec3(1.0, 1.0, 1.0), // white horizon
	}

	return s
}
