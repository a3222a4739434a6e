package scene

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/geometry"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := NewScene("cornell", cameraConfig)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Standard 555x555x555 box, open towards the camera
	boxSize := 555.0

	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	ceiling := geometry.NewQuad(core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white)
	backWall := geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white)
	leftWall := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red)
	rightWall := geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green)
	s.Shapes = append(s.Shapes, floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, facing down, slightly below the ceiling
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	// Tall diffuse block at the back, mirror and glass spheres in front
	s.AddBox(geometry.NewBox(core.NewVec3(368, 165, 351), core.NewVec3(82.5, 165, 82.5), 0.26, white))
	leftSphere := geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMirror(core.NewVec3(0.8, 0.8, 0.9)))
	rightSphere := geometry.NewSphere(core.NewVec3(400, 70, 130), 70, material.NewDielectric(1.5))
	s.Shapes = append(s.Shapes, leftSphere, rightSphere)

	return s
}
