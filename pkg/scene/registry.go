package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-manylight-renderer/pkg/geometry"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder func(cameraOverrides ...geometry.CameraConfig) *Scene

type registration struct {
	info  SceneInfo
	build builder
}

var builtins = map[string]registration{
	"cornell": {
		SceneInfo{"cornell", "Cornell box with an area light, a diffuse block, a mirror and a glass sphere"},
		NewCornellScene,
	},
	"default": {
		SceneInfo{"default", "Spheres on a checkered ground under a sun, a point light and a sky"},
		NewDefaultScene,
	},
	"sphere": {
		SceneInfo{"sphere", "One diffuse sphere lit by one point light"},
		NewSphereScene,
	},
	"spheregrid": {
		SceneInfo{"spheregrid", "Grid of colored spheres lit by fifty colored point lights"},
		NewSphereGridScene,
	},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, r := range builtins {
		scenes = append(scenes, r.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Names returns the names of the built-in scenes, sorted
func Names() []string {
	var names []string
	for _, info := range ListScenes() {
		names = append(names, info.Name)
	}
	return names
}

// New builds and preprocesses the named scene
func New(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	r, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	s := r.build(cameraOverrides...)
	s.Preprocess()
	return s, nil
}
