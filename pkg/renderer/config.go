package renderer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-manylight-renderer/pkg/cluster"
	"github.com/df07/go-manylight-renderer/pkg/integrator"
)

// Config contains every parameter of a render
type Config struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	SamplesPerPixel int `json:"samplesPerPixel"`

	// MaxSpecularDepth bounds the delta bounces of camera paths, at least 1
	MaxSpecularDepth int `json:"maxSpecularDepth"`

	// Virtual light generation
	IndirectLights        int `json:"indirectLights"`        // Lights deposited by random walks
	DirectLightsPerSource int `json:"directLightsPerSource"` // Lights placed on every area source
	MaxWalkDepth          int `json:"maxWalkDepth"`

	// Gather point grouping
	GroupCount    int `json:"groupCount"`    // Target number of gather groups
	NeighborCount int `json:"neighborCount"` // Neighbor groups sampled by the clustering

	// Light clustering
	ClusterBudget   int            `json:"clusterBudget"`   // Representative lights per gather group
	LightGroupCount int            `json:"lightGroupCount"` // Spatial light groups, 0 clusters all lights at once
	Cluster         cluster.Config `json:"cluster"`

	// MinClampFraction sets the minimum light distance as a fraction of half the scene diagonal
	MinClampFraction float64 `json:"minClampFraction"`

	FinalMode     integrator.FinalMode `json:"finalMode"`
	RecordCutSize bool                 `json:"recordCutSize"`

	Seed       int64 `json:"seed"`
	NumWorkers int   `json:"numWorkers"` // 0 = use CPU count
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:                 320,
		Height:                320,
		SamplesPerPixel:       4,
		MaxSpecularDepth:      integrator.DefaultMaxSpecularDepth,
		IndirectLights:        4000,
		DirectLightsPerSource: 64,
		MaxWalkDepth:          8,
		GroupCount:            1024,
		NeighborCount:         8,
		ClusterBudget:         300,
		LightGroupCount:       0,
		Cluster:               cluster.DefaultConfig(),
		MinClampFraction:      0.05,
		FinalMode:             integrator.FinalGroups,
		Seed:                  1,
		NumWorkers:            0, // Auto-detect CPU count
	}
}

// Validate reports values a render cannot run with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxSpecularDepth < 1 {
		return fmt.Errorf("max specular depth must be positive, got %d", c.MaxSpecularDepth)
	}
	if c.IndirectLights < 0 || c.DirectLightsPerSource < 0 || c.MaxWalkDepth < 0 {
		return fmt.Errorf("light generation parameters must not be negative")
	}
	if c.GroupCount <= 0 {
		return fmt.Errorf("group count must be positive, got %d", c.GroupCount)
	}
	if c.NeighborCount < 0 {
		return fmt.Errorf("neighbor count must not be negative, got %d", c.NeighborCount)
	}
	if c.ClusterBudget <= 0 {
		return fmt.Errorf("cluster budget must be positive, got %d", c.ClusterBudget)
	}
	if c.LightGroupCount < 0 {
		return fmt.Errorf("light group count must not be negative, got %d", c.LightGroupCount)
	}
	if c.MinClampFraction < 0 {
		return fmt.Errorf("min clamp fraction must not be negative, got %g", c.MinClampFraction)
	}
	if _, err := integrator.ParseFinalMode(string(c.FinalMode)); err != nil {
		return err
	}
	if err := c.Cluster.Validate(); err != nil {
		return fmt.Errorf("while validating cluster config: %w", err)
	}
	return nil
}

// LoadConfig reads a JSON file over the default configuration. Fields
// missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("while reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("while parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}
