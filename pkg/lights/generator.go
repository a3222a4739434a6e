package lights

import (
	"context"
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

const (
	// rayEpsilon offsets secondary rays from the surface they leave
	rayEpsilon = 1e-4
	// rouletteMinDepth is the first bounce at which walks may be terminated
	rouletteMinDepth = 2
	// walkAttemptsPerLight bounds the walks spent per requested indirect light
	walkAttemptsPerLight = 16
	// cancelCheckInterval is how many walks run between context checks
	cancelCheckInterval = 256
)

// GeneratorConfig controls virtual light generation
type GeneratorConfig struct {
	DirectLightsPerSource int   // Oriented lights placed on every area source
	MaxWalkDepth          int   // Maximum bounces of one light path
	Seed                  int64 // Base seed for the light stream
}

// GenerateStats summarizes one generation run
type GenerateStats struct {
	Direct   int // Lights converted directly from sources
	Indirect int // Lights deposited by random walks
	Walks    int // Light paths traced
}

// Generator turns the real sources of a scene into virtual lights: one set
// converted directly from each source and one set deposited along random
// walks leaving the sources.
type Generator struct {
	tracer  Tracer
	sources []Source
	config  GeneratorConfig
}

// NewGenerator creates a generator for the given scene
func NewGenerator(tracer Tracer, sources []Source, config GeneratorConfig) *Generator {
	if config.DirectLightsPerSource <= 0 {
		config.DirectLightsPerSource = 1
	}
	if config.MaxWalkDepth <= 0 {
		config.MaxWalkDepth = 8
	}
	return &Generator{tracer: tracer, sources: sources, config: config}
}

// Generate writes direct lights for every source followed by up to
// indirectBudget lights deposited at smooth surfaces hit by light paths.
func (g *Generator) Generate(ctx context.Context, indirectBudget int, cache VirtualLightCache, reporter core.Reporter) (GenerateStats, error) {
	var stats GenerateStats
	random := core.NewTaskRand(g.config.Seed, core.StreamLights, 0)
	sampler := core.NewRandomSampler(random)

	for _, source := range g.sources {
		for _, light := range source.DirectLights(g.config.DirectLightsPerSource, sampler) {
			cache.Add(light)
			stats.Direct++
		}
	}

	if indirectBudget <= 0 || len(g.sources) == 0 {
		return stats, nil
	}

	bounds := g.tracer.BoundingBox()
	powers := make([]float64, len(g.sources))
	for i, source := range g.sources {
		powers[i] = source.Power(bounds)
	}
	sourceDistribution := core.NewDistribution1D(powers)

	indirect := make([]OrientedLight, 0, indirectBudget)
	maxWalks := indirectBudget * walkAttemptsPerLight
	for stats.Walks < maxWalks && len(indirect) < indirectBudget {
		if stats.Walks%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("while generating indirect lights: %w", err)
			}
			reporter.Progress("lights", len(indirect), indirectBudget)
		}
		stats.Walks++

		index, pdf := sourceDistribution.Sample(sampler.Get1D())
		emission, ok := g.sources[index].SampleEmission(bounds, sampler)
		if !ok || pdf <= 0 {
			continue
		}
		beta := emission.Weight.Multiply(1.0 / pdf)
		indirect = g.walk(emission.Ray, beta, sampler, indirect, indirectBudget)
	}

	// Each walk is one sample of the emitted flux
	scale := 1.0 / float64(stats.Walks)
	for _, light := range indirect {
		light.Radiance = light.Radiance.Multiply(scale)
		cache.Add(light)
	}
	stats.Indirect = len(indirect)
	reporter.Progress("lights", len(indirect), indirectBudget)
	return stats, nil
}

// walk follows one light path and appends a light at every smooth hit
func (g *Generator) walk(ray core.Ray, beta core.Vec3, sampler core.Sampler, out []OrientedLight, budget int) []OrientedLight {
	startMax := beta.MaxComponent()
	if startMax <= 0 {
		return out
	}

	for depth := 0; depth < g.config.MaxWalkDepth && len(out) < budget; depth++ {
		si, hit := g.tracer.Intersect(ray)
		if !hit {
			return out
		}
		wo := ray.Direction.Negate()

		if si.Material.HasSmooth() {
			// Outgoing radiance toward the normal; the cosine at the light is
			// applied when the light is evaluated
			radiance := beta.MultiplyVec(si.Material.EvalSmoothCos(wo, si.Normal, si))
			if !radiance.IsZero() {
				out = append(out, OrientedLight{Position: si.Point, Normal: si.Normal, Radiance: radiance})
			}
		}

		sample, ok := si.Material.SampleCos(wo, si, sampler)
		if !ok {
			return out
		}
		beta = beta.MultiplyVec(sample.Throughput)

		if depth >= rouletteMinDepth {
			survive := min(1.0, beta.MaxComponent()/startMax)
			if survive <= 0 || sampler.Get1D() >= survive {
				return out
			}
			beta = beta.Multiply(1.0 / survive)
		}
		ray = core.NewRay(si.Point.Add(sample.Direction.Multiply(rayEpsilon)), sample.Direction)
	}
	return out
}
