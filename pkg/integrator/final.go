package integrator

import (
	"context"
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/grouping"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// FinalMode selects how the final image is traversed
type FinalMode string

const (
	// FinalGroups shades the gather points of every group in place
	FinalGroups FinalMode = "groups"
	// FinalScanlines re-traces camera rays row by row and looks up the group
	// owning every surface point
	FinalScanlines FinalMode = "scanlines"
)

// ParseFinalMode validates a mode name; the empty string selects FinalGroups
func ParseFinalMode(name string) (FinalMode, error) {
	switch FinalMode(name) {
	case "", FinalGroups:
		return FinalGroups, nil
	case FinalScanlines:
		return FinalScanlines, nil
	}
	return "", fmt.Errorf("unknown final render mode %q", name)
}

// Film receives shaded samples. Rows are image rows, row 0 at the top.
// Concurrent calls always target different rows.
type Film interface {
	Add(x, row int, radiance core.Vec3)
	AddCutSize(x, row, n int)
}

// FinalInput is everything the final pass reads
type FinalInput struct {
	Points []GatherPoint
	Groups []grouping.Group
	Tree   *grouping.Tree         // over group seeds, needed by FinalScanlines
	Cuts   [][]lights.ScaledLight // representative lights of every group
	Lights *lights.LightList
}

// FinalOptions controls the final pass
type FinalOptions struct {
	Mode             FinalMode
	Width, Height    int
	SamplesPerPixel  int // FinalScanlines only
	MaxSpecularDepth int // FinalScanlines only, 0 selects DefaultMaxSpecularDepth
	Seed             int64
	ClampDistSqr     float64
	RecordCutSize    bool
}

// FinalStats counts the work of the final pass
type FinalStats struct {
	Shaded      int // surface samples shaded
	Evaluations int // light evaluations, each with a shadow ray
}

// RenderFinal shades every surface sample with the representative lights of
// its group and accumulates the result into film. Background samples are not
// touched here.
func RenderFinal(ctx context.Context, runner core.Runner, s Scene, in FinalInput, film Film, opts FinalOptions) (FinalStats, error) {
	if len(in.Cuts) != len(in.Groups) {
		return FinalStats{}, fmt.Errorf("got %d cuts for %d groups", len(in.Cuts), len(in.Groups))
	}

	switch opts.Mode {
	case FinalGroups, "":
		return renderGroups(ctx, runner, s, in, film, opts)
	case FinalScanlines:
		return renderScanlines(ctx, runner, s, in, film, opts)
	}
	return FinalStats{}, fmt.Errorf("unknown final render mode %q", opts.Mode)
}

// shade evaluates the cut at a surface: emission plus the weighted
// contribution of every representative light
func shade(s Scene, list *lights.LightList, cut []lights.ScaledLight, si *material.SurfaceInteraction, wo, emission core.Vec3, clampDistSqr float64) core.Vec3 {
	radiance := emission
	for _, sl := range cut {
		c := ListContribution(s, list, sl.LightIndex, si, wo, clampDistSqr)
		radiance = radiance.Add(c.MultiplyVec(sl.Weight))
	}
	return radiance
}

func renderGroups(ctx context.Context, runner core.Runner, s Scene, in FinalInput, film Film, opts FinalOptions) (FinalStats, error) {
	// Each point is written by the task of the one group that owns it
	shaded := make([]core.Vec3, len(in.Points))

	err := runner.ForEach(ctx, len(in.Groups), func(ctx context.Context, g int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cut := in.Cuts[g]
		for _, idx := range in.Groups[g].Indices {
			p := &in.Points[idx]
			radiance := shade(s, in.Lights, cut, &p.SI, p.Wo, p.Emission, opts.ClampDistSqr)
			shaded[idx] = radiance.MultiplyVec(p.Weight).Multiply(p.Strength)
		}
		return nil
	})
	if err != nil {
		return FinalStats{}, fmt.Errorf("while rendering gather groups: %w", err)
	}

	var stats FinalStats
	for g, group := range in.Groups {
		for _, idx := range group.Indices {
			p := &in.Points[idx]
			row := opts.Height - 1 - p.Y
			film.Add(p.X, row, shaded[idx])
			if opts.RecordCutSize && p.SampleIndex == 0 {
				film.AddCutSize(p.X, row, len(in.Cuts[g]))
			}
			stats.Shaded++
			stats.Evaluations += len(in.Cuts[g])
		}
	}
	return stats, nil
}

func renderScanlines(ctx context.Context, runner core.Runner, s Scene, in FinalInput, film Film, opts FinalOptions) (FinalStats, error) {
	if in.Tree == nil || in.Tree.Len() == 0 {
		return FinalStats{}, nil
	}
	if opts.MaxSpecularDepth <= 0 {
		opts.MaxSpecularDepth = DefaultMaxSpecularDepth
	}
	spp := max(1, opts.SamplesPerPixel)
	rows := make([]FinalStats, opts.Height)

	err := runner.ForEach(ctx, opts.Height, func(ctx context.Context, j int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows[j] = renderScanline(s, in, film, j, spp, opts)
		return nil
	})
	if err != nil {
		return FinalStats{}, fmt.Errorf("while rendering scanlines: %w", err)
	}

	var stats FinalStats
	for _, r := range rows {
		stats.Shaded += r.Shaded
		stats.Evaluations += r.Evaluations
	}
	return stats, nil
}

func renderScanline(s Scene, in FinalInput, film Film, j, spp int, opts FinalOptions) FinalStats {
	var stats FinalStats
	strata := core.StrataFor(spp)
	strength := 1.0 / float64(spp)
	row := opts.Height - 1 - j

	for i := 0; i < opts.Width; i++ {
		sampler := core.NewRandomSampler(core.NewTaskRand(opts.Seed, core.StreamFinal, j*opts.Width+i))
		cutSize := 0
		for k := 0; k < spp; k++ {
			jitter := core.StratifiedSample(k, strata, sampler.Get2D())
			u := (float64(i) + jitter.X) / float64(opts.Width)
			v := (float64(j) + jitter.Y) / float64(opts.Height)
			ray := s.GenerateRay(u, v, sampler.Get2D())

			path := traceSpecular(s, ray, opts.MaxSpecularDepth, sampler)
			if path.outcome != outcomeSurface {
				continue
			}
			g := in.Tree.NearestGroup(grouping.Element{Position: path.si.Point, Normal: path.si.Normal})
			if g < 0 {
				continue
			}
			cut := in.Cuts[g]
			emission := path.si.Material.Emission(path.wo, path.si)
			radiance := shade(s, in.Lights, cut, path.si, path.wo, emission, opts.ClampDistSqr)
			film.Add(i, row, radiance.MultiplyVec(path.throughput).Multiply(strength))

			if k == 0 {
				cutSize = len(cut)
			}
			stats.Shaded++
			stats.Evaluations += len(cut)
		}
		if opts.RecordCutSize {
			film.AddCutSize(i, row, cutSize)
		}
	}
	return stats
}
