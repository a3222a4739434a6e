package integrator

import (
	"context"
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// ShootOptions controls gather point shooting
type ShootOptions struct {
	MaxSpecularDepth int // 0 selects DefaultMaxSpecularDepth
	Seed             int64
}

// ShootResult holds the outcome of every camera sample
type ShootResult struct {
	Points     []GatherPoint
	Background []BackgroundPixel
	Rays       int // camera samples traced
	Lost       int // samples absorbed by specular chains
	Exhausted  int // samples that ran out of specular depth
}

type shootRow struct {
	points     []GatherPoint
	background []BackgroundPixel
	lost       int
	exhausted  int
}

// Shoot traces samplesPerPixel stratified camera samples through every pixel
// and records where each one lands. Rows run in parallel with one RNG per row,
// so the result only depends on opts.Seed.
func Shoot(ctx context.Context, runner core.Runner, s Scene, width, height, samplesPerPixel int, opts ShootOptions) (ShootResult, error) {
	if opts.MaxSpecularDepth <= 0 {
		opts.MaxSpecularDepth = DefaultMaxSpecularDepth
	}
	rows := make([]shootRow, height)

	err := runner.ForEach(ctx, height, func(ctx context.Context, j int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows[j] = shootScanline(s, j, width, height, samplesPerPixel, opts)
		return nil
	})
	if err != nil {
		return ShootResult{}, fmt.Errorf("while shooting gather points: %w", err)
	}

	// Merge in row order so the flat arrays are deterministic
	result := ShootResult{Rays: width * height * samplesPerPixel}
	for _, row := range rows {
		result.Points = append(result.Points, row.points...)
		result.Background = append(result.Background, row.background...)
		result.Lost += row.lost
		result.Exhausted += row.exhausted
	}
	return result, nil
}

func shootScanline(s Scene, j, width, height, samplesPerPixel int, opts ShootOptions) shootRow {
	sampler := core.NewRandomSampler(core.NewTaskRand(opts.Seed, core.StreamShoot, j))
	background := s.Background()
	strata := core.StrataFor(samplesPerPixel)
	strength := 1.0 / float64(samplesPerPixel)

	var row shootRow
	for i := 0; i < width; i++ {
		for k := 0; k < samplesPerPixel; k++ {
			jitter := core.StratifiedSample(k, strata, sampler.Get2D())
			u := (float64(i) + jitter.X) / float64(width)
			v := (float64(j) + jitter.Y) / float64(height)
			ray := s.GenerateRay(u, v, sampler.Get2D())

			path := traceSpecular(s, ray, opts.MaxSpecularDepth, sampler)
			switch path.outcome {
			case outcomeSurface:
				row.points = append(row.points, GatherPoint{
					X:           i,
					Y:           j,
					SI:          *path.si,
					Wo:          path.wo,
					Weight:      path.throughput,
					Emission:    path.si.Material.Emission(path.wo, path.si),
					SampleIndex: k,
					Strength:    strength,
				})
			case outcomeBackground:
				if background != nil {
					row.background = append(row.background, BackgroundPixel{
						X:        i,
						Y:        j,
						Radiance: path.throughput.MultiplyVec(background.Radiance(path.escape)),
						Strength: strength,
					})
				}
			case outcomeExhausted:
				// The energy of the chain is lost but the sample is still accounted for
				row.exhausted++
				if background != nil {
					row.background = append(row.background, BackgroundPixel{X: i, Y: j, Strength: strength})
				}
			case outcomeLost:
				row.lost++
			}
		}
	}
	return row
}
