package cluster

import (
	"math/rand"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/lights"
)

// Result is the light cut of one clustering call
type Result struct {
	Lights    []lights.ScaledLight // One representative per cluster with contribution
	Clusters  [][]int              // Global light indices of every final cluster
	Seeds     int                  // Unique initial seeds
	Splits    int                  // Accepted splits
	Rejected  int                  // Splits discarded for increasing the cost
	EarlyStop bool                 // Refinement ended on the error threshold
}

// Cluster partitions the columns of in into at most budget clusters and picks
// one representative light per cluster. Columns are compared through a random
// projection of their per-cell radiance magnitudes; seeds are importance
// sampled and refined by splitting the cluster with the largest cost bound.
func Cluster(in Input, budget int, cfg Config, rng *rand.Rand) Result {
	if len(in.Lights) == 0 {
		return Result{}
	}
	budget = max(1, budget)

	p := project(in, max(1, cfg.ProjectedDim), rng)

	seedCount := max(1, int(float64(budget)*cfg.SeedFraction))
	seeds, weights := selectSeeds(p, seedCount, rng)
	initial := assign(p, seeds, weights)

	r := newRefiner(p, initial, budget, cfg.RelativeErrorThreshold)
	r.run()
	local := r.clusters()

	result := Result{
		Clusters:  make([][]int, len(local)),
		Seeds:     len(seeds),
		Splits:    r.splits,
		Rejected:  r.rejected,
		EarlyStop: r.earlyStop,
	}
	for k, members := range local {
		global := make([]int, len(members))
		for m, c := range members {
			global[m] = in.Lights[c]
		}
		result.Clusters[k] = global
	}
	result.Lights = representatives(in, local, rng)
	return result
}

// representatives samples one light per cluster proportionally to the sum of
// its per-channel norms. The weight is the ratio of the cluster's summed
// channel norms to the chosen light's, per channel. Clusters with no
// contribution at all are skipped.
func representatives(in Input, clusters [][]int, rng *rand.Rand) []lights.ScaledLight {
	cnorms := in.channelNorms()

	var result []lights.ScaledLight
	for _, members := range clusters {
		var cnormSum core.Vec3
		scalars := make([]float64, len(members))
		for k, c := range members {
			cnormSum = cnormSum.Add(cnorms[c])
			scalars[k] = cnorms[c].Sum()
		}
		if cnormSum.IsZero() {
			continue
		}

		k, _ := core.NewDistribution1D(scalars).Sample(rng.Float64())
		chosen := members[k]
		result = append(result, lights.ScaledLight{
			LightIndex: in.Lights[chosen],
			Weight:     channelRatio(cnormSum, cnorms[chosen]),
		})
	}
	return result
}

// channelRatio divides sum by part per channel. A channel where part is zero
// scales by one when the cluster has nothing in that channel either, and by
// zero otherwise, since the chosen light cannot carry it.
func channelRatio(sum, part core.Vec3) core.Vec3 {
	ratio := func(s, p float64) float64 {
		switch {
		case p != 0:
			return s / p
		case s == 0:
			return 1
		default:
			return 0
		}
	}
	return core.NewVec3(ratio(sum.X, part.X), ratio(sum.Y, part.Y), ratio(sum.Z, part.Z))
}
