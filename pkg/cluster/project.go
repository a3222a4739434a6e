package cluster

import (
	"math"
	"math/rand"
	"sort"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// projected stores every column of the input, reduced to a few dimensions,
// as one row of cols so it can be read as a contiguous slice
type projected struct {
	cols  *mat.Dense // columns × dim
	norms []float64  // L2 norm of every projected column
	total float64    // sum of norms
}

func (p *projected) column(i int) []float64 {
	return p.cols.RawRowView(i)
}

// project reduces the per-cell radiance magnitudes of in with a random
// projection of uniform entries. Inputs with at most dim rows are kept as is.
func project(in Input, dim int, rng *rand.Rand) *projected {
	n := len(in.Lights)
	rows := max(1, len(in.Rows))

	values := mat.NewDense(n, rows, nil)
	for r, row := range in.Rows {
		for c, v := range row {
			values.Set(c, r, v.Length())
		}
	}

	cols := values
	if rows > dim {
		projection := mat.NewDense(dim, rows, nil)
		for i := 0; i < dim; i++ {
			for j := 0; j < rows; j++ {
				projection.Set(i, j, rng.Float64())
			}
		}
		cols = mat.NewDense(n, dim, nil)
		cols.Mul(values, projection.T())
	}

	p := &projected{cols: cols, norms: make([]float64, n)}
	for i := range p.norms {
		p.norms[i] = floats.Norm(p.column(i), 2)
	}
	p.total = floats.Sum(p.norms)
	return p
}

// selectSeeds importance samples count seeds with replacement, proportionally
// to alpha[i] = norm[i]*Σnorms - column_i·rowSums. Each unique seed carries
// the sum of 1/pdf over the times it was drawn. Seeds come back sorted.
func selectSeeds(p *projected, count int, rng *rand.Rand) ([]int, []float64) {
	_, dim := p.cols.Dims()
	rowSums := make([]float64, dim)
	for i := range p.norms {
		floats.Add(rowSums, p.column(i))
	}

	alpha := make([]float64, len(p.norms))
	for i := range alpha {
		alpha[i] = p.norms[i]*p.total - floats.Dot(p.column(i), rowSums)
	}
	distribution := core.NewDistribution1D(alpha)

	accumulated := make(map[int]float64)
	for k := 0; k < count; k++ {
		idx, pdf := distribution.Sample(rng.Float64())
		if pdf > 0 {
			accumulated[idx] += 1 / pdf
		}
	}

	seeds := make([]int, 0, len(accumulated))
	for idx := range accumulated {
		seeds = append(seeds, idx)
	}
	sort.Ints(seeds)
	weights := make([]float64, len(seeds))
	for j, idx := range seeds {
		weights[j] = accumulated[idx]
	}
	return seeds, weights
}

// assign puts every column in the cluster of its nearest weighted seed,
// using ||a-b||² = ||a||² + ||b||² - 2a·b over one dense product. Ties go
// to the lowest seed; seeds without members are dropped.
func assign(p *projected, seeds []int, weights []float64) [][]int {
	if len(seeds) == 0 {
		return nil
	}
	n, dim := p.cols.Dims()

	weighted := mat.NewDense(len(seeds), dim, nil)
	seedNormSqr := make([]float64, len(seeds))
	for j, idx := range seeds {
		row := weighted.RawRowView(j)
		floats.ScaleTo(row, weights[j], p.column(idx))
		seedNormSqr[j] = floats.Dot(row, row)
	}

	var dots mat.Dense
	dots.Mul(p.cols, weighted.T())

	members := make([][]int, len(seeds))
	for i := 0; i < n; i++ {
		best, bestDist := 0, math.Inf(1)
		normSqr := p.norms[i] * p.norms[i]
		for j := range seeds {
			dist := math.Max(0, normSqr+seedNormSqr[j]-2*dots.At(i, j))
			if dist < bestDist {
				best, bestDist = j, dist
			}
		}
		members[best] = append(members[best], i)
	}

	clusters := members[:0]
	for _, m := range members {
		if len(m) > 0 {
			clusters = append(clusters, m)
		}
	}
	return clusters
}
