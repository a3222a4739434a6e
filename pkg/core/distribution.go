package core

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Distribution1D is a discrete distribution used for importance sampling.
// Negative weights are treated as zero; when every weight is zero the
// distribution falls back to uniform so sampling never divides by zero.
type Distribution1D struct {
	pdf     []float64
	cdf     []float64
	uniform bool
}

// NewDistribution1D builds a distribution proportional to weights
func NewDistribution1D(weights []float64) *Distribution1D {
	n := len(weights)
	d := &Distribution1D{
		pdf: make([]float64, n),
		cdf: make([]float64, n),
	}
	if n == 0 {
		return d
	}

	for i, w := range weights {
		if w > 0 {
			d.pdf[i] = w
		}
	}

	total := floats.Sum(d.pdf)
	if total <= 0 || isNaNOrInf(total) {
		d.uniform = true
		for i := range d.pdf {
			d.pdf[i] = 1.0 / float64(n)
		}
	} else {
		floats.Scale(1.0/total, d.pdf)
	}

	floats.CumSum(d.cdf, d.pdf)
	d.cdf[n-1] = 1.0
	return d
}

// Len returns the number of entries
func (d *Distribution1D) Len() int {
	return len(d.pdf)
}

// IsUniform reports whether the distribution fell back to uniform weights
func (d *Distribution1D) IsUniform() bool {
	return d.uniform
}

// PDF returns the selection probability of entry i
func (d *Distribution1D) PDF(i int) float64 {
	if i < 0 || i >= len(d.pdf) {
		return 0
	}
	return d.pdf[i]
}

// Sample maps u in [0,1) to an entry and returns it with its probability.
// Entries with zero probability are never returned.
func (d *Distribution1D) Sample(u float64) (int, float64) {
	if len(d.cdf) == 0 {
		return -1, 0
	}
	i := sort.SearchFloat64s(d.cdf, u)
	// SearchFloat64s finds the first cdf >= u; u landing exactly on a
	// boundary belongs to the next bucket
	for i < len(d.cdf)-1 && (d.cdf[i] <= u || d.pdf[i] == 0) {
		i++
	}
	if i >= len(d.cdf) {
		i = len(d.cdf) - 1
	}
	// rounding in the cdf tail can land on a trailing zero entry
	for i > 0 && d.pdf[i] == 0 {
		i--
	}
	return i, d.pdf[i]
}

// String returns a string representation for debugging
func (d *Distribution1D) String() string {
	return fmt.Sprintf("Distribution1D{n=%d uniform=%t}", len(d.pdf), d.uniform)
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e308 || v < -1e308
}
