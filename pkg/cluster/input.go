package cluster

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/reduced"
)

// Input is the part of the reduced matrix one clustering call works on
type Input struct {
	// Rows[r][c] is the contribution of column c at sample row r
	Rows [][]core.Vec3
	// Lights[c] is the global light index of column c
	Lights []int
}

// Columns returns the matrix restricted to the given groups (sample rows)
// and lights. A nil lightSubset selects every light.
func Columns(m *reduced.Matrix, groups []int, lightSubset []int) Input {
	lightIdx := lightSubset
	if lightIdx == nil {
		lightIdx = make([]int, m.Lights)
		for i := range lightIdx {
			lightIdx[i] = i
		}
	}

	in := Input{
		Rows:   make([][]core.Vec3, len(groups)),
		Lights: lightIdx,
	}
	for r, g := range groups {
		column := m.Column(g)
		row := make([]core.Vec3, len(lightIdx))
		for c, l := range lightIdx {
			row[c] = column[l]
		}
		in.Rows[r] = row
	}
	return in
}

// channelNorms returns, for every column, the per-channel L2 norm over the rows
func (in Input) channelNorms() []core.Vec3 {
	norms := make([]core.Vec3, len(in.Lights))
	for _, row := range in.Rows {
		for c, v := range row {
			norms[c] = norms[c].Add(v.Square())
		}
	}
	for c := range norms {
		norms[c] = norms[c].Sqrt()
	}
	return norms
}
