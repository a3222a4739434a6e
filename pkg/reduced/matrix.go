package reduced

import (
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Matrix is the dense lights × groups grid of RGB contributions, stored
// column by column so every group owns a contiguous slice
type Matrix struct {
	Lights int
	Groups int
	data   []core.Vec3
}

// NewMatrix creates a zero matrix
func NewMatrix(lights, groups int) *Matrix {
	return &Matrix{Lights: lights, Groups: groups, data: make([]core.Vec3, lights*groups)}
}

// At returns the contribution of light at the seed of group
func (m *Matrix) At(light, group int) core.Vec3 {
	return m.data[group*m.Lights+light]
}

// Set stores the contribution of light at the seed of group
func (m *Matrix) Set(light, group int, v core.Vec3) {
	m.data[group*m.Lights+light] = v
}

// Column returns the contributions of every light at one group's seed.
// The slice aliases the matrix.
func (m *Matrix) Column(group int) []core.Vec3 {
	return m.data[group*m.Lights : (group+1)*m.Lights]
}

// NonZero counts the cells with any contribution
func (m *Matrix) NonZero() int {
	n := 0
	for _, v := range m.data {
		if !v.IsZero() {
			n++
		}
	}
	return n
}

func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix{lights=%d groups=%d}", m.Lights, m.Groups)
}
