package reduced

import (
	"context"
	"fmt"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/grouping"
	"github.com/df07/go-manylight-renderer/pkg/integrator"
	"github.com/df07/go-manylight-renderer/pkg/lights"
)

// Render evaluates every light at the seed gather point of every group.
// Groups are independent tasks, each filling its own column.
func Render(ctx context.Context, runner core.Runner, s integrator.Scene, groups []grouping.Group, points []integrator.GatherPoint, list *lights.LightList, clampDistSqr float64) (*Matrix, error) {
	m := NewMatrix(list.Len(), len(groups))

	err := runner.ForEach(ctx, len(groups), func(ctx context.Context, g int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seed := &points[groups[g].Seed]
		column := m.Column(g)
		for l := range column {
			column[l] = integrator.ListContribution(s, list, l, &seed.SI, seed.Wo, clampDistSqr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("while rendering reduced matrix: %w", err)
	}
	return m, nil
}
