package renderer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-manylight-renderer/pkg/cluster"
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/grouping"
	"github.com/df07/go-manylight-renderer/pkg/integrator"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/reduced"
	"github.com/df07/go-manylight-renderer/pkg/scene"
)

// Result is the output of one render
type Result struct {
	Image  *Image
	Lights *lights.LightList
	Cuts   [][]lights.ScaledLight // Representative lights of every gather group
	Stats  RenderStats
}

// Renderer runs the many-light pipeline over a scene: virtual light
// generation, gather point shooting, grouping, reduced matrix, clustering
// and the final pass.
type Renderer struct {
	scene      *scene.Scene
	config     Config
	workerPool *WorkerPool
	reporter   core.Reporter
}

// NewRenderer validates config and creates a renderer. A nil reporter
// discards progress.
func NewRenderer(s *scene.Scene, config Config, reporter core.Reporter) (*Renderer, error) {
	if s == nil || s.BVH == nil {
		return nil, fmt.Errorf("scene is missing or was not preprocessed")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = core.NopReporter{}
	}
	return &Renderer{
		scene:      s,
		config:     config,
		workerPool: NewWorkerPool(config.NumWorkers),
		reporter:   reporter,
	}, nil
}

// GetNumWorkers returns the parallelism of the pipeline stages
func (r *Renderer) GetNumWorkers() int {
	return r.workerPool.GetNumWorkers()
}

// renderState carries the intermediate products between stages
type renderState struct {
	lights   *lights.LightList
	shot     integrator.ShootResult
	elems    []grouping.Element
	groups   []grouping.Group
	tree     *grouping.Tree
	clamp    float64
	matrix   *reduced.Matrix
	cuts     [][]lights.ScaledLight
	image    *Image
	stats    RenderStats
	pipeline []StageTiming
}

// Render runs every stage in order. Each stage is parallel internally and
// the stages are separated by joins, so the products of a stage are
// read-only for the next one.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	start := time.Now()
	st := &renderState{image: NewImage(r.config.Width, r.config.Height, r.config.RecordCutSize)}

	stages := []struct {
		name string
		run  func(ctx context.Context, st *renderState) error
	}{
		{"generate lights", r.generateLights},
		{"shoot gather points", r.shoot},
		{"group gather points", r.group},
		{"render reduced matrix", r.renderMatrix},
		{"cluster lights", r.clusterLights},
		{"render final image", r.renderFinal},
		{"accumulate background", r.accumulateBackground},
	}
	for _, stage := range stages {
		stageStart := time.Now()
		r.reporter.BeginActivity(stage.name)
		err := stage.run(ctx, st)
		r.reporter.EndActivity(stage.name)
		if err != nil {
			return nil, fmt.Errorf("while running stage %q: %w", stage.name, err)
		}
		st.pipeline = append(st.pipeline, StageTiming{Name: stage.name, Duration: time.Since(stageStart)})
	}

	st.stats.Stages = st.pipeline
	st.stats.RenderTime = time.Since(start)
	return &Result{Image: st.image, Lights: st.lights, Cuts: st.cuts, Stats: st.stats}, nil
}

func (r *Renderer) generateLights(ctx context.Context, st *renderState) error {
	st.lights = lights.NewLightList()
	generator := lights.NewGenerator(r.scene, r.scene.Sources, lights.GeneratorConfig{
		DirectLightsPerSource: r.config.DirectLightsPerSource,
		MaxWalkDepth:          r.config.MaxWalkDepth,
		Seed:                  r.config.Seed,
	})
	gen, err := generator.Generate(ctx, r.config.IndirectLights, st.lights, r.reporter)
	if err != nil {
		return err
	}

	st.stats.Lights = st.lights.Len()
	st.stats.DirectLights = gen.Direct
	st.stats.IndirectLights = gen.Indirect
	st.stats.Walks = gen.Walks
	r.reporter.Message("generated %s", st.lights)
	return nil
}

func (r *Renderer) shoot(ctx context.Context, st *renderState) error {
	shot, err := integrator.Shoot(ctx, r.workerPool, r.scene, r.config.Width, r.config.Height, r.config.SamplesPerPixel,
		integrator.ShootOptions{MaxSpecularDepth: r.config.MaxSpecularDepth, Seed: r.config.Seed})
	if err != nil {
		return err
	}
	st.shot = shot

	st.stats.Rays = shot.Rays
	st.stats.GatherPoints = len(shot.Points)
	st.stats.Background = len(shot.Background)
	st.stats.Lost = shot.Lost
	st.stats.Exhausted = shot.Exhausted
	return nil
}

func (r *Renderer) group(ctx context.Context, st *renderState) error {
	st.elems = make([]grouping.Element, len(st.shot.Points))
	for i, p := range st.shot.Points {
		st.elems[i] = grouping.Element{Position: p.SI.Point, Normal: p.SI.Normal}
	}

	st.groups = grouping.GroupPoints(st.elems, r.config.GroupCount, core.NewTaskRand(r.config.Seed, core.StreamGroup, 0))
	st.tree = grouping.AttachNeighbors(st.groups, st.elems, r.config.NeighborCount)
	st.stats.Groups = len(st.groups)
	r.reporter.Message("%d gather points in %d groups", len(st.elems), len(st.groups))
	return ctx.Err()
}

func (r *Renderer) renderMatrix(ctx context.Context, st *renderState) error {
	st.clamp = integrator.ClampDistanceSquared(r.scene.BoundingBox(), r.config.MinClampFraction)
	m, err := reduced.Render(ctx, r.workerPool, r.scene, st.groups, st.shot.Points, st.lights, st.clamp)
	if err != nil {
		return err
	}
	st.matrix = m
	st.stats.MatrixNonZero = m.NonZero()
	return nil
}

// clusterLights picks the representative lights of every gather group. The
// rows of a group's clustering are its own seed followed by its neighbors'.
// With light groups, each subset is clustered on its own with a share of the
// budget given by shareBudget.
func (r *Renderer) clusterLights(ctx context.Context, st *renderState) error {
	lightGroups := grouping.GroupLights(st.lights, r.config.LightGroupCount, core.NewTaskRand(r.config.Seed, core.StreamGroup, 1))
	sizes := make([]int, len(lightGroups))
	for i, members := range lightGroups {
		sizes[i] = len(members)
	}
	budgets := shareBudget(r.config.ClusterBudget, sizes)
	st.stats.LightGroups = len(lightGroups)

	st.cuts = make([][]lights.ScaledLight, len(st.groups))
	results := make([][]cluster.Result, len(st.groups))
	err := r.workerPool.ForEach(ctx, len(st.groups), func(ctx context.Context, g int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rng := core.NewTaskRand(r.config.Seed, core.StreamCluster, g)
		rows := append([]int{g}, st.groups[g].Neighbors...)

		var cut []lights.ScaledLight
		for i, members := range lightGroups {
			res := cluster.Cluster(cluster.Columns(st.matrix, rows, members), budgets[i], r.config.Cluster, rng)
			cut = append(cut, res.Lights...)
			results[g] = append(results[g], res)
		}
		st.cuts[g] = cut
		r.reporter.Progress("cluster lights", g+1, len(st.groups))
		return nil
	})
	if err != nil {
		return err
	}

	for g, cut := range st.cuts {
		st.stats.Representatives += len(cut)
		st.stats.MaxCutSize = max(st.stats.MaxCutSize, len(cut))
		for _, res := range results[g] {
			st.stats.Seeds += res.Seeds
			st.stats.Splits += res.Splits
			st.stats.Rejected += res.Rejected
			if res.EarlyStop {
				st.stats.EarlyStops++
			}
		}
	}
	return nil
}

// shareBudget splits budget across groups in proportion to their sizes. Every
// group gets at least one representative, so the shares sum to budget unless
// there are more groups than budget, in which case each group gets one.
// Rounding leftovers go to the largest groups, ties to the lower index.
func shareBudget(budget int, sizes []int) []int {
	shares := make([]int, len(sizes))
	if len(sizes) == 0 {
		return shares
	}
	total := 0
	for _, n := range sizes {
		total += n
	}

	sum := 0
	for i, n := range sizes {
		share := 0
		if total > 0 {
			share = budget * n / total
		}
		shares[i] = max(1, share)
		sum += shares[i]
	}

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sizes[order[a]] > sizes[order[b]] })

	// Raising small groups to one can overshoot; take back from the largest shares
	for sum > budget {
		largest := -1
		for _, i := range order {
			if shares[i] > 1 && (largest < 0 || shares[i] > shares[largest]) {
				largest = i
			}
		}
		if largest < 0 {
			break
		}
		shares[largest]--
		sum--
	}
	for i := 0; sum < budget; i = (i + 1) % len(order) {
		shares[order[i]]++
		sum++
	}
	return shares
}

func (r *Renderer) renderFinal(ctx context.Context, st *renderState) error {
	in := integrator.FinalInput{
		Points: st.shot.Points,
		Groups: st.groups,
		Tree:   st.tree,
		Cuts:   st.cuts,
		Lights: st.lights,
	}
	opts := integrator.FinalOptions{
		Mode:             r.config.FinalMode,
		Width:            r.config.Width,
		Height:           r.config.Height,
		SamplesPerPixel:  r.config.SamplesPerPixel,
		MaxSpecularDepth: r.config.MaxSpecularDepth,
		Seed:             r.config.Seed,
		ClampDistSqr:     st.clamp,
		RecordCutSize:    r.config.RecordCutSize,
	}
	final, err := integrator.RenderFinal(ctx, r.workerPool, r.scene, in, st.image, opts)
	if err != nil {
		return err
	}
	st.stats.Shaded = final.Shaded
	st.stats.Evaluations = final.Evaluations
	return nil
}

// accumulateBackground adds the samples that left the scene, once per render
func (r *Renderer) accumulateBackground(ctx context.Context, st *renderState) error {
	for _, b := range st.shot.Background {
		st.image.Add(b.X, r.config.Height-1-b.Y, b.Radiance.Multiply(b.Strength))
	}
	return ctx.Err()
}
