package grouping

import (
	"math/rand"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

// Group is a leaf of the spatial partition of elements
type Group struct {
	Indices   []int     // Element indices, each element is in exactly one group
	Bounds    Bounds6   // Bounds of the members' 6D keys
	Normal    core.Vec3 // Normalized sum of member normals
	Seed      int       // Representative element, one of Indices
	Neighbors []int     // Nearby groups, filled by AttachNeighbors
}

// GroupPoints partitions elems into groups of roughly len(elems)/targetGroupCount
// members. The 6D box of the current subset is split at the center of its
// widest axis until a subset has fewer than max(1, total/target) members.
func GroupPoints(elems []Element, targetGroupCount int, rng *rand.Rand) []Group {
	if len(elems) == 0 {
		return nil
	}
	targetGroupCount = max(1, targetGroupCount)

	normScale := NormScale(elems)
	keys := make([]Point6, len(elems))
	indices := make([]int, len(elems))
	for i, e := range elems {
		keys[i] = Key(e, normScale)
		indices[i] = i
	}

	b := &builder{
		elems:    elems,
		keys:     keys,
		leafSize: max(1, len(elems)/targetGroupCount),
		rng:      rng,
	}
	b.split(indices)
	return b.groups
}

type builder struct {
	elems    []Element
	keys     []Point6
	leafSize int
	rng      *rand.Rand
	groups   []Group
}

func (b *builder) split(indices []int) {
	bounds := EmptyBounds6()
	for _, idx := range indices {
		bounds.Extend(b.keys[idx])
	}

	if len(indices) < b.leafSize || len(indices) <= 1 {
		b.emit(indices, bounds)
		return
	}
	axis, extent := bounds.WidestAxis()
	if extent <= 0 {
		// All members coincide
		b.emit(indices, bounds)
		return
	}

	mid := partition(indices, func(idx int) bool {
		return b.keys[idx][axis] < bounds.Center(axis)
	})
	if mid == 0 || mid == len(indices) {
		b.emit(indices, bounds)
		return
	}
	b.split(indices[:mid])
	b.split(indices[mid:])
}

func (b *builder) emit(indices []int, bounds Bounds6) {
	var normal core.Vec3
	for _, idx := range indices {
		normal = normal.Add(b.elems[idx].Normal)
	}
	b.groups = append(b.groups, Group{
		Indices: append([]int(nil), indices...),
		Bounds:  bounds,
		Normal:  normal.Normalize(),
		Seed:    indices[b.rng.Intn(len(indices))],
	})
}

// partition moves the indices satisfying pred to the front and returns
// how many there are
func partition(indices []int, pred func(int) bool) int {
	mid := 0
	for i, idx := range indices {
		if pred(idx) {
			indices[i], indices[mid] = indices[mid], indices[i]
			mid++
		}
	}
	return mid
}
