package geometry

import (
	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/material"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// bvhNode is a node stored in the BVH arena. Leaves reference a range of
// the reordered shape slice, interior nodes reference their children by index.
type bvhNode struct {
	box         core.AABB
	left, right int32 // child indices, -1 for leaves
	start, end  int32 // shape range for leaves
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	nodes  []bvhNode
	shapes []Shape
	Center core.Vec3 // Center of the finite scene bounds
	Radius float64   // Radius of the bounding sphere around Center
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{shapes: make([]Shape, len(shapes))}
	copy(bvh.shapes, shapes)
	if len(shapes) == 0 {
		return bvh
	}

	centers := make([]core.Vec3, len(bvh.shapes))
	for i, s := range bvh.shapes {
		centers[i] = s.BoundingBox().Center()
	}
	bvh.nodes = make([]bvhNode, 0, 2*len(shapes))
	bvh.build(centers, 0, len(bvh.shapes))

	root := bvh.nodes[0].box
	bvh.Center = root.Center()
	bvh.Radius = root.Max.Subtract(bvh.Center).Length()
	return bvh
}

// build splits along the longest axis at the box midpoint and returns the node index
func (bvh *BVH) build(centers []core.Vec3, start, end int) int32 {
	box := core.EmptyAABB()
	for i := start; i < end; i++ {
		box = box.Union(bvh.shapes[i].BoundingBox())
	}

	idx := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, bvhNode{box: box, left: -1, right: -1, start: int32(start), end: int32(end)})
	if end-start <= leafThreshold {
		return idx
	}

	centroidBox := core.EmptyAABB()
	for i := start; i < end; i++ {
		centroidBox = centroidBox.Extend(centers[i])
	}
	axis := centroidBox.LongestAxis()
	lo, hi := centroidBox.Min.Component(axis), centroidBox.Max.Component(axis)
	if hi <= lo {
		return idx
	}
	split := 0.5 * (lo + hi)

	// In-place partition of shapes and their cached centers
	mid := start
	for i := start; i < end; i++ {
		if centers[i].Component(axis) < split {
			bvh.shapes[i], bvh.shapes[mid] = bvh.shapes[mid], bvh.shapes[i]
			centers[i], centers[mid] = centers[mid], centers[i]
			mid++
		}
	}
	if mid == start || mid == end {
		return idx
	}

	left := bvh.build(centers, start, mid)
	right := bvh.build(centers, mid, end)
	bvh.nodes[idx].left = left
	bvh.nodes[idx].right = right
	return idx
}

// Hit returns the closest intersection along the ray within [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	var closest *material.SurfaceInteraction
	closestSoFar := tMax

	stack := make([]int32, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !node.box.Hit(ray, tMin, closestSoFar) {
			continue
		}
		if node.left < 0 {
			for _, shape := range bvh.shapes[node.start:node.end] {
				if si, ok := shape.Hit(ray, tMin, closestSoFar); ok {
					closest = si
					closestSoFar = si.T
				}
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}
	return closest, closest != nil
}

// HitAny reports whether anything intersects the ray within [tMin, tMax]
func (bvh *BVH) HitAny(ray core.Ray, tMin, tMax float64) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	stack := make([]int32, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !node.box.Hit(ray, tMin, tMax) {
			continue
		}
		if node.left < 0 {
			for _, shape := range bvh.shapes[node.start:node.end] {
				if _, ok := shape.Hit(ray, tMin, tMax); ok {
					return true
				}
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}
	return false
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.EmptyAABB()
	}
	return bvh.nodes[0].box
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats walks the arena and collects structure statistics
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if len(bvh.nodes) == 0 {
		return stats
	}

	type entry struct {
		node  int32
		depth int
	}
	stack := []entry{{0, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.totalNodes++
		stats.maxDepth = max(stats.maxDepth, e.depth)
		node := bvh.nodes[e.node]
		if node.left < 0 {
			stats.leafNodes++
			stats.totalShapes += int(node.end - node.start)
			continue
		}
		stack = append(stack, entry{node.left, e.depth + 1}, entry{node.right, e.depth + 1})
	}
	return stats
}
