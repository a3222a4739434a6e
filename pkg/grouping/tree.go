package grouping

import (
	"math"
	"sort"
)

// treeLeafSize is the maximum number of points stored in a leaf
const treeLeafSize = 4

type kdEntry struct {
	point Point6
	id    int
}

// kdNode is a node stored in the tree arena. Interior nodes split on axis at
// split and reference their children by index; leaves hold a range of entries.
type kdNode struct {
	axis        int
	split       float64
	left, right int32
	start, end  int32
}

// Tree is a k-d tree over 6D points used for nearest neighbor queries
type Tree struct {
	nodes     []kdNode
	entries   []kdEntry
	normScale float64
}

// NewTree builds a tree over points; ids[i] is reported for points[i].
// normScale is the factor used to build the points, NearestGroup needs it.
func NewTree(points []Point6, ids []int, normScale float64) *Tree {
	t := &Tree{
		entries:   make([]kdEntry, len(points)),
		normScale: normScale,
	}
	for i, p := range points {
		t.entries[i] = kdEntry{point: p, id: ids[i]}
	}
	if len(points) > 0 {
		t.nodes = make([]kdNode, 0, 2*len(points)/treeLeafSize+1)
		t.build(0, len(points))
	}
	return t
}

// Len returns the number of points in the tree
func (t *Tree) Len() int {
	return len(t.entries)
}

func (t *Tree) build(start, end int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, kdNode{left: -1, right: -1, start: int32(start), end: int32(end)})
	if end-start <= treeLeafSize {
		return idx
	}

	bounds := EmptyBounds6()
	for _, e := range t.entries[start:end] {
		bounds.Extend(e.point)
	}
	axis, extent := bounds.WidestAxis()
	if extent <= 0 {
		return idx
	}

	span := t.entries[start:end]
	sort.Slice(span, func(i, j int) bool {
		return span[i].point[axis] < span[j].point[axis]
	})
	mid := (start + end) / 2
	// The children reorder the span along their own axes
	split := t.entries[mid].point[axis]

	left := t.build(start, mid)
	right := t.build(mid, end)
	t.nodes[idx] = kdNode{axis: axis, split: split, left: left, right: right}
	return idx
}

// Nearest returns the ids of the k points closest to q, nearest first.
// Equal distances are ordered by id.
func (t *Tree) Nearest(q Point6, k int) []int {
	if k <= 0 || len(t.nodes) == 0 {
		return nil
	}
	best := &neighborList{k: k}
	t.search(0, q, best)

	ids := make([]int, len(best.items))
	for i, item := range best.items {
		ids[i] = item.id
	}
	return ids
}

// NearestGroup returns the id of the point closest to the given surface
// point, or -1 for an empty tree
func (t *Tree) NearestGroup(e Element) int {
	ids := t.Nearest(Key(e, t.normScale), 1)
	if len(ids) == 0 {
		return -1
	}
	return ids[0]
}

func (t *Tree) search(node int32, q Point6, best *neighborList) {
	n := &t.nodes[node]
	if n.left < 0 {
		for _, e := range t.entries[n.start:n.end] {
			best.offer(q.DistanceSquared(e.point), e.id)
		}
		return
	}

	diff := q[n.axis] - n.split
	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}
	t.search(near, q, best)
	if diff*diff <= best.worst() {
		t.search(far, q, best)
	}
}

type neighbor struct {
	distSqr float64
	id      int
}

// neighborList keeps the k best candidates sorted by (distance, id)
type neighborList struct {
	k     int
	items []neighbor
}

func (l *neighborList) worst() float64 {
	if len(l.items) < l.k {
		return math.Inf(1)
	}
	return l.items[len(l.items)-1].distSqr
}

func (l *neighborList) offer(distSqr float64, id int) {
	less := func(a, b neighbor) bool {
		if a.distSqr != b.distSqr {
			return a.distSqr < b.distSqr
		}
		return a.id < b.id
	}
	candidate := neighbor{distSqr, id}
	if len(l.items) == l.k && !less(candidate, l.items[len(l.items)-1]) {
		return
	}

	pos := sort.Search(len(l.items), func(i int) bool { return less(candidate, l.items[i]) })
	if len(l.items) < l.k {
		l.items = append(l.items, neighbor{})
	}
	copy(l.items[pos+1:], l.items[pos:len(l.items)-1])
	l.items[pos] = candidate
}
