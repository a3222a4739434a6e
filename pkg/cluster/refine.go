package cluster

import (
	"container/heap"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// costTolerance is the relative slack allowed when comparing split costs
const costTolerance = 1e-9

// clusterNode is one cluster of the refinement: column indices plus the
// quantities its cost is derived from
type clusterNode struct {
	id      int       // creation order, breaks cost ties
	members []int     // column indices
	sum     []float64 // sum of the members' projected columns
	normSum float64   // sum of the members' projected norms
	cost    float64   // max(0, normSum² - |sum|²)
}

// clusterHeap is a max-heap on cost, ties broken by the lower id
type clusterHeap []*clusterNode

func (h clusterHeap) Len() int { return len(h) }
func (h clusterHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost > h[j].cost
	}
	return h[i].id < h[j].id
}
func (h clusterHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *clusterHeap) Push(x interface{}) { *h = append(*h, x.(*clusterNode)) }
func (h *clusterHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}

// refiner splits the worst cluster until the budget is reached, no cluster
// has any cost left, or the worst cost falls under the threshold
type refiner struct {
	p         *projected
	heap      clusterHeap
	done      []*clusterNode // clusters that cannot be split further
	budget    int
	threshold float64 // absolute cost threshold
	nextID    int

	splits    int
	rejected  int
	earlyStop bool
}

func newRefiner(p *projected, initial [][]int, budget int, relativeThreshold float64) *refiner {
	r := &refiner{
		p:         p,
		budget:    budget,
		threshold: relativeThreshold * p.total * p.total,
	}
	for _, members := range initial {
		r.heap = append(r.heap, r.newNode(members))
	}
	heap.Init(&r.heap)
	return r
}

func (r *refiner) newNode(members []int) *clusterNode {
	_, dim := r.p.cols.Dims()
	node := &clusterNode{id: r.nextID, members: members, sum: make([]float64, dim)}
	r.nextID++
	for _, i := range members {
		floats.Add(node.sum, r.p.column(i))
		node.normSum += r.p.norms[i]
	}
	node.cost = max(0, node.normSum*node.normSum-floats.Dot(node.sum, node.sum))
	return node
}

func (r *refiner) count() int {
	return len(r.heap) + len(r.done)
}

// run refines to completion
func (r *refiner) run() {
	for r.step() {
	}
}

// step performs one refinement and reports whether refinement continues
func (r *refiner) step() bool {
	if r.count() >= r.budget || len(r.heap) == 0 {
		return false
	}
	top := r.heap[0]
	if top.cost <= 0 {
		return false
	}
	if top.cost <= r.threshold {
		r.earlyStop = true
		return false
	}

	heap.Pop(&r.heap)
	left, right, ok := r.split(top)
	if !ok {
		r.done = append(r.done, top)
		return true
	}
	if left.cost+right.cost > top.cost*(1+costTolerance) {
		r.rejected++
		r.done = append(r.done, top)
		return true
	}

	heap.Push(&r.heap, left)
	heap.Push(&r.heap, right)
	r.splits++
	return true
}

// split cuts node along the line through its two strongest columns, at the
// midpoint of the range of projections onto that line
func (r *refiner) split(node *clusterNode) (*clusterNode, *clusterNode, bool) {
	if len(node.members) < 2 {
		return nil, nil, false
	}

	first, second := -1, -1
	for _, i := range node.members {
		switch {
		case first < 0 || r.p.norms[i] > r.p.norms[first]:
			first, second = i, first
		case second < 0 || r.p.norms[i] > r.p.norms[second]:
			second = i
		}
	}

	direction := make([]float64, len(node.sum))
	floats.SubTo(direction, r.p.column(first), r.p.column(second))

	projections := make([]float64, len(node.members))
	for k, i := range node.members {
		projections[k] = floats.Dot(r.p.column(i), direction)
	}
	lo, hi := floats.Min(projections), floats.Max(projections)
	if !(hi > lo) {
		return nil, nil, false
	}
	mid := 0.5 * (lo + hi)

	var leftMembers, rightMembers []int
	for k, i := range node.members {
		if projections[k] < mid {
			leftMembers = append(leftMembers, i)
		} else {
			rightMembers = append(rightMembers, i)
		}
	}
	if len(leftMembers) == 0 || len(rightMembers) == 0 {
		return nil, nil, false
	}
	return r.newNode(leftMembers), r.newNode(rightMembers), true
}

// clusters returns the member lists of every cluster ordered by creation
func (r *refiner) clusters() [][]int {
	nodes := make([]*clusterNode, 0, r.count())
	nodes = append(nodes, r.heap...)
	nodes = append(nodes, r.done...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })

	result := make([][]int, len(nodes))
	for k, node := range nodes {
		result[k] = node.members
	}
	return result
}
