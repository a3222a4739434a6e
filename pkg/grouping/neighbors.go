package grouping

// AttachNeighbors fills Group.Neighbors with the k groups whose seeds are
// closest in 6D to each group's seed. It returns the tree over the seeds,
// which also serves to locate the group of an arbitrary surface point.
func AttachNeighbors(groups []Group, elems []Element, k int) *Tree {
	normScale := NormScale(elems)
	keys := make([]Point6, len(groups))
	ids := make([]int, len(groups))
	for i, g := range groups {
		keys[i] = Key(elems[g.Seed], normScale)
		ids[i] = i
	}
	tree := NewTree(keys, ids, normScale)

	for i := range groups {
		groups[i].Neighbors = groups[i].Neighbors[:0]
		if k <= 0 {
			continue
		}
		for _, id := range tree.Nearest(keys[i], k+1) {
			if id != i && len(groups[i].Neighbors) < k {
				groups[i].Neighbors = append(groups[i].Neighbors, id)
			}
		}
	}
	return tree
}
