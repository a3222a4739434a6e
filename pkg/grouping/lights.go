package grouping

import (
	"math/rand"

	"github.com/df07/go-manylight-renderer/pkg/lights"
)

// GroupLights partitions the global light indices of list into roughly count
// spatial groups. Directional lights have no position and form one extra group.
// A count of zero or less yields a single group holding every light.
func GroupLights(list *lights.LightList, count int, rng *rand.Rand) [][]int {
	if list.Len() == 0 {
		return nil
	}
	if count <= 0 {
		all := make([]int, list.Len())
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}

	omni, directional, _ := list.Counts()
	var elems []Element
	var globals []int
	for i, l := range list.Omni {
		elems = append(elems, Element{Position: l.Position})
		globals = append(globals, i)
	}
	for i, l := range list.Oriented {
		elems = append(elems, Element{Position: l.Position, Normal: l.Normal})
		globals = append(globals, omni+directional+i)
	}

	var result [][]int
	for _, g := range GroupPoints(elems, count, rng) {
		members := make([]int, len(g.Indices))
		for i, idx := range g.Indices {
			members[i] = globals[idx]
		}
		result = append(result, members)
	}

	if directional > 0 {
		members := make([]int, directional)
		for i := range members {
			members[i] = omni + i
		}
		result = append(result, members)
	}
	return result
}
