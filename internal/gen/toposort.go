package gen

import (
	"sort"

	"github.com/p2p-ld/nwb-linkml-sub001/internal/linkml"
)

// topoSort returns indices so that every index comes after its dependencies.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i; a node listing itself
// can never be placed.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. Nodes that could not be placed are returned as stuck.
func topoSort(n int, depsFn func(i int) []int) (order, stuck []int) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	for i := range n {
		if indeg[i] > 0 {
			stuck = append(stuck, i)
		}
	}

	return order, stuck
}

// SortClasses orders classes so that every class comes after its is_a and
// mixins. Parents named in imported are already available. A parent that is
// neither local nor imported blocks its class.
func SortClasses(classes []*linkml.ClassDefinition, imported []string) ([]*linkml.ClassDefinition, error) {
	local := make(map[string]int, len(classes))
	for i, c := range classes {
		local[c.Name] = i
	}

	available := make(map[string]bool, len(imported))
	for _, name := range imported {
		available[name] = true
	}

	order, stuck := topoSort(len(classes), func(i int) []int {
		var deps []int

		for _, p := range classes[i].Parents() {
			switch j, ok := local[p]; {
			case ok && j != i:
				deps = append(deps, j)
			case available[p]:
			default:
				deps = append(deps, i)
			}
		}

		return deps
	})

	if len(stuck) > 0 {
		names := make([]string, len(stuck))
		for k, i := range stuck {
			names[k] = classes[i].Name
		}

		return nil, &CycleError{Remaining: names}
	}

	sorted := make([]*linkml.ClassDefinition, len(order))
	for k, i := range order {
		sorted[k] = classes[i]
	}

	return sorted, nil
}
