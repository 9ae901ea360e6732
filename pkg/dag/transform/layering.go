package transform

import "github.com/matzehuels/chartgeo/pkg/dag"

// AssignLevels places every node at the length of the longest path reaching
// it from a source and stores the result with [dag.DAG.SetLevels].
//
// Sources (nodes without incoming edges) sit at level 0. Every edge s→t is
// relaxed as level[t] = max(level[t], level[s]+1) until a full pass changes
// nothing. Cyclic graphs are rejected up front by [dag.DAG.Validate]. An
// acyclic graph of N nodes settles within N passes, and the loop is capped
// at N+1. Hitting the cap, or finishing with a node that never got a level,
// also yields a [*CycleError]. g is left unchanged on error.
//
// The returned map holds the level of every node.
func AssignLevels(g *dag.DAG) (map[string]int, error) {
	if err := g.Validate(); err != nil {
		return nil, &CycleError{Path: FindCycle(g)}
	}

	nodes := g.Nodes()
	levels := make(map[string]int, len(nodes))
	for _, n := range g.Sources() {
		levels[n.ID] = 0
	}

	edges := g.Edges()
	settled := false
	for pass := 0; pass <= len(nodes); pass++ {
		changed := false
		for _, e := range edges {
			src, ok := levels[e.From]
			if !ok {
				continue
			}
			if cur, ok := levels[e.To]; !ok || src+1 > cur {
				levels[e.To] = src + 1
				changed = true
			}
		}
		if !changed {
			settled = true
			break
		}
	}

	if !settled || len(levels) < len(nodes) {
		return nil, &CycleError{Path: FindCycle(g)}
	}
	g.SetLevels(levels)
	return levels, nil
}
