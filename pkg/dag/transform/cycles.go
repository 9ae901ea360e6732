package transform

import (
	"slices"
	"strings"

	"github.com/matzehuels/chartgeo/pkg/dag"
)

// ErrGraphCycle matches every [CycleError] under errors.Is.
var ErrGraphCycle = dag.ErrGraphHasCycle

// CycleError reports a directed cycle that prevents level assignment.
// Path lists the nodes on the cycle in edge order; the last node links back
// to the first. Path is empty when no concrete cycle could be isolated.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "graph contains a cycle"
	}
	return "graph contains a cycle: " + strings.Join(append(slices.Clone(e.Path), e.Path[0]), " -> ")
}

func (e *CycleError) Unwrap() error { return ErrGraphCycle }

// FindCycle returns the nodes of one directed cycle, or nil if g is acyclic.
// Traversal starts from nodes in insertion order, so the result is deterministic.
func FindCycle(g *dag.DAG) []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = slices.Clone(stack[start:])
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white && dfs(n.ID) {
			return cycle
		}
	}
	return nil
}

// BreakCycles removes back edges found by depth-first search until g is
// acyclic and returns the number of edges removed. Search starts at the
// sources so that edges leaving them are kept.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}
