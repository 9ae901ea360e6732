// Package transform provides graph transformations that prepare a flow graph
// for layout.
//
// # Level Assignment
//
// [AssignLevels] computes the column of each node as its longest-path
// distance from the sources. Relaxation is bounded, so cyclic input
// terminates with a [*CycleError] instead of looping:
//
//	levels, err := transform.AssignLevels(g)
//	if errors.Is(err, transform.ErrGraphCycle) {
//		// err names the offending nodes
//	}
//
// # Cycles
//
// [FindCycle] isolates one directed cycle with a depth-first search using
// white/gray/black coloring. [BreakCycles] removes back edges so that
// callers who prefer a partial layout over an error can continue:
//
//	transform.BreakCycles(g)
//	transform.AssignLevels(g) // cannot fail now
package transform
