// Package dag provides a weighted directed graph for flow layouts.
//
// # Overview
//
// Sankey diagrams draw quantities moving between stages. This package holds
// the graph behind them: nodes in stable insertion order, weighted edges, and
// an index of nodes by level (the column a node is drawn in).
//
// # Basic Usage
//
// Create a graph with [New], then add nodes and edges:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "visits"})
//	g.AddNode(dag.Node{ID: "signups"})
//	g.AddEdge(dag.Edge{From: "visits", To: "signups", Value: 40})
//
// Insertion order matters: layouts keep it within a level, and [DAG.Nodes]
// returns it. Edges to unknown nodes are rejected with [ErrUnknownSourceNode]
// or [ErrUnknownTargetNode].
//
// # Levels
//
// Levels are assigned by the [transform] subpackage. [transform.AssignLevels]
// computes longest-path levels and reports cycles as a [transform.CycleError];
// [DAG.SetLevels] stores the result and rebuilds the level index used by
// [DAG.NodesInLevel].
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Read-only access from
// multiple goroutines is fine.
//
// [transform]: github.com/matzehuels/chartgeo/pkg/dag/transform
package dag
