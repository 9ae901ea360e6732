package dag_test

import (
	"fmt"

	"github.com/matzehuels/chartgeo/pkg/dag"
)

func ExampleDAG_basic() {
	// A simple funnel-shaped flow: visits → signups → orders
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "visits"})
	_ = g.AddNode(dag.Node{ID: "signups"})
	_ = g.AddNode(dag.Node{ID: "orders"})
	_ = g.AddEdge(dag.Edge{From: "visits", To: "signups", Value: 40})
	_ = g.AddEdge(dag.Edge{From: "signups", To: "orders", Value: 10})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Throughput of signups:", g.Throughput("signups"))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Throughput of signups: 50
}

func ExampleDAG_traversal() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "budget"})
	_ = g.AddNode(dag.Node{ID: "rent"})
	_ = g.AddNode(dag.Node{ID: "food"})
	_ = g.AddEdge(dag.Edge{From: "budget", To: "rent", Value: 1200})
	_ = g.AddEdge(dag.Edge{From: "budget", To: "food", Value: 400})

	fmt.Println("Children of budget:", g.Children("budget"))
	fmt.Println("Parents of rent:", g.Parents("rent"))
	fmt.Println("Out-degree of budget:", g.OutDegree("budget"))
	// Output:
	// Children of budget: [rent food]
	// Parents of rent: [budget]
	// Out-degree of budget: 2
}

func ExampleDAG_Sources() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "coal"})
	_ = g.AddNode(dag.Node{ID: "gas"})
	_ = g.AddNode(dag.Node{ID: "grid"})
	_ = g.AddEdge(dag.Edge{From: "coal", To: "grid", Value: 3})
	_ = g.AddEdge(dag.Edge{From: "gas", To: "grid", Value: 5})

	fmt.Println("Sources:", nodeIDs(g.Sources()))
	// Output:
	// Sources: [coal gas]
}

func ExampleDAG_SetLevels() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddNode(dag.Node{ID: "c"})
	g.SetLevels(map[string]int{"b": 1, "c": 1})

	fmt.Println("Levels:", g.LevelCount())
	fmt.Println("Level 1:", nodeIDs(g.NodesInLevel(1)))
	// Output:
	// Levels: 2
	// Level 1: [b c]
}

func ExampleDAG_Validate() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b", Value: 1})
	fmt.Println(g.Validate())

	_ = g.AddEdge(dag.Edge{From: "b", To: "a", Value: 1})
	fmt.Println(g.Validate())
	// Output:
	// <nil>
	// graph contains a cycle
}

func nodeIDs(nodes []*dag.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
