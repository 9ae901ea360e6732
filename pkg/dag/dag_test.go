package dag

import (
	"errors"
	"testing"
)

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func build(t *testing.T, ids []string, edges [][2]string) *DAG {
	t.Helper()
	g := New()
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{From: e[0], To: e[1], Value: 1}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID: err = %v, want ErrInvalidNodeID", err)
	}
	_ = g.AddNode(Node{ID: "a", Label: "first"})
	if err := g.AddNode(Node{ID: "a", Label: "second"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate: err = %v, want ErrDuplicateNodeID", err)
	}
	if n, _ := g.Node("a"); n.Label != "first" {
		t.Errorf("duplicate replaced the first node: %+v", n)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := build(t, []string{"a"}, nil)
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("err = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("err = %v, want ErrUnknownTargetNode", err)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := build(t, []string{"z", "a", "m"}, nil)
	got := ids(g.Nodes())
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() = %v, want %v", got, want)
		}
	}
	if n, _ := g.Node("m"); n.Index != 2 {
		t.Errorf("Index = %d, want 2", n.Index)
	}
}

func TestThroughput(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "b", Value: 30})
	_ = g.AddEdge(Edge{From: "b", To: "c", Value: 20})
	_ = g.AddEdge(Edge{From: "a", To: "c", Value: 5})

	tests := map[string]float64{"a": 35, "b": 50, "c": 25}
	for id, want := range tests {
		if got := g.Throughput(id); got != want {
			t.Errorf("Throughput(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestRemoveEdge(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"a", "b"}})
	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 0 || g.OutDegree("a") != 0 || g.InDegree("b") != 0 {
		t.Errorf("edges left after RemoveEdge: %d", g.EdgeCount())
	}
}

func TestLevels(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, nil)
	g.SetLevels(map[string]int{"a": 0, "b": 2, "c": 2, "d": 5})
	if g.LevelCount() != 3 {
		t.Errorf("LevelCount() = %d, want 3", g.LevelCount())
	}
	if g.MaxLevel() != 5 {
		t.Errorf("MaxLevel() = %d, want 5", g.MaxLevel())
	}
	if got := ids(g.NodesInLevel(2)); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("NodesInLevel(2) = %v, want [b c]", got)
	}
	if New().MaxLevel() != 0 {
		t.Error("empty graph MaxLevel should be 0")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		want  error
	}{
		{"chain", [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"diamond", [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil},
		{"triangle", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, ErrGraphHasCycle},
		{"self loop", [][2]string{{"a", "a"}}, ErrGraphHasCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, []string{"a", "b", "c", "d"}, tt.edges)
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSources(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}})
	if got := ids(g.Sources()); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Sources() = %v, want [a c]", got)
	}
}
