package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists. The first node added under an ID wins.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle
	// is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Node is a vertex of a flow graph.
//
// Index is the insertion position and is assigned by [DAG.AddNode]. Level is
// the column a layout places the node in; it is zero until assigned.
type Node struct {
	ID    string
	Label string
	Value float64
	Color string
	Level int
	Index int
}

// Edge is a directed, weighted link between two nodes.
type Edge struct {
	From  string
	To    string
	Value float64
}

// DAG is a directed graph with weighted edges and stable node order.
//
// Despite the name it does not reject cycles on insertion; use [DAG.Validate]
// or the transform package to detect them. The zero value is not usable; use
// [New]. DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> target IDs
	incoming map[string][]string // nodeID -> source IDs
	levels   map[int][]*Node     // level -> nodes in input order
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		levels:   make(map[int][]*Node),
	}
}

// AddNode appends a node and indexes it by its Level.
// The node's Index is overwritten with its insertion position.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	n.Index = len(d.order)
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node)
	d.levels[node.Level] = append(d.levels[node.Level], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Parallel edges and self-loops are allowed.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes every edge from→to. It is a no-op if none exists.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// SetLevels updates level assignments and rebuilds the level index.
// Nodes missing from levels keep their current level.
func (d *DAG) SetLevels(levels map[string]int) {
	d.levels = make(map[int][]*Node)
	for _, n := range d.order {
		if lvl, ok := levels[n.ID]; ok {
			n.Level = lvl
		}
		d.levels[n.Level] = append(d.levels[n.Level], n)
	}
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the target IDs of edges leaving id. The slice is read-only.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the source IDs of edges entering id. The slice is read-only.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Throughput returns the summed value of all edges touching id, incoming
// and outgoing. A self-loop counts twice.
func (d *DAG) Throughput(id string) float64 {
	var total float64
	for _, e := range d.edges {
		if e.From == id {
			total += e.Value
		}
		if e.To == id {
			total += e.Value
		}
	}
	return total
}

// NodesInLevel returns the nodes assigned to level in insertion order.
func (d *DAG) NodesInLevel(level int) []*Node { return d.levels[level] }

// LevelCount returns the number of distinct non-empty levels.
func (d *DAG) LevelCount() int { return len(d.levels) }

// LevelIDs returns all level indices in ascending order.
func (d *DAG) LevelIDs() []int {
	return slices.Sorted(maps.Keys(d.levels))
}

// MaxLevel returns the highest level index, or 0 if the graph is empty.
func (d *DAG) MaxLevel() int {
	if len(d.levels) == 0 {
		return 0
	}
	ids := d.LevelIDs()
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Validate returns ErrGraphHasCycle if the graph has a directed cycle.
// [DAG.AddEdge] already rejects dangling endpoints, so cycles are the only
// structural defect left. It runs in O(N+E).
func (d *DAG) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, n := range d.order {
		if color[n.ID] == white {
			dfs(n.ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
