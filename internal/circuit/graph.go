package circuit

// Graph holds terminals and the undirected wires between them.
// It is owned by a single evaluation cycle and rebuilt from scratch each time;
// nothing here is safe for concurrent use.
type Graph struct {
	nodes map[string]*Node // key → Node
	order []string         // registration order, for stable iteration
	wires []Wire           // flat list, for rendering
}

// Wire is one undirected connection as drawn by the presentation layer.
type Wire struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Color Color  `json:"color"`
}

// NewGraph allocates an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode registers a node by key. Registering an existing key resets its edges.
func (g *Graph) AddNode(key string, kind Kind) {
	if _, ok := g.nodes[key]; !ok {
		g.order = append(g.order, key)
	}
	g.nodes[key] = &Node{key: key, kind: kind}
}

// Connect adds a bidirectional edge between a and b.
// It is a no-op when either key is unregistered.
func (g *Graph) Connect(a, b string, color Color) {
	na, ok := g.nodes[a]
	if !ok {
		return
	}
	nb, ok := g.nodes[b]
	if !ok {
		return
	}
	na.edges = append(na.edges, Edge{From: a, To: b, Color: color})
	nb.edges = append(nb.edges, Edge{From: b, To: a, Color: color})
	g.wires = append(g.wires, Wire{A: a, B: b, Color: color})
}

// ConnectSwitch adds whatever edges sw contributes in its current state.
func (g *Graph) ConnectSwitch(sw Switch) {
	for _, e := range sw.Edges() {
		g.Connect(e.From, e.To, e.Color)
	}
}

// Reset drops every edge but keeps the registered nodes.
func (g *Graph) Reset() {
	g.wires = g.wires[:0]
	for _, n := range g.nodes {
		n.edges = nil
	}
}

// Node returns a node by key (nil if not found).
func (g *Graph) Node(key string) *Node {
	return g.nodes[key]
}

// Has reports whether key is registered.
func (g *Graph) Has(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Nodes returns all nodes in registration order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.nodes[k])
	}
	return out
}

// Wires returns a copy of the flat wire list.
func (g *Graph) Wires() []Wire {
	out := make([]Wire, len(g.wires))
	copy(out, g.wires)
	return out
}

// NodeCount returns the total number of registered nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return len(g.wires)
}
