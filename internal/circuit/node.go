package circuit

// Kind tags what a terminal is. Tags are informational; reachability ignores them.
type Kind string

const (
	KindNone          Kind = ""
	KindHotSource     Kind = "hot-source"
	KindNeutralSource Kind = "neutral-source"
	KindGround        Kind = "ground"
	KindTraveler      Kind = "traveler"
	KindContact       Kind = "contact"
	KindLoadTerminal  Kind = "load-terminal"
)

// Valid reports whether k is one of the known kinds (KindNone included).
func (k Kind) Valid() bool {
	switch k {
	case KindNone, KindHotSource, KindNeutralSource, KindGround,
		KindTraveler, KindContact, KindLoadTerminal:
		return true
	}
	return false
}

// Color is the wire category used for rendering.
type Color string

const (
	ColorHot      Color = "hot"
	ColorNeutral  Color = "neutral"
	ColorGround   Color = "ground"
	ColorTraveler Color = "traveler"
)

// Edge is one half of a wire, as seen from its From endpoint.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color Color  `json:"color"`
}

// Node is a registered terminal and its incident edges.
type Node struct {
	key   string
	kind  Kind
	edges []Edge
}

func (n *Node) Key() string   { return n.key }
func (n *Node) Kind() Kind    { return n.kind }
func (n *Node) Edges() []Edge { return n.edges }
func (n *Node) Degree() int   { return len(n.edges) }

// KeySet is a set of node keys passed per query (open switches, load terminals).
type KeySet map[string]struct{}

// NewKeySet builds a set from keys, skipping empty strings.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		if k != "" {
			s[k] = struct{}{}
		}
	}
	return s
}

// Has is safe on a nil set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Union returns a new set holding the members of s and every other set.
func (s KeySet) Union(others ...KeySet) KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, o := range others {
		for k := range o {
			out[k] = struct{}{}
		}
	}
	return out
}
