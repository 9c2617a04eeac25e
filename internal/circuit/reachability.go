package circuit

// HasPath reports whether sink can be reached from source without passing
// through a blocked key. Blocked keys are never expanded and never count as
// an endpoint. Unknown keys yield false.
func (g *Graph) HasPath(source, sink string, blocked KeySet) bool {
	return g.Path(source, sink, blocked) != nil
}

// Path returns the hop sequence from source to sink found by breadth-first
// search, or nil when sink is unreachable.
func (g *Graph) Path(source, sink string, blocked KeySet) []string {
	if !g.Has(source) || !g.Has(sink) {
		return nil
	}
	if blocked.Has(source) || blocked.Has(sink) {
		return nil
	}
	if source == sink {
		return []string{source}
	}

	parent := map[string]string{source: ""}
	queue := []string{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == sink {
			return unwind(parent, source, sink)
		}
		for _, e := range g.nodes[current].edges {
			if _, seen := parent[e.To]; seen || blocked.Has(e.To) {
				continue
			}
			parent[e.To] = current
			queue = append(queue, e.To)
		}
	}
	return nil
}

func unwind(parent map[string]string, source, sink string) []string {
	var rev []string
	for k := sink; k != source; k = parent[k] {
		rev = append(rev, k)
	}
	rev = append(rev, source)
	path := make([]string, len(rev))
	for i, k := range rev {
		path[len(rev)-1-i] = k
	}
	return path
}

// Reachable returns every key reachable from source (source included),
// in breadth-first order.
func (g *Graph) Reachable(source string, blocked KeySet) []string {
	if !g.Has(source) || blocked.Has(source) {
		return nil
	}
	seen := map[string]struct{}{source: {}}
	order := []string{source}
	for i := 0; i < len(order); i++ {
		for _, e := range g.nodes[order[i]].edges {
			if _, ok := seen[e.To]; ok || blocked.Has(e.To) {
				continue
			}
			seen[e.To] = struct{}{}
			order = append(order, e.To)
		}
	}
	return order
}
