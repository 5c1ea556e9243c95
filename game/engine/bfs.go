package engine

// RunBFS searches breadth-first from start to goal, expanding the frontier
// one ring at a time through a FIFO queue of 4-connected neighbors.
//
// BFS counts hops only. It does not see terrain weights, so over mud or
// water it returns the fewest-hop path, not the cheapest one. That contrast
// with Dijkstra and A* is the point of offering it; keep it cost-blind.
// TotalCost still reports what the returned path actually costs to walk.
func RunBFS(g Grid, start, goal Position) SearchResult {
	expanded := make(map[Position]bool)
	if !searchable(g, start) {
		return emptyResult(expanded)
	}

	queue := []Position{start}
	enqueued := map[Position]bool{start: true}
	parent := make(map[Position]Position)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		expanded[current] = true

		if current == goal {
			return foundResult(g, parent, start, goal, expanded)
		}

		for _, next := range g.Neighbors(current) {
			if enqueued[next] || !IsPassable(g.TypeAt(next)) {
				continue
			}
			enqueued[next] = true
			parent[next] = current
			queue = append(queue, next)
		}
	}

	return emptyResult(expanded)
}
