package engine

// RunAStar searches from start to goal using the same relaxation as Dijkstra
// but ordering the queue by f = g + h, where h is the Manhattan distance to
// the goal.
//
// Manhattan distance is admissible here: the cheapest terrain costs 1 per
// step and everything else costs more, so h never overestimates the true
// remaining cost. A* therefore finds the same optimal cost as Dijkstra while
// expanding no more cells.
func RunAStar(g Grid, start, goal Position) SearchResult {
	expanded := make(map[Position]bool)
	if !searchable(g, start) {
		return emptyResult(expanded)
	}

	gCost := map[Position]int{start: 0}
	parent := make(map[Position]Position)
	pq := NewPriorityQueue()
	pq.Enqueue(start, ManhattanDistance(start, goal))

	for !pq.IsEmpty() {
		current, _ := pq.Dequeue()
		if expanded[current] {
			continue
		}
		expanded[current] = true

		if current == goal {
			result := foundResult(g, parent, start, goal, expanded)
			result.TotalCost = gCost[goal]
			return result
		}

		for _, next := range g.Neighbors(current) {
			t := g.TypeAt(next)
			if !IsPassable(t) || expanded[next] {
				continue
			}
			alt := gCost[current] + CostOf(t)
			if best, ok := gCost[next]; !ok || alt < best {
				gCost[next] = alt
				parent[next] = current
				pq.Enqueue(next, alt+ManhattanDistance(next, goal))
			}
		}
	}

	return emptyResult(expanded)
}
