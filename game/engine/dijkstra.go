package engine

// RunDijkstra searches from start to goal by always expanding the cell with
// the lowest known distance, relaxing 4-connected non-wall neighbors.
//
// Instead of a decrease-key operation the queue takes duplicate entries and
// stale ones are skipped on dequeue. NodesExpanded therefore counts each
// finalized cell exactly once. The returned TotalCost is distance[goal],
// which is minimal because every terrain cost is positive.
func RunDijkstra(g Grid, start, goal Position) SearchResult {
	expanded := make(map[Position]bool)
	if !searchable(g, start) {
		return emptyResult(expanded)
	}

	dist := map[Position]int{start: 0}
	parent := make(map[Position]Position)
	pq := NewPriorityQueue()
	pq.Enqueue(start, 0)

	for !pq.IsEmpty() {
		current, _ := pq.Dequeue()
		if expanded[current] {
			continue
		}
		expanded[current] = true

		if current == goal {
			result := foundResult(g, parent, start, goal, expanded)
			result.TotalCost = dist[goal]
			return result
		}

		for _, next := range g.Neighbors(current) {
			t := g.TypeAt(next)
			if !IsPassable(t) || expanded[next] {
				continue
			}
			alt := dist[current] + CostOf(t)
			if best, ok := dist[next]; !ok || alt < best {
				dist[next] = alt
				parent[next] = current
				pq.Enqueue(next, alt)
			}
		}
	}

	return emptyResult(expanded)
}
