package engine

import "fmt"

// RunSearch runs the named algorithm over the grid and returns its result.
// The grid is never modified; all bookkeeping lives in local maps.
func RunSearch(algo Algorithm, g Grid, start, goal Position) (SearchResult, error) {
	switch algo {
	case BFS:
		return RunBFS(g, start, goal), nil
	case Dijkstra:
		return RunDijkstra(g, start, goal), nil
	case AStar:
		return RunAStar(g, start, goal), nil
	}
	return SearchResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
}

// searchable reports whether a search from start can begin at all
func searchable(g Grid, start Position) bool {
	return g.InBounds(start) && IsPassable(g.TypeAt(start))
}

// emptyResult is the outcome of a search that found no path
func emptyResult(expanded map[Position]bool) SearchResult {
	return SearchResult{
		Path:          []Position{},
		NodesExpanded: len(expanded),
		expanded:      expanded,
	}
}

// foundResult builds the outcome of a successful search
func foundResult(g Grid, parent map[Position]Position, start, goal Position, expanded map[Position]bool) SearchResult {
	path := reconstructPath(parent, start, goal)
	return SearchResult{
		Path:          path,
		NodesExpanded: len(expanded),
		TotalCost:     PathCost(g, path),
		expanded:      expanded,
	}
}

// reconstructPath walks parent links back from goal to start and reverses
func reconstructPath(parent map[Position]Position, start, goal Position) []Position {
	path := []Position{goal}
	for current := goal; current != start; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
