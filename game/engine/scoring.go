package engine

import "math"

// Star thresholds for the sandbox efficiency score
const (
	sandboxThreeStars = 80
	sandboxTwoStars   = 50

	// Weight split between path quality and expansion efficiency
	sandboxPathWeight = 0.7
	sandboxNodeWeight = 0.3
)

// Score grades one successful search
type Score struct {
	Stars  int `json:"stars"`
	Points int `json:"points"`
	Bonus  int `json:"bonus,omitempty"`
}

// ScoreChallenge grades a run against level par. Three stars means beating
// par on both cost and expansions; two stars allows 20% over on cost. The
// bonus rewards the margin by which par was beaten, up to 50 points per axis.
func ScoreChallenge(pathCost, nodesExpanded, parCost, parNodes int) Score {
	stars := 1
	switch {
	case pathCost <= parCost && nodesExpanded <= parNodes:
		stars = 3
	case float64(pathCost) <= float64(parCost)*1.2:
		stars = 2
	}

	bonus := 0
	if parCost > 0 {
		bonus += marginBonus(pathCost, parCost)
	}
	if parNodes > 0 {
		bonus += marginBonus(nodesExpanded, parNodes)
	}

	return Score{Stars: stars, Points: stars*100 + bonus, Bonus: bonus}
}

// marginBonus converts how far actual beat par into up to 50 points
func marginBonus(actual, par int) int {
	if actual >= par {
		return 0
	}
	return int(math.Round(50 * float64(par-actual) / float64(par)))
}

// ScoreSandbox grades a run with no par to compare against: the Manhattan
// distance between start and goal stands in for the optimal step count, and
// the path share of expanded cells measures search efficiency. The blend is
// scaled to 0-100.
func ScoreSandbox(pathLength, nodesExpanded int, start, goal Position) Score {
	steps := pathLength - 1
	if steps < 1 {
		steps = 1
	}
	optimal := ManhattanDistance(start, goal)
	if optimal < 1 {
		optimal = 1
	}
	pathRatio := float64(optimal) / float64(steps)
	if pathRatio > 1 {
		pathRatio = 1
	}

	nodeRatio := 1.0
	if nodesExpanded > 0 {
		nodeRatio = float64(pathLength) / float64(nodesExpanded)
		if nodeRatio > 1 {
			nodeRatio = 1
		}
	}

	points := int(math.Round(100 * (sandboxPathWeight*pathRatio + sandboxNodeWeight*nodeRatio)))
	stars := 1
	switch {
	case points >= sandboxThreeStars:
		stars = 3
	case points >= sandboxTwoStars:
		stars = 2
	}
	return Score{Stars: stars, Points: points}
}

// ScoreState grades the last search recorded on a state. It returns nil when
// no path has been found yet. Par values on the state select challenge
// grading; without them the sandbox formula applies.
func ScoreState(s State) *Score {
	if s.LastResult == nil || !s.LastResult.PathFound {
		return nil
	}
	var score Score
	if s.ParCost > 0 && s.ParNodes > 0 {
		score = ScoreChallenge(s.LastResult.PathCost, s.LastResult.NodesExpanded, s.ParCost, s.ParNodes)
	} else {
		if s.Start == nil || s.Goal == nil {
			return nil
		}
		score = ScoreSandbox(s.LastResult.PathLength, s.LastResult.NodesExpanded, *s.Start, *s.Goal)
	}
	return &score
}
