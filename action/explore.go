package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/pathfind"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// Explore walks toward the nearest reachable frontier cell until a new
// interesting object becomes visible or the frontier runs dry (spec.md
// §4.3). Always admissible and always generated, so the planner and the
// executor both have a fallback when nothing better applies.
type Explore struct{}

func generateExplore(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	return []Action{Explore{}}
}

func (Explore) Name() string { return "Explore" }

func (Explore) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	return true
}

func (Explore) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	p := player(w, playerIndex)
	dest, ok := closestFrontier(p)
	if !ok {
		p.CurrentDestination = nil
		return nil
	}
	p.CurrentDestination = &dest
	return &dest
}

func (Explore) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)

	if exec.InitialCounts == nil {
		counts := CountObjects(w)
		exec.InitialCounts = &counts
	} else if exec.InitialCounts.Increased(CountObjects(w)) {
		return NoneAction, Complete
	}

	dest, ok := closestFrontier(p)
	if !ok {
		return NoneAction, Complete
	}
	if exec.ExplorationTarget == nil || *exec.ExplorationTarget != dest {
		exec.ExplorationTarget = &dest
		exec.CachedPath = nil
	}

	path, err := stepTowards(w, playerIndex, dest, exec)
	if err != nil {
		return NoneAction, Complete
	}
	if len(path) < 2 {
		return NoneAction, Complete
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (Explore) Cost(w *worldmodel.Model, playerIndex int) float64 { return 1 }

func (Explore) Duration(w *worldmodel.Model, playerIndex int) int {
	p := player(w, playerIndex)
	if dest, ok := closestFrontier(p); ok {
		return int(p.Position.Distance(dest)) + 1
	}
	return 1
}

func (Explore) Reward(w *worldmodel.Model, playerIndex int) float64 { return 1.0 }

func (Explore) IsTerminal() bool { return true }

func (Explore) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	if dest, ok := closestFrontier(p); ok {
		p.Position = dest
	}
}

// closestFrontier returns the player's nearest frontier cell.
func closestFrontier(p *worldmodel.PlayerState) (geometry.Position, bool) {
	cells := p.FrontierPositions()
	if len(cells) == 0 {
		return geometry.Position{}, false
	}
	best := cells[0]
	bestDist := p.Position.Distance(best)
	for _, c := range cells[1:] {
		if d := p.Position.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// stepTowards runs the collision-aware pathfinder toward dest, caching the
// result in exec.CachedPath so repeated calls within the same action
// instance don't re-search every tick.
func stepTowards(w *worldmodel.Model, playerIndex int, dest geometry.Position, exec *ExecState) ([]geometry.Position, error) {
	if exec.CachedPath != nil && len(exec.CachedPath) > 0 && exec.CachedPath[len(exec.CachedPath)-1] == dest {
		return exec.CachedPath, nil
	}
	p := player(w, playerIndex)
	walkable := pathfind.DefaultWalkable(w)
	cost := pathfind.DefaultCost(w)

	var path []geometry.Position
	var err error
	if other := otherPlayer(w, playerIndex); other != nil && playerIndex == 1 {
		path, err = pathfind.FindPathCollisionAware(p.Position, dest, walkable, cost, other.CurrentPath)
	} else {
		path, err = pathfind.FindPath(p.Position, dest, walkable, cost)
	}
	if err != nil {
		return nil, err
	}
	exec.CachedPath = path
	p.CurrentPath = path
	return path, nil
}
