package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// ReachExit walks the player to the known exit (spec.md §4.3). In
// two-player mode it is only admissible once both players have a path,
// so the planner doesn't send one player through while stranding the
// other.
type ReachExit struct {
	Exit geometry.Position
}

func generateReachExit(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	if w.ExitPosition == nil {
		return nil
	}
	a := ReachExit{Exit: *w.ExitPosition}
	if a.Precondition(w, playerIndex, claims) {
		return []Action{a}
	}
	return nil
}

func (a ReachExit) Name() string { return "ReachExit" }

func (a ReachExit) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	if w.ExitPosition == nil || *w.ExitPosition != a.Exit {
		return false
	}
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryNone {
		return false
	}
	if _, err := findPathScratch(w, p.Position, a.Exit); err != nil {
		return false
	}
	if other := otherPlayer(w, playerIndex); other != nil && other.IsActive {
		if _, err := findPathScratch(w, other.Position, a.Exit); err != nil {
			return false
		}
	}
	return true
}

func (a ReachExit) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Exit
	return &a.Exit
}

func (a ReachExit) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position == a.Exit {
		return NoneAction, Complete
	}
	path, err := stepTowards(w, playerIndex, a.Exit, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a ReachExit) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Exit)) * 0.1
}

func (a ReachExit) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Exit))
}

func (a ReachExit) Reward(w *worldmodel.Model, playerIndex int) float64 {
	if len(enemyPositions(w)) == 0 {
		return 50
	}
	return 5
}

func (ReachExit) IsTerminal() bool { return true }

func (a ReachExit) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	player(w, playerIndex).Position = a.Exit
}
