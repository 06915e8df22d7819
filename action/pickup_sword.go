package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// PickupSword walks to and picks up the sword at Pos (spec.md §4.3).
type PickupSword struct {
	Pos geometry.Position
}

func generatePickupSword(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	for _, pos := range w.Swords.Positions() {
		out = append(out, PickupSword{Pos: pos})
	}
	return out
}

func (a PickupSword) Name() string { return "PickupSword" }

func (a PickupSword) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.HasSword {
		return false
	}
	if claims.ClaimedByOther(ResourceClaim{Kind: ClaimSword, Pos: a.Pos}, playerIndex) {
		return false
	}
	return isReachable(w, playerIndex, a.Pos)
}

func (a PickupSword) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Pos
	return &a.Pos
}

func (a PickupSword) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position == a.Pos {
		return NoneAction, Complete
	}
	path, err := stepTowards(w, playerIndex, a.Pos, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a PickupSword) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a PickupSword) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a PickupSword) Reward(w *worldmodel.Model, playerIndex int) float64 {
	if len(enemyPositions(w)) > 0 {
		return 18
	}
	return 8
}

func (PickupSword) IsTerminal() bool { return false }

func (a PickupSword) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.HasSword = true
	p.Position = a.Pos
	claims[ResourceClaim{Kind: ClaimSword, Pos: a.Pos}] = playerIndex
}
