package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// PickupHealth walks to and consumes a health pickup at Pos (spec.md
// §4.3). In two-player mode, only the player with the lower-or-equal
// health is allowed to claim it, so a full-health player doesn't grab a
// pickup the hurt partner needs more.
type PickupHealth struct {
	Pos geometry.Position
}

func generatePickupHealth(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	for _, pos := range w.Health.Positions() {
		out = append(out, PickupHealth{Pos: pos})
	}
	return out
}

func (a PickupHealth) Name() string { return "PickupHealth" }

func (a PickupHealth) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if other := otherPlayer(w, playerIndex); other != nil && other.IsActive {
		if p.Health > other.Health {
			return false
		}
	}
	if claims.ClaimedByOther(ResourceClaim{Kind: ClaimHealth, Pos: a.Pos}, playerIndex) {
		return false
	}
	return isReachable(w, playerIndex, a.Pos)
}

func (a PickupHealth) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Pos
	return &a.Pos
}

func (a PickupHealth) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
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

func (a PickupHealth) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a PickupHealth) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a PickupHealth) Reward(w *worldmodel.Model, playerIndex int) float64 {
	p := player(w, playerIndex)
	return 1 - float64(p.Health)/10
}

func (PickupHealth) IsTerminal() bool { return false }

func (a PickupHealth) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Health += 5
	p.Position = a.Pos
	claims[ResourceClaim{Kind: ClaimHealth, Pos: a.Pos}] = playerIndex
}
