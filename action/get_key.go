package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// GetKey walks to and picks up a key of the given color (spec.md §4.3).
type GetKey struct {
	Color geometry.Color
	Pos   geometry.Position
}

func generateGetKey(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	for _, c := range geometry.Colors {
		for _, pos := range w.Keys.Positions(c) {
			out = append(out, GetKey{Color: c, Pos: pos})
		}
	}
	return out
}

func (a GetKey) Name() string { return "GetKey" }

func (a GetKey) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryNone {
		return false
	}
	if claims.ClaimedByOther(ResourceClaim{Kind: ClaimKey, Pos: a.Pos}, playerIndex) {
		return false
	}
	return isReachable(w, playerIndex, a.Pos)
}

func (a GetKey) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Pos
	return &a.Pos
}

func (a GetKey) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
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

func (a GetKey) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a GetKey) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a GetKey) Reward(w *worldmodel.Model, playerIndex int) float64 {
	if w.Doors.HasColor(a.Color) {
		return 15
	}
	return 5
}

func (GetKey) IsTerminal() bool { return false }

func (a GetKey) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Position = a.Pos
	p.Inventory = worldmap.KeyInventoryForColor(a.Color)
	w.Map.Set(a.Pos, worldmap.Empty)
	claims[ResourceClaim{Kind: ClaimKey, Pos: a.Pos}] = playerIndex
}

// isReachable reports whether a path exists from the player's current
// position to pos under default walkability, treating pos itself as
// always a valid goal.
func isReachable(w *worldmodel.Model, playerIndex int, pos geometry.Position) bool {
	p := player(w, playerIndex)
	if p.Position == pos {
		return true
	}
	_, err := findPathScratch(w, p.Position, pos)
	return err == nil
}
