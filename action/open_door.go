package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// OpenDoor walks to a walkable empty neighbor of a held key's matching
// door and uses it open (spec.md §4.3).
type OpenDoor struct {
	Color geometry.Color
	Door  geometry.Position
}

func generateOpenDoor(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	for _, c := range geometry.Colors {
		for _, pos := range w.Doors.Positions(c) {
			out = append(out, OpenDoor{Color: c, Door: pos})
		}
	}
	return out
}

func (a OpenDoor) Name() string { return "OpenDoor" }

func (a OpenDoor) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	keyColor, hasKey := worldmap.InventoryKeyColor(p.Inventory)
	if !hasKey || keyColor != a.Color {
		return false
	}
	if claims.ClaimedByOther(ResourceClaim{Kind: ClaimDoor, Pos: a.Door}, playerIndex) {
		return false
	}
	_, ok := doorApproach(w, playerIndex, a.Door)
	return ok
}

func (a OpenDoor) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	approach, ok := doorApproach(w, playerIndex, a.Door)
	if !ok {
		return nil
	}
	player(w, playerIndex).CurrentDestination = &approach
	return &approach
}

func (a OpenDoor) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position.IsAdjacent(a.Door) {
		dir, ok := useTowards(p.Position, a.Door)
		if !ok {
			return NoneAction, Failed
		}
		return dir, Complete
	}
	approach, ok := doorApproach(w, playerIndex, a.Door)
	if !ok {
		return NoneAction, Failed
	}
	path, err := stepTowards(w, playerIndex, approach, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a OpenDoor) Cost(w *worldmodel.Model, playerIndex int) float64 {
	approach, ok := doorApproach(w, playerIndex, a.Door)
	if !ok {
		return 1e6
	}
	return float64(player(w, playerIndex).Position.Distance(approach)) + 1
}

func (a OpenDoor) Duration(w *worldmodel.Model, playerIndex int) int {
	approach, ok := doorApproach(w, playerIndex, a.Door)
	if !ok {
		return 1
	}
	return int(player(w, playerIndex).Position.Distance(approach)) + 1
}

func (OpenDoor) Reward(w *worldmodel.Model, playerIndex int) float64 { return 20 }

func (OpenDoor) IsTerminal() bool { return false }

func (a OpenDoor) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Inventory = worldmap.InventoryNone
	w.Map.Set(a.Door, worldmap.Empty)
	claims[ResourceClaim{Kind: ClaimDoor, Pos: a.Door}] = playerIndex
}

// doorApproach returns the reachable walkable neighbor of door with the
// shortest path from the player, and whether one exists.
func doorApproach(w *worldmodel.Model, playerIndex int, door geometry.Position) (geometry.Position, bool) {
	p := player(w, playerIndex)
	var best geometry.Position
	bestLen := -1
	for _, n := range door.Neighbors() {
		tile, ok := w.Map.Get(n)
		if !ok || tile != worldmap.Empty {
			continue
		}
		path, err := findPathScratch(w, p.Position, n)
		if err != nil {
			continue
		}
		if bestLen == -1 || len(path) < bestLen {
			best, bestLen = n, len(path)
		}
	}
	return best, bestLen != -1
}
