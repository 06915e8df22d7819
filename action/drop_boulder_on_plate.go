package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// DropBoulderOnPlate walks to a free adjacent cell of a pressure plate
// and drops the held boulder onto it (spec.md §4.3).
type DropBoulderOnPlate struct {
	Color  geometry.Color
	Plate  geometry.Position
	Target geometry.Position
}

func generateDropBoulderOnPlate(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryBoulder {
		return nil
	}
	var out []Action
	for _, c := range geometry.Colors {
		for _, plate := range w.Plates.Positions(c) {
			if plateOccupied(w, plate) {
				continue
			}
			target, ok := closestWalkableNeighbor(w, playerIndex, plate)
			if !ok {
				continue
			}
			out = append(out, DropBoulderOnPlate{Color: c, Plate: plate, Target: target})
		}
	}
	return out
}

func plateOccupied(w *worldmodel.Model, plate geometry.Position) bool {
	if w.Boulder.Contains(plate) {
		return true
	}
	for _, p := range w.Players {
		if p.IsActive && p.Position == plate {
			return true
		}
	}
	return false
}

func closestWalkableNeighbor(w *worldmodel.Model, playerIndex int, pos geometry.Position) (geometry.Position, bool) {
	p := player(w, playerIndex)
	var best geometry.Position
	bestLen := -1
	for _, n := range pos.Neighbors() {
		if !pathfindIsWalkable(w, n) {
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

func (a DropBoulderOnPlate) Name() string { return "DropBoulderOnPlate" }

func (a DropBoulderOnPlate) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryBoulder {
		return false
	}
	for _, pos := range w.Plates.Positions(a.Color) {
		if pos == a.Plate {
			return !plateOccupied(w, a.Plate)
		}
	}
	return false
}

func (a DropBoulderOnPlate) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Target
	return &a.Target
}

func (a DropBoulderOnPlate) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position == a.Target {
		dir, ok := useTowards(p.Position, a.Plate)
		if !ok {
			return NoneAction, Failed
		}
		return dir, Complete
	}
	path, err := stepTowards(w, playerIndex, a.Target, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a DropBoulderOnPlate) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return 1 + float64(player(w, playerIndex).Position.Distance(a.Target))*0.1
}

func (a DropBoulderOnPlate) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Target)) + 1
}

// Reward is implicit via the state evaluator: occupying the plate opens
// the matching door, which shows up as improved exit reachability.
func (DropBoulderOnPlate) Reward(w *worldmodel.Model, playerIndex int) float64 { return 0 }

func (DropBoulderOnPlate) IsTerminal() bool { return false }

func (a DropBoulderOnPlate) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Inventory = worldmap.InventoryNone
	p.HeldBoulderUnexplored = nil
	w.Map.Set(a.Plate, worldmap.Boulder)
	w.Boulder.Add(a.Plate, true)
	p.Position = a.Target
}
