package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// DropBoulder places a never-before-moved boulder on an adjacent empty
// cell that doesn't cut off any of its own empty neighbors from each
// other (spec.md §4.3).
type DropBoulder struct {
	Drop geometry.Position
}

func generateDropBoulder(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryBoulder {
		return nil
	}
	if p.HeldBoulderUnexplored == nil || !*p.HeldBoulderUnexplored {
		return nil
	}
	var out []Action
	for _, n := range p.Position.Neighbors() {
		tile, ok := w.Map.Get(n)
		if !ok || tile != worldmap.Empty {
			continue
		}
		if wouldDisconnectNeighbors(w, n) {
			continue
		}
		out = append(out, DropBoulder{Drop: n})
	}
	return out
}

func (a DropBoulder) Name() string { return "DropBoulder" }

func (a DropBoulder) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryBoulder {
		return false
	}
	if p.HeldBoulderUnexplored == nil || !*p.HeldBoulderUnexplored {
		return false
	}
	if !p.Position.IsAdjacent(a.Drop) {
		return false
	}
	tile, ok := w.Map.Get(a.Drop)
	return ok && tile == worldmap.Empty
}

func (a DropBoulder) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	return nil
}

func (a DropBoulder) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	dir, ok := useTowards(p.Position, a.Drop)
	if !ok {
		return NoneAction, Failed
	}
	return dir, Complete
}

func (DropBoulder) Cost(w *worldmodel.Model, playerIndex int) float64 { return 1 }

func (DropBoulder) Duration(w *worldmodel.Model, playerIndex int) int { return 1 }

func (DropBoulder) Reward(w *worldmodel.Model, playerIndex int) float64 { return 1 }

func (DropBoulder) IsTerminal() bool { return false }

func (a DropBoulder) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Inventory = worldmap.InventoryNone
	w.Map.Set(a.Drop, worldmap.Boulder)
	w.Boulder.Add(a.Drop, true)
	p.HeldBoulderUnexplored = nil
}

// wouldDisconnectNeighbors reports whether placing a boulder at pos would
// separate any two of pos's currently-empty neighbors that can presently
// reach each other — a cheap proxy for "this blocks a critical path"
// (spec.md §4.3).
func wouldDisconnectNeighbors(w *worldmodel.Model, pos geometry.Position) bool {
	var emptyNeighbors []geometry.Position
	for _, n := range pos.Neighbors() {
		if tile, ok := w.Map.Get(n); ok && tile == worldmap.Empty {
			emptyNeighbors = append(emptyNeighbors, n)
		}
	}
	if len(emptyNeighbors) < 2 {
		return false
	}

	for i := 0; i < len(emptyNeighbors); i++ {
		for j := i + 1; j < len(emptyNeighbors); j++ {
			before, errBefore := findPathScratch(w, emptyNeighbors[i], emptyNeighbors[j])
			if errBefore != nil || before == nil {
				continue
			}
			// Temporarily place the boulder to test connectivity, then put
			// the tile straight back; never observed outside this loop.
			w.Map.Set(pos, worldmap.Boulder)
			after, errAfter := findPathScratch(w, emptyNeighbors[i], emptyNeighbors[j])
			w.Map.Set(pos, worldmap.Empty)
			if errAfter != nil || after == nil {
				return true
			}
		}
	}
	return false
}
