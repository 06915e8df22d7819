package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// touchPlateWaitTicks is how long a single player stands on an
// as-yet-untouched plate before recording it (spec.md §4.3).
const touchPlateWaitTicks = 2

// TouchPlate stands on a not-yet-recorded pressure plate for two ticks,
// single-player bookkeeping for "every reachable plate has been visited"
// (spec.md §4.3). Only generated once nothing more productive remains.
type TouchPlate struct {
	Color geometry.Color
	Plate geometry.Position
}

func generateTouchPlate(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	if otherPlayer(w, playerIndex) != nil {
		return nil
	}
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryNone || len(p.Frontier) > 0 || w.Boulder.Len() > 0 {
		return nil
	}
	var out []Action
	for _, c := range geometry.Colors {
		if w.PlatesTouched[c] {
			continue
		}
		for _, pos := range w.Plates.Positions(c) {
			if _, err := findPathScratch(w, p.Position, pos); err == nil {
				out = append(out, TouchPlate{Color: c, Plate: pos})
			}
		}
	}
	return out
}

func (a TouchPlate) Name() string { return "TouchPlate" }

func (a TouchPlate) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryNone || len(p.Frontier) > 0 {
		return false
	}
	for _, pos := range w.Plates.Positions(a.Color) {
		if pos == a.Plate {
			return true
		}
	}
	return false
}

func (a TouchPlate) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Plate
	return &a.Plate
}

func (a TouchPlate) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position == a.Plate {
		exec.WaitTicks++
		if exec.WaitTicks >= touchPlateWaitTicks {
			if w.PlatesTouched == nil {
				w.PlatesTouched = make(map[geometry.Color]bool)
			}
			w.PlatesTouched[a.Color] = true
			return NoneAction, Complete
		}
		return NoneAction, InProgress
	}
	path, err := stepTowards(w, playerIndex, a.Plate, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a TouchPlate) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Plate)) * 0.1
}

func (a TouchPlate) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Plate)) + touchPlateWaitTicks
}

func (TouchPlate) Reward(w *worldmodel.Model, playerIndex int) float64 { return 2 }

func (TouchPlate) IsTerminal() bool { return false }

func (a TouchPlate) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	player(w, playerIndex).Position = a.Plate
	if w.PlatesTouched == nil {
		w.PlatesTouched = make(map[geometry.Color]bool)
	}
	w.PlatesTouched[a.Color] = true
}
