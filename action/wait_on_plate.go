package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// WaitOnPlate phases, tracked in ExecState.Phase (spec.md §4.3).
const (
	waitPhaseMovingTo = "MovingTo"
	waitPhaseWaiting  = "Waiting"
	waitPhaseMovingOff = "MovingOff"
)

// WaitOnPlate holds a player on a pressure plate until their partner
// passes through the door it holds open, then steps off toward the exit
// side (spec.md §4.3).
type WaitOnPlate struct {
	Color geometry.Color
	Plate geometry.Position
}

func generateWaitOnPlate(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	for _, c := range geometry.Colors {
		for _, pos := range w.Plates.Positions(c) {
			if _, err := findPathScratch(w, player(w, playerIndex).Position, pos); err == nil {
				out = append(out, WaitOnPlate{Color: c, Plate: pos})
			}
		}
	}
	return out
}

func (a WaitOnPlate) Name() string { return "WaitOnPlate" }

func (a WaitOnPlate) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	for _, pos := range w.Plates.Positions(a.Color) {
		if pos == a.Plate {
			_, err := findPathScratch(w, player(w, playerIndex).Position, a.Plate)
			return err == nil
		}
	}
	return false
}

func (a WaitOnPlate) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Plate
	return &a.Plate
}

func (a WaitOnPlate) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)

	if exec.Phase == "" {
		exec.Phase = waitPhaseMovingTo
	}

	switch exec.Phase {
	case waitPhaseMovingTo:
		if p.Position == a.Plate {
			exec.Phase = waitPhaseWaiting
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

	case waitPhaseWaiting:
		if other := otherPlayer(w, playerIndex); other != nil && other.CoopDoorTarget != nil && other.Position == *other.CoopDoorTarget {
			exec.Phase = waitPhaseMovingOff
			exec.CachedPath = nil
			return NoneAction, InProgress
		}
		return NoneAction, InProgress

	case waitPhaseMovingOff:
		dest := offPlateDestination(w, a.Plate)
		if p.Position == dest {
			return NoneAction, Complete
		}
		path, err := stepTowards(w, playerIndex, dest, exec)
		if err != nil || len(path) < 2 {
			return NoneAction, Complete
		}
		dir, ok := directionTo(p.Position, path[1])
		if !ok {
			return NoneAction, Complete
		}
		return dir, InProgress
	}
	return NoneAction, Failed
}

func (a WaitOnPlate) Cost(w *worldmodel.Model, playerIndex int) float64 {
	dist, err := findPathScratch(w, player(w, playerIndex).Position, a.Plate)
	if err != nil {
		return 1000
	}
	return 5 + float64(len(dist))*0.1
}

func (a WaitOnPlate) Duration(w *worldmodel.Model, playerIndex int) int {
	dist := player(w, playerIndex).Position.Distance(a.Plate)
	return int(dist) + 5
}

func (WaitOnPlate) Reward(w *worldmodel.Model, playerIndex int) float64 { return 5 }

func (WaitOnPlate) IsTerminal() bool { return true }

func (a WaitOnPlate) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	player(w, playerIndex).Position = a.Plate
	claims[ResourceClaim{Kind: ClaimPlate, Pos: a.Plate}] = playerIndex
}

// offPlateDestination picks a walkable neighbor of the plate to move onto
// once the partner has cleared through, preferring the exit side when
// known.
func offPlateDestination(w *worldmodel.Model, plate geometry.Position) geometry.Position {
	if w.ExitPosition != nil {
		best := plate
		bestDist := plate.Distance(*w.ExitPosition)
		for _, n := range plate.Neighbors() {
			if !pathfindIsWalkable(w, n) {
				continue
			}
			if d := n.Distance(*w.ExitPosition); d < bestDist {
				best, bestDist = n, d
			}
		}
		if best != plate {
			return best
		}
	}
	for _, n := range plate.Neighbors() {
		if pathfindIsWalkable(w, n) {
			return n
		}
	}
	return plate
}
