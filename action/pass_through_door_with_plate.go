package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// PassThroughDoorWithPlate walks one player through a plate-held-open
// door to a position they cannot otherwise reach, publishing
// CoopDoorTarget so the partner's WaitOnPlate knows when to step off
// (spec.md §4.3). Two-player only.
type PassThroughDoorWithPlate struct {
	Color  geometry.Color
	Door   geometry.Position
	Wait   geometry.Position
	Target geometry.Position
	Plate  geometry.Position
}

func generatePassThroughDoorWithPlate(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	other := otherPlayer(w, playerIndex)
	if other == nil || !other.IsActive {
		return nil
	}
	p := player(w, playerIndex)

	if len(p.Frontier) == 0 {
		if _, err := findPathScratch(w, p.Position, other.Position); err == nil {
			return nil
		}
	}

	var out []Action
	for _, c := range geometry.Colors {
		doors := w.Doors.Positions(c)
		plates := w.Plates.Positions(c)
		if len(doors) == 0 || len(plates) == 0 {
			continue
		}
		for _, door := range doors {
			for _, plate := range plates {
				// Only proceed if the partner is committed to holding this
				// plate down, established either by a planning-time claim or
				// by the partner already standing on it.
				committed := claims.ClaimedByOther(ResourceClaim{Kind: ClaimPlate, Pos: plate}, playerIndex) ||
					other.Position == plate
				if !committed {
					continue
				}
				for _, pair := range cardinalPairs(door) {
					wait, target := pair[0], pair[1]
					if p.Position == target || p.Position == wait {
						continue
					}
					if !w.Map.InBounds(wait) || !w.Map.InBounds(target) {
						continue
					}
					if !pathfindIsWalkable(w, wait) {
						continue
					}
					if _, err := findPathScratch(w, p.Position, wait); err != nil {
						continue
					}
					if _, err := findPathScratch(w, p.Position, target); err == nil {
						continue // already reachable without the door
					}
					out = append(out, PassThroughDoorWithPlate{
						Color: c, Door: door, Wait: wait, Target: target, Plate: plate,
					})
				}
			}
		}
	}
	return out
}

// cardinalPairs returns the four (wait, target) opposite-side pairs
// around door, per spec.md §4.3.
func cardinalPairs(door geometry.Position) [4][2]geometry.Position {
	w, e := geometry.New(door.X-1, door.Y), geometry.New(door.X+1, door.Y)
	n, s := geometry.New(door.X, door.Y-1), geometry.New(door.X, door.Y+1)
	return [4][2]geometry.Position{
		{w, e}, {e, w}, {n, s}, {s, n},
	}
}

func (a PassThroughDoorWithPlate) Name() string { return "PassThroughDoorWithPlate" }

func (a PassThroughDoorWithPlate) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	other := otherPlayer(w, playerIndex)
	if other == nil || !other.IsActive {
		return false
	}
	doorOK := false
	for _, pos := range w.Doors.Positions(a.Color) {
		if pos == a.Door {
			doorOK = true
		}
	}
	plateOK := false
	for _, pos := range w.Plates.Positions(a.Color) {
		if pos == a.Plate {
			plateOK = true
		}
	}
	return doorOK && plateOK && claims.ClaimedByOther(ResourceClaim{Kind: ClaimPlate, Pos: a.Plate}, playerIndex)
}

func (a PassThroughDoorWithPlate) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	p := player(w, playerIndex)
	target := a.Target
	p.CoopDoorTarget = &target

	if w.IsDoorOpen(a.Color) {
		if _, err := findPathScratch(w, p.Position, a.Target); err == nil {
			p.CurrentDestination = &a.Target
			return &a.Target
		}
	}
	if _, err := findPathScratch(w, p.Position, a.Wait); err != nil {
		return nil
	}
	p.CurrentDestination = &a.Wait
	return &a.Wait
}

func (a PassThroughDoorWithPlate) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)

	if p.Position == a.Target {
		if other := otherPlayer(w, playerIndex); other != nil && other.Position == a.Plate {
			return NoneAction, InProgress
		}
		p.CoopDoorTarget = nil
		return NoneAction, Complete
	}

	if p.Position == a.Door {
		dir, ok := directionTo(p.Position, a.Target)
		if !ok {
			// target isn't adjacent to the door tile itself; step along the
			// cached path instead.
			path, err := stepTowards(w, playerIndex, a.Target, exec)
			if err != nil || len(path) < 2 {
				return NoneAction, Failed
			}
			dir, ok = directionTo(p.Position, path[1])
			if !ok {
				return NoneAction, Failed
			}
		}
		return dir, InProgress
	}

	if p.Position.IsAdjacent(a.Door) {
		if w.IsDoorOpen(a.Color) {
			dir, ok := directionTo(p.Position, a.Door)
			if !ok {
				return NoneAction, Failed
			}
			return dir, InProgress
		}
		return NoneAction, Wait
	}

	path, err := stepTowards(w, playerIndex, a.Wait, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a PassThroughDoorWithPlate) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return 10 + float64(player(w, playerIndex).Position.Distance(a.Door))*0.1
}

func (a PassThroughDoorWithPlate) Duration(w *worldmodel.Model, playerIndex int) int {
	toDoor := player(w, playerIndex).Position.Distance(a.Door)
	throughDoor := a.Door.Distance(a.Target)
	return int(toDoor) + int(throughDoor) + 3
}

func (PassThroughDoorWithPlate) Reward(w *worldmodel.Model, playerIndex int) float64 { return 25 }

func (PassThroughDoorWithPlate) IsTerminal() bool { return true }

func (a PassThroughDoorWithPlate) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	player(w, playerIndex).Position = a.Target
}
