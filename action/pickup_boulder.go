package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// boulderCandidate is a reachable boulder discovered by the BFS in
// generatePickupBoulder: its own position, the adjacent cell the player
// will stand on to pick it up, the path distance to that cell, whether
// the boulder has never been moved, and whether it currently sits on a
// pressure plate.
type boulderCandidate struct {
	boulder    geometry.Position
	target     geometry.Position
	distance   int
	unexplored bool
	onPlate    bool
}

// findReachableBoulders floods outward from start under default
// walkability and records every boulder adjacent to a visited cell,
// classifying each per spec.md §4.3.
func findReachableBoulders(w *worldmodel.Model, playerIndex int, start geometry.Position) []boulderCandidate {
	plates := make(map[geometry.Position]bool)
	for _, c := range geometry.Colors {
		for _, pos := range w.Plates.Positions(c) {
			plates[pos] = true
		}
	}

	walkable := func(pos geometry.Position) bool {
		return pathfindIsWalkable(w, pos)
	}

	visited := map[geometry.Position]bool{start: true}
	queue := []struct {
		pos  geometry.Position
		dist int
	}{{start, 0}}
	seenBoulder := map[geometry.Position]bool{}
	var out []boulderCandidate

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.pos.Neighbors() {
			if w.Boulder.Contains(n) && !seenBoulder[n] {
				seenBoulder[n] = true
				out = append(out, boulderCandidate{
					boulder:    n,
					target:     cur.pos,
					distance:   cur.dist,
					unexplored: !w.Boulder.HasMoved(n),
					onPlate:    plates[n],
				})
			}
			if !visited[n] && walkable(n) {
				visited[n] = true
				queue = append(queue, struct {
					pos  geometry.Position
					dist int
				}{n, cur.dist + 1})
			}
		}
	}
	return out
}

func pathfindIsWalkable(w *worldmodel.Model, pos geometry.Position) bool {
	tile, ok := w.Map.Get(pos)
	return ok && tile == worldmap.Empty
}

// PickupBoulder walks to an adjacent cell of the chosen boulder and picks
// it up (spec.md §4.3).
type PickupBoulder struct {
	Boulder    geometry.Position
	Target     geometry.Position
	Unexplored bool
}

func generatePickupBoulder(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	if w.Level < 6 {
		return nil
	}
	p := player(w, playerIndex)
	if p.Inventory != worldmap.InventoryNone {
		return nil
	}

	all := findReachableBoulders(w, playerIndex, p.Position)
	var unexplored, exploredOffPlate, exploredOnPlate []boulderCandidate
	for _, c := range all {
		switch {
		case c.unexplored:
			unexplored = append(unexplored, c)
		case c.onPlate:
			exploredOnPlate = append(exploredOnPlate, c)
		default:
			exploredOffPlate = append(exploredOffPlate, c)
		}
	}

	pick := func(cands []boulderCandidate) *boulderCandidate {
		if len(cands) == 0 {
			return nil
		}
		best := cands[0]
		for _, c := range cands[1:] {
			if c.distance < best.distance {
				best = c
			}
		}
		return &best
	}

	switch {
	case len(unexplored) > 0:
		c := pick(unexplored)
		return []Action{PickupBoulder{Boulder: c.boulder, Target: c.target, Unexplored: true}}
	case len(exploredOffPlate) > 0:
		c := pick(exploredOffPlate)
		return []Action{PickupBoulder{Boulder: c.boulder, Target: c.target, Unexplored: false}}
	case len(exploredOnPlate) > 0:
		var out []Action
		for _, c := range exploredOnPlate {
			out = append(out, PickupBoulder{Boulder: c.boulder, Target: c.target, Unexplored: false})
		}
		return out
	}
	return nil
}

func (a PickupBoulder) Name() string { return "PickupBoulder" }

func (a PickupBoulder) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	return p.Inventory == worldmap.InventoryNone && w.Boulder.Contains(a.Boulder)
}

func (a PickupBoulder) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Target
	return &a.Target
}

func (a PickupBoulder) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if p.Position == a.Target {
		dir, ok := useTowards(p.Position, a.Boulder)
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

func (a PickupBoulder) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return 5 + float64(player(w, playerIndex).Position.Distance(a.Target))*0.1
}

func (a PickupBoulder) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Target)) + 1
}

func (PickupBoulder) Reward(w *worldmodel.Model, playerIndex int) float64 { return 3 }

func (PickupBoulder) IsTerminal() bool { return false }

func (a PickupBoulder) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	p.Inventory = worldmap.InventoryBoulder
	w.Boulder.Remove(a.Boulder)
	p.Position = a.Target
	unexplored := a.Unexplored
	p.HeldBoulderUnexplored = &unexplored
}
