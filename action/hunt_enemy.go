package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/pathfind"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// huntEngageRadius is how close an enemy must come before HuntEnemy
// considers the job done and hands off to AttackEnemy (spec.md §4.3).
const huntEngageRadius = 3

// HuntEnemy heads toward the nearest known or suspected enemy once
// exploration is exhausted, so a sword-carrying player doesn't stall
// forever waiting for one to wander into view (spec.md §4.3).
type HuntEnemy struct{}

func generateHuntEnemy(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	return []Action{HuntEnemy{}}
}

func (HuntEnemy) Name() string { return "HuntEnemy" }

func (HuntEnemy) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if len(p.Frontier) > 0 || !p.HasSword || p.Health <= 6 {
		return false
	}
	closest, ok := closestEnemy(w, p.Position)
	return !ok || p.Position.Distance(closest) > huntEngageRadius
}

func (HuntEnemy) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	p := player(w, playerIndex)
	dest, ok := huntTarget(w, p)
	if !ok {
		p.CurrentDestination = nil
		return nil
	}
	p.CurrentDestination = &dest
	return &dest
}

func (HuntEnemy) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if closest, ok := closestEnemy(w, p.Position); ok && p.Position.Distance(closest) <= huntEngageRadius {
		return NoneAction, Complete
	}
	dest, ok := huntTarget(w, p)
	if !ok {
		return NoneAction, Complete
	}
	path, err := stepTowards(w, playerIndex, dest, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Complete
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (HuntEnemy) Cost(w *worldmodel.Model, playerIndex int) float64 { return 2 }

func (HuntEnemy) Duration(w *worldmodel.Model, playerIndex int) int {
	p := player(w, playerIndex)
	if dest, ok := huntTarget(w, p); ok {
		return int(p.Position.Distance(dest)) + 1
	}
	return 1
}

func (HuntEnemy) Reward(w *worldmodel.Model, playerIndex int) float64 { return 2 }

func (HuntEnemy) IsTerminal() bool { return true }

func (HuntEnemy) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	if dest, ok := huntTarget(w, p); ok {
		p.Position = dest
	}
}

// huntTarget picks the closest enemy, else the closest potential-enemy
// location, else a random walkable cell (spec.md §4.3).
func huntTarget(w *worldmodel.Model, p *worldmodel.PlayerState) (geometry.Position, bool) {
	if closest, ok := closestEnemy(w, p.Position); ok {
		return closest, true
	}
	var best geometry.Position
	found := false
	bestDist := int32(0)
	for pos := range w.PotentialEnemies {
		d := p.Position.Distance(pos)
		if !found || d < bestDist {
			best, bestDist, found = pos, d, true
		}
	}
	if found {
		return best, true
	}
	rng := deterministicRNG(w, p.Index)
	return pathfind.RandomFallbackTarget(rng, p.Position, func(pos geometry.Position) bool {
		return pathfind.DefaultWalkable(w)(pos, pos, w.Tick)
	})
}
