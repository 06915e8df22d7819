package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/pathfind"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// avoidEnemyTriggerRadius is how close an enemy must be for an unarmed
// player to start retreating (spec.md §4.3).
const avoidEnemyTriggerRadius = 3

// AvoidEnemy steps away from the nearest enemy one cardinal move at a
// time, for players without a sword (spec.md §4.3).
type AvoidEnemy struct{}

func generateAvoidEnemy(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	return []Action{AvoidEnemy{}}
}

func (AvoidEnemy) Name() string { return "AvoidEnemy" }

func (AvoidEnemy) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	if p.HasSword {
		return false
	}
	closest, ok := closestEnemy(w, p.Position)
	return ok && p.Position.Distance(closest) <= avoidEnemyTriggerRadius
}

func (AvoidEnemy) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	p := player(w, playerIndex)
	dest, ok := retreatStep(w, p)
	if !ok {
		p.CurrentDestination = nil
		return nil
	}
	p.CurrentDestination = &dest
	return &dest
}

func (AvoidEnemy) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	closest, ok := closestEnemy(w, p.Position)
	if !ok || p.Position.Distance(closest) > avoidEnemyTriggerRadius {
		return NoneAction, Complete
	}
	step, ok := retreatStep(w, p)
	if !ok {
		return NoneAction, Wait
	}
	dir, ok := directionTo(p.Position, step)
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (AvoidEnemy) Cost(w *worldmodel.Model, playerIndex int) float64 { return 1 }

func (AvoidEnemy) Duration(w *worldmodel.Model, playerIndex int) int { return 1 }

func (AvoidEnemy) Reward(w *worldmodel.Model, playerIndex int) float64 { return 0.5 }

func (AvoidEnemy) IsTerminal() bool { return true }

func (AvoidEnemy) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	p := player(w, playerIndex)
	if step, ok := retreatStep(w, p); ok {
		p.Position = step
	}
}

// retreatStep picks the cardinal neighbor that most increases distance to
// the nearest enemy among walkable neighbors; stays in place if none do.
func retreatStep(w *worldmodel.Model, p *worldmodel.PlayerState) (geometry.Position, bool) {
	closest, ok := closestEnemy(w, p.Position)
	if !ok {
		return p.Position, false
	}
	walkable := pathfind.DefaultWalkable(w)
	currentDist := p.Position.Distance(closest)
	best := p.Position
	bestDist := currentDist
	for _, n := range p.Position.Neighbors() {
		if !walkable(n, n, w.Tick) {
			continue
		}
		if d := n.Distance(closest); d > bestDist {
			best, bestDist = n, d
		}
	}
	return best, best != p.Position
}
