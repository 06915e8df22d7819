package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// attackGenerationRadius bounds which enemies are offered as AttackEnemy
// targets while the map is still being explored, so the planner doesn't
// send a player across half the level to fight something incidental
// (spec.md §4.3).
const attackGenerationRadius = 3

// AttackEnemy chases and strikes the enemy at Pos (spec.md §4.3).
type AttackEnemy struct {
	Pos geometry.Position
}

func generateAttackEnemy(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	p := player(w, playerIndex)
	stillExploring := len(p.Frontier) > 0
	var out []Action
	for _, pos := range enemyPositions(w) {
		if stillExploring && p.Position.Distance(pos) > attackGenerationRadius {
			continue
		}
		out = append(out, AttackEnemy{Pos: pos})
	}
	return out
}

func (a AttackEnemy) Name() string { return "AttackEnemy" }

func (a AttackEnemy) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool {
	p := player(w, playerIndex)
	return p.HasSword && p.Health >= 7 && len(enemyPositions(w)) > 0
}

func (a AttackEnemy) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position {
	player(w, playerIndex).CurrentDestination = &a.Pos
	return &a.Pos
}

func (a AttackEnemy) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	p := player(w, playerIndex)
	if exec.TargetEnemy == nil {
		target := a.Pos
		exec.TargetEnemy = &target
	}
	if p.Health < 2 || !enemyStillTracked(w, *exec.TargetEnemy) {
		return NoneAction, Complete
	}
	if p.Position.IsAdjacent(*exec.TargetEnemy) {
		dir, ok := useTowards(p.Position, *exec.TargetEnemy)
		if !ok {
			return NoneAction, Failed
		}
		return dir, InProgress
	}
	path, err := stepTowards(w, playerIndex, *exec.TargetEnemy, exec)
	if err != nil || len(path) < 2 {
		return NoneAction, Failed
	}
	dir, ok := directionTo(p.Position, path[1])
	if !ok {
		return NoneAction, Failed
	}
	return dir, InProgress
}

func (a AttackEnemy) Cost(w *worldmodel.Model, playerIndex int) float64 {
	return float64(player(w, playerIndex).Position.Distance(a.Pos)) + 1
}

func (a AttackEnemy) Duration(w *worldmodel.Model, playerIndex int) int {
	return int(player(w, playerIndex).Position.Distance(a.Pos)) + 2
}

// Reward is left to the state evaluator's enemy-count term; attacking
// carries no action-level bonus of its own.
func (AttackEnemy) Reward(w *worldmodel.Model, playerIndex int) float64 { return 0 }

func (AttackEnemy) IsTerminal() bool { return false }

func (a AttackEnemy) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {
	delete(w.PotentialEnemies, a.Pos)
}

func enemyStillTracked(w *worldmodel.Model, pos geometry.Position) bool {
	for _, e := range enemyPositions(w) {
		if e == pos {
			return true
		}
	}
	return false
}
