package action

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// Wait is a no-op, always admissible and used as the last-resort fallback
// when nothing else can be generated (spec.md §4.3). Ticks only sets the
// Duration the planner charges; Execute emits a single None and reports
// Complete on its first call, whatever Ticks is.
type Wait struct {
	Ticks int
}

func generateWait(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	return []Action{Wait{Ticks: 1}}
}

func (a Wait) Name() string { return "Wait" }

func (Wait) Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool { return true }

func (Wait) Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position { return nil }

func (Wait) Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status) {
	return NoneAction, Complete
}

func (Wait) Cost(w *worldmodel.Model, playerIndex int) float64 { return 1 }

func (a Wait) Duration(w *worldmodel.Model, playerIndex int) int {
	if a.Ticks <= 0 {
		return 1
	}
	return a.Ticks
}

func (Wait) Reward(w *worldmodel.Model, playerIndex int) float64 { return 0 }

func (Wait) IsTerminal() bool { return false }

func (Wait) Effect(w *worldmodel.Model, playerIndex int, claims Claims) {}
