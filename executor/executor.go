// Package executor drives each player's current planned action forward
// by one tick, per spec.md §4.6.
package executor

import (
	"log"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/planner"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// PlayerPlan is one player's persistent planning state: the action
// sequence chosen by the last Plan call, where execution has gotten to
// within it, and the scratch state the current action is accumulating.
type PlayerPlan struct {
	Sequence     []action.Action
	CurrentIndex int
	Exec         *action.ExecState

	// consecutiveWaits counts Wait statuses in a row for the current
	// action; a long run of Waits doesn't move g-cost meaningfully (spec.md
	// §9), so it forces a replan instead of stalling forever.
	consecutiveWaits int
}

func newPlayerPlan() *PlayerPlan {
	return &PlayerPlan{Exec: &action.ExecState{}}
}

// IsEmpty reports whether this player has no live plan.
func (p *PlayerPlan) IsEmpty() bool { return len(p.Sequence) == 0 }

// State holds the per-player plan bookkeeping across ticks, mirroring the
// teacher's request to carry planning state alongside, not inside, the
// world model.
type State struct {
	Players []*PlayerPlan
}

// NewState returns planning state for n players, each with an empty plan.
func NewState(n int) *State {
	out := &State{Players: make([]*PlayerPlan, n)}
	for i := range out.Players {
		out.Players[i] = newPlayerPlan()
	}
	return out
}

// SyncPlayerCount grows Players to match the world model, in case a
// second player joins mid-game.
func (s *State) SyncPlayerCount(n int) {
	for len(s.Players) < n {
		s.Players = append(s.Players, newPlayerPlan())
	}
}

// NeedsReplan reports whether every player's plan is currently empty, the
// sole trigger for invoking the planner (spec.md §4.4/§5).
func (s *State) NeedsReplan() bool {
	for _, p := range s.Players {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// ClearPlan resets a single player's plan and scratch state, called when
// an action completes, fails, or the sequence runs out.
func (s *State) ClearPlan(playerIndex int) {
	p := s.Players[playerIndex]
	p.Sequence = nil
	p.CurrentIndex = 0
	p.Exec = &action.ExecState{}
	p.consecutiveWaits = 0
}

// ApplyPlans installs the planner's output, one sequence per player.
// Players with no sequence in the result are left with an empty plan
// (they will be replanned again next tick if NeedsReplan still holds).
func (s *State) ApplyPlans(plans []planner.Plan) {
	s.SyncPlayerCount(len(plans))
	for i, pl := range plans {
		if len(pl.Sequence) == 0 {
			continue
		}
		s.Players[i] = &PlayerPlan{Sequence: pl.Sequence, Exec: &action.ExecState{}}
	}
}

// maxConsecutiveWaits bounds how many ticks in a row an action may return
// Wait before the executor abandons the plan and forces a replan.
const maxConsecutiveWaits = 10

// Executor drives one tick of action execution for every active player.
type Executor struct {
	Logger *log.Logger
}

// New returns an Executor; a nil logger means "log nothing" (the no-op
// destination used by tests).
func New(logger *log.Logger) *Executor {
	return &Executor{Logger: logger}
}

func (e *Executor) logf(format string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.Printf(format, args...)
}

// Execute runs one tick for every player: it drives the current action of
// each live plan, advances or clears the plan based on the returned
// status, and returns the DirectedAction to emit per player (spec.md
// §4.6 steps 1-3).
func (e *Executor) Execute(w *worldmodel.Model, state *State) []action.DirectedAction {
	state.SyncPlayerCount(len(w.Players))
	out := make([]action.DirectedAction, len(w.Players))

	for i, player := range w.Players {
		if !player.IsActive {
			out[i] = action.NoneAction
			continue
		}

		pp := state.Players[i]
		if pp.IsEmpty() || pp.CurrentIndex >= len(pp.Sequence) {
			out[i] = action.NoneAction
			continue
		}

		current := pp.Sequence[pp.CurrentIndex]
		directed, status := current.Execute(w, i, pp.Exec)
		out[i] = directed

		switch status {
		case action.Complete:
			e.logf("player %d completed action [%d/%d]: %s", i, pp.CurrentIndex+1, len(pp.Sequence), current.Name())
			pp.CurrentIndex++
			pp.Exec = &action.ExecState{}
			pp.consecutiveWaits = 0
			if pp.CurrentIndex >= len(pp.Sequence) {
				state.ClearPlan(i)
			}
		case action.Failed:
			e.logf("player %d action failed [%d/%d]: %s", i, pp.CurrentIndex+1, len(pp.Sequence), current.Name())
			state.ClearPlan(i)
			player.EmergencyReplan = true
		case action.InProgress:
			pp.consecutiveWaits = 0
		case action.Wait:
			pp.consecutiveWaits++
			if pp.consecutiveWaits >= maxConsecutiveWaits {
				e.logf("player %d stalled on %s after %d consecutive waits, forcing replan", i, current.Name(), pp.consecutiveWaits)
				state.ClearPlan(i)
				player.EmergencyReplan = true
			}
		}
	}

	return out
}

// Prepare calls each live current action's Prepare step for every player,
// setting PlayerState.CurrentDestination, which oscillation detection
// reads on the next world update. The collision-aware pathfinder does not
// read it; it uses the partner's CurrentPath instead.
func (e *Executor) Prepare(w *worldmodel.Model, state *State) {
	state.SyncPlayerCount(len(w.Players))
	for i, player := range w.Players {
		if !player.IsActive {
			continue
		}
		pp := state.Players[i]
		if pp.IsEmpty() || pp.CurrentIndex >= len(pp.Sequence) {
			continue
		}
		player.CurrentDestination = pp.Sequence[pp.CurrentIndex].Prepare(w, i)
	}
}
