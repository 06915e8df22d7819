// Package observer implements the sink interface of spec.md §6: a
// read-only set of lifecycle callbacks fired between tick phases.
package observer

import (
	"log"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// Counters summarizes completed games, reported on state updates and at
// game end.
type Counters struct {
	GameCount int
	Successes int
	Failures  int
}

// GameStatus is the terminal (or in-progress) state of a driven game.
type GameStatus int

const (
	StatusInProgress GameStatus = iota
	StatusSuccess
	StatusFailed
)

func (s GameStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "in-progress"
	}
}

// Observer is the sink interface; any subset of methods may be a no-op.
// Implementations must not mutate the world model they are handed.
type Observer interface {
	OnGameStart(gameID string, seed *int64, mapW, mapH int32, visRange int32)
	OnNewLevel(level int)
	OnStateUpdate(world *worldmodel.Model, counters Counters)
	OnGoalSelected(playerIndex int, actionName string, world *worldmodel.Model)
	OnPathsUpdated(paths [][]geometry.Position)
	OnActionSelected(a action.DirectedAction, world *worldmodel.Model)
	OnActionResult(a1 action.DirectedAction, a2 *action.DirectedAction, status GameStatus, world *worldmodel.Model)
	OnGameFinished(status GameStatus, finalTick int, counters Counters)
	OnOscillationDetected(message string)
}

// NoOp implements Observer with every method a no-op; the zero-cost
// default when no observer is configured.
type NoOp struct{}

func (NoOp) OnGameStart(string, *int64, int32, int32, int32)                  {}
func (NoOp) OnNewLevel(int)                                                   {}
func (NoOp) OnStateUpdate(*worldmodel.Model, Counters)                        {}
func (NoOp) OnGoalSelected(int, string, *worldmodel.Model)                    {}
func (NoOp) OnPathsUpdated([][]geometry.Position)                         {}
func (NoOp) OnActionSelected(action.DirectedAction, *worldmodel.Model)        {}
func (NoOp) OnActionResult(action.DirectedAction, *action.DirectedAction, GameStatus, *worldmodel.Model) {
}
func (NoOp) OnGameFinished(GameStatus, int, Counters) {}
func (NoOp) OnOscillationDetected(string)             {}

var _ Observer = NoOp{}

// Logger wraps a *log.Logger and emits one line per event, gated by
// Verbosity (0 = game/level boundaries, per-tick action results and
// oscillation warnings, 1 = adds goal/action selection, 2 = adds per-tick
// state and path updates).
type Logger struct {
	L         *log.Logger
	Verbosity int
}

var _ Observer = (*Logger)(nil)

func (o *Logger) OnGameStart(gameID string, seed *int64, mapW, mapH int32, visRange int32) {
	if seed != nil {
		o.L.Printf("[game] %s start map=%dx%d vis=%d seed=%d", gameID, mapW, mapH, visRange, *seed)
		return
	}
	o.L.Printf("[game] %s start map=%dx%d vis=%d", gameID, mapW, mapH, visRange)
}

func (o *Logger) OnNewLevel(level int) {
	o.L.Printf("[level] entering level %d", level)
}

func (o *Logger) OnStateUpdate(world *worldmodel.Model, counters Counters) {
	if o.Verbosity < 2 {
		return
	}
	o.L.Printf("[state] tick=%d games=%d successes=%d failures=%d", world.Tick, counters.GameCount, counters.Successes, counters.Failures)
}

func (o *Logger) OnGoalSelected(playerIndex int, actionName string, world *worldmodel.Model) {
	if o.Verbosity < 1 {
		return
	}
	o.L.Printf("[goal] tick=%d player=%d action=%s", world.Tick, playerIndex, actionName)
}

func (o *Logger) OnPathsUpdated(paths [][]geometry.Position) {
	if o.Verbosity < 2 {
		return
	}
	o.L.Printf("[paths] updated for %d players", len(paths))
}

func (o *Logger) OnActionSelected(a action.DirectedAction, world *worldmodel.Model) {
	if o.Verbosity < 1 {
		return
	}
	o.L.Printf("[action] tick=%d selected=%s", world.Tick, a)
}

func (o *Logger) OnActionResult(a1 action.DirectedAction, a2 *action.DirectedAction, status GameStatus, world *worldmodel.Model) {
	if a2 != nil {
		o.L.Printf("[result] tick=%d a1=%s a2=%s status=%s", world.Tick, a1, *a2, status)
		return
	}
	o.L.Printf("[result] tick=%d a1=%s status=%s", world.Tick, a1, status)
}

func (o *Logger) OnGameFinished(status GameStatus, finalTick int, counters Counters) {
	o.L.Printf("[game] finished status=%s tick=%d successes=%d failures=%d", status, finalTick, counters.Successes, counters.Failures)
}

func (o *Logger) OnOscillationDetected(message string) {
	o.L.Printf("[oscillation] %s", message)
}

// Multi fans every call out to N observers in order, grounded on the
// teacher's Bus.dispatch / BroadcastBus.Publish pattern of ranging over a
// fixed subscriber list rather than a full pub/sub bus.
type Multi struct {
	Observers []Observer
}

var _ Observer = Multi{}

func NewMulti(observers ...Observer) Multi {
	return Multi{Observers: observers}
}

func (m Multi) OnGameStart(gameID string, seed *int64, mapW, mapH int32, visRange int32) {
	for _, o := range m.Observers {
		o.OnGameStart(gameID, seed, mapW, mapH, visRange)
	}
}

func (m Multi) OnNewLevel(level int) {
	for _, o := range m.Observers {
		o.OnNewLevel(level)
	}
}

func (m Multi) OnStateUpdate(world *worldmodel.Model, counters Counters) {
	for _, o := range m.Observers {
		o.OnStateUpdate(world, counters)
	}
}

func (m Multi) OnGoalSelected(playerIndex int, actionName string, world *worldmodel.Model) {
	for _, o := range m.Observers {
		o.OnGoalSelected(playerIndex, actionName, world)
	}
}

func (m Multi) OnPathsUpdated(paths [][]geometry.Position) {
	for _, o := range m.Observers {
		o.OnPathsUpdated(paths)
	}
}

func (m Multi) OnActionSelected(a action.DirectedAction, world *worldmodel.Model) {
	for _, o := range m.Observers {
		o.OnActionSelected(a, world)
	}
}

func (m Multi) OnActionResult(a1 action.DirectedAction, a2 *action.DirectedAction, status GameStatus, world *worldmodel.Model) {
	for _, o := range m.Observers {
		o.OnActionResult(a1, a2, status, world)
	}
}

func (m Multi) OnGameFinished(status GameStatus, finalTick int, counters Counters) {
	for _, o := range m.Observers {
		o.OnGameFinished(status, finalTick, counters)
	}
}

func (m Multi) OnOscillationDetected(message string) {
	for _, o := range m.Observers {
		o.OnOscillationDetected(message)
	}
}
