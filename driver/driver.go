// Package driver runs the tick loop tying the World Model, Planner,
// Executor, Observer, and Transport together (spec.md §5, §6).
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/config"
	"github.com/pflow-xyz/gridrunner/executor"
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/observer"
	"github.com/pflow-xyz/gridrunner/planner"
	"github.com/pflow-xyz/gridrunner/transport"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// defaultMapSize matches the 21x21 literal value used throughout spec.md
// §8's acceptance scenarios.
const defaultMapSize = 21

// Driver owns one game's WorldModel, planning state, and counters. Only
// its Run goroutine mutates the WorldModel between ticks (spec.md §5).
type Driver struct {
	GameID string

	Cfg       config.Config
	Transport transport.Transport
	Observer  observer.Observer

	World   *worldmodel.Model
	Exec    *executor.State
	execRun *executor.Executor

	Counters observer.Counters
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithObserver overrides the default observer.NoOp.
func WithObserver(o observer.Observer) Option {
	return func(d *Driver) { d.Observer = o }
}

// WithLogger routes the executor's per-action log lines through l.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.execRun = executor.New(l) }
}

// New constructs a Driver for a fresh game. numPlayers is 1 or 2,
// matching cfg.TwoPlayer.
func New(cfg config.Config, t transport.Transport, opts ...Option) *Driver {
	numPlayers := 1
	if cfg.TwoPlayer {
		numPlayers = 2
	}

	d := &Driver{
		GameID:    uuid.New().String(),
		Cfg:       cfg,
		Transport: t,
		Observer:  observer.NoOp{},
		World:     worldmodel.New(defaultMapSize, defaultMapSize, 3, numPlayers, nil),
		Exec:      executor.NewState(numPlayers),
		execRun:   executor.New(nil),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Run drives ticks until a terminal status is observed, ctx is
// cancelled, or maxTicks is exceeded (0 means unbounded). It returns the
// terminal status and the tick it occurred on.
func (d *Driver) Run(ctx context.Context, maxTicks int) (observer.GameStatus, int, error) {
	var seed *int64
	if d.Cfg.Seed != 0 {
		s := d.Cfg.Seed
		seed = &s
	}
	d.Observer.OnGameStart(d.GameID, seed, d.World.Map.Width, d.World.Map.Height, d.World.VisibilityRadius)

	lastLevel := 0
	ticks := 0

	for maxTicks == 0 || ticks < maxTicks {
		select {
		case <-ctx.Done():
			return observer.StatusFailed, ticks, ctx.Err()
		default:
		}

		obs, err := d.Transport.Observe(ctx)
		if err != nil {
			if errors.Is(err, transport.ErrExhausted) {
				return observer.StatusInProgress, ticks, nil
			}
			d.Counters.Failures++
			return observer.StatusFailed, ticks, fmt.Errorf("driver: observe: %w", err)
		}
		ticks++

		// world.update
		d.World.Update(obs)
		if d.World.Level != lastLevel {
			lastLevel = d.World.Level
			d.Observer.OnNewLevel(lastLevel)
		}
		d.Observer.OnStateUpdate(d.World, d.Counters)

		for _, idx := range d.World.LastOscillations {
			d.Observer.OnOscillationDetected(fmt.Sprintf("player %d oscillating near %s", idx, d.World.Players[idx].Position))
		}

		status, done := terminalStatus(obs.Status, d.World)
		if done {
			d.Counters.GameCount++
			if status == observer.StatusSuccess {
				d.Counters.Successes++
			} else {
				d.Counters.Failures++
			}
			d.Observer.OnGameFinished(status, ticks, d.Counters)
			return status, ticks, nil
		}

		// (optional) planner.plan
		if d.needsReplan() {
			planCtx, cancel := context.WithTimeout(ctx, time.Duration(d.Cfg.PlannerTimeoutMS)*time.Millisecond)
			plans := planner.Plan(planCtx, d.World, planner.WithTimeout(time.Duration(d.Cfg.PlannerTimeoutMS)*time.Millisecond), planner.WithMaxDepth(d.Cfg.PlannerDepthCap))
			cancel()
			d.Exec.ApplyPlans(plans)

			for i, pl := range plans {
				if len(pl.Sequence) == 0 {
					continue
				}
				d.Observer.OnGoalSelected(i, pl.Sequence[0].Name(), d.World)
			}

			paths := make([][]geometry.Position, len(d.World.Players))
			for i, p := range d.World.Players {
				paths[i] = p.CurrentPath
			}
			d.Observer.OnPathsUpdated(paths)
		}

		d.execRun.Prepare(d.World, d.Exec)

		// executor.execute
		actions := d.execRun.Execute(d.World, d.Exec)

		var a1 action.DirectedAction
		var a2 *action.DirectedAction
		if len(actions) > 0 {
			a1 = actions[0]
			d.Observer.OnActionSelected(a1, d.World)
		}
		if len(actions) > 1 {
			a := actions[1]
			a2 = &a
			d.Observer.OnActionSelected(a, d.World)
		}

		// rpc.act
		if err := d.Transport.Act(ctx, a1, a2); err != nil {
			d.Counters.Failures++
			return observer.StatusFailed, ticks, fmt.Errorf("driver: act: %w", err)
		}
		d.Observer.OnActionResult(a1, a2, observer.StatusInProgress, d.World)
	}

	return observer.StatusInProgress, ticks, nil
}

// needsReplan reports whether the planner must run this tick: every
// player's plan is empty, or any active player has EmergencyReplan set
// (spec.md §4.7).
func (d *Driver) needsReplan() bool {
	if d.Exec.NeedsReplan() {
		return true
	}
	for _, p := range d.World.Players {
		if p.IsActive && p.EmergencyReplan {
			p.EmergencyReplan = false
			for i := range d.Exec.Players {
				d.Exec.ClearPlan(i)
			}
			return true
		}
	}
	return false
}

// terminalStatus interprets the server's status enum alongside the
// "every player reached the exit" condition (sentinel position (-1,-1)).
func terminalStatus(raw string, w *worldmodel.Model) (observer.GameStatus, bool) {
	switch raw {
	case "won", "success", "finished_success":
		return observer.StatusSuccess, true
	case "lost", "failure", "finished_failure":
		return observer.StatusFailed, true
	}

	allExited := len(w.Players) > 0
	for _, p := range w.Players {
		if p.IsActive {
			allExited = false
			break
		}
	}
	if allExited {
		return observer.StatusSuccess, true
	}

	return observer.StatusInProgress, false
}
