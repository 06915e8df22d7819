// Package transport defines the RPC boundary of spec.md §6: one
// observation in, one or two directed actions out, per tick.
package transport

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// Transport is the only asynchronous boundary in the system (spec.md
// §5): the per-tick send-action/receive-state round trip. No production
// implementation ships with this module; network transport is out of
// scope (SPEC_FULL.md §6.2).
type Transport interface {
	// Observe blocks for the next tick's observation.
	Observe(ctx context.Context) (worldmodel.Observation, error)
	// Act sends this tick's chosen actions. a2 is nil in single-player mode.
	Act(ctx context.Context, a1 action.DirectedAction, a2 *action.DirectedAction) error
}

// Scripted is a deterministic fake transport that plays back a fixed
// sequence of observations, recording the actions sent without applying
// them. Driver tests use it where fixed observations suffice (the S1 and
// S2 scenario tests use their own reactive fake instead), playing without
// a live server, the way the teacher's NewGameWithParams plus a
// fixed seed gives ai_test.go a reproducible dungeon to play against.
type Scripted struct {
	Observations []worldmodel.Observation
	index        int

	// Sent records every action pair this transport was asked to emit, in
	// order, for test assertions.
	Sent []SentAction
}

// SentAction is one recorded Act call.
type SentAction struct {
	A1 action.DirectedAction
	A2 *action.DirectedAction
}

// NewScripted returns a Scripted transport that will hand out obs in
// order, one per Observe call.
func NewScripted(obs []worldmodel.Observation) *Scripted {
	return &Scripted{Observations: obs}
}

// ErrExhausted is returned once every scripted observation has been
// consumed.
var ErrExhausted = fmt.Errorf("transport: scripted observations exhausted")

func (s *Scripted) Observe(ctx context.Context) (worldmodel.Observation, error) {
	select {
	case <-ctx.Done():
		return worldmodel.Observation{}, ctx.Err()
	default:
	}
	if s.index >= len(s.Observations) {
		return worldmodel.Observation{}, ErrExhausted
	}
	obs := s.Observations[s.index]
	s.index++
	return obs, nil
}

func (s *Scripted) Act(ctx context.Context, a1 action.DirectedAction, a2 *action.DirectedAction) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.Sent = append(s.Sent, SentAction{A1: a1, A2: a2})
	return nil
}
