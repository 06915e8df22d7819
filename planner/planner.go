// Package planner implements the shared-state forward A* of spec.md
// §4.4: one joint search over all players' action sequences, expanding
// whichever player's current sequence finishes earliest, and selecting
// the best completed plan by the state evaluator.
package planner

import (
	"container/heap"
	"context"
	"time"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/evaluator"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// defaultTimeout matches the 500ms wall-clock budget named in spec.md
// §4.4/§5.
const defaultTimeout = 500 * time.Millisecond

// Options configure a single Plan invocation.
type Options struct {
	MaxDepth int
	Timeout  time.Duration
}

// Option mutates Options; the driver passes both WithTimeout and
// WithMaxDepth, set from its config.
type Option func(*Options)

// WithTimeout overrides the default 500ms wall-clock planning budget.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithMaxDepth overrides the default action-count cap per planning
// search.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// defaultMaxDepth is the hard action-count cap named in spec.md §9
// ("default ~6 total actions across all players").
const defaultMaxDepth = 6

// Plan is one player's chosen action sequence and its estimated total
// duration in ticks.
type Plan struct {
	Sequence []action.Action
	Duration int
}

// planNode is a single A* search node: a joint plan state across every
// player (spec.md §4.4).
type planNode struct {
	sequences    [][]action.Action
	endTimes     []int
	state        *worldmodel.Model
	initial      *worldmodel.Model
	claims       action.Claims
	gCost        float64
	hCost        float64
	totalActions int
	index        int
}

func (n *planNode) fCost() float64 { return n.gCost + n.hCost }

// nextPlayerToPlan returns the active player with the earliest end time,
// i.e. "whose turn it is to plan next" (spec.md §4.4).
func (n *planNode) nextPlayerToPlan(active []int) (int, bool) {
	best := -1
	bestTime := int(^uint(0) >> 1)
	for _, idx := range active {
		if n.endTimes[idx] < bestTime {
			bestTime, best = n.endTimes[idx], idx
		}
	}
	return best, best != -1
}

type nodeHeap []*planNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].fCost() < h[j].fCost() }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *nodeHeap) Push(x any) {
	n := x.(*planNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func cloneClaims(c action.Claims) action.Claims {
	out := make(action.Claims, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Plan runs the shared-state forward A* search described in spec.md §4.4
// and returns one Plan per player index in world.Players. When the search
// finds no plan at all, or ctx is cancelled, every active player gets a
// fallback Explore (or Wait(1) if no Explore is generated). Otherwise a
// player with no action in the best plan gets an empty sequence, which
// the executor treats as a no-op that triggers replanning next tick.
func Plan(ctx context.Context, world *worldmodel.Model, opts ...Option) []Plan {
	options := Options{MaxDepth: defaultMaxDepth, Timeout: defaultTimeout}
	for _, o := range opts {
		o(&options)
	}
	deadline := time.Now().Add(options.Timeout)

	numPlayers := len(world.Players)
	active := world.ActivePlayers()
	initial := world.Clone()

	root := &planNode{
		sequences: make([][]action.Action, numPlayers),
		endTimes:  make([]int, numPlayers),
		state:     initial.Clone(),
		initial:   initial,
		claims:    make(action.Claims),
	}
	for i := range root.endTimes {
		root.endTimes[i] = world.Tick
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, root)

	var best *planNode
	bestScore := -1e18
	bestGCost := 1e18

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			return fallbackPlans(world, active, numPlayers)
		default:
		}
		if time.Now().After(deadline) {
			break
		}

		cur := heap.Pop(open).(*planNode)

		nextPlayer, ok := cur.nextPlayerToPlan(active)
		if !ok {
			continue
		}

		// cur.state already reflects every action committed so far,
		// including nextPlayer's most recent one: the child that became
		// cur had that action's Effect applied once when it was built
		// below, so it must not be re-applied here.
		sim := cur.state.Clone()
		seq := cur.sequences[nextPlayer]

		if cur.totalActions > 0 {
			score := evaluator.Score(sim, cur.initial)
			better := false
			if abs(score-bestScore) < 1e-3 {
				better = cur.gCost < bestGCost
			} else {
				better = score > bestScore
			}
			if better {
				bestScore, bestGCost, best = score, cur.gCost, cur
			}
		}

		if cur.totalActions >= options.MaxDepth {
			continue
		}

		candidates := action.Generate(sim, nextPlayer, cur.claims)
		for _, cand := range candidates {
			duration := cand.Duration(sim, nextPlayer)
			cost := cand.Cost(sim, nextPlayer)

			childSequences := make([][]action.Action, numPlayers)
			copy(childSequences, cur.sequences)
			childSequences[nextPlayer] = append(append([]action.Action(nil), seq...), cand)

			childEndTimes := append([]int(nil), cur.endTimes...)
			childEndTimes[nextPlayer] = cur.endTimes[nextPlayer] + duration

			childTotal := cur.totalActions + 1
			if cand.IsTerminal() {
				childTotal = options.MaxDepth
			}

			// sim is shared read-only across every candidate in this loop
			// (Generate/Duration/Cost above all read it); each child gets
			// its own clone before its candidate's Effect is applied, so
			// sibling candidates never see each other's effects.
			childState := sim.Clone()
			childClaims := cloneClaims(cur.claims)
			cand.Effect(childState, nextPlayer, childClaims)

			child := &planNode{
				sequences:    childSequences,
				endTimes:     childEndTimes,
				state:        childState,
				initial:      cur.initial,
				claims:       childClaims,
				gCost:        cur.gCost + cost,
				hCost:        0,
				totalActions: childTotal,
			}
			heap.Push(open, child)
		}
	}

	if best == nil {
		return fallbackPlans(world, active, numPlayers)
	}

	out := make([]Plan, numPlayers)
	for i, seq := range best.sequences {
		if len(seq) == 0 {
			continue
		}
		out[i] = Plan{Sequence: seq, Duration: best.endTimes[i] - world.Tick}
	}
	return out
}

// fallbackPlans gives every active player a freshly generated Explore
// action, or Wait(1) if even that can't be generated (spec.md §4.4, §7).
func fallbackPlans(world *worldmodel.Model, active []int, numPlayers int) []Plan {
	out := make([]Plan, numPlayers)
	for _, idx := range active {
		candidates := action.Generate(world, idx, make(action.Claims))
		for _, c := range candidates {
			if c.Name() == "Explore" {
				out[idx] = Plan{Sequence: []action.Action{c}, Duration: c.Duration(world, idx)}
				break
			}
		}
		if len(out[idx].Sequence) == 0 {
			w := action.Wait{Ticks: 1}
			out[idx] = Plan{Sequence: []action.Action{w}, Duration: w.Duration(world, idx)}
		}
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
