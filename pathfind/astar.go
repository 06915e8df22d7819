// Package pathfind implements the A* search described in spec.md §4.2:
// Manhattan-heuristic search over grid positions with pluggable
// walkability and step-cost predicates, plus the collision-aware
// two-player variant.
package pathfind

import (
	"container/heap"
	"errors"

	"github.com/pflow-xyz/gridrunner/geometry"
)

// ErrExpansionCapExceeded is returned (wrapped in ErrNoPath) when the
// search exhausts its expansion budget before finding the goal. Per
// spec.md §9, this is deliberately indistinguishable from "no path
// exists" to callers that only check for nil; DebugPath recovers the
// distinction for diagnostics.
var ErrExpansionCapExceeded = errors.New("pathfind: expansion cap exceeded")

// ErrNoPath is returned when no path could be found, whether because none
// exists or because the expansion budget ran out.
var ErrNoPath = errors.New("pathfind: no path found")

// maxExpansions bounds worst-case latency; exceeding it returns "no path"
// rather than panicking or running unbounded.
const maxExpansions = 5000

// Walkable reports whether pos may be entered at the given tick, while
// searching toward goal.
type Walkable func(pos geometry.Position, goal geometry.Position, tick int) bool

// StepCost returns the cost of entering pos at the given tick, while
// searching toward goal.
type StepCost func(pos geometry.Position, goal geometry.Position, tick int) int

// DefaultStepCost charges a flat 1 per step.
func DefaultStepCost(geometry.Position, geometry.Position, int) int { return 1 }

type node struct {
	pos     geometry.Position
	g       int
	f       int
	tick    int
	index   int // heap index, maintained by container/heap
}

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// Ties on f fall back to the nodes' current heap positions; heap
	// operations are deterministic, so results repeat across runs.
	return h[i].index < h[j].index
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindPath runs A* from start to goal using the given walkability and cost
// predicates. Neighbors expand in N, E, S, W order for a stable tie-break.
// Returns ErrNoPath if the goal is unreachable or the expansion budget
// (5000 nodes) is exceeded.
func FindPath(start, goal geometry.Position, walkable Walkable, cost StepCost) ([]geometry.Position, error) {
	if start == goal {
		return []geometry.Position{start}, nil
	}

	cameFrom := map[geometry.Position]geometry.Position{}
	gScore := map[geometry.Position]int{start: 0}
	closed := map[geometry.Position]bool{}

	open := &openHeap{}
	heap.Init(open)
	heap.Push(open, &node{pos: start, g: 0, f: heuristic(start, goal), tick: 0})

	expansions := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)

		if cur.pos == goal {
			return reconstruct(cameFrom, cur.pos), nil
		}
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true

		expansions++
		if expansions > maxExpansions {
			return nil, errors.Join(ErrNoPath, ErrExpansionCapExceeded)
		}

		curG := gScore[cur.pos]
		for _, n := range cur.pos.Neighbors() {
			if closed[n] {
				continue
			}
			nextTick := cur.tick + 1
			if !walkable(n, goal, nextTick) {
				continue
			}
			tentativeG := curG + cost(n, goal, nextTick)
			if existing, ok := gScore[n]; ok && tentativeG >= existing {
				continue
			}
			cameFrom[n] = cur.pos
			gScore[n] = tentativeG
			heap.Push(open, &node{pos: n, g: tentativeG, f: tentativeG + heuristic(n, goal), tick: nextTick})
		}
	}

	return nil, ErrNoPath
}

func heuristic(a, b geometry.Position) int {
	return int(a.Distance(b))
}

func reconstruct(cameFrom map[geometry.Position]geometry.Position, goal geometry.Position) []geometry.Position {
	path := []geometry.Position{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
