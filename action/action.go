// Package action implements the multi-tick action library of spec.md §4.3:
// the Action interface, the execution/claims bookkeeping the planner and
// executor share, and the concrete action types themselves.
package action

import (
	"math/rand"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/pathfind"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// deterministicRNG derives a reproducible random source from the model's
// current tick and a player index, so random-fallback target selection
// (HuntEnemy, the second player's collision fallback) is stable for a
// given tick rather than drawing on global/process randomness.
func deterministicRNG(w *worldmodel.Model, playerIndex int) *rand.Rand {
	seed := int64(w.Tick)*1000003 + int64(playerIndex)
	return rand.New(rand.NewSource(seed))
}

// findPathScratch runs a plain (non-collision-aware, non-cached) search
// under default walkability; used by reachability checks in
// preconditions where no exec state is available to cache into.
func findPathScratch(w *worldmodel.Model, from, to geometry.Position) ([]geometry.Position, error) {
	return pathfind.FindPath(from, to, pathfind.DefaultWalkable(w), pathfind.DefaultCost(w))
}

// DirectedAction is the closed set of per-tick outputs sent to the game
// server (spec.md §6).
type DirectedAction int

const (
	NoneAction DirectedAction = iota
	MoveNorth
	MoveEast
	MoveSouth
	MoveWest
	UseNorth
	UseEast
	UseSouth
	UseWest
)

func (d DirectedAction) String() string {
	switch d {
	case NoneAction:
		return "None"
	case MoveNorth:
		return "MoveNorth"
	case MoveEast:
		return "MoveEast"
	case MoveSouth:
		return "MoveSouth"
	case MoveWest:
		return "MoveWest"
	case UseNorth:
		return "UseNorth"
	case UseEast:
		return "UseEast"
	case UseSouth:
		return "UseSouth"
	case UseWest:
		return "UseWest"
	default:
		return "Unknown"
	}
}

// directionTo returns the Move action stepping from pos toward an adjacent
// neighbor, and ok=false if neighbor isn't actually adjacent to pos.
func directionTo(pos, neighbor geometry.Position) (DirectedAction, bool) {
	switch {
	case neighbor == geometry.New(pos.X, pos.Y-1):
		return MoveNorth, true
	case neighbor == geometry.New(pos.X+1, pos.Y):
		return MoveEast, true
	case neighbor == geometry.New(pos.X, pos.Y+1):
		return MoveSouth, true
	case neighbor == geometry.New(pos.X-1, pos.Y):
		return MoveWest, true
	default:
		return NoneAction, false
	}
}

// useTowards returns the Use action facing from pos toward an adjacent
// target cell, and ok=false if target isn't adjacent to pos.
func useTowards(pos, target geometry.Position) (DirectedAction, bool) {
	switch {
	case target == geometry.New(pos.X, pos.Y-1):
		return UseNorth, true
	case target == geometry.New(pos.X+1, pos.Y):
		return UseEast, true
	case target == geometry.New(pos.X, pos.Y+1):
		return UseSouth, true
	case target == geometry.New(pos.X-1, pos.Y):
		return UseWest, true
	default:
		return NoneAction, false
	}
}

// Status is the per-tick outcome of Execute (spec.md §4.3).
type Status int

const (
	InProgress Status = iota
	Complete
	Wait
	Failed
)

// ObjectCounts snapshots counts of "interesting" tracked objects, used by
// Explore to detect when new discoveries justify ending early.
type ObjectCounts struct {
	Keys, Swords, Health, Plates, Boulders int
	ExitVisible                            bool
}

// CountObjects snapshots w's current tracked-object counts.
func CountObjects(w *worldmodel.Model) ObjectCounts {
	var c ObjectCounts
	for _, col := range geometry.Colors {
		c.Keys += len(w.Keys.Positions(col))
		c.Plates += len(w.Plates.Positions(col))
	}
	c.Swords = len(w.Swords.Positions())
	c.Health = len(w.Health.Positions())
	c.Boulders = w.Boulder.Len()
	c.ExitVisible = w.ExitPosition != nil
	return c
}

// Increased reports whether next has strictly more of anything interesting
// than prev (spec.md's Explore completion rule).
func (prev ObjectCounts) Increased(next ObjectCounts) bool {
	if next.ExitVisible && !prev.ExitVisible {
		return true
	}
	return next.Keys > prev.Keys || next.Swords > prev.Swords || next.Health > prev.Health ||
		next.Plates > prev.Plates || next.Boulders > prev.Boulders
}

// ExecState is the scratch state an in-flight action keeps between ticks;
// fields are used by whichever action type needs them and ignored by the
// rest (spec.md's ActionExecutionState equivalent).
type ExecState struct {
	CachedPath        []geometry.Position
	PathTarget        *geometry.Position
	ExplorationTarget *geometry.Position
	InitialCounts     *ObjectCounts
	WaitTicks         int
	TargetEnemy       *geometry.Position
	TargetBoulder     *geometry.Position
	BoulderUnexplored bool
	Phase             string
}

// ResourceKind is the closed set of single-instance resources the planner
// must avoid double-claiming across players within one planning search
// (spec.md §5).
type ResourceKind int

const (
	ClaimKey ResourceKind = iota
	ClaimDoor
	ClaimSword
	ClaimPlate
	ClaimHealth
)

// ResourceClaim identifies one claimable resource instance.
type ResourceClaim struct {
	Kind ResourceKind
	Pos  geometry.Position
}

// Claims maps a claimed resource to the player index that claimed it;
// populated during a single planning search and discarded afterward.
type Claims map[ResourceClaim]int

// ClaimedByOther reports whether claim is held by a player other than playerIndex.
func (c Claims) ClaimedByOther(claim ResourceClaim, playerIndex int) bool {
	holder, ok := c[claim]
	return ok && holder != playerIndex
}

// Action is the polymorphic interface every action type implements
// (spec.md §4.3).
type Action interface {
	Name() string
	Precondition(w *worldmodel.Model, playerIndex int, claims Claims) bool
	Prepare(w *worldmodel.Model, playerIndex int) *geometry.Position
	Execute(w *worldmodel.Model, playerIndex int, exec *ExecState) (DirectedAction, Status)
	Cost(w *worldmodel.Model, playerIndex int) float64
	Duration(w *worldmodel.Model, playerIndex int) int
	Reward(w *worldmodel.Model, playerIndex int) float64
	IsTerminal() bool
	Effect(w *worldmodel.Model, playerIndex int, claims Claims)
}

// Generate enumerates every admissible action instance, across every
// action type, for the given player against the current state.
func Generate(w *worldmodel.Model, playerIndex int, claims Claims) []Action {
	var out []Action
	out = append(out, generateExplore(w, playerIndex, claims)...)
	out = append(out, generateGetKey(w, playerIndex, claims)...)
	out = append(out, generateOpenDoor(w, playerIndex, claims)...)
	out = append(out, generatePickupSword(w, playerIndex, claims)...)
	out = append(out, generatePickupHealth(w, playerIndex, claims)...)
	out = append(out, generateAttackEnemy(w, playerIndex, claims)...)
	out = append(out, generateHuntEnemy(w, playerIndex, claims)...)
	out = append(out, generateAvoidEnemy(w, playerIndex, claims)...)
	out = append(out, generatePickupBoulder(w, playerIndex, claims)...)
	out = append(out, generateDropBoulder(w, playerIndex, claims)...)
	out = append(out, generateDropBoulderOnPlate(w, playerIndex, claims)...)
	out = append(out, generateWaitOnPlate(w, playerIndex, claims)...)
	out = append(out, generatePassThroughDoorWithPlate(w, playerIndex, claims)...)
	out = append(out, generateTouchPlate(w, playerIndex, claims)...)
	out = append(out, generateReachExit(w, playerIndex, claims)...)
	out = append(out, generateWait(w, playerIndex, claims)...)

	var admissible []Action
	for _, a := range out {
		if a.Precondition(w, playerIndex, claims) {
			admissible = append(admissible, a)
		}
	}
	return admissible
}

// player is a small convenience accessor shared by every action file.
func player(w *worldmodel.Model, playerIndex int) *worldmodel.PlayerState {
	return w.Players[playerIndex]
}

// otherPlayer returns the partner in two-player mode, or nil in
// single-player mode or if there is no second player slot.
func otherPlayer(w *worldmodel.Model, playerIndex int) *worldmodel.PlayerState {
	for _, p := range w.Players {
		if p.Index != playerIndex {
			return p
		}
	}
	return nil
}

// enemyPositions returns every position currently treated as hostile for
// planning purposes: directly observed enemies plus potential-enemy
// positions that haven't been reconfirmed (spec.md Glossary).
func enemyPositions(w *worldmodel.Model) []geometry.Position {
	seen := make(map[geometry.Position]bool)
	w.Map.Each(func(pos geometry.Position, tile worldmap.Tile) {
		if tile == worldmap.Enemy {
			seen[pos] = true
		}
	})
	for pos := range w.PotentialEnemies {
		seen[pos] = true
	}
	out := make([]geometry.Position, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	return out
}

func closestEnemy(w *worldmodel.Model, from geometry.Position) (geometry.Position, bool) {
	enemies := enemyPositions(w)
	if len(enemies) == 0 {
		return geometry.Position{}, false
	}
	best := enemies[0]
	bestDist := from.Distance(best)
	for _, pos := range enemies[1:] {
		if d := from.Distance(pos); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best, true
}
