package worldmodel

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
)

// PlayerState is a single player's persistent per-game belief, per
// spec.md §3.
type PlayerState struct {
	Index int

	Position  geometry.Position
	Health    int
	Inventory worldmap.Inventory
	HasSword  bool
	IsActive  bool

	// CurrentDestination is set by an action's Prepare step and consumed by
	// oscillation detection.
	CurrentDestination *geometry.Position

	// CurrentPath is the ordered sequence of positions the pathfinder most
	// recently produced for this player, starting at the player's current
	// tick position. The other player's pathfinder reads this as
	// authoritative for the current tick only.
	CurrentPath []geometry.Position

	// Frontier is the set of reachable-but-unexplored cells, recomputed
	// once per tick.
	Frontier map[geometry.Position]bool

	// CoopDoorTarget is the explicit hand-off slot between
	// PassThroughDoorWithPlate and its partner's WaitOnPlate.
	CoopDoorTarget *geometry.Position

	// HeldBoulderUnexplored records whether the boulder currently in
	// Inventory (if any) had never been moved when picked up; consulted by
	// DropBoulder's precondition and cleared once the boulder is placed.
	HeldBoulderUnexplored *bool

	// EmergencyReplan is set by oscillation detection, or by the executor
	// when an action fails or waits too long, and cleared once a replan
	// has run.
	EmergencyReplan bool
}

// NewPlayer returns an active, empty-inventory player at the origin.
func NewPlayer(index int) *PlayerState {
	return &PlayerState{
		Index:     index,
		IsActive:  true,
		Health:    5,
		Inventory: worldmap.InventoryNone,
		Frontier:  make(map[geometry.Position]bool),
	}
}

// Clone returns an independent deep copy, for the planner's simulated
// branches.
func (p *PlayerState) Clone() *PlayerState {
	out := *p
	if p.CurrentDestination != nil {
		dest := *p.CurrentDestination
		out.CurrentDestination = &dest
	}
	if p.CoopDoorTarget != nil {
		target := *p.CoopDoorTarget
		out.CoopDoorTarget = &target
	}
	if p.HeldBoulderUnexplored != nil {
		held := *p.HeldBoulderUnexplored
		out.HeldBoulderUnexplored = &held
	}
	out.CurrentPath = append([]geometry.Position(nil), p.CurrentPath...)
	out.Frontier = make(map[geometry.Position]bool, len(p.Frontier))
	for pos := range p.Frontier {
		out.Frontier[pos] = true
	}
	return &out
}

// FrontierPositions returns the frontier as a slice, for callers that need
// to sort or iterate deterministically.
func (p *PlayerState) FrontierPositions() []geometry.Position {
	out := make([]geometry.Position, 0, len(p.Frontier))
	for pos := range p.Frontier {
		out = append(out, pos)
	}
	return out
}
