package worldmodel

import "github.com/pflow-xyz/gridrunner/worldmap"

// ExitedSentinel is the server's convention for "this player has reached
// the exit and left the game".
var ExitedSentinel = struct{ X, Y int32 }{-1, -1}

// PlayerObservation is the per-player block of a tick's observation, per
// spec.md §6. Pointer fields are optional, matching a field that the
// server may omit.
type PlayerObservation struct {
	X, Y         int32
	Health       *int
	Inventory    *worldmap.Inventory
	HasSword     *bool
	Surroundings []worldmap.Tile // side 2R+1 square, row-major, centered on the player
}

// Observation is a single tick's input, per spec.md §6.
type Observation struct {
	Level  int
	Tick   int
	Status string
	P1     *PlayerObservation
	P2     *PlayerObservation
}
