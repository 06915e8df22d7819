package pathfind

import (
	"math/rand"

	"github.com/pflow-xyz/gridrunner/geometry"
)

// fallbackRadius and fallbackAttempts bound the random-target fallback
// used when the second player's collision-aware search comes up empty
// (spec.md §4.2).
const (
	fallbackRadius   = 20
	fallbackAttempts = 50
)

// otherAt returns the other player's planned position at tick i, clamped
// to the path's last element once i runs past the end (the other player
// is assumed stationary there).
func otherAt(path []geometry.Position, i int) geometry.Position {
	if i < 0 {
		i = 0
	}
	if i >= len(path) {
		i = len(path) - 1
	}
	return path[i]
}

// CollisionAware wraps base with the two-player collision rules from
// spec.md §4.2: reject a candidate that vertex-conflicts, swap-conflicts,
// or edge-conflicts with the other player's planned path.
func CollisionAware(base Walkable, otherPath []geometry.Position) Walkable {
	if len(otherPath) == 0 {
		return base
	}
	return func(pos, goal geometry.Position, tick int) bool {
		if !base(pos, goal, tick) {
			return false
		}
		if pos == otherAt(otherPath, tick) {
			return false // vertex conflict
		}
		if prev := otherAt(otherPath, tick-1); pos == prev && prev != otherAt(otherPath, tick) {
			return false // swap conflict: stepping into where the other just was as it moves away
		}
		if next := otherAt(otherPath, tick+1); pos == next && next != otherAt(otherPath, tick) {
			return false // edge conflict: about to collide with the other's next step
		}
		return true
	}
}

// CanStartCollisionAwareSearch reports whether planning may even begin:
// per spec.md §4.2, it must not if the start cell equals the other
// player's current position (same tick) or their tick-1 position (a swap
// at the very first step).
func CanStartCollisionAwareSearch(start geometry.Position, otherPath []geometry.Position) bool {
	if len(otherPath) == 0 {
		return true
	}
	if start == otherAt(otherPath, 0) {
		return false
	}
	if len(otherPath) > 1 && start == otherAt(otherPath, 1) {
		return false
	}
	return true
}

// FindPathCollisionAware runs FindPath with the other player's path
// excluded per CollisionAware, honoring CanStartCollisionAwareSearch.
func FindPathCollisionAware(start, goal geometry.Position, base Walkable, cost StepCost, otherPath []geometry.Position) ([]geometry.Position, error) {
	if !CanStartCollisionAwareSearch(start, otherPath) {
		return nil, ErrNoPath
	}
	return FindPath(start, goal, CollisionAware(base, otherPath), cost)
}

// RandomFallbackTarget tries up to fallbackAttempts random walkable cells
// within fallbackRadius of center, returning the first that is reachable
// per walkable. Used when the collision-aware search for the second
// player fails outright (spec.md §4.2).
func RandomFallbackTarget(rng *rand.Rand, center geometry.Position, walkable func(geometry.Position) bool) (geometry.Position, bool) {
	for i := 0; i < fallbackAttempts; i++ {
		dx := int32(rng.Intn(2*fallbackRadius+1) - fallbackRadius)
		dy := int32(rng.Intn(2*fallbackRadius+1) - fallbackRadius)
		candidate := geometry.New(center.X+dx, center.Y+dy)
		if walkable(candidate) {
			return candidate, true
		}
	}
	return geometry.Position{}, false
}
