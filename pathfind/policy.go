package pathfind

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// DefaultWalkable implements spec.md §4.2's default walkability: Empty,
// any player position, any plate, and Treasure are passable; colored
// doors are passable iff their plate is currently pressed, or the door is
// the explicit goal (so the goal can be reached and stood next to); keys,
// swords, health, enemies, Unknown, and the exit are passable only if
// they are themselves the goal; walls never.
func DefaultWalkable(m *worldmodel.Model) Walkable {
	return func(pos, goal geometry.Position, tick int) bool {
		if pos == goal {
			return true
		}
		tile, known := m.Map.Get(pos)
		if !known {
			return false // Unknown is only passable as the goal itself
		}
		switch tile {
		case worldmap.Wall:
			return false
		case worldmap.Empty, worldmap.Player, worldmap.Treasure,
			worldmap.PressurePlateRed, worldmap.PressurePlateGreen, worldmap.PressurePlateBlue:
			return true
		case worldmap.KeyRed, worldmap.KeyGreen, worldmap.KeyBlue,
			worldmap.Sword, worldmap.Health, worldmap.Enemy, worldmap.Unknown, worldmap.Exit:
			return false
		}
		if c, isDoor := worldmap.DoorColor(tile); isDoor {
			return m.IsDoorOpen(c)
		}
		return false
	}
}

// DefaultCost charges 1 per step plus a penalty for entering a cell
// adjacent to a known (currently visible) enemy, encouraging wide arcs
// around danger per spec.md §4.2's movement-cost note.
const enemyAdjacencyPenalty = 3

func DefaultCost(m *worldmodel.Model) StepCost {
	return func(pos, goal geometry.Position, tick int) int {
		cost := 1
		for _, n := range pos.Neighbors() {
			if tile, ok := m.Map.Get(n); ok && tile == worldmap.Enemy {
				cost += enemyAdjacencyPenalty
				break
			}
		}
		return cost
	}
}
