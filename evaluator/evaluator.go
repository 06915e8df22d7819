// Package evaluator implements the scalar state-evaluation formula of
// spec.md §4.5, used by the planner to rank candidate plans.
package evaluator

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/pathfind"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// Coefficients are part of the contract: they fix the order of plans tied
// in duration, so changing them changes observable planner behavior.
const (
	pathToExitWeight  = -0.1
	healthWeight      = 2.0
	enemyCountWeight  = -1.0
	keyOrDoorBonus    = 3.0
	explorationWeight = 10.0
)

// Score returns the state evaluator's scalar for sim relative to initial,
// per spec.md §4.5.
func Score(sim, initial *worldmodel.Model) float64 {
	var total float64

	for _, p := range sim.Players {
		if !p.IsActive {
			continue
		}
		if sim.ExitPosition != nil {
			if path, err := pathfind.FindPath(p.Position, *sim.ExitPosition, pathfind.DefaultWalkable(sim), pathfind.DefaultCost(sim)); err == nil {
				total += pathToExitWeight * float64(len(path)-1)
			}
		}
		total += healthWeight * float64(p.Health)
	}

	total += enemyCountWeight * float64(countEnemies(sim))

	for _, p := range sim.Players {
		if !p.IsActive {
			continue
		}
		for _, c := range geometry.Colors {
			if keyColor, ok := worldmap.InventoryKeyColor(p.Inventory); ok && keyColor == c {
				total += keyOrDoorBonus
			} else if doorOpenedSince(sim, initial, c) {
				total += keyOrDoorBonus
			}
		}
	}

	if totalTiles := int(sim.Map.Width) * int(sim.Map.Height); totalTiles > 0 {
		total += explorationWeight * float64(exploredTileCount(sim)) / float64(totalTiles)
	}

	return total
}

func countEnemies(m *worldmodel.Model) int {
	count := 0
	m.Map.Each(func(_ geometry.Position, t worldmap.Tile) {
		if t == worldmap.Enemy {
			count++
		}
	})
	for range m.PotentialEnemies {
		count++
	}
	return count
}

// doorOpenedSince reports whether a color c door tracked in initial is no
// longer a door tile on sim's map (opened).
func doorOpenedSince(sim, initial *worldmodel.Model, c geometry.Color) bool {
	for _, pos := range initial.Doors.Positions(c) {
		if tile, ok := sim.Map.Get(pos); ok && tile != worldmap.DoorForColor(c) {
			return true
		}
	}
	return false
}

func exploredTileCount(m *worldmodel.Model) int {
	count := 0
	m.Map.Each(func(_ geometry.Position, t worldmap.Tile) {
		if t != worldmap.Unknown {
			count++
		}
	})
	return count
}
