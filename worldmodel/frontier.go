package worldmodel

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
)

// computeFrontier floods outward from p's position using the optimistic
// walkability rule in spec.md §4.1, then returns the boundary cells: every
// visited Unknown-or-unobserved cell adjacent to a visited concrete
// (explored) cell.
func (m *Model) computeFrontier(p *PlayerState) map[geometry.Position]bool {
	visited := map[geometry.Position]bool{p.Position: true}
	queue := []geometry.Position{p.Position}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if visited[n] || !m.Map.InBounds(n) {
				continue
			}
			if !m.frontierWalkable(n, p) {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	frontier := make(map[geometry.Position]bool)
	for pos := range visited {
		if m.isConcrete(pos) {
			continue
		}
		for _, n := range pos.Neighbors() {
			if visited[n] && m.isConcrete(n) {
				frontier[pos] = true
				break
			}
		}
	}
	return frontier
}

// isConcrete reports whether pos has been observed to a non-Unknown tile.
func (m *Model) isConcrete(pos geometry.Position) bool {
	tile, ok := m.Map.Get(pos)
	return ok && tile != worldmap.Unknown
}

// frontierWalkable is the optimistic walkability predicate used only for
// frontier computation: walls, boulders, enemies, and the exit block;
// colored doors are passable if the player holds the matching key or the
// door is currently open; everything else (including unknown/unobserved
// cells) is passable.
func (m *Model) frontierWalkable(pos geometry.Position, p *PlayerState) bool {
	tile, ok := m.Map.Get(pos)
	if !ok {
		return true
	}
	switch tile {
	case worldmap.Wall, worldmap.Boulder, worldmap.Enemy, worldmap.Exit:
		return false
	}
	if c, isDoor := worldmap.DoorColor(tile); isDoor {
		if m.IsDoorOpen(c) {
			return true
		}
		keyColor, hasKey := worldmap.InventoryKeyColor(p.Inventory)
		return hasKey && keyColor == c
	}
	return true
}
