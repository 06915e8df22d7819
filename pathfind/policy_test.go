package pathfind

import (
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

func TestDefaultWalkableBlocksWallsAndUnknown(t *testing.T) {
	m := worldmodel.New(10, 10, 3, 1, nil)
	wall := geometry.New(2, 2)
	empty := geometry.New(3, 3)
	m.Map.Set(wall, worldmap.Wall)
	m.Map.Set(empty, worldmap.Empty)

	w := DefaultWalkable(m)
	goal := geometry.New(9, 9)
	if w(wall, goal, 1) {
		t.Error("wall should never be walkable")
	}
	if !w(empty, goal, 1) {
		t.Error("empty tile should be walkable")
	}
	unknown := geometry.New(4, 4)
	if w(unknown, goal, 1) {
		t.Error("unobserved tile should not be walkable unless it is the goal")
	}
	if !w(unknown, unknown, 1) {
		t.Error("the goal itself should always be walkable regardless of tile type")
	}
}

func TestDefaultWalkableDoorRequiresPlatePressed(t *testing.T) {
	m := worldmodel.New(10, 10, 3, 1, nil)
	door := geometry.New(5, 5)
	m.Map.Set(door, worldmap.DoorRed)

	w := DefaultWalkable(m)
	goal := geometry.New(9, 9)
	if w(door, goal, 1) {
		t.Error("closed door should not be walkable")
	}

	plate := geometry.New(6, 6)
	m.Plates.Update(map[geometry.Color][]geometry.Position{geometry.Red: {plate}}, m.Map, nil, func(worldmap.Tile, geometry.Position, geometry.Color) bool { return true })
	m.Players[0].IsActive = true
	m.Players[0].Position = plate

	if !w(door, goal, 1) {
		t.Error("door should become walkable once its plate is pressed")
	}
}

func TestDefaultCostPenalizesEnemyAdjacency(t *testing.T) {
	m := worldmodel.New(10, 10, 3, 1, nil)
	enemy := geometry.New(5, 5)
	m.Map.Set(enemy, worldmap.Enemy)
	nearby := geometry.New(5, 6)
	faraway := geometry.New(0, 0)

	cost := DefaultCost(m)
	if got := cost(nearby, geometry.New(9, 9), 0); got <= 1 {
		t.Errorf("expected an enemy-adjacency penalty, got cost %d", got)
	}
	if got := cost(faraway, geometry.New(9, 9), 0); got != 1 {
		t.Errorf("expected flat cost 1 away from any enemy, got %d", got)
	}
}
