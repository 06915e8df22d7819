package worldmodel

import (
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
)

// openRoomSurroundings builds a (2R+1)^2 row-major patch that is Empty
// everywhere except the border (Wall), matching an R=3 visibility radius.
func openRoomSurroundings(r int32) []worldmap.Tile {
	side := 2*r + 1
	out := make([]worldmap.Tile, 0, side*side)
	for y := int32(0); y < side; y++ {
		for x := int32(0); x < side; x++ {
			if x == 0 || y == 0 || x == side-1 || y == side-1 {
				out = append(out, worldmap.Wall)
			} else {
				out = append(out, worldmap.Empty)
			}
		}
	}
	return out
}

func TestUpdateSetsPositionHealthAndMap(t *testing.T) {
	m := New(21, 21, 3, 1, nil)
	health := 5
	obs := Observation{
		Level: 1,
		Tick:  1,
		P1: &PlayerObservation{
			X: 10, Y: 10, Health: &health,
			Surroundings: openRoomSurroundings(3),
		},
	}
	m.Update(obs)

	p := m.Players[0]
	if p.Position != geometry.New(10, 10) {
		t.Fatalf("position = %v, want (10,10)", p.Position)
	}
	if p.Health != 5 {
		t.Fatalf("health = %d, want 5", p.Health)
	}
	if tile, ok := m.Map.Get(geometry.New(10, 10)); !ok || tile != worldmap.Empty {
		t.Fatalf("player's own cell should be Empty, got %v,%v", tile, ok)
	}
	if tile, ok := m.Map.Get(geometry.New(7, 7)); !ok || tile != worldmap.Wall {
		t.Fatalf("corner of the patch should be Wall, got %v,%v", tile, ok)
	}
}

func TestUpdateMissingHealthDefaultsToFive(t *testing.T) {
	m := New(21, 21, 3, 1, nil)
	obs := Observation{
		Tick: 1,
		P1:   &PlayerObservation{X: 5, Y: 5, Surroundings: openRoomSurroundings(3)},
	}
	m.Update(obs)
	if m.Players[0].Health != 5 {
		t.Fatalf("expected default health 5, got %d", m.Players[0].Health)
	}
}

func TestUpdateExitedSentinelDeactivatesPlayer(t *testing.T) {
	m := New(21, 21, 3, 1, nil)
	health := 5
	m.Update(Observation{Tick: 1, P1: &PlayerObservation{X: 5, Y: 5, Health: &health, Surroundings: openRoomSurroundings(3)}})
	if !m.Players[0].IsActive {
		t.Fatal("player should be active after a normal observation")
	}

	m.Update(Observation{Tick: 2, P1: &PlayerObservation{X: ExitedSentinel.X, Y: ExitedSentinel.Y}})
	if m.Players[0].IsActive {
		t.Fatal("player should become inactive on the exited sentinel")
	}
}

func TestIsDoorOpenViaPlayerOnPlate(t *testing.T) {
	m := New(21, 21, 3, 1, nil)
	plate := geometry.New(5, 5)
	m.Plates.Update(map[geometry.Color][]geometry.Position{geometry.Red: {plate}}, m.Map, nil, func(worldmap.Tile, geometry.Position, geometry.Color) bool { return true })

	if m.IsDoorOpen(geometry.Red) {
		t.Fatal("door should not be open before anyone is on the plate")
	}
	m.Players[0].IsActive = true
	m.Players[0].Position = plate
	if !m.IsDoorOpen(geometry.Red) {
		t.Fatal("door should be open once a player stands on the plate")
	}
}

func TestIsDoorOpenViaBoulderOnPlate(t *testing.T) {
	m := New(21, 21, 3, 1, nil)
	plate := geometry.New(5, 5)
	m.Plates.Update(map[geometry.Color][]geometry.Position{geometry.Blue: {plate}}, m.Map, nil, func(worldmap.Tile, geometry.Position, geometry.Color) bool { return true })
	m.Boulder.Add(plate, true)

	if !m.IsDoorOpen(geometry.Blue) {
		t.Fatal("door should be open once a boulder occupies the plate")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(21, 21, 3, 2, nil)
	health := 5
	m.Update(Observation{Tick: 1, P1: &PlayerObservation{X: 5, Y: 5, Health: &health, Surroundings: openRoomSurroundings(3)}})

	clone := m.Clone()
	clone.Players[0].Position = geometry.New(0, 0)
	clone.Map.Set(geometry.New(5, 5), worldmap.Wall)
	clone.PotentialEnemies[geometry.New(1, 1)] = true

	if m.Players[0].Position != geometry.New(5, 5) {
		t.Fatal("mutating clone's player leaked back into original")
	}
	if tile, _ := m.Map.Get(geometry.New(5, 5)); tile != worldmap.Empty {
		t.Fatal("mutating clone's map leaked back into original")
	}
	if _, ok := m.PotentialEnemies[geometry.New(1, 1)]; ok {
		t.Fatal("mutating clone's potential-enemy set leaked back into original")
	}
}

func TestActivePlayers(t *testing.T) {
	m := New(21, 21, 3, 2, nil)
	m.Players[0].IsActive = true
	m.Players[1].IsActive = false
	if got := m.ActivePlayers(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("ActivePlayers() = %v, want [0]", got)
	}
}

func TestIdempotentUpdate(t *testing.T) {
	m1 := New(21, 21, 3, 1, nil)
	m2 := New(21, 21, 3, 1, nil)
	health := 5
	obs := Observation{Tick: 1, P1: &PlayerObservation{X: 5, Y: 5, Health: &health, Surroundings: openRoomSurroundings(3)}}

	m1.Update(obs)
	m1.Update(obs)
	m2.Update(obs)

	if m1.Players[0].Position != m2.Players[0].Position {
		t.Fatal("repeated identical updates should leave player position unchanged")
	}
	var diffCount int
	m1.Map.Each(func(pos geometry.Position, tile worldmap.Tile) {
		other, ok := m2.Map.Get(pos)
		if !ok || other != tile {
			diffCount++
		}
	})
	if diffCount != 0 {
		t.Fatalf("idempotence violated: %d differing map cells", diffCount)
	}
}
