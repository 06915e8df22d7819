package evaluator

import (
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

func filledRoom(w, h int32) *worldmodel.Model {
	m := worldmodel.New(w, h, 3, 1, nil)
	for x := int32(0); x < w; x++ {
		for y := int32(0); y < h; y++ {
			m.Map.Set(geometry.New(x, y), worldmap.Empty)
		}
	}
	m.Players[0].IsActive = true
	m.Players[0].Position = geometry.New(0, 0)
	m.Players[0].Health = 5
	return m
}

func TestScoreHigherHealthScoresHigher(t *testing.T) {
	low := filledRoom(10, 10)
	low.Players[0].Health = 1

	high := filledRoom(10, 10)
	high.Players[0].Health = 5

	if Score(high, high) <= Score(low, low) {
		t.Fatalf("higher health should score higher: high=%f low=%f", Score(high, high), Score(low, low))
	}
}

func TestScoreCloserToExitScoresHigher(t *testing.T) {
	near := filledRoom(10, 10)
	exit := geometry.New(9, 0)
	near.ExitPosition = &exit
	near.Players[0].Position = geometry.New(8, 0)

	far := filledRoom(10, 10)
	far.ExitPosition = &exit
	far.Players[0].Position = geometry.New(0, 0)

	if Score(near, near) <= Score(far, far) {
		t.Fatalf("closer to exit should score higher: near=%f far=%f", Score(near, near), Score(far, far))
	}
}

func TestScorePenalizesEnemies(t *testing.T) {
	clear := filledRoom(10, 10)
	withEnemy := filledRoom(10, 10)
	withEnemy.Map.Set(geometry.New(5, 5), worldmap.Enemy)

	if Score(withEnemy, withEnemy) >= Score(clear, clear) {
		t.Fatalf("an enemy present should lower the score: withEnemy=%f clear=%f", Score(withEnemy, withEnemy), Score(clear, clear))
	}
}

func TestScoreRewardsHoldingAKey(t *testing.T) {
	noKey := filledRoom(10, 10)
	withKey := filledRoom(10, 10)
	withKey.Players[0].Inventory = worldmap.InventoryKeyRed

	if Score(withKey, withKey) <= Score(noKey, noKey) {
		t.Fatalf("holding a key should score higher: withKey=%f noKey=%f", Score(withKey, withKey), Score(noKey, noKey))
	}
}

func TestScoreRewardsOpenedDoorRelativeToInitial(t *testing.T) {
	initial := filledRoom(10, 10)
	door := geometry.New(4, 4)
	initial.Map.Set(door, worldmap.DoorRed)
	initial.Doors.Update(map[geometry.Color][]geometry.Position{geometry.Red: {door}}, initial.Map, nil, func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool {
		return tile == worldmap.DoorForColor(c)
	})

	opened := initial.Clone()
	opened.Map.Set(door, worldmap.Empty)
	opened.Doors.Update(nil, opened.Map, nil, func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool {
		return tile == worldmap.DoorForColor(c)
	})

	if Score(opened, initial) <= Score(initial, initial) {
		t.Fatalf("a newly opened door should score higher than the unopened baseline: opened=%f initial=%f", Score(opened, initial), Score(initial, initial))
	}
}

func TestScoreRewardsExploration(t *testing.T) {
	sparse := worldmodel.New(10, 10, 3, 1, nil)
	sparse.Players[0].IsActive = true
	sparse.Players[0].Position = geometry.New(0, 0)
	sparse.Players[0].Health = 5

	dense := filledRoom(10, 10)

	if Score(dense, dense) <= Score(sparse, sparse) {
		t.Fatalf("a fully explored map should score higher than a mostly-unknown one: dense=%f sparse=%f", Score(dense, dense), Score(sparse, sparse))
	}
}

func TestScoreIgnoresInactivePlayers(t *testing.T) {
	m := filledRoom(10, 10)
	m.Players[0].IsActive = false
	// With no active players, health/path terms drop out entirely; the
	// score should just be the exploration/enemy terms, not NaN/panic.
	_ = Score(m, m)
}
