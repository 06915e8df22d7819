package driver

import (
	"context"
	"testing"

	"github.com/pflow-xyz/gridrunner/action"
	"github.com/pflow-xyz/gridrunner/config"
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/observer"
	"github.com/pflow-xyz/gridrunner/transport"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// fakeGame is a tiny ground-truth server standing in for the real game,
// grounded on the teacher's seeded in-process dungeon used by its
// ai_test.go: it owns the true tile map and player position, applies the
// DirectedAction sent via Act to move the player, and answers Observe
// with a patch of Surroundings centered on the player's true position.
type fakeGame struct {
	tiles     map[geometry.Position]worldmap.Tile
	pos       geometry.Position
	inventory worldmap.Inventory
	visRadius int32
	tick      int
	exit      geometry.Position
	won       bool
}

func newFakeGame(exit geometry.Position, visRadius int32) *fakeGame {
	g := &fakeGame{
		tiles:     make(map[geometry.Position]worldmap.Tile),
		visRadius: visRadius,
		exit:      exit,
	}
	for x := int32(0); x < 21; x++ {
		for y := int32(0); y < 21; y++ {
			p := geometry.New(x, y)
			if x == 0 || y == 0 || x == 20 || y == 20 {
				g.tiles[p] = worldmap.Wall
			} else {
				g.tiles[p] = worldmap.Empty
			}
		}
	}
	g.tiles[exit] = worldmap.Exit
	return g
}

func (g *fakeGame) tileAt(p geometry.Position) worldmap.Tile {
	tile, ok := g.tiles[p]
	if !ok {
		return worldmap.Wall
	}
	return tile
}

func (g *fakeGame) tryMove(dx, dy int32) {
	np := geometry.New(g.pos.X+dx, g.pos.Y+dy)
	tile := g.tileAt(np)
	if tile == worldmap.Wall {
		return
	}
	if _, isDoor := worldmap.DoorColor(tile); isDoor {
		return
	}
	switch tile {
	case worldmap.KeyRed:
		g.inventory = worldmap.InventoryKeyRed
		g.tiles[np] = worldmap.Empty
	case worldmap.KeyGreen:
		g.inventory = worldmap.InventoryKeyGreen
		g.tiles[np] = worldmap.Empty
	case worldmap.KeyBlue:
		g.inventory = worldmap.InventoryKeyBlue
		g.tiles[np] = worldmap.Empty
	}
	g.pos = np
	if g.pos == g.exit {
		g.won = true
	}
}

func (g *fakeGame) tryUse(dx, dy int32) {
	np := geometry.New(g.pos.X+dx, g.pos.Y+dy)
	tile := g.tileAt(np)
	color, isDoor := worldmap.DoorColor(tile)
	if !isDoor {
		return
	}
	if keyColor, ok := worldmap.InventoryKeyColor(g.inventory); ok && keyColor == color {
		g.tiles[np] = worldmap.Empty
		g.inventory = worldmap.InventoryNone
	}
}

func (g *fakeGame) Act(ctx context.Context, a1 action.DirectedAction, a2 *action.DirectedAction) error {
	switch a1 {
	case action.MoveNorth:
		g.tryMove(0, -1)
	case action.MoveEast:
		g.tryMove(1, 0)
	case action.MoveSouth:
		g.tryMove(0, 1)
	case action.MoveWest:
		g.tryMove(-1, 0)
	case action.UseNorth:
		g.tryUse(0, -1)
	case action.UseEast:
		g.tryUse(1, 0)
	case action.UseSouth:
		g.tryUse(0, 1)
	case action.UseWest:
		g.tryUse(-1, 0)
	}
	return nil
}

func (g *fakeGame) Observe(ctx context.Context) (worldmodel.Observation, error) {
	g.tick++
	side := 2*g.visRadius + 1
	patch := make([]worldmap.Tile, 0, side*side)
	for dy := -g.visRadius; dy <= g.visRadius; dy++ {
		for dx := -g.visRadius; dx <= g.visRadius; dx++ {
			patch = append(patch, g.tileAt(geometry.New(g.pos.X+dx, g.pos.Y+dy)))
		}
	}
	health := 5
	inv := g.inventory
	hasSword := false
	status := ""
	if g.won {
		status = "success"
	}
	return worldmodel.Observation{
		Tick:   g.tick,
		Status: status,
		P1: &worldmodel.PlayerObservation{
			X: g.pos.X, Y: g.pos.Y,
			Health: &health, Inventory: &inv, HasSword: &hasSword,
			Surroundings: patch,
		},
	}, nil
}

func TestDriverS1SingleRoomExit(t *testing.T) {
	exit := geometry.New(19, 19)
	game := newFakeGame(exit, 3)
	game.pos = geometry.New(1, 1)

	cfg := config.Default()
	d := New(cfg, game)

	status, ticks, err := d.Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != observer.StatusSuccess {
		t.Fatalf("expected StatusSuccess, got %v after %d ticks", status, ticks)
	}
}

func TestDriverS2KeyAndDoor(t *testing.T) {
	exit := geometry.New(15, 1)
	game := newFakeGame(exit, 3)
	game.pos = geometry.New(1, 1)
	game.tiles[geometry.New(5, 1)] = worldmap.KeyRed
	game.tiles[geometry.New(10, 1)] = worldmap.DoorRed

	cfg := config.Default()
	d := New(cfg, game)

	status, ticks, err := d.Run(context.Background(), 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != observer.StatusSuccess {
		t.Fatalf("expected StatusSuccess, got %v after %d ticks", status, ticks)
	}
	if game.inventory != worldmap.InventoryNone {
		t.Fatalf("expected the key to have been spent opening the door, got inventory %v", game.inventory)
	}
}

func TestDriverStopsOnTransportExhausted(t *testing.T) {
	cfg := config.Default()
	tr := transport.NewScripted(nil)
	d := New(cfg, tr)

	status, ticks, err := d.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != observer.StatusInProgress {
		t.Fatalf("expected StatusInProgress on exhaustion, got %v", status)
	}
	if ticks != 0 {
		t.Fatalf("expected 0 ticks consumed before exhaustion, got %d", ticks)
	}
}

func TestDriverHonorsMaxTicks(t *testing.T) {
	exit := geometry.New(19, 19)
	game := newFakeGame(exit, 3)
	game.pos = geometry.New(1, 1)

	cfg := config.Default()
	d := New(cfg, game)

	status, ticks, err := d.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != observer.StatusInProgress {
		t.Fatalf("expected to still be in progress after only 3 ticks, got %v", status)
	}
	if ticks != 3 {
		t.Fatalf("expected exactly 3 ticks consumed, got %d", ticks)
	}
}

func TestDriverAllPlayersExitedCountsAsSuccess(t *testing.T) {
	cfg := config.Default()
	health := 5
	obs := []worldmodel.Observation{
		{Tick: 1, P1: &worldmodel.PlayerObservation{X: 1, Y: 1, Health: &health, Surroundings: make([]worldmap.Tile, 49)}},
		{Tick: 2, P1: &worldmodel.PlayerObservation{X: worldmodel.ExitedSentinel.X, Y: worldmodel.ExitedSentinel.Y}},
	}
	tr := transport.NewScripted(obs)
	d := New(cfg, tr)

	status, _, err := d.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != observer.StatusSuccess {
		t.Fatalf("expected StatusSuccess once all players have exited, got %v", status)
	}
}
