package planner

import (
	"context"
	"testing"
	"time"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

func openRoom(w, h int32, numPlayers int) *worldmodel.Model {
	m := worldmodel.New(w, h, 3, numPlayers, nil)
	for x := int32(0); x < w; x++ {
		for y := int32(0); y < h; y++ {
			m.Map.Set(geometry.New(x, y), worldmap.Empty)
		}
	}
	for i, p := range m.Players {
		p.IsActive = true
		p.Position = geometry.New(int32(i), 0)
		p.Health = 5
	}
	return m
}

func TestPlanProducesNonEmptySequenceForActivePlayer(t *testing.T) {
	m := openRoom(15, 15, 1)
	exit := geometry.New(10, 0)
	m.ExitPosition = &exit

	plans := Plan(context.Background(), m, WithTimeout(200*time.Millisecond), WithMaxDepth(6))
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan slot, got %d", len(plans))
	}
	if len(plans[0].Sequence) == 0 {
		t.Fatal("expected a non-empty plan for the sole active player")
	}
}

func TestPlanRespectsMaxDepth(t *testing.T) {
	m := openRoom(21, 21, 1)
	plans := Plan(context.Background(), m, WithTimeout(200*time.Millisecond), WithMaxDepth(2))
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan slot, got %d", len(plans))
	}
	if len(plans[0].Sequence) > 2 {
		t.Fatalf("plan exceeded the configured depth cap of 2: %d actions", len(plans[0].Sequence))
	}
}

func TestPlanHonorsContextCancellation(t *testing.T) {
	m := openRoom(21, 21, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plans := Plan(ctx, m, WithTimeout(200*time.Millisecond))
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan slot (fallback), got %d", len(plans))
	}
}

func TestPlanSkipsInactivePlayers(t *testing.T) {
	m := openRoom(15, 15, 2)
	m.Players[1].IsActive = false

	plans := Plan(context.Background(), m, WithTimeout(200*time.Millisecond), WithMaxDepth(4))
	if len(plans) != 2 {
		t.Fatalf("expected 2 plan slots, got %d", len(plans))
	}
	if len(plans[1].Sequence) != 0 {
		t.Fatal("an inactive player should receive an empty plan")
	}
}

func TestFallbackPlansUseExploreWhenAdmissible(t *testing.T) {
	m := openRoom(21, 21, 1)
	active := m.ActivePlayers()
	plans := fallbackPlans(m, active, len(m.Players))
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan slot, got %d", len(plans))
	}
	if len(plans[0].Sequence) == 0 {
		t.Fatal("expected a fallback Explore action when active players exist and Explore is admissible")
	}
	if plans[0].Sequence[0].Name() != "Explore" {
		t.Fatalf("expected the fallback action to be Explore, got %s", plans[0].Sequence[0].Name())
	}
}
