package pathfind

import (
	"math/rand"
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
)

func TestCollisionAwareRejectsVertexConflict(t *testing.T) {
	other := []geometry.Position{geometry.New(5, 5), geometry.New(5, 5), geometry.New(5, 5)}
	w := CollisionAware(alwaysWalkable, other)
	if w(geometry.New(5, 5), geometry.New(9, 9), 1) {
		t.Fatal("expected vertex conflict to be rejected")
	}
	if !w(geometry.New(6, 5), geometry.New(9, 9), 1) {
		t.Fatal("non-conflicting cell should remain walkable")
	}
}

func TestCollisionAwareRejectsSwapConflict(t *testing.T) {
	// other moves 5,5 -> 6,5 between tick0 and tick1; walking into (5,5) at
	// tick1 would swap places with the other player.
	other := []geometry.Position{geometry.New(5, 5), geometry.New(6, 5)}
	w := CollisionAware(alwaysWalkable, other)
	if w(geometry.New(5, 5), geometry.New(9, 9), 1) {
		t.Fatal("expected swap conflict to be rejected")
	}
}

func TestCollisionAwareRejectsEdgeConflict(t *testing.T) {
	// other is at 6,5 at tick1 and will move to 5,5 at tick2; walking into
	// (5,5) at tick1 collides with the other's next step.
	other := []geometry.Position{geometry.New(7, 5), geometry.New(6, 5), geometry.New(5, 5)}
	w := CollisionAware(alwaysWalkable, other)
	if w(geometry.New(5, 5), geometry.New(9, 9), 1) {
		t.Fatal("expected edge conflict to be rejected")
	}
}

func TestCollisionAwareEmptyOtherPathIsNoOp(t *testing.T) {
	w := CollisionAware(alwaysWalkable, nil)
	if !w(geometry.New(0, 0), geometry.New(1, 1), 0) {
		t.Fatal("empty other path should not restrict walkability")
	}
}

func TestCanStartCollisionAwareSearch(t *testing.T) {
	other := []geometry.Position{geometry.New(5, 5), geometry.New(6, 5)}
	if CanStartCollisionAwareSearch(geometry.New(5, 5), other) {
		t.Error("starting on the other's current position should be rejected")
	}
	if CanStartCollisionAwareSearch(geometry.New(6, 5), other) {
		t.Error("starting on the other's tick-1 position should be rejected (first-step swap)")
	}
	if !CanStartCollisionAwareSearch(geometry.New(0, 0), other) {
		t.Error("a clear start should be allowed")
	}
	if !CanStartCollisionAwareSearch(geometry.New(0, 0), nil) {
		t.Error("empty other path should always allow starting")
	}
}

func TestFindPathCollisionAwareRespectsStartRejection(t *testing.T) {
	other := []geometry.Position{geometry.New(0, 0)}
	_, err := FindPathCollisionAware(geometry.New(0, 0), geometry.New(5, 5), alwaysWalkable, DefaultStepCost, other)
	if err != ErrNoPath {
		t.Fatalf("expected ErrNoPath for rejected start, got %v", err)
	}
}

func TestFindPathCollisionAwareFindsPathAroundOther(t *testing.T) {
	other := []geometry.Position{geometry.New(2, 0), geometry.New(2, 0), geometry.New(2, 0), geometry.New(2, 0), geometry.New(2, 0)}
	path, err := FindPathCollisionAware(geometry.New(0, 0), geometry.New(4, 0), alwaysWalkable, DefaultStepCost, other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range path {
		if p == otherAt(other, i) {
			t.Fatalf("path step %d collides with the other player's position: %v", i, path)
		}
	}
}

func TestRandomFallbackTargetFindsWalkableCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	center := geometry.New(0, 0)
	// Half the plane (x >= 0) is walkable, so 50 attempts reliably finds one.
	walkable := func(p geometry.Position) bool { return p.X >= 0 }

	got, ok := RandomFallbackTarget(rng, center, walkable)
	if !ok {
		t.Fatal("expected a walkable cell to be found")
	}
	if got.X < 0 {
		t.Fatalf("returned non-walkable cell %v", got)
	}
}

func TestRandomFallbackTargetReturnsFalseWhenNoneWalkable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, ok := RandomFallbackTarget(rng, geometry.New(0, 0), func(geometry.Position) bool { return false })
	if ok {
		t.Fatal("expected no walkable cell to be found")
	}
}
