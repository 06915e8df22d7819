package pathfind

import (
	"errors"
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
)

func alwaysWalkable(geometry.Position, geometry.Position, int) bool { return true }

func boxWalkable(minX, minY, maxX, maxY int32) Walkable {
	return func(pos, goal geometry.Position, tick int) bool {
		return pos.X >= minX && pos.X <= maxX && pos.Y >= minY && pos.Y <= maxY
	}
}

func TestFindPathSameStartGoal(t *testing.T) {
	p := geometry.New(3, 3)
	path, err := FindPath(p, p, alwaysWalkable, DefaultStepCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 || path[0] != p {
		t.Fatalf("path = %v, want [%v]", path, p)
	}
}

func TestFindPathStraightLine(t *testing.T) {
	start, goal := geometry.New(0, 0), geometry.New(4, 0)
	path, err := FindPath(start, goal, alwaysWalkable, DefaultStepCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 5 {
		t.Fatalf("expected a 5-cell path (4 steps), got %d: %v", len(path), path)
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Fatalf("path endpoints wrong: %v", path)
	}
}

func TestFindPathNoPath(t *testing.T) {
	start, goal := geometry.New(0, 0), geometry.New(100, 100)
	never := func(geometry.Position, geometry.Position, int) bool { return false }
	_, err := FindPath(start, goal, never, DefaultStepCost)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestFindPathGoesAroundWall(t *testing.T) {
	start, goal := geometry.New(0, 0), geometry.New(2, 0)
	wall := func(pos, g geometry.Position, tick int) bool {
		return pos != geometry.New(1, 0)
	}
	path, err := FindPath(start, goal, wall, DefaultStepCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range path {
		if p == geometry.New(1, 0) {
			t.Fatalf("path should not pass through the wall: %v", path)
		}
	}
	if path[len(path)-1] != goal {
		t.Fatalf("path should still reach the goal: %v", path)
	}
}

func TestFindPathExpansionCapExceeded(t *testing.T) {
	start, goal := geometry.New(0, 0), geometry.New(10000, 10000)
	path, err := FindPath(start, goal, boxWalkable(-50, -50, 50, 50), DefaultStepCost)
	if path != nil {
		t.Fatalf("expected nil path, got %v", path)
	}
	if !errors.Is(err, ErrExpansionCapExceeded) && !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrExpansionCapExceeded or ErrNoPath, got %v", err)
	}
}
