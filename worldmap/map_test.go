package worldmap

import (
	"testing"

	"github.com/pflow-xyz/gridrunner/geometry"
)

func TestMergeNeverReplacesWallOrEmptyWithUnknown(t *testing.T) {
	m := New(10, 10)
	pos := geometry.New(2, 2)

	m.Set(pos, Wall)
	m.Merge(pos, Unknown)
	if got, _ := m.Get(pos); got != Wall {
		t.Fatalf("Wall was overwritten by Unknown, got %v", got)
	}

	m.Set(pos, Empty)
	m.Merge(pos, Unknown)
	if got, _ := m.Get(pos); got != Empty {
		t.Fatalf("Empty was overwritten by Unknown, got %v", got)
	}
}

func TestMergeConcreteNonPlayerNeverReplacedByUnknown(t *testing.T) {
	m := New(10, 10)
	pos := geometry.New(2, 2)
	m.Set(pos, Sword)
	m.Merge(pos, Unknown)
	if got, _ := m.Get(pos); got != Sword {
		t.Fatalf("Sword was overwritten by Unknown, got %v", got)
	}
}

func TestMergeEnemyVacatedByUnknownBecomesEmpty(t *testing.T) {
	m := New(10, 10)
	pos := geometry.New(2, 2)
	m.Set(pos, Enemy)
	becameEmpty := m.Merge(pos, Unknown)
	if !becameEmpty {
		t.Fatal("expected becameEmptyEnemy=true")
	}
	if got, _ := m.Get(pos); got != Empty {
		t.Fatalf("enemy position should become Empty, got %v", got)
	}
}

func TestMergeConcreteOverwritesAlwaysAccepted(t *testing.T) {
	m := New(10, 10)
	pos := geometry.New(2, 2)
	m.Set(pos, Empty)
	m.Merge(pos, KeyRed)
	if got, _ := m.Get(pos); got != KeyRed {
		t.Fatalf("concrete overwrite should be accepted, got %v", got)
	}
}

func TestPruneUnknownOutsideDropsUnknownAndVacatesEnemies(t *testing.T) {
	m := New(20, 20)
	inside := geometry.New(5, 5)
	outsideUnknown := geometry.New(15, 15)
	outsideEnemy := geometry.New(16, 16)

	m.Set(inside, Empty)
	m.Set(outsideUnknown, Unknown)
	m.Set(outsideEnemy, Enemy)

	visible := []geometry.Bounds{geometry.FromCenterAndRange(inside, 2)}
	vacated := m.PruneUnknownOutside(visible)

	if _, ok := m.Get(outsideUnknown); ok {
		t.Error("Unknown outside visibility should be pruned")
	}
	if got, _ := m.Get(outsideEnemy); got != Empty {
		t.Errorf("Enemy outside visibility should become Empty, got %v", got)
	}
	if len(vacated) != 1 || vacated[0] != outsideEnemy {
		t.Errorf("expected vacated=[%v], got %v", outsideEnemy, vacated)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(10, 10)
	pos := geometry.New(1, 1)
	m.Set(pos, Wall)

	clone := m.Clone()
	clone.Set(pos, Empty)

	if got, _ := m.Get(pos); got != Wall {
		t.Fatalf("mutating clone leaked back into original: got %v", got)
	}
	if got, _ := clone.Get(pos); got != Empty {
		t.Fatalf("clone mutation did not apply, got %v", got)
	}
}

func TestInBounds(t *testing.T) {
	m := New(5, 5)
	if !m.InBounds(geometry.New(0, 0)) || !m.InBounds(geometry.New(4, 4)) {
		t.Error("corners should be in bounds")
	}
	if m.InBounds(geometry.New(5, 0)) || m.InBounds(geometry.New(-1, 0)) {
		t.Error("out-of-range positions should not be in bounds")
	}
	m.Set(geometry.New(5, 0), Wall)
	if _, ok := m.Get(geometry.New(5, 0)); ok {
		t.Error("Set should silently ignore out-of-bounds positions")
	}
}

func TestDoorKeyPlateColorRoundTrip(t *testing.T) {
	for _, c := range geometry.Colors {
		door := DoorForColor(c)
		got, ok := DoorColor(door)
		if !ok || got != c {
			t.Errorf("DoorColor(DoorForColor(%v)) = %v,%v", c, got, ok)
		}

		plate := PlateForColor(c)
		gotP, ok := PlateColor(plate)
		if !ok || gotP != c {
			t.Errorf("PlateColor(PlateForColor(%v)) = %v,%v", c, gotP, ok)
		}

		inv := KeyInventoryForColor(c)
		gotC, ok := InventoryKeyColor(inv)
		if !ok || gotC != c {
			t.Errorf("InventoryKeyColor(KeyInventoryForColor(%v)) = %v,%v", c, gotC, ok)
		}
	}
}
