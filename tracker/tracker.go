// Package tracker implements the persistent per-item-class belief sets
// described in spec.md §3/§4.1: uncolored and colored item trackers, and
// the boulder tracker with its has-moved flag.
package tracker

import (
	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmap"
)

// Validator decides, from the current map tile at a tracked position,
// whether that tracked entry still belongs to this tracker's class.
type Validator func(tile worldmap.Tile) bool

// Item is a single-class (uncolored) tracker, e.g. swords or health
// pickups.
type Item struct {
	positions []geometry.Position
}

// NewItem returns an empty Item tracker.
func NewItem() *Item { return &Item{} }

// Positions returns the currently tracked positions.
func (t *Item) Positions() []geometry.Position { return t.positions }

// IsEmpty reports whether the tracker holds no positions.
func (t *Item) IsEmpty() bool { return len(t.positions) == 0 }

// ClosestTo returns the tracked position nearest to ref, and whether one
// exists.
func (t *Item) ClosestTo(ref geometry.Position) (geometry.Position, bool) {
	return closest(t.positions, ref)
}

// Update merges newly seen positions, deduplicates, and drops any tracked
// position that lies within visibility and fails validate.
func (t *Item) Update(seen []geometry.Position, m *worldmap.Map, visible []geometry.Bounds, validate Validator) {
	t.positions = dedupe(append(t.positions, seen...))
	t.positions = retain(t.positions, m, visible, func(tile worldmap.Tile, _ geometry.Position) bool {
		return validate(tile)
	})
}

// Clone returns an independent deep copy.
func (t *Item) Clone() *Item {
	out := &Item{positions: make([]geometry.Position, len(t.positions))}
	copy(out.positions, t.positions)
	return out
}

func closest(positions []geometry.Position, ref geometry.Position) (geometry.Position, bool) {
	if len(positions) == 0 {
		return geometry.Position{}, false
	}
	best := positions[0]
	bestDist := ref.Distance(best)
	for _, p := range positions[1:] {
		if d := ref.Distance(p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

func dedupe(positions []geometry.Position) []geometry.Position {
	seen := make(map[geometry.Position]bool, len(positions))
	out := positions[:0:0]
	for _, p := range positions {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// retain keeps a position unless it is inside visibility and fails the
// per-position validate predicate; positions outside all visibility
// rectangles are always kept (items don't move while unobserved), and
// positions never yet recorded on the map are also kept.
func retain(positions []geometry.Position, m *worldmap.Map, visible []geometry.Bounds, validate func(worldmap.Tile, geometry.Position) bool) []geometry.Position {
	out := positions[:0:0]
	for _, p := range positions {
		if !geometry.AnyContains(visible, p) {
			out = append(out, p)
			continue
		}
		tile, ok := m.Get(p)
		if !ok || validate(tile, p) {
			out = append(out, p)
		}
	}
	return out
}

// Colored is a per-Color tracker, used for keys, doors, and pressure
// plates.
type Colored struct {
	positions map[geometry.Color][]geometry.Position
}

// NewColored returns an empty Colored tracker.
func NewColored() *Colored {
	return &Colored{positions: make(map[geometry.Color][]geometry.Position)}
}

// Positions returns the tracked positions for c.
func (t *Colored) Positions(c geometry.Color) []geometry.Position {
	return t.positions[c]
}

// HasColor reports whether c currently has any tracked positions.
func (t *Colored) HasColor(c geometry.Color) bool {
	return len(t.positions[c]) > 0
}

// ClosestTo returns the tracked position of color c nearest ref.
func (t *Colored) ClosestTo(c geometry.Color, ref geometry.Position) (geometry.Position, bool) {
	return closest(t.positions[c], ref)
}

// ColoredValidator decides whether a tracked (color, position) entry
// survives, given the tile now observed there. Pressure plates use a
// validator that also accepts a player or boulder standing on the plate.
type ColoredValidator func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool

// Update merges newly seen per-color positions and prunes per the
// validator, exactly as Item.Update does but keyed by color.
func (t *Colored) Update(seen map[geometry.Color][]geometry.Position, m *worldmap.Map, visible []geometry.Bounds, validate ColoredValidator) {
	for c, positions := range seen {
		t.positions[c] = append(t.positions[c], positions...)
	}
	for _, c := range geometry.Colors {
		t.positions[c] = dedupe(t.positions[c])
		t.positions[c] = retain(t.positions[c], m, visible, func(tile worldmap.Tile, pos geometry.Position) bool {
			return validate(tile, pos, c)
		})
	}
}

// Clone returns an independent deep copy.
func (t *Colored) Clone() *Colored {
	out := &Colored{positions: make(map[geometry.Color][]geometry.Position, len(t.positions))}
	for c, positions := range t.positions {
		cp := make([]geometry.Position, len(positions))
		copy(cp, positions)
		out.positions[c] = cp
	}
	return out
}

// Boulder tracks boulder positions plus whether we have personally moved
// each one (dropped it ourselves, rather than it being part of the
// original level layout).
type Boulder struct {
	hasMoved map[geometry.Position]bool
}

// NewBoulder returns an empty Boulder tracker.
func NewBoulder() *Boulder {
	return &Boulder{hasMoved: make(map[geometry.Position]bool)}
}

// Contains reports whether pos is a currently tracked boulder.
func (t *Boulder) Contains(pos geometry.Position) bool {
	_, ok := t.hasMoved[pos]
	return ok
}

// HasMoved reports whether the boulder at pos was moved by us. False for
// positions not currently tracked.
func (t *Boulder) HasMoved(pos geometry.Position) bool {
	return t.hasMoved[pos]
}

// Positions returns all currently tracked boulder positions.
func (t *Boulder) Positions() []geometry.Position {
	out := make([]geometry.Position, 0, len(t.hasMoved))
	for p := range t.hasMoved {
		out = append(out, p)
	}
	return out
}

// Len returns the number of tracked boulders.
func (t *Boulder) Len() int { return len(t.hasMoved) }

// Add registers a boulder at pos, overwriting any existing entry.
func (t *Boulder) Add(pos geometry.Position, hasMoved bool) {
	t.hasMoved[pos] = hasMoved
}

// Remove drops the tracked boulder at pos.
func (t *Boulder) Remove(pos geometry.Position) {
	delete(t.hasMoved, pos)
}

// Clone returns an independent deep copy.
func (t *Boulder) Clone() *Boulder {
	out := &Boulder{hasMoved: make(map[geometry.Position]bool, len(t.hasMoved))}
	for pos, moved := range t.hasMoved {
		out.hasMoved[pos] = moved
	}
	return out
}

// AdjacencyCheck reports whether a newly seen boulder at pos counts as one
// we just dropped there ourselves; the world model's check is adjacency to
// an active player.
type AdjacencyCheck func(pos geometry.Position) bool

// Update merges newly seen boulder positions (classifying each as moved or
// not via isAdjacent) and drops any tracked boulder whose tile resolved to
// something other than Boulder.
func (t *Boulder) Update(seen []geometry.Position, m *worldmap.Map, isAdjacent AdjacencyCheck) {
	for _, pos := range seen {
		if t.Contains(pos) {
			continue
		}
		t.Add(pos, isAdjacent(pos))
	}
	for _, pos := range t.Positions() {
		tile, ok := m.Get(pos)
		if ok && tile != worldmap.Boulder {
			t.Remove(pos)
		}
	}
}
