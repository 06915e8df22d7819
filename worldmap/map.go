package worldmap

import "github.com/pflow-xyz/gridrunner/geometry"

// Map is a sparse position -> tile belief. Positions outside [0,Width)x
// [0,Height) are never inserted. Unknown entries are ephemeral: they only
// exist while inside some player's visibility rectangle.
type Map struct {
	Width, Height int32
	tiles         map[geometry.Position]Tile
}

// New creates an empty Map with the given bounds.
func New(width, height int32) *Map {
	return &Map{Width: width, Height: height, tiles: make(map[geometry.Position]Tile)}
}

// InBounds reports whether pos lies within the map's declared dimensions.
func (m *Map) InBounds(pos geometry.Position) bool {
	return pos.X >= 0 && pos.X < m.Width && pos.Y >= 0 && pos.Y < m.Height
}

// Get returns the tile at pos and whether it has ever been recorded.
func (m *Map) Get(pos geometry.Position) (Tile, bool) {
	t, ok := m.tiles[pos]
	return t, ok
}

// GetOr returns the tile at pos, or fallback if never recorded.
func (m *Map) GetOr(pos geometry.Position, fallback Tile) Tile {
	if t, ok := m.tiles[pos]; ok {
		return t
	}
	return fallback
}

// Set records tile at pos, provided pos is within the map's bounds.
func (m *Map) Set(pos geometry.Position, t Tile) {
	if !m.InBounds(pos) {
		return
	}
	m.tiles[pos] = t
}

// Delete removes any recorded tile at pos.
func (m *Map) Delete(pos geometry.Position) {
	delete(m.tiles, pos)
}

// Len returns the number of recorded (observed) positions, including
// Unknown ones.
func (m *Map) Len() int {
	return len(m.tiles)
}

// Each calls fn once per recorded (position, tile) pair. Iteration order is
// unspecified; callers needing determinism must sort the result.
func (m *Map) Each(fn func(pos geometry.Position, t Tile)) {
	for pos, t := range m.tiles {
		fn(pos, t)
	}
}

// Merge applies the overwrite rules from the spec against an incoming
// observed tile at pos:
//   - never replace Wall or Empty with Unknown
//   - never replace a concrete non-player tile with Unknown
//   - concrete overwrites are always accepted
//   - Unknown overwriting a previously-tracked Enemy becomes Empty, and the
//     caller is told to register the position as a potential enemy location
//     (via the becameEmptyEnemy return value)
func (m *Map) Merge(pos geometry.Position, incoming Tile) (becameEmptyEnemy bool) {
	existing, had := m.tiles[pos]

	if incoming == Unknown {
		if !had {
			m.tiles[pos] = Unknown
			return false
		}
		switch existing {
		case Wall, Empty:
			return false // never overwritten by Unknown
		case Enemy:
			m.tiles[pos] = Empty
			return true
		case Player, Unknown:
			m.tiles[pos] = Unknown
			return false
		default:
			// concrete non-player tile: never replaced by Unknown
			return false
		}
	}

	m.tiles[pos] = incoming
	return false
}

// Clone returns an independent deep copy, for the planner's simulated
// branches (spec.md §5: "simulated copies ... are fully independent
// clones that never leak back").
func (m *Map) Clone() *Map {
	out := &Map{Width: m.Width, Height: m.Height, tiles: make(map[geometry.Position]Tile, len(m.tiles))}
	for pos, t := range m.tiles {
		out.tiles[pos] = t
	}
	return out
}

// PruneUnknownOutside removes every Unknown entry not contained in any of
// the given visibility rectangles (called once per tick by the world
// model). It returns the positions of any Enemy entries that fell outside
// visibility, converted to Empty, so the caller can register them as
// potential enemy locations.
func (m *Map) PruneUnknownOutside(visible []geometry.Bounds) []geometry.Position {
	var vacatedEnemies []geometry.Position
	for pos, t := range m.tiles {
		if geometry.AnyContains(visible, pos) {
			continue
		}
		switch t {
		case Unknown:
			delete(m.tiles, pos)
		case Enemy:
			m.tiles[pos] = Empty
			vacatedEnemies = append(vacatedEnemies, pos)
		}
	}
	return vacatedEnemies
}
