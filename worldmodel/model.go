// Package worldmodel assembles the per-tick observation stream into the
// persistent belief state described in spec.md §3/§4.1: the Map, the
// per-class trackers, per-player state, reachable frontiers, and
// potential-enemy bookkeeping.
package worldmodel

import (
	"log"
	"sort"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/tracker"
	"github.com/pflow-xyz/gridrunner/worldmap"
)

// Model is the WorldModel of spec.md §3.
type Model struct {
	Map *worldmap.Map

	Keys    *tracker.Colored
	Doors   *tracker.Colored
	Plates  *tracker.Colored
	Swords  *tracker.Item
	Health  *tracker.Item
	Boulder *tracker.Boulder

	// PotentialEnemies holds every position where an enemy was last
	// observed but can no longer be confirmed; still treated as hostile
	// for planning until directly re-observed (spec.md Glossary).
	PotentialEnemies map[geometry.Position]bool

	ExitPosition     *geometry.Position
	BossPosition     *geometry.Position
	TreasurePosition *geometry.Position

	PlatesTouched map[geometry.Color]bool

	Players []*PlayerState

	Tick             int
	Level            int
	VisibilityRadius int32

	// LastOscillations holds the player indices flagged as oscillating by
	// the most recent Update call (spec.md §4.7/S6).
	LastOscillations []int

	osc *OscillationDetector

	Logger *log.Logger
}

// New builds an empty Model for the given map dimensions and player count.
func New(width, height int32, visibilityRadius int32, numPlayers int, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	players := make([]*PlayerState, numPlayers)
	for i := range players {
		players[i] = NewPlayer(i)
	}
	return &Model{
		Map:              worldmap.New(width, height),
		Keys:             tracker.NewColored(),
		Doors:            tracker.NewColored(),
		Plates:           tracker.NewColored(),
		Swords:           tracker.NewItem(),
		Health:           tracker.NewItem(),
		Boulder:          tracker.NewBoulder(),
		PotentialEnemies: make(map[geometry.Position]bool),
		PlatesTouched:    make(map[geometry.Color]bool),
		Players:          players,
		VisibilityRadius: visibilityRadius,
		osc:              NewOscillationDetector(numPlayers),
		Logger:           logger,
	}
}

// Clone returns an independent deep copy of the model, for the planner's
// simulated search branches (spec.md §5): mutating the clone must never
// be observable through the original.
func (m *Model) Clone() *Model {
	players := make([]*PlayerState, len(m.Players))
	for i, p := range m.Players {
		players[i] = p.Clone()
	}
	potentialEnemies := make(map[geometry.Position]bool, len(m.PotentialEnemies))
	for pos := range m.PotentialEnemies {
		potentialEnemies[pos] = true
	}
	platesTouched := make(map[geometry.Color]bool, len(m.PlatesTouched))
	for c := range m.PlatesTouched {
		platesTouched[c] = true
	}

	out := &Model{
		Map:              m.Map.Clone(),
		Keys:             m.Keys.Clone(),
		Doors:            m.Doors.Clone(),
		Plates:           m.Plates.Clone(),
		Swords:           m.Swords.Clone(),
		Health:           m.Health.Clone(),
		Boulder:          m.Boulder.Clone(),
		PotentialEnemies: potentialEnemies,
		PlatesTouched:    platesTouched,
		Players:          players,
		Tick:             m.Tick,
		Level:            m.Level,
		VisibilityRadius: m.VisibilityRadius,
		osc:              &OscillationDetector{history: make([][]geometry.Position, len(m.osc.history))},
		Logger:           m.Logger,
	}
	for i, h := range m.osc.history {
		out.osc.history[i] = append([]geometry.Position(nil), h...)
	}
	if m.ExitPosition != nil {
		pos := *m.ExitPosition
		out.ExitPosition = &pos
	}
	if m.BossPosition != nil {
		pos := *m.BossPosition
		out.BossPosition = &pos
	}
	if m.TreasurePosition != nil {
		pos := *m.TreasurePosition
		out.TreasurePosition = &pos
	}
	return out
}

// ActivePlayers returns the indices of currently active players.
func (m *Model) ActivePlayers() []int {
	var out []int
	for _, p := range m.Players {
		if p.IsActive {
			out = append(out, p.Index)
		}
	}
	return out
}

// VisibilityRectangles returns the current visibility bounds for every
// active player.
func (m *Model) VisibilityRectangles() []geometry.Bounds {
	var out []geometry.Bounds
	for _, p := range m.Players {
		if !p.IsActive {
			continue
		}
		out = append(out, geometry.FromCenterAndRange(p.Position, m.VisibilityRadius))
	}
	return out
}

// IsDoorOpen reports whether color c's door is currently held open: some
// player stands on a plate of color c, or some boulder occupies a plate
// position of color c (spec.md §4.1).
func (m *Model) IsDoorOpen(c geometry.Color) bool {
	for _, pos := range m.Plates.Positions(c) {
		for _, p := range m.Players {
			if p.IsActive && p.Position == pos {
				return true
			}
		}
		if m.Boulder.Contains(pos) {
			return true
		}
	}
	return false
}

// rawObservation is the per-tick per-player input after default
// substitution for missing fields (spec.md §7 observation-error rules).
type rawObservation struct {
	player       *PlayerState
	patch        []worldmap.Tile
	patchBounds  geometry.Bounds
	sawPosition  bool
}

// Update is the single per-tick entry point described in spec.md §4.1.
// It never panics: malformed input degrades per the error taxonomy in
// spec.md §7 and is logged.
func (m *Model) Update(obs Observation) {
	m.Tick = obs.Tick
	m.Level = obs.Level

	raws := m.applyPlayerFields(obs)

	visible := m.VisibilityRectangles()

	vacatedEnemies := m.Map.PruneUnknownOutside(visible)
	for _, pos := range vacatedEnemies {
		m.PotentialEnemies[pos] = true
	}

	merged := m.mergePatches(raws)

	var seenKeys = map[geometry.Color][]geometry.Position{}
	var seenDoors = map[geometry.Color][]geometry.Position{}
	var seenPlates = map[geometry.Color][]geometry.Position{}
	var seenSwords []geometry.Position
	var seenHealth []geometry.Position
	var seenBoulders []geometry.Position

	positions := make([]geometry.Position, 0, len(merged))
	for pos := range merged {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].X != positions[j].X {
			return positions[i].X < positions[j].X
		}
		return positions[i].Y < positions[j].Y
	})

	for _, pos := range positions {
		incoming := merged[pos]
		becameEmptyEnemy := m.Map.Merge(pos, incoming)
		if becameEmptyEnemy {
			m.PotentialEnemies[pos] = true
		}

		switch incoming {
		case worldmap.Exit:
			p := pos
			m.ExitPosition = &p
		case worldmap.Boss:
			p := pos
			m.BossPosition = &p
		case worldmap.Treasure:
			p := pos
			m.TreasurePosition = &p
		case worldmap.KeyRed:
			seenKeys[geometry.Red] = append(seenKeys[geometry.Red], pos)
		case worldmap.KeyGreen:
			seenKeys[geometry.Green] = append(seenKeys[geometry.Green], pos)
		case worldmap.KeyBlue:
			seenKeys[geometry.Blue] = append(seenKeys[geometry.Blue], pos)
		case worldmap.DoorRed:
			seenDoors[geometry.Red] = append(seenDoors[geometry.Red], pos)
		case worldmap.DoorGreen:
			seenDoors[geometry.Green] = append(seenDoors[geometry.Green], pos)
		case worldmap.DoorBlue:
			seenDoors[geometry.Blue] = append(seenDoors[geometry.Blue], pos)
		case worldmap.PressurePlateRed:
			seenPlates[geometry.Red] = append(seenPlates[geometry.Red], pos)
		case worldmap.PressurePlateGreen:
			seenPlates[geometry.Green] = append(seenPlates[geometry.Green], pos)
		case worldmap.PressurePlateBlue:
			seenPlates[geometry.Blue] = append(seenPlates[geometry.Blue], pos)
		case worldmap.Sword:
			seenSwords = append(seenSwords, pos)
		case worldmap.Health:
			seenHealth = append(seenHealth, pos)
		case worldmap.Boulder:
			seenBoulders = append(seenBoulders, pos)
		case worldmap.Enemy:
			delete(m.PotentialEnemies, pos)
		}
	}

	m.Keys.Update(seenKeys, m.Map, visible, func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool {
		return tile == worldmap.KeyForColor(c)
	})
	m.Doors.Update(seenDoors, m.Map, visible, func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool {
		return tile == worldmap.DoorForColor(c)
	})
	m.Plates.Update(seenPlates, m.Map, visible, func(tile worldmap.Tile, pos geometry.Position, c geometry.Color) bool {
		if tile == worldmap.PlateForColor(c) {
			return true
		}
		// A stood-on plate renders as Player/Boulder on the tile, not the
		// plate tile itself; don't mistakenly forget it.
		for _, p := range m.Players {
			if p.IsActive && p.Position == pos {
				return true
			}
		}
		return m.Boulder.Contains(pos)
	})
	m.Swords.Update(seenSwords, m.Map, visible, func(tile worldmap.Tile) bool { return tile == worldmap.Sword })
	m.Health.Update(seenHealth, m.Map, visible, func(tile worldmap.Tile) bool { return tile == worldmap.Health })

	m.Boulder.Update(seenBoulders, m.Map, func(pos geometry.Position) bool {
		return m.boulderLooksDropped(pos)
	})

	for _, p := range m.Players {
		if !p.IsActive {
			continue
		}
		p.Frontier = m.computeFrontier(p)
	}

	m.LastOscillations = m.osc.Record(m)
}

// applyPlayerFields updates persistent per-player fields from the
// observation, substituting defaults for missing fields per spec.md §7,
// and returns the raw per-player patch data for merging.
func (m *Model) applyPlayerFields(obs Observation) []rawObservation {
	blocks := []*PlayerObservation{obs.P1, obs.P2}
	var raws []rawObservation

	for i, block := range blocks {
		if i >= len(m.Players) {
			break
		}
		p := m.Players[i]
		if block == nil {
			continue
		}

		if block.X == ExitedSentinel.X && block.Y == ExitedSentinel.Y {
			p.IsActive = false
			continue
		}
		p.IsActive = true
		p.Position = geometry.New(block.X, block.Y)

		if block.Health != nil {
			p.Health = *block.Health
		} else {
			m.Logger.Printf("worldmodel: player %d missing health, assuming 5", i)
			p.Health = 5
		}
		if block.Inventory != nil {
			p.Inventory = *block.Inventory
		}
		if block.HasSword != nil {
			p.HasSword = *block.HasSword
		}

		side := 2*m.VisibilityRadius + 1
		if int32(len(block.Surroundings)) != side*side {
			m.Logger.Printf("worldmodel: player %d surroundings patch has wrong size (%d, want %d), skipping patch", i, len(block.Surroundings), side*side)
			continue
		}

		raws = append(raws, rawObservation{
			player:      p,
			patch:       block.Surroundings,
			patchBounds: geometry.FromCenterAndRange(p.Position, m.VisibilityRadius),
			sawPosition: true,
		})
	}
	return raws
}

// mergePatches builds the union of all players' surrounding patches into a
// single position->tile map, preferring any concrete tile over Unknown
// when two patches disagree (spec.md §4.1 step 3).
func (m *Model) mergePatches(raws []rawObservation) map[geometry.Position]worldmap.Tile {
	merged := make(map[geometry.Position]worldmap.Tile)
	for _, raw := range raws {
		side := 2*m.VisibilityRadius + 1
		idx := 0
		for dy := raw.patchBounds.MinY; dy <= raw.patchBounds.MaxY; dy++ {
			for dx := raw.patchBounds.MinX; dx <= raw.patchBounds.MaxX; dx++ {
				pos := geometry.New(dx, dy)
				tile := raw.patch[idx]
				idx++
				if !m.Map.InBounds(pos) {
					continue
				}
				existing, had := merged[pos]
				if !had || existing == worldmap.Unknown || tile != worldmap.Unknown {
					merged[pos] = tile
				}
			}
		}
		_ = side
	}
	return merged
}

// boulderLooksDropped implements the adjacency heuristic: a boulder seen
// for the first time adjacent to an active player was probably just
// dropped by us. The tile previously recorded at pos is not consulted.
func (m *Model) boulderLooksDropped(pos geometry.Position) bool {
	for _, p := range m.Players {
		if p.IsActive && p.Position.IsAdjacent(pos) {
			return true
		}
	}
	return false
}
