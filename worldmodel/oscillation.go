package worldmodel

import "github.com/pflow-xyz/gridrunner/geometry"

// windowSize is how many recent positions each player's history holds,
// grounded on the teacher's AIMemory.RecentPath sliding-window approach to
// oscillation resistance (examples/catacombs/ai_petri.go).
const windowSize = 8

// repeatWindow is how close together (in ticks) a repeated position must
// recur to count as oscillation, matching the four-tick window named in
// scenario S6.
const repeatWindow = 4

// OscillationDetector watches each player's recent position history for a
// bounce between the same cells without shrinking distance to the
// player's destination.
type OscillationDetector struct {
	history [][]geometry.Position
}

// NewOscillationDetector returns a detector sized for numPlayers.
func NewOscillationDetector(numPlayers int) *OscillationDetector {
	return &OscillationDetector{history: make([][]geometry.Position, numPlayers)}
}

// Record appends the current tick's positions to history, sets
// EmergencyReplan on any player whose recent path oscillates, and returns
// the indices of players that triggered detection this tick (for the
// driver to report via Observer.OnOscillationDetected).
func (d *OscillationDetector) Record(m *Model) []int {
	var triggered []int
	for _, p := range m.Players {
		if !p.IsActive || p.Index >= len(d.history) {
			continue
		}
		h := append(d.history[p.Index], p.Position)
		if len(h) > windowSize {
			h = h[len(h)-windowSize:]
		}
		d.history[p.Index] = h

		if oscillating(h, p.CurrentDestination) {
			p.EmergencyReplan = true
			triggered = append(triggered, p.Index)
		}
	}
	return triggered
}

// oscillating reports whether the tail of history revisits a position
// within repeatWindow ticks without strictly decreasing distance to dest.
func oscillating(history []geometry.Position, dest *geometry.Position) bool {
	n := len(history)
	if n < 3 {
		return false
	}
	last := history[n-1]
	for back := 2; back <= repeatWindow && back < n; back++ {
		if history[n-1-back] != last {
			continue
		}
		if dest == nil {
			return true
		}
		// A genuine approach should have the most recent distance to dest
		// strictly less than the distance back when the repeat began.
		distThen := history[n-1-back].Distance(*dest)
		distNow := last.Distance(*dest)
		if distNow >= distThen {
			return true
		}
	}
	return false
}
