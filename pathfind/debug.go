package pathfind

import (
	"errors"
	"fmt"

	"github.com/pflow-xyz/gridrunner/geometry"
	"github.com/pflow-xyz/gridrunner/worldmodel"
)

// DebugPath runs the default search between start and goal against m and
// renders a human-readable diagnostic line, distinguishing "no path
// exists" from "expansion cap exceeded" (spec.md §4.9), for use by
// observers and manual inspection.
func DebugPath(m *worldmodel.Model, start, goal geometry.Position) string {
	path, err := FindPath(start, goal, DefaultWalkable(m), DefaultCost(m))
	switch {
	case err == nil:
		return fmt.Sprintf("path %s -> %s: %d steps: %v", start, goal, len(path)-1, path)
	case errors.Is(err, ErrExpansionCapExceeded):
		return fmt.Sprintf("path %s -> %s: expansion cap exceeded (%d nodes)", start, goal, maxExpansions)
	default:
		return fmt.Sprintf("path %s -> %s: no path", start, goal)
	}
}
