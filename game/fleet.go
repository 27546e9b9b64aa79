package game

import (
	"errors"
	"fmt"
)

// FleetCells is the total number of occupied cells in a legal layout:
// one vessel each of lengths 5, 4, 3, 3 and 2.
const FleetCells = 17

// fleetLengths is kept sorted descending for the cover search below.
var fleetLengths = []int{5, 4, 3, 3, 2}

var (
	ErrFleetSize       = fmt.Errorf("layout must cover exactly %d cells", FleetCells)
	ErrCellOutOfBounds = errors.New("layout cell outside the board")
	ErrCellOverlap     = errors.New("layout claims the same cell twice")
	ErrFleetShape      = errors.New("layout is not five straight vessels of lengths 5,4,3,3,2")
)

// ValidateLayout enforces the layout integrity rule: exactly 17 in-bounds
// cells, no cell claimed twice, and the whole set partitionable into
// straight contiguous vessels of the standard lengths. Vessels are allowed
// to touch; any partition that works makes the layout legal.
func ValidateLayout(cells []Coord) error {
	if len(cells) != FleetCells {
		return ErrFleetSize
	}

	occupied := make(map[Coord]bool, len(cells))

	for _, c := range cells {
		if !c.InBounds() {
			return fmt.Errorf("%w: %s", ErrCellOutOfBounds, c)
		}
		if occupied[c] {
			return fmt.Errorf("%w: %s", ErrCellOverlap, c)
		}
		occupied[c] = true
	}

	if !coverFleet(occupied, fleetLengths) {
		return ErrFleetShape
	}

	return nil
}

// coverFleet tries to tile the occupied set with straight vessels of the
// given lengths. It always extends from the top-left-most uncovered cell,
// which must be the head of some vessel, so the search space stays tiny.
func coverFleet(occupied map[Coord]bool, lengths []int) bool {
	head, ok := topLeftCell(occupied)

	if !ok {
		return len(lengths) == 0
	}

	if len(lengths) == 0 {
		return false
	}

	for i, n := range lengths {
		if i > 0 && lengths[i] == lengths[i-1] {
			continue // identical length already tried at this level
		}

		rest := append(append([]int{}, lengths[:i]...), lengths[i+1:]...)

		for _, step := range []Coord{{X: 1}, {Y: 1}} {
			if !runFits(occupied, head, step, n) {
				continue
			}

			setRun(occupied, head, step, n, false)
			if coverFleet(occupied, rest) {
				setRun(occupied, head, step, n, true)
				return true
			}
			setRun(occupied, head, step, n, true)
		}
	}

	return false
}

func topLeftCell(occupied map[Coord]bool) (Coord, bool) {
	var best Coord
	found := false

	for c, present := range occupied {
		if !present {
			continue
		}
		if !found || c.Y < best.Y || (c.Y == best.Y && c.X < best.X) {
			best = c
			found = true
		}
	}

	return best, found
}

func runFits(occupied map[Coord]bool, head, step Coord, n int) bool {
	for i := 0; i < n; i++ {
		if !occupied[Coord{X: head.X + i*step.X, Y: head.Y + i*step.Y}] {
			return false
		}
	}
	return true
}

func setRun(occupied map[Coord]bool, head, step Coord, n int, present bool) {
	for i := 0; i < n; i++ {
		occupied[Coord{X: head.X + i*step.X, Y: head.Y + i*step.Y}] = present
	}
}
