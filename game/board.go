package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is fixed; no other board size is supported.
const BoardSize = 10

var (
	ErrBadCoordinate = errors.New("coordinate must be two integers x,y")
	ErrBadLayout     = errors.New("layout must be a JSON array of [x,y] pairs")
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// ParseCoord parses the SHOOT payload form "x,y".
func ParseCoord(s string) (Coord, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")

	if !ok {
		return Coord{}, ErrBadCoordinate
	}

	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, ErrBadCoordinate
	}

	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, ErrBadCoordinate
	}

	return Coord{X: x, Y: y}, nil
}

// ParseLayout parses the SETUP payload, a JSON array of [x,y] pairs.
func ParseLayout(data string) ([]Coord, error) {
	var pairs [][]int

	if err := json.Unmarshal([]byte(data), &pairs); err != nil {
		return nil, ErrBadLayout
	}

	cells := make([]Coord, 0, len(pairs))

	for _, p := range pairs {
		if len(p) != 2 {
			return nil, ErrBadLayout
		}
		cells = append(cells, Coord{X: p[0], Y: p[1]})
	}

	return cells, nil
}
