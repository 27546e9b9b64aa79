package game

import (
	"errors"
	"sync"
)

// Room state machine: AwaitingSetup -> InProgress -> Finished.
type State int

const (
	StateAwaitingSetup State = iota
	StateInProgress
	StateFinished
)

// RepeatPolicy decides what a shot at an already-hit cell does.
type RepeatPolicy int

const (
	// RejectRepeat refuses the shot with ErrCellAlreadyShot and mutates
	// nothing. This is the default.
	RejectRepeat RepeatPolicy = iota
	// AllowRepeat accepts the shot as an idempotent re-hit: the shooter
	// keeps the turn, nothing is counted twice.
	AllowRepeat
)

// Slot numbers for the two players of a room. Slot 1 belongs to the player
// who was waiting in the queue and always owns the first turn.
const (
	Slot1 = 1
	Slot2 = 2
)

var (
	ErrSetupClosed     = errors.New("setup phase is over")
	ErrLayoutSet       = errors.New("layout already submitted")
	ErrNotInProgress   = errors.New("game is not in progress")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrCellAlreadyShot = errors.New("cell already shot")
)

// Room is the authoritative state for one matched pair: two hidden layouts,
// two hit-sets, and the current turn owner. All methods hold the room's own
// mutex; different rooms never contend with each other.
type Room struct {
	mu sync.Mutex

	id      uint64
	policy  RepeatPolicy
	state   State
	layouts [2]map[Coord]struct{}
	hits    [2]map[Coord]struct{}
	turn    int
}

func NewRoom(id uint64, policy RepeatPolicy) *Room {
	return &Room{id: id, policy: policy}
}

func (r *Room) ID() uint64 { return r.id }

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) Finished() bool {
	return r.State() == StateFinished
}

// Turn reports the slot currently allowed to shoot, or 0 before the game
// has started.
func (r *Room) Turn() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

// RegisterLayout validates and stores a slot's layout. It reports whether
// this registration made both slots ready, which is the instant the room
// moves to InProgress with slot 1 as turn owner.
func (r *Room) RegisterLayout(slot int, cells []Coord) (bothReady bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateAwaitingSetup {
		return false, ErrSetupClosed
	}

	if r.layouts[slot-1] != nil {
		return false, ErrLayoutSet
	}

	if err := ValidateLayout(cells); err != nil {
		return false, err
	}

	layout := make(map[Coord]struct{}, len(cells))
	for _, c := range cells {
		layout[c] = struct{}{}
	}

	r.layouts[slot-1] = layout
	r.hits[slot-1] = make(map[Coord]struct{}, len(cells))

	if r.layouts[0] == nil || r.layouts[1] == nil {
		return false, nil
	}

	r.state = StateInProgress
	r.turn = Slot1

	return true, nil
}

// ShotResult is the outcome of one accepted shot.
type ShotResult struct {
	Hit      bool
	GameOver bool
	Winner   int // shooter's slot when GameOver
	NextTurn int // turn owner after the shot; shooter on hit, opponent on miss
}

// ResolveShot applies one shot by the given slot. A hit keeps the shooter's
// turn; a miss flips it. The game finishes the instant the opponent's
// hit-set reaches their layout's cell count, with the shooter as winner.
// The caller has already bounds-checked the coordinate.
func (r *Room) ResolveShot(slot int, c Coord) (ShotResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateInProgress {
		return ShotResult{}, ErrNotInProgress
	}

	if r.turn != slot {
		return ShotResult{}, ErrNotYourTurn
	}

	opp := Opponent(slot)

	if _, hit := r.layouts[opp-1][c]; !hit {
		r.turn = opp
		return ShotResult{NextTurn: opp}, nil
	}

	if _, again := r.hits[opp-1][c]; again {
		if r.policy == RejectRepeat {
			return ShotResult{}, ErrCellAlreadyShot
		}
		return ShotResult{Hit: true, NextTurn: slot}, nil
	}

	r.hits[opp-1][c] = struct{}{}

	if len(r.hits[opp-1]) == len(r.layouts[opp-1]) {
		r.state = StateFinished
		return ShotResult{Hit: true, GameOver: true, Winner: slot}, nil
	}

	return ShotResult{Hit: true, NextTurn: slot}, nil
}

func Opponent(slot int) int {
	if slot == Slot1 {
		return Slot2
	}
	return Slot1
}
