package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func readyRoom(t *testing.T, policy RepeatPolicy) (*Room, []Coord, []Coord) {
	t.Helper()

	room := NewRoom(1, policy)
	fleet1 := testFleet(0)
	fleet2 := testFleet(7)

	both, err := room.RegisterLayout(Slot1, fleet1)
	require.NoError(t, err)
	require.False(t, both)

	both, err = room.RegisterLayout(Slot2, fleet2)
	require.NoError(t, err)
	require.True(t, both)

	return room, fleet1, fleet2
}

func TestRegisterLayout(t *testing.T) {
	t.Run("both ready starts the game with slot 1 to move", func(t *testing.T) {
		room, _, _ := readyRoom(t, RejectRepeat)

		require.Equal(t, StateInProgress, room.State())
		require.Equal(t, Slot1, room.Turn())
	})

	t.Run("second layout for the same slot is rejected", func(t *testing.T) {
		room := NewRoom(1, RejectRepeat)

		_, err := room.RegisterLayout(Slot1, testFleet(0))
		require.NoError(t, err)

		_, err = room.RegisterLayout(Slot1, testFleet(7))
		require.ErrorIs(t, err, ErrLayoutSet)
	})

	t.Run("invalid layout leaves the slot unset", func(t *testing.T) {
		room := NewRoom(1, RejectRepeat)

		_, err := room.RegisterLayout(Slot1, testFleet(0)[:5])
		require.ErrorIs(t, err, ErrFleetSize)

		// the slot is still free for a valid retry
		_, err = room.RegisterLayout(Slot1, testFleet(0))
		require.NoError(t, err)
	})

	t.Run("registration after game start is rejected", func(t *testing.T) {
		room, _, _ := readyRoom(t, RejectRepeat)

		_, err := room.RegisterLayout(Slot1, testFleet(0))
		require.ErrorIs(t, err, ErrSetupClosed)
	})
}

func TestResolveShot(t *testing.T) {
	t.Run("before game start", func(t *testing.T) {
		room := NewRoom(1, RejectRepeat)

		_, err := room.ResolveShot(Slot1, Coord{X: 0, Y: 0})
		require.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("out of turn mutates nothing", func(t *testing.T) {
		room, fleet1, _ := readyRoom(t, RejectRepeat)

		_, err := room.ResolveShot(Slot2, fleet1[0])
		require.ErrorIs(t, err, ErrNotYourTurn)
		require.Equal(t, Slot1, room.Turn())

		// the very same shot works once the turn does flip to slot 2
		_, err = room.ResolveShot(Slot1, Coord{X: 9, Y: 9})
		require.NoError(t, err)

		res, err := room.ResolveShot(Slot2, fleet1[0])
		require.NoError(t, err)
		require.True(t, res.Hit)
	})

	t.Run("a miss flips the turn", func(t *testing.T) {
		room, _, _ := readyRoom(t, RejectRepeat)

		res, err := room.ResolveShot(Slot1, Coord{X: 9, Y: 9})
		require.NoError(t, err)
		require.False(t, res.Hit)
		require.Equal(t, Slot2, res.NextTurn)
		require.Equal(t, Slot2, room.Turn())
	})

	t.Run("a hit keeps the turn", func(t *testing.T) {
		room, _, fleet2 := readyRoom(t, RejectRepeat)

		res, err := room.ResolveShot(Slot1, fleet2[0])
		require.NoError(t, err)
		require.True(t, res.Hit)
		require.False(t, res.GameOver)
		require.Equal(t, Slot1, res.NextTurn)
		require.Equal(t, Slot1, room.Turn())
	})

	t.Run("sinking the whole fleet finishes the game", func(t *testing.T) {
		room, _, fleet2 := readyRoom(t, RejectRepeat)

		for i, cell := range fleet2 {
			res, err := room.ResolveShot(Slot1, cell)
			require.NoError(t, err)
			require.True(t, res.Hit)

			if i == len(fleet2)-1 {
				require.True(t, res.GameOver)
				require.Equal(t, Slot1, res.Winner)
			} else {
				require.False(t, res.GameOver)
			}
		}

		require.True(t, room.Finished())

		_, err := room.ResolveShot(Slot1, Coord{X: 9, Y: 9})
		require.ErrorIs(t, err, ErrNotInProgress)
	})
}

func TestRepeatShotPolicy(t *testing.T) {
	t.Run("reject", func(t *testing.T) {
		room, _, fleet2 := readyRoom(t, RejectRepeat)

		_, err := room.ResolveShot(Slot1, fleet2[0])
		require.NoError(t, err)

		_, err = room.ResolveShot(Slot1, fleet2[0])
		require.ErrorIs(t, err, ErrCellAlreadyShot)
		require.Equal(t, Slot1, room.Turn())
	})

	t.Run("allow treats the re-hit as idempotent", func(t *testing.T) {
		room, _, fleet2 := readyRoom(t, AllowRepeat)

		_, err := room.ResolveShot(Slot1, fleet2[0])
		require.NoError(t, err)

		res, err := room.ResolveShot(Slot1, fleet2[0])
		require.NoError(t, err)
		require.True(t, res.Hit)
		require.False(t, res.GameOver)
		require.Equal(t, Slot1, res.NextTurn)

		// nothing was double-counted: the rest of the fleet is still needed
		for i, cell := range fleet2[1:] {
			res, err := room.ResolveShot(Slot1, cell)
			require.NoError(t, err)
			require.Equal(t, i == len(fleet2[1:])-1, res.GameOver)
		}
	})
}
