package ws

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/huyqng/battleship-server/game"
)

var (
	errNameRequired   = errors.New("a display name is required")
	errAlreadySeated  = errors.New("already in a game")
	errAlreadyWaiting = errors.New("already waiting for an opponent")
	errNotInRoom      = errors.New("not in a game; send CONNECT first")
	errOutOfBounds    = errors.New("coordinate outside the board")
)

// handleConnect puts the sender in the queue or pairs them with the
// longest-waiting player. The whole decision, including room creation and
// seat registration, happens inside one critical section.
func (m *Manager) handleConnect(msg game.Message, c *Client) error {
	name := strings.TrimSpace(msg.Payload)

	if name == "" {
		name = c.Username
	}

	if name == "" {
		return errNameRequired
	}

	m.mu.Lock()

	if _, seated := m.seats[c.SocketID]; seated {
		m.mu.Unlock()
		return errAlreadySeated
	}

	if m.queue.contains(c.SocketID) {
		m.mu.Unlock()
		return errAlreadyWaiting
	}

	opp, paired := m.queue.pairOrWait(waiter{client: c, name: name})

	if !paired {
		m.mu.Unlock()
		slog.Info("player waiting", "socket", c.SocketID, "name", name)
		c.Send(game.NewMessage(game.CmdWaiting, "waiting for an opponent"))
		return nil
	}

	m.roomSeq++
	roomID := m.roomSeq

	tb := &table{
		room:    game.NewRoom(roomID, m.policy),
		clients: [2]*Client{opp.client, c},
		names:   [2]string{opp.name, name},
	}

	m.rooms[roomID] = tb
	m.seats[opp.client.SocketID] = seat{roomID: roomID, slot: game.Slot1, name: opp.name}
	m.seats[c.SocketID] = seat{roomID: roomID, slot: game.Slot2, name: name}

	m.mu.Unlock()

	slog.Info("match found", "room", roomID, "player1", opp.name, "player2", name)

	opp.client.Send(game.NewMessage(game.CmdMatchFound, name))
	c.Send(game.NewMessage(game.CmdMatchFound, opp.name))

	return nil
}

// handleSetup registers the sender's ship layout. The instant the second
// valid layout lands, the game starts with slot 1 (the player who was
// queued first) owning the turn.
func (m *Manager) handleSetup(msg game.Message, c *Client) error {
	st, tb := m.seatOf(c)

	if tb == nil {
		return errNotInRoom
	}

	cells, err := game.ParseLayout(msg.Payload)

	if err != nil {
		return err
	}

	tb.emitMu.Lock()
	defer tb.emitMu.Unlock()

	bothReady, err := tb.room.RegisterLayout(st.slot, cells)

	if err != nil {
		return err
	}

	slog.Info("layout registered", "room", st.roomID, "player", st.name)

	if bothReady {
		owner := tb.room.Turn()
		tb.client(owner).Send(game.NewMessage(game.CmdGameStart, game.TurnYours))
		tb.client(game.Opponent(owner)).Send(game.NewMessage(game.CmdGameStart, game.TurnWait))
	}

	return nil
}

// handleShoot resolves one shot: RESULT to the shooter, OPPONENT_SHOOT to
// the target, then GAME_OVER to both or TURN to whoever shoots next.
func (m *Manager) handleShoot(msg game.Message, c *Client) error {
	st, tb := m.seatOf(c)

	if tb == nil {
		return errNotInRoom
	}

	coord, err := game.ParseCoord(msg.Payload)

	if err != nil {
		return err
	}

	// bounds are checked here so the room never sees an impossible cell
	if !coord.InBounds() {
		return errOutOfBounds
	}

	tb.emitMu.Lock()
	defer tb.emitMu.Unlock()

	res, err := tb.room.ResolveShot(st.slot, coord)

	if err != nil {
		return err
	}

	verdict := game.VerdictMiss
	if res.Hit {
		verdict = game.VerdictHit
	}

	c.Send(game.NewMessage(game.CmdResult, verdict, coord.String()))
	tb.client(game.Opponent(st.slot)).Send(game.NewMessage(game.CmdOpponentShoot, verdict, coord.String()))

	slog.Info("shot resolved", "room", st.roomID, "player", st.name, "cell", coord.String(), "verdict", verdict)

	if !res.GameOver {
		tb.client(res.NextTurn).Send(game.NewMessage(game.CmdTurn, game.TurnYours))
		return nil
	}

	tb.client(res.Winner).Send(game.NewMessage(game.CmdGameOver, game.OutcomeWin))
	tb.client(game.Opponent(res.Winner)).Send(game.NewMessage(game.CmdGameOver, game.OutcomeLose))

	m.finishRoom(st.roomID, tb, res.Winner)

	return nil
}
