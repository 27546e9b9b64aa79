package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/huyqng/battleship-server/game"
	"github.com/huyqng/battleship-server/history"
	"github.com/huyqng/battleship-server/token"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     checkOrigin,
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// seat maps a connection to its place in a room.
type seat struct {
	roomID uint64
	slot   int
	name   string
}

// table binds one room's state machine to its two connections. emitMu
// serializes resolve-and-emit per room, so the messages of one shot keep a
// stable order relative to anything later in the same room. Distinct rooms
// never share it.
type table struct {
	emitMu  sync.Mutex
	room    *game.Room
	clients [2]*Client
	names   [2]string
}

func (t *table) client(slot int) *Client { return t.clients[slot-1] }
func (t *table) name(slot int) string    { return t.names[slot-1] }

type CommandHandler func(msg game.Message, c *Client) error

// Manager is the session coordinator: it owns the waiting queue, the room
// table and the seat index, routes inbound commands and fans replies out to
// the right connections. All three structures share the manager lock; the
// lock is never held across a socket write.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client
	queue   waitQueue
	rooms   map[uint64]*table
	seats   map[string]seat
	roomSeq uint64

	handlers   map[string]CommandHandler
	tokenMaker token.Maker
	policy     game.RepeatPolicy
	recorder   history.Recorder
}

func NewManager(maker token.Maker, policy game.RepeatPolicy, recorder history.Recorder) *Manager {
	m := &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[uint64]*table),
		seats:      make(map[string]seat),
		handlers:   make(map[string]CommandHandler),
		tokenMaker: maker,
		policy:     policy,
		recorder:   recorder,
	}

	m.setupCommandHandlers()

	return m
}

func (m *Manager) setupCommandHandlers() {
	m.handlers[game.CmdConnect] = m.handleConnect
	m.handlers[game.CmdSetup] = m.handleSetup
	m.handlers[game.CmdShoot] = m.handleShoot
}

func (m *Manager) route(msg game.Message, c *Client) error {
	if handler, ok := m.handlers[msg.Command]; ok {
		return handler(msg, c)
	}

	return fmt.Errorf("unknown command %q", msg.Command)
}

// ServeWS verifies the guest token, upgrades the connection and starts the
// client's pumps.
func (m *Manager) ServeWS(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")

	if tok == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	payload, err := m.tokenMaker.VerifyToken(tok)

	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		slog.Error("upgrading connection", "error", err)
		return
	}

	client := NewClient(payload.Username, conn, m)
	m.addClient(client)

	slog.Info("client connected", "socket", client.SocketID, "username", client.Username)

	go client.readMessages()
	go client.writeMessages()
	go client.listenForErrors()
}

func (m *Manager) addClient(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[c.SocketID] = c
}

// dropClient runs exactly once per client, from listenForErrors. A waiting
// player just leaves the queue; a seated player takes the whole room down
// with them, and the peer is told.
func (m *Manager) dropClient(c *Client) {
	m.mu.Lock()

	delete(m.clients, c.SocketID)
	m.queue.remove(c.SocketID)

	st, seated := m.seats[c.SocketID]

	var tb *table
	if seated {
		delete(m.seats, c.SocketID)
		tb = m.rooms[st.roomID]
		delete(m.rooms, st.roomID)

		if tb != nil {
			delete(m.seats, tb.client(game.Opponent(st.slot)).SocketID)
		}
	}

	m.mu.Unlock()

	c.close()

	if tb == nil {
		return
	}

	tb.emitMu.Lock()
	finished := tb.room.Finished()
	tb.emitMu.Unlock()

	peerSlot := game.Opponent(st.slot)
	tb.client(peerSlot).Send(game.NewMessage(game.CmdOpponentDisconnected, "opponent left the game"))

	slog.Info("room discarded", "room", st.roomID, "left", st.name)

	if !finished {
		m.record(history.Match{
			RoomID:     st.roomID,
			Winner:     tb.name(peerSlot),
			Loser:      st.name,
			Outcome:    history.OutcomeAbandoned,
			FinishedAt: time.Now(),
		})
	}
}

// finishRoom retires a room after a game-over shot. Both seat entries go
// with it, so nothing maps to the dead room any more.
func (m *Manager) finishRoom(roomID uint64, tb *table, winner int) {
	m.mu.Lock()

	if _, live := m.rooms[roomID]; !live {
		m.mu.Unlock()
		return
	}

	delete(m.rooms, roomID)
	delete(m.seats, tb.clients[0].SocketID)
	delete(m.seats, tb.clients[1].SocketID)

	m.mu.Unlock()

	slog.Info("game over", "room", roomID, "winner", tb.name(winner))

	m.record(history.Match{
		RoomID:     roomID,
		Winner:     tb.name(winner),
		Loser:      tb.name(game.Opponent(winner)),
		Outcome:    history.OutcomeWin,
		FinishedAt: time.Now(),
	})
}

func (m *Manager) seatOf(c *Client) (seat, *table) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.seats[c.SocketID]

	if !ok {
		return seat{}, nil
	}

	return st, m.rooms[st.roomID]
}

// record archives a match; failures are logged and never reach the game.
func (m *Manager) record(match history.Match) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := m.recorder.Record(ctx, match); err != nil {
		slog.Error("recording match", "room", match.RoomID, "error", err)
	}
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// non-browser clients send no Origin header
	if origin == "" {
		return true
	}

	allowed := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:8080": true,
	}

	return allowed[origin]
}
