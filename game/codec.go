package game

import (
	"errors"
	"strings"
)

// Commands sent by clients.
const (
	CmdConnect = "CONNECT"
	CmdSetup   = "SETUP"
	CmdShoot   = "SHOOT"
)

// Commands sent by the server.
const (
	CmdWaiting              = "WAITING"
	CmdMatchFound           = "MATCH_FOUND"
	CmdGameStart            = "GAME_START"
	CmdResult               = "RESULT"
	CmdOpponentShoot        = "OPPONENT_SHOOT"
	CmdTurn                 = "TURN"
	CmdGameOver             = "GAME_OVER"
	CmdOpponentDisconnected = "OPPONENT_DISCONNECTED"
	CmdError                = "ERROR"
)

// Payload tokens.
const (
	VerdictHit  = "HIT"
	VerdictMiss = "MISS"

	TurnYours = "YOUR_TURN"
	TurnWait  = "WAIT"

	OutcomeWin  = "WIN"
	OutcomeLose = "LOSE"
)

var ErrMalformedMessage = errors.New("malformed message: missing command token")

// Message is one protocol line: a command token and an optional raw payload.
// The payload is opaque at this level; each command handler parses its own.
type Message struct {
	Command string
	Payload string
}

func NewMessage(command string, payload ...string) Message {
	return Message{Command: command, Payload: strings.Join(payload, "|")}
}

// Encode renders the wire form COMMAND|payload, or just COMMAND when the
// payload is empty. No trailing newline; framing belongs to the transport.
func (m Message) Encode() string {
	if m.Payload == "" {
		return m.Command
	}
	return m.Command + "|" + m.Payload
}

// Decode splits a line on the first "|". Pipes inside the payload are kept
// verbatim for the handler to interpret.
func Decode(line string) (Message, error) {
	command, payload, _ := strings.Cut(line, "|")

	if command == "" {
		return Message{}, ErrMalformedMessage
	}

	return Message{Command: command, Payload: payload}, nil
}
