package server

import "encoding/json"

// Envelope is the wire frame for every message in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound message types.
const (
	MsgFindMatch   = "findMatch"
	MsgCancelMatch = "cancelMatch"
	MsgGameAction  = "gameAction"
)

// Outbound message types.
const (
	MsgConnected            = "connected"
	MsgSearching            = "searching"
	MsgMatchFound           = "matchFound"
	MsgOpponentDisconnected = "opponentDisconnected"
)

// ConnectedPayload announces the server-assigned player id.
type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

// MatchFoundPayload announces a successful pairing.
type MatchFoundPayload struct {
	GameID     string `json:"gameId"`
	OpponentID string `json:"opponentId"`
	YourTurn   bool   `json:"yourTurn"`
}
