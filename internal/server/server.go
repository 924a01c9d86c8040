// Package server exposes the duel engine over a WebSocket endpoint.
// Each connection gets one goroutine pair (read/write pump); session
// and matchmaking tables are shared state guarded here and in their
// owning packages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/duelforge/duel-server/internal/catalog"
	"github.com/duelforge/duel-server/internal/config"
	"github.com/duelforge/duel-server/internal/game"
	"github.com/duelforge/duel-server/internal/matchmaker"
	"github.com/duelforge/duel-server/internal/session"
)

// Server accepts WebSocket connections and routes their messages to
// the matchmaker and session layers. It implements session.Notifier.
type Server struct {
	cfg    config.ServerConfig
	logger *zap.Logger

	matchmaker *matchmaker.Matchmaker
	sessions   *session.Manager
	upgrader   websocket.Upgrader
	httpServer *http.Server

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewServer wires the transport, matchmaker, and session manager
// together. recorder may be nil to disable result persistence; cat may
// be nil to accept submitted decks at face value.
func NewServer(cfg config.ServerConfig, rules game.Rules, cat *catalog.Catalog, recorder session.Recorder, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		clients: make(map[string]*Client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.matchmaker = matchmaker.New(s.Alive, logger)
	s.sessions = session.NewManager(rules, cat, s, recorder, logger)
	return s
}

// Sessions exposes the session manager, mainly for tests.
func (s *Server) Sessions() *session.Manager { return s.sessions }

// Run serves the WebSocket endpoint until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.serveWS)

	s.httpServer = &http.Server{
		Addr:    s.cfg.Address,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("websocket server listening",
			zap.String("address", s.cfg.Address),
			zap.String("path", s.cfg.Path),
		)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveWS upgrades a connection and registers the participant under a
// fresh server-assigned id.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		playerID: uuid.NewString(),
		conn:     conn,
		send:     make(chan []byte, s.cfg.SendBufferSize),
		server:   s,
	}

	s.mu.Lock()
	s.clients[client.playerID] = client
	s.mu.Unlock()

	s.logger.Info("client connected", zap.String("player_id", client.playerID))

	go client.writePump()
	go client.readPump()

	s.Send(client.playerID, MsgConnected, ConnectedPayload{PlayerID: client.playerID})
}

// Alive reports whether a participant still has a live connection.
func (s *Server) Alive(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[playerID]
	return ok
}

// Send marshals and queues an outbound message for a participant.
// Sending to a gone participant, or past a full send buffer, drops the
// message silently.
func (s *Server) Send(playerID, msgType string, payload any) {
	s.mu.RLock()
	client, ok := s.clients[playerID]
	s.mu.RUnlock()
	if !ok {
		return
	}

	var data json.RawMessage
	if payload != nil {
		if raw, isRaw := payload.(json.RawMessage); isRaw {
			data = raw
		} else {
			encoded, err := json.Marshal(payload)
			if err != nil {
				s.logger.Error("failed to marshal outbound payload",
					zap.String("type", msgType),
					zap.Error(err),
				)
				return
			}
			data = encoded
		}
	}

	msg, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		s.logger.Error("failed to marshal envelope", zap.Error(err))
		return
	}

	select {
	case client.send <- msg:
	default:
		s.logger.Warn("send buffer full, dropping message",
			zap.String("player_id", playerID),
			zap.String("type", msgType),
		)
	}
}

// handleMessage routes one inbound envelope.
func (s *Server) handleMessage(c *Client, env Envelope) {
	switch env.Type {
	case MsgFindMatch:
		s.handleFindMatch(c)
	case MsgCancelMatch:
		s.matchmaker.CancelMatch(c.playerID)
	case MsgGameAction:
		s.handleGameAction(c, env.Data)
	default:
		s.logger.Debug("unknown message type",
			zap.String("player_id", c.playerID),
			zap.String("type", env.Type),
		)
	}
}

// handleFindMatch runs a pairing attempt. The requester that completes
// a pair acts first in the new session.
func (s *Server) handleFindMatch(c *Client) {
	pairing := s.matchmaker.FindMatch(c.playerID)
	if pairing == nil {
		s.Send(c.playerID, MsgSearching, nil)
		return
	}

	s.sessions.Create(pairing.SessionID, pairing.First, pairing.Second)

	s.Send(pairing.First, MsgMatchFound, MatchFoundPayload{
		GameID:     pairing.SessionID,
		OpponentID: pairing.Second,
		YourTurn:   true,
	})
	s.Send(pairing.Second, MsgMatchFound, MatchFoundPayload{
		GameID:     pairing.SessionID,
		OpponentID: pairing.First,
		YourTurn:   false,
	})
}

// handleGameAction forwards a gameplay envelope to the participant's
// session. A participant with no session is a silent no-op.
func (s *Server) handleGameAction(c *Client, data json.RawMessage) {
	sess, ok := s.sessions.ForPlayer(c.playerID)
	if !ok {
		return
	}

	var action session.GameAction
	if err := json.Unmarshal(data, &action); err != nil {
		s.logger.Debug("malformed game action",
			zap.String("player_id", c.playerID),
			zap.Error(err),
		)
		return
	}
	action.Raw = data

	sess.HandleGameAction(c.playerID, action)
}

// handleDisconnect removes a client from every shared table and tears
// down any session it was bound to.
func (s *Server) handleDisconnect(c *Client) {
	s.mu.Lock()
	if _, ok := s.clients[c.playerID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c.playerID)
	close(c.send)
	s.mu.Unlock()

	s.matchmaker.Remove(c.playerID)
	s.sessions.HandleDisconnect(c.playerID)

	s.logger.Info("client disconnected", zap.String("player_id", c.playerID))
}
