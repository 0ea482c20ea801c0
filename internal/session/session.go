// Package session implements the map-editing session: the set of
// connected clients, the shared map state they mutate, and the command
// dispatch/broadcast discipline that keeps every client converged on the
// same authoritative world.
//
// The client registry follows the same mutex-guarded map shape the
// project's connection pool uses elsewhere: a single lock, a map keyed
// by a stable id, and explicit registration/deregistration on every
// lifecycle edge so cleanup always runs.
package session

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mapedit/internal/mapstate"
	"mapedit/internal/wire"
)

type client struct {
	id      string
	traceID string
	conn    net.Conn
	outbox  *outbox
}

// Session owns the map state and the live client registry behind a
// single lock. All map mutation and broadcast happens while that lock is
// held, so every client observes the same total order of effects.
type Session struct {
	log *logrus.Logger

	mu      sync.Mutex
	m       *mapstate.Map
	clients map[string]*client
}

// New creates a session around an already-constructed map state.
func New(m *mapstate.Map, log *logrus.Logger) *Session {
	return &Session{m: m, log: log, clients: make(map[string]*client)}
}

// Serve accepts connections on ln until it returns an error (typically
// because ln was closed by the caller).
func (s *Session) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConnection(conn)
	}
}

// ClientCount returns the number of currently connected clients.
func (s *Session) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Map returns the session's underlying map state, for read-only status
// reporting. Callers must not mutate it directly; all mutation must go
// through the command dispatch path so broadcasts stay consistent.
func (s *Session) Map() *mapstate.Map {
	return s.m
}

// WithMapLock runs fn with the session lock held, so a caller (such as
// the status endpoint) can take a consistent snapshot of the map.
func (s *Session) WithMapLock(fn func(m *mapstate.Map)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}

func (s *Session) handleConnection(conn net.Conn) {
	c := &client{
		id:      conn.RemoteAddr().String(),
		traceID: uuid.NewString(),
		conn:    conn,
		outbox:  newOutbox(),
	}

	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"client": c.id, "trace_id": c.traceID})
	log.Info("client connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.runWriter(c, log)
	}()

	s.runReader(c, log)

	c.outbox.close()
	<-writerDone

	s.mu.Lock()
	delete(s.clients, c.id)
	s.mu.Unlock()
	_ = conn.Close()
	log.Info("client disconnected")
}

func (s *Session) runWriter(c *client, log *logrus.Entry) {
	for {
		payload, ok := c.outbox.pop()
		if !ok {
			return
		}
		if err := wire.WriteFrame(c.conn, payload); err != nil {
			log.WithError(err).Warn("write failed, dropping client")
			_ = c.conn.Close()
			return
		}
	}
}

func (s *Session) runReader(c *client, log *logrus.Entry) {
	for {
		frame, err := wire.ReadFrame(c.conn)
		if err != nil {
			log.WithError(err).Debug("reader exiting")
			return
		}

		var cmd ClientCommand
		if err := json.Unmarshal(frame, &cmd); err != nil {
			log.WithError(err).Warn("malformed client command, dropping client")
			return
		}

		if err := s.dispatch(c, cmd); err != nil {
			log.WithError(err).Warn("protocol error, dropping client")
			return
		}
	}
}

// sendTo enqueues payload for exactly one client. Must be called with
// s.mu held. The queue is unbounded: a client that can't keep up is
// dropped by a write error on its connection (see runWriter), never by
// a silently discarded frame.
func (s *Session) sendTo(c *client, payload []byte) {
	c.outbox.push(payload)
}

// broadcast enqueues payload for every connected client, including the
// originator. Must be called with s.mu held.
func (s *Session) broadcast(payload []byte) {
	for _, c := range s.clients {
		s.sendTo(c, payload)
	}
}

func (s *Session) dispatch(sender *client, cmd ClientCommand) error {
	switch cmd.Kind {
	case KindPlaceBlock:
		return s.handlePlaceBlock(sender, cmd.Payload)
	case KindRemoveBlock:
		return s.handleRemoveBlock(sender, cmd.Payload)
	case KindPlaceGhostBlock:
		return s.handlePlaceGhostBlock(sender, cmd.Payload)
	case KindRemoveGhostBlock:
		return s.handleRemoveGhostBlock(sender, cmd.Payload)
	case KindPlaceFreeBlock:
		return s.handlePlaceFreeBlock(sender, cmd.Payload)
	case KindRemoveFreeBlock:
		return s.handleRemoveFreeBlock(sender, cmd.Payload)
	case KindPlaceItem:
		return s.handlePlaceItem(sender, cmd.Payload)
	case KindRemoveItem:
		return s.handleRemoveItem(sender, cmd.Payload)
	default:
		return fmt.Errorf("session: unknown command kind %q", cmd.Kind)
	}
}
