package service

import (
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Conn is the part of a websocket connection a table writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// client serializes writes to one connection; websocket connections allow
// a single concurrent writer.
type client struct {
	conn Conn
	mu   sync.Mutex
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// The connections for a specific table
type tableConnections struct {
	clients map[string]*client // clientID -> connection
	mu      sync.RWMutex
}

// Table owns one game and the connections watching it. Every access to the
// game goes through mu, so commits never interleave. broadcastMu is taken
// before mu is released, so snapshots reach clients in commit order.
type Table struct {
	ID          string
	mu          sync.Mutex
	broadcastMu sync.Mutex
	game        *model.Game
	connections *tableConnections
}

func NewTable(id string) *Table {
	return &Table{
		ID:   id,
		game: model.NewGame(),
		connections: &tableConnections{
			clients: make(map[string]*client),
		},
	}
}

func (t *Table) State() model.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.State()
}

func (t *Table) LegalMoves(row, col int) (model.MoveList, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.LegalMovesFor(row, col)
}

// MakeMove commits m and broadcasts the new state to every connection.
func (t *Table) MakeMove(m model.Move) (ws.MoveResult, error) {
	t.mu.Lock()
	outcome, err := t.game.Commit(m)
	if err != nil {
		t.mu.Unlock()
		return ws.MoveResult{}, err
	}
	state := t.game.State()
	t.broadcastMu.Lock()
	t.mu.Unlock()
	defer t.broadcastMu.Unlock()

	log.Infow("move committed", "table", t.ID, "move", outcome.Notation, "next", outcome.NextPlayer)
	if state.Status.IsOver() {
		log.Infow("game over", "table", t.ID, "outcome", state.Status.Outcome, "loser", state.Status.Loser)
	}
	t.broadcast(state)
	return ws.MoveResult{Outcome: outcome, State: state}, nil
}

func (t *Table) Reset() model.GameState {
	t.mu.Lock()
	t.game.Reset()
	state := t.game.State()
	t.broadcastMu.Lock()
	t.mu.Unlock()
	defer t.broadcastMu.Unlock()

	log.Infow("game reset", "table", t.ID)
	t.broadcast(state)
	return state
}

// RegisterConnection attaches conn under clientID and sends it the current
// state. A previous connection with the same id is closed and replaced.
func (t *Table) RegisterConnection(clientID string, conn Conn) error {
	c := &client{conn: conn}

	t.mu.Lock()
	state := t.game.State()
	t.broadcastMu.Lock()
	t.mu.Unlock()
	defer t.broadcastMu.Unlock()

	t.connections.mu.Lock()
	previous, exists := t.connections.clients[clientID]
	t.connections.clients[clientID] = c
	t.connections.mu.Unlock()

	if exists {
		log.Infow("replacing connection", "table", t.ID, "client", clientID)
		if err := previous.conn.Close(); err != nil {
			log.Debugw("closing replaced connection", "table", t.ID, "client", clientID, "error", err)
		}
	}

	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		return errors.Wrap(err, "marshal game state")
	}
	if err := c.send(msg); err != nil {
		t.UnregisterConnection(clientID, conn)
		return errors.Wrapf(err, "send initial state to %s", clientID)
	}
	log.Infow("registered connection", "table", t.ID, "client", clientID)
	return nil
}

// UnregisterConnection forgets clientID, but only while conn is still the
// connection registered for it.
func (t *Table) UnregisterConnection(clientID string, conn Conn) {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	current, exists := t.connections.clients[clientID]
	if !exists || current.conn != conn {
		log.Debugw("ignoring unregister for stale connection", "table", t.ID, "client", clientID)
		return
	}
	delete(t.connections.clients, clientID)
	log.Infow("unregistered connection", "table", t.ID, "client", clientID)
}

// Send writes msg to a single registered client.
func (t *Table) Send(clientID string, msg ws.Message) error {
	t.connections.mu.RLock()
	c, ok := t.connections.clients[clientID]
	t.connections.mu.RUnlock()
	if !ok {
		return errors.Errorf("client %s not connected to table %s", clientID, t.ID)
	}
	return c.send(msg)
}

func (t *Table) ConnectionCount() int {
	t.connections.mu.RLock()
	defer t.connections.mu.RUnlock()
	return len(t.connections.clients)
}

// broadcast sends state to every connection; a connection that fails to
// receive it is dropped.
func (t *Table) broadcast(state model.GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorw("marshal game state", "table", t.ID, "error", err)
		return
	}

	t.connections.mu.RLock()
	active := make(map[string]*client, len(t.connections.clients))
	for id, c := range t.connections.clients {
		active[id] = c
	}
	t.connections.mu.RUnlock()

	for id, c := range active {
		if err := c.send(msg); err != nil {
			log.Warnw("failed to send state", "table", t.ID, "client", id, "error", err)
			t.UnregisterConnection(id, c.conn)
			continue
		}
		log.Debugw("sent state", "table", t.ID, "client", id)
	}
}

// Close closes every connection and reports all close failures together.
func (t *Table) Close() error {
	t.connections.mu.Lock()
	clients := t.connections.clients
	t.connections.clients = make(map[string]*client)
	t.connections.mu.Unlock()

	var result error
	for id, c := range clients {
		if err := c.conn.Close(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "close %s", id))
		}
	}
	return result
}
