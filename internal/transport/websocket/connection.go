package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Connection wraps a socket with the write lock gorilla requires: only one
// goroutine may write at a time.
type Connection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *Connection) Send(message ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *Connection) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager tracks the single live socket of each game.
type ConnectionManager struct {
	connections map[string]*Connection // gameID → Connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
	}
}

// AddConnection registers conn for gameID, closing any older socket of the
// same game.
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) *Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if old, exists := cm.connections[gameID]; exists {
		old.conn.Close()
	}

	c := &Connection{conn: conn}
	cm.connections[gameID] = c
	return c
}

// RemoveConnectionIfMatching avoids closing a newer connection when an old
// one for the same game shuts down.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, c *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[gameID]; exists && current == c {
		current.conn.Close()
		delete(cm.connections, gameID)
	}
}

// SendMessage delivers to the game's socket; a game without one is ignored.
func (cm *ConnectionManager) SendMessage(gameID string, message ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.connections[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}
	return c.Send(message)
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return len(cm.connections)
}

// CloseAll closes every socket, used at shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for gameID, c := range cm.connections {
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.conn.Close()
		delete(cm.connections, gameID)
	}
}
