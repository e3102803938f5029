package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/service/game"
	"github.com/blindattack4/backend/internal/validator"
	"github.com/blindattack4/backend/pkg/auth"
	"github.com/blindattack4/backend/pkg/httputil"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

// NewHandler creates a handler accepting upgrades from allowedOrigins, or
// from anywhere when the list is empty.
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket authenticates the game token before upgrading, so a bad
// token gets a plain HTTP 401.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString, err := httputil.GetTokenFromRequest(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims, err := auth.ValidateGameToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	session, err := h.SessionManager.Session(claims.GameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("[WS] Upgrade error", "error", err)
		return
	}

	h.handleConnection(conn, session)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, session *game.Session) {
	gameID := session.GameID
	client := h.ConnManager.AddConnection(gameID, conn)
	slog.Info("[WS] Connection opened", "game_id", gameID)

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.RemoveConnectionIfMatching(gameID, client)
		slog.Info("[WS] Connection closed", "game_id", gameID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	view := session.View()
	client.Send(ServerMessage{Type: TypeGameState, GameID: gameID, View: &view})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("[WS] Client disconnected unexpectedly", "game_id", gameID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(ServerMessage{Type: TypeError, Message: "Invalid message format"})
			continue
		}
		if err := validator.Struct(msg); err != nil {
			client.Send(ServerMessage{Type: TypeError, Message: "Invalid message: " + err.Error()})
			continue
		}

		if !h.processMessage(client, session, msg) {
			return
		}
	}
}

// processMessage routes one client message; false ends the connection.
func (h *Handler) processMessage(client *Connection, session *game.Session, msg ClientMessage) bool {
	gameID := session.GameID

	switch msg.Type {
	case TypeGetState:
		view := session.View()
		client.Send(ServerMessage{Type: TypeGameState, GameID: gameID, View: &view})

	case TypeMakeMove:
		turn, err := session.PlayTurn(*msg.Column)
		if err != nil {
			client.Send(ServerMessage{Type: TypeError, GameID: gameID, Message: moveErrorMessage(err)})
			return true
		}

		view := session.View()
		client.Send(ServerMessage{Type: TypeMoveMade, GameID: gameID, Turn: &turn, View: &view})

		if turn.Outcome.IsFinished() {
			summary, err := session.Summary()
			if err == nil {
				client.Send(ServerMessage{Type: TypeGameOver, GameID: gameID, Summary: &summary})
			}
			slog.Info("[WS] Game over", "game_id", gameID, "status", turn.Outcome.Status, "winner", turn.Outcome.Winner)
		}

	case TypeQuit:
		if err := h.SessionManager.RemoveSession(gameID); err != nil {
			slog.Warn("[WS] Quit for unknown session", "game_id", gameID, "error", err)
		}
		return false
	}
	return true
}

// NotifyTurn pushes a turn played outside the socket to the game's open
// connection, if there is one.
func (h *Handler) NotifyTurn(gameID string, turn game.TurnResult, view game.View) {
	msg := ServerMessage{Type: TypeMoveMade, GameID: gameID, Turn: &turn, View: &view}
	if err := h.ConnManager.SendMessage(gameID, msg); err != nil {
		slog.Warn("[WS] Failed to push turn", "game_id", gameID, "error", err)
	}
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrGameOver):
		return "Game is already over"
	case errors.Is(err, domain.ErrColumnFull):
		return "Column is full"
	case errors.Is(err, domain.ErrColumnOutOfRange):
		return "Column out of range"
	default:
		return "Move rejected"
	}
}
