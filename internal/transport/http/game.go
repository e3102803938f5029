package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/service/game"
	"github.com/blindattack4/backend/internal/transport/http/middleware"
	"github.com/blindattack4/backend/internal/validator"
	"github.com/blindattack4/backend/pkg/auth"
	"github.com/blindattack4/backend/pkg/httputil"
	"github.com/blindattack4/backend/pkg/uid"
)

var tracer = otel.Tracer("github.com/blindattack4/backend/internal/transport/http")

// TurnNotifier is told about turns played over REST, so an open game socket
// stays in sync.
type TurnNotifier interface {
	NotifyTurn(gameID string, turn game.TurnResult, view game.View)
}

type GameHandler struct {
	Service           *game.Service
	DefaultDifficulty domain.Difficulty
	TokenTTL          time.Duration
	SecureCookies     bool
	Notifier          TurnNotifier // optional
}

func NewGameHandler(svc *game.Service, defaultDifficulty domain.Difficulty, tokenTTL time.Duration, secureCookies bool) *GameHandler {
	return &GameHandler{
		Service:           svc,
		DefaultDifficulty: defaultDifficulty,
		TokenTTL:          tokenTTL,
		SecureCookies:     secureCookies,
	}
}

type createGameRequest struct {
	Difficulty string `json:"difficulty" validate:"omitempty,difficulty"`
}

type createGameResponse struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	View   game.View `json:"view"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Turn game.TurnResult `json:"turn"`
	View game.View       `json:"view"`
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	if err := validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown difficulty"})
		return
	}

	difficulty := h.DefaultDifficulty
	if req.Difficulty != "" {
		difficulty, _ = domain.ParseDifficulty(req.Difficulty)
	}

	session, err := h.Service.Sessions.CreateSession(difficulty)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateGameToken(session.GameID, string(difficulty))
	if err != nil {
		if rmErr := h.Service.Sessions.RemoveSession(session.GameID); rmErr != nil {
			slog.Warn("[HTTP] Failed to discard session after token error", "game_id", session.GameID, "error", rmErr)
		}
		respondError(c, err)
		return
	}
	httputil.SetGameCookie(c.Writer, token, h.TokenTTL, h.SecureCookies)

	c.JSON(http.StatusCreated, createGameResponse{
		GameID: session.GameID,
		Token:  token,
		View:   session.View(),
	})
}

// session resolves the game named by the request's token claims, falling back
// to the path id on routes without the token middleware.
func (h *GameHandler) session(c *gin.Context) (*game.Session, bool) {
	gameID := c.Param("id")
	if claims, ok := middleware.GameClaims(c); ok {
		gameID = claims.GameID
	}

	session, err := h.Service.Sessions.Session(gameID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return session, true
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// MakeMove plays the human column and, if the game continues, the AI reply.
func (h *GameHandler) MakeMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}

	_, span := tracer.Start(c.Request.Context(), "game.PlayTurn", trace.WithAttributes(
		attribute.String("game.id", session.GameID),
		attribute.String("game.difficulty", string(session.Difficulty)),
		attribute.Int("game.column", *req.Column),
	))
	turn, err := session.PlayTurn(*req.Column)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "move rejected")
		span.End()
		respondError(c, err)
		return
	}
	if turn.AI != nil {
		span.SetAttributes(attribute.Int("game.ai_column", turn.AI.Column), attribute.String("game.ai_reason", string(turn.AIReason)))
	}
	span.End()

	view := session.View()
	if h.Notifier != nil {
		h.Notifier.NotifyTurn(session.GameID, turn, view)
	}
	c.JSON(http.StatusOK, moveResponse{Turn: turn, View: view})
}

func (h *GameHandler) ValidMoves(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"validMoves": session.ValidMoves()})
}

// History is withheld in blind mode until the game is over, since the move
// list reveals the board.
func (h *GameHandler) History(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if !session.BoardVisible() {
		respondError(c, domain.ErrGameInProgress)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": session.MoveHistory()})
}

func (h *GameHandler) Summary(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	summary, err := session.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// QuitGame discards the session; its move log is kept for replay.
func (h *GameHandler) QuitGame(c *gin.Context) {
	if err := h.Service.Sessions.RemoveSession(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	httputil.ClearGameCookie(c.Writer)
	c.Status(http.StatusNoContent)
}

// ReplayFrame serves one step of a finished game; without ?step the final
// position is returned.
func (h *GameHandler) ReplayFrame(c *gin.Context) {
	step := domain.Rows * domain.Columns
	if raw := c.Query("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "step must be an integer"})
			return
		}
		step = parsed
	}

	gameID := c.Param("id")
	if !uid.IsGameID(gameID) {
		respondError(c, domain.ErrReplayNotFound)
		return
	}

	frame, err := h.Service.ReplayFrame(c.Request.Context(), gameID, step)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, frame)
}
