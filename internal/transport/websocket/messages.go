package websocket

import "github.com/blindattack4/backend/internal/service/game"

// Client message types
const (
	TypeMakeMove = "make_move"
	TypeGetState = "get_state"
	TypeQuit     = "quit"
)

// Server message types
const (
	TypeGameState = "game_state"
	TypeMoveMade  = "move_made"
	TypeGameOver  = "game_over"
	TypeError     = "error"
)

type ClientMessage struct {
	Type   string `json:"type" validate:"required,oneof=make_move get_state quit"`
	Column *int   `json:"column,omitempty" validate:"required_if=Type make_move"`
}

type ServerMessage struct {
	Type    string           `json:"type"`
	GameID  string           `json:"gameId,omitempty"`
	Turn    *game.TurnResult `json:"turn,omitempty"`
	View    *game.View       `json:"view,omitempty"`
	Summary *game.Summary    `json:"summary,omitempty"`
	Message string           `json:"message,omitempty"`
}
