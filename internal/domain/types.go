package domain

// Version of the game engine reported to clients.
const Version = "1.1.0"

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// NoMove is returned where a column is expected but none exists.
const NoMove = -1

// NoRow is returned by NextRow for a full column.
const NoRow = -1

// Side is one of the two move-making identities.
type Side int8

const (
	Player Side = 1
	AI     Side = 2
)

func (s Side) Opponent() Side {
	if s == Player {
		return AI
	}
	return Player
}

func (s Side) Cell() Cell {
	return Cell(s)
}

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}

// Cell is the content of a single board position.
type Cell int8

const (
	Empty      Cell = 0
	PlayerDisc Cell = Cell(Player)
	AIDisc     Cell = Cell(AI)
)

// Side reports the owner of a non-empty cell.
func (c Cell) Side() (Side, bool) {
	switch c {
	case PlayerDisc:
		return Player, true
	case AIDisc:
		return AI, true
	default:
		return 0, false
	}
}

// Move is one entry of the move log. Immutable once appended.
type Move struct {
	Column int  `json:"column"`
	Side   Side `json:"side"`
	Row    int  `json:"row"`
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Outcome is the terminal state of a board, if any.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner Side       `json:"winner,omitempty"`
}

func (o Outcome) IsFinished() bool {
	return o.Status == StatusWon || o.Status == StatusDraw
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove       Error = "invalid move"
	ErrColumnOutOfRange  Error = "column out of range"
	ErrColumnFull        Error = "column is full"
	ErrGameOver          Error = "game is already over"
	ErrUnknownDifficulty Error = "unknown difficulty"
	ErrReplayCorrupt     Error = "recorded move cannot be replayed"
	ErrGameInProgress    Error = "game is still in progress"
	ErrSessionNotFound   Error = "session not found"
	ErrReplayNotFound    Error = "replay not found"
)

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = Player
	case "ai":
		*s = AI
	default:
		return Error("unknown side: " + string(text))
	}
	return nil
}
