package uid

import "github.com/google/uuid"

// GenerateGameID returns a random (v4) UUID used as the public game id.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s parses as a UUID.
func IsGameID(s string) bool {
	return uuid.Validate(s) == nil
}
