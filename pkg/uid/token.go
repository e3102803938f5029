package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateTokenID returns a time-ordered (v7) UUID for the jti claim of a
// game token.
func GenerateTokenID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	return id.String(), nil
}
