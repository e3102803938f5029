package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blindattack4/backend/internal/config"
	"github.com/blindattack4/backend/pkg/uid"
)

var (
	ErrInvalidToken  = errors.New("invalid game token")
	ErrGameMismatch  = errors.New("game token belongs to another game")
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// GameClaims binds a client to exactly one game session.
type GameClaims struct {
	GameID     string `json:"game_id"`
	Difficulty string `json:"difficulty"`
	jwt.RegisteredClaims
}

// GenerateGameToken creates a token for gameID, valid for the configured
// game token TTL.
func GenerateGameToken(gameID, difficulty string) (string, error) {
	cfg := config.AppConfig
	if cfg == nil || cfg.JWTSecret == "" {
		return "", ErrMissingSecret
	}

	tokenID, err := uid.GenerateTokenID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &GameClaims{
		GameID:     gameID,
		Difficulty: difficulty,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.GameTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateGameToken checks signature and expiry and returns the claims.
func ValidateGameToken(tokenString string) (*GameClaims, error) {
	cfg := config.AppConfig
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// AuthorizeGame validates the token and checks it was issued for gameID.
func AuthorizeGame(tokenString, gameID string) (*GameClaims, error) {
	claims, err := ValidateGameToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.GameID != gameID {
		return nil, ErrGameMismatch
	}
	return claims, nil
}
