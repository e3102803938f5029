package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindattack4/backend/pkg/auth"
	"github.com/blindattack4/backend/pkg/httputil"
)

const ClaimsKey = "game_claims"

// GameTokenMiddleware admits only requests carrying a valid game token issued
// for the :id path parameter.
func GameTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.AuthorizeGame(tokenString, c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GameClaims returns the claims stored by GameTokenMiddleware.
func GameClaims(c *gin.Context) (*auth.GameClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.GameClaims)
	return claims, ok
}
