package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindattack4/backend/internal/domain"
)

type difficultyInfo struct {
	domain.Profile
	MinimaxProbability float64 `json:"minimaxProbability"`
	RandomProbability  float64 `json:"randomProbability"`
}

func Difficulties(c *gin.Context) {
	infos := make([]difficultyInfo, 0, len(domain.Difficulties()))
	for _, d := range domain.Difficulties() {
		p, _ := domain.ProfileFor(d)
		infos = append(infos, difficultyInfo{
			Profile:            p,
			MinimaxProbability: p.MinimaxProbability(),
			RandomProbability:  p.RandomProbability(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"difficulties": infos})
}

func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": domain.Version})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
