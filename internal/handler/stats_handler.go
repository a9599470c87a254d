package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/usecase"
)

// StatsHandler API利用状況のハンドラー
type StatsHandler struct {
	statsUseCase usecase.StatsUseCase
}

func NewStatsHandler(statsUseCase usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{statsUseCase: statsUseCase}
}

// GetStats GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsUseCase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
