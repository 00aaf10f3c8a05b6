package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlink/reconcile-backend/internal/api/dto"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

// StatsHandler reports aggregate record counts.
type StatsHandler struct {
	repo storage.Repository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.repo.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		TransactionCount: stats.TransactionCount,
		AttachmentCount:  stats.AttachmentCount,
		ImportBatchCount: stats.ImportBatchCount,
	})
}
