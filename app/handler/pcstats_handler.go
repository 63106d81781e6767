package handler

import (
	"net/http"
	"strconv"

	"boardfarm/internal/model"
	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PCStatsHandler handles performance snapshot ingest and queries
type PCStatsHandler struct {
	statsService *service.PCStatsService
}

// NewPCStatsHandler creates stats handler
func NewPCStatsHandler(statsService *service.PCStatsService) *PCStatsHandler {
	return &PCStatsHandler{statsService: statsService}
}

// Record appends a snapshot
// @Summary Record PC stats snapshot
// @Tags pc-stats
// @Accept json
// @Produce json
// @Param request body model.RecordPCStatsRequest true "Snapshot"
// @Success 201 {object} model.PCStats
// @Router /pc-stats [post]
func (h *PCStatsHandler) Record(c *gin.Context) {
	var req model.RecordPCStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	stats, err := h.statsService.Record(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stats)
}

// Get gets a snapshot by ID
// @Summary Get PC stats snapshot
// @Tags pc-stats
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} model.PCStats
// @Router /pc-stats/{id} [get]
func (h *PCStatsHandler) Get(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// List lists snapshots newest first
// @Summary List PC stats snapshots
// @Tags pc-stats
// @Produce json
// @Param test_pc_id query string false "Filter by test PC"
// @Param status query string false "Filter by status"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} model.PCStats
// @Router /pc-stats [get]
func (h *PCStatsHandler) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	stats, err := h.statsService.List(c.Request.Context(), c.Query("test_pc_id"), c.Query("status"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListForPC lists snapshots for one test PC, newest first
// @Summary List stats for a test PC
// @Tags test-pcs
// @Produce json
// @Param id path string true "Test PC ID"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} model.PCStats
// @Router /test-pcs/{id}/stats [get]
func (h *PCStatsHandler) ListForPC(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	stats, err := h.statsService.List(c.Request.Context(), c.Param("id"), c.Query("status"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// LatestForPC returns the most recent snapshot for one test PC
// @Summary Latest stats for a test PC
// @Tags test-pcs
// @Produce json
// @Param id path string true "Test PC ID"
// @Success 200 {object} model.PCStats
// @Router /test-pcs/{id}/stats/latest [get]
func (h *PCStatsHandler) LatestForPC(c *gin.Context) {
	stats, err := h.statsService.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
