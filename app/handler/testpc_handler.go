package handler

import (
	"net/http"

	"boardfarm/internal/model"
	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TestPCHandler handles test PC operations
type TestPCHandler struct {
	testPCService *service.TestPCService
}

// NewTestPCHandler creates test PC handler
func NewTestPCHandler(testPCService *service.TestPCService) *TestPCHandler {
	return &TestPCHandler{testPCService: testPCService}
}

// Create creates a test PC
// @Summary Create test PC
// @Tags test-pcs
// @Accept json
// @Produce json
// @Param request body model.CreateTestPCRequest true "Test PC"
// @Success 201 {object} model.TestPC
// @Router /test-pcs [post]
func (h *TestPCHandler) Create(c *gin.Context) {
	var req model.CreateTestPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pc, err := h.testPCService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pc)
}

// Get gets a test PC by ID
// @Summary Get test PC
// @Tags test-pcs
// @Produce json
// @Param id path string true "Test PC ID"
// @Success 200 {object} model.TestPC
// @Router /test-pcs/{id} [get]
func (h *TestPCHandler) Get(c *gin.Context) {
	pc, err := h.testPCService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// List lists test PCs
// @Summary List test PCs
// @Tags test-pcs
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} model.TestPC
// @Router /test-pcs [get]
func (h *TestPCHandler) List(c *gin.Context) {
	pcs, err := h.testPCService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pcs)
}

// Update updates a test PC
// @Summary Update test PC
// @Tags test-pcs
// @Accept json
// @Produce json
// @Param id path string true "Test PC ID"
// @Param request body model.UpdateTestPCRequest true "Fields to update"
// @Success 200 {object} model.TestPC
// @Router /test-pcs/{id} [put]
func (h *TestPCHandler) Update(c *gin.Context) {
	var req model.UpdateTestPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pc, err := h.testPCService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// Heartbeat records a liveness ping from the PC agent
// @Summary Test PC heartbeat
// @Tags test-pcs
// @Param id path string true "Test PC ID"
// @Success 200 {object} map[string]string
// @Router /test-pcs/{id}/heartbeat [post]
func (h *TestPCHandler) Heartbeat(c *gin.Context) {
	if err := h.testPCService.Heartbeat(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "heartbeat recorded"})
}

// Delete deletes a test PC along with its stats history
// @Summary Delete test PC
// @Tags test-pcs
// @Param id path string true "Test PC ID"
// @Success 200 {object} map[string]string
// @Router /test-pcs/{id} [delete]
func (h *TestPCHandler) Delete(c *gin.Context) {
	if err := h.testPCService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test pc deleted"})
}
