package handler

import (
	"net/http"

	"boardfarm/internal/model"
	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// boardLogPageSize newest log lines returned per board
const boardLogPageSize = 50

// BoardHandler handles board inventory, lock and log operations
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates board handler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// Create creates a board
// @Summary Create board
// @Tags boards
// @Accept json
// @Produce json
// @Param request body model.CreateBoardRequest true "Board"
// @Success 201 {object} model.Board
// @Router /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req model.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// Get gets a board with its relay, test PC and capabilities
// @Summary Get board
// @Tags boards
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} model.Board
// @Router /boards/{id} [get]
func (h *BoardHandler) Get(c *gin.Context) {
	board, err := h.boardService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// List lists boards with optional filters
// @Summary List boards
// @Tags boards
// @Produce json
// @Param status query string false "Filter by status"
// @Param name query string false "Substring match on name"
// @Param project query string false "Substring match on project"
// @Param platform query string false "Filter by platform"
// @Param test_farm query string false "Filter by test farm"
// @Param is_alive query bool false "Filter by liveness"
// @Param is_locked query bool false "Filter by lock state"
// @Param relay_id query string false "Filter by relay"
// @Param test_pc_id query string false "Filter by test PC"
// @Param capability_id query string false "Filter by capability"
// @Success 200 {array} model.Board
// @Router /boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	var query model.ListBoardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid query: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	boards, err := h.boardService.List(c.Request.Context(), &query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// Update updates a board
// @Summary Update board
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body model.UpdateBoardRequest true "Fields to update"
// @Success 200 {object} model.Board
// @Router /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	var req model.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	board, err := h.boardService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Lock claims a board for exclusive use. Returns 409 when another caller
// already holds the lock.
// @Summary Lock board
// @Tags boards
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /boards/{id}/lock [post]
func (h *BoardHandler) Lock(c *gin.Context) {
	acquired, err := h.boardService.Lock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !acquired {
		c.JSON(http.StatusConflict, gin.H{"error": "board already locked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "board locked"})
}

// Unlock releases the exclusive-use claim
// @Summary Unlock board
// @Tags boards
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Router /boards/{id}/unlock [post]
func (h *BoardHandler) Unlock(c *gin.Context) {
	released, err := h.boardService.Unlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !released {
		c.JSON(http.StatusConflict, gin.H{"error": "board was not locked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "board unlocked"})
}

// Heartbeat records a liveness ping from the board
// @Summary Board heartbeat
// @Tags boards
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Router /boards/{id}/heartbeat [post]
func (h *BoardHandler) Heartbeat(c *gin.Context) {
	if err := h.boardService.Heartbeat(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "heartbeat recorded"})
}

// AddLog appends a log line to a board
// @Summary Add board log
// @Tags boards
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body model.CreateBoardLogRequest true "Log line"
// @Success 201 {object} model.BoardLog
// @Router /boards/{id}/logs [post]
func (h *BoardHandler) AddLog(c *gin.Context) {
	var req model.CreateBoardLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	log, err := h.boardService.AddLog(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// ListLogs lists the newest log lines for a board
// @Summary List board logs
// @Tags boards
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]interface{}
// @Router /boards/{id}/logs [get]
func (h *BoardHandler) ListLogs(c *gin.Context) {
	logs, total, err := h.boardService.ListLogs(c.Request.Context(), c.Param("id"), boardLogPageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total})
}

// Delete deletes a board and its log history
// @Summary Delete board
// @Tags boards
// @Param id path string true "Board ID"
// @Success 200 {object} map[string]string
// @Router /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.boardService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "board deleted"})
}
