package handler

import (
	"net/http"

	"boardfarm/internal/model"
	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RelayHandler handles power relay operations
type RelayHandler struct {
	relayService *service.RelayService
}

// NewRelayHandler creates relay handler
func NewRelayHandler(relayService *service.RelayService) *RelayHandler {
	return &RelayHandler{relayService: relayService}
}

// Create creates a relay
// @Summary Create relay
// @Tags relays
// @Accept json
// @Produce json
// @Param request body model.CreateRelayRequest true "Relay"
// @Success 201 {object} model.Relay
// @Router /relays [post]
func (h *RelayHandler) Create(c *gin.Context) {
	var req model.CreateRelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	relay, err := h.relayService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, relay)
}

// Get gets a relay by ID
// @Summary Get relay
// @Tags relays
// @Produce json
// @Param id path string true "Relay ID"
// @Success 200 {object} model.Relay
// @Router /relays/{id} [get]
func (h *RelayHandler) Get(c *gin.Context) {
	relay, err := h.relayService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, relay)
}

// List lists relays
// @Summary List relays
// @Tags relays
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} model.Relay
// @Router /relays [get]
func (h *RelayHandler) List(c *gin.Context) {
	relays, err := h.relayService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, relays)
}

// Update updates a relay
// @Summary Update relay
// @Tags relays
// @Accept json
// @Produce json
// @Param id path string true "Relay ID"
// @Param request body model.UpdateRelayRequest true "Fields to update"
// @Success 200 {object} model.Relay
// @Router /relays/{id} [put]
func (h *RelayHandler) Update(c *gin.Context) {
	var req model.UpdateRelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	relay, err := h.relayService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, relay)
}

// MarkChecked records that an external checker reached the relay
// @Summary Mark relay checked
// @Tags relays
// @Param id path string true "Relay ID"
// @Success 200 {object} map[string]string
// @Router /relays/{id}/checked [post]
func (h *RelayHandler) MarkChecked(c *gin.Context) {
	if err := h.relayService.MarkChecked(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "check recorded"})
}

// Delete deletes a relay. Boards wired to it lose their relay reference.
// @Summary Delete relay
// @Tags relays
// @Param id path string true "Relay ID"
// @Success 200 {object} map[string]string
// @Router /relays/{id} [delete]
func (h *RelayHandler) Delete(c *gin.Context) {
	if err := h.relayService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "relay deleted"})
}
