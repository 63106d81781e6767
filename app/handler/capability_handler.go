package handler

import (
	"net/http"

	"boardfarm/internal/model"
	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CapabilityHandler handles capability catalog operations
type CapabilityHandler struct {
	capabilityService *service.CapabilityService
}

// NewCapabilityHandler creates capability handler
func NewCapabilityHandler(capabilityService *service.CapabilityService) *CapabilityHandler {
	return &CapabilityHandler{capabilityService: capabilityService}
}

// Create creates a capability
// @Summary Create capability
// @Tags capabilities
// @Accept json
// @Produce json
// @Param request body model.CreateCapabilityRequest true "Capability"
// @Success 201 {object} model.Capability
// @Router /capabilities [post]
func (h *CapabilityHandler) Create(c *gin.Context) {
	var req model.CreateCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	capability, err := h.capabilityService.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, capability)
}

// Get gets a capability by ID
// @Summary Get capability
// @Tags capabilities
// @Produce json
// @Param id path string true "Capability ID"
// @Success 200 {object} model.Capability
// @Router /capabilities/{id} [get]
func (h *CapabilityHandler) Get(c *gin.Context) {
	capability, err := h.capabilityService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, capability)
}

// List lists capabilities
// @Summary List capabilities
// @Tags capabilities
// @Produce json
// @Param name query string false "Filter by capability name"
// @Success 200 {array} model.Capability
// @Router /capabilities [get]
func (h *CapabilityHandler) List(c *gin.Context) {
	capabilities, err := h.capabilityService.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, capabilities)
}

// Update updates a capability
// @Summary Update capability
// @Tags capabilities
// @Accept json
// @Produce json
// @Param id path string true "Capability ID"
// @Param request body model.UpdateCapabilityRequest true "Fields to update"
// @Success 200 {object} model.Capability
// @Router /capabilities/{id} [put]
func (h *CapabilityHandler) Update(c *gin.Context) {
	var req model.UpdateCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	capability, err := h.capabilityService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, capability)
}

// Delete deletes a capability
// @Summary Delete capability
// @Tags capabilities
// @Param id path string true "Capability ID"
// @Success 200 {object} map[string]string
// @Router /capabilities/{id} [delete]
func (h *CapabilityHandler) Delete(c *gin.Context) {
	if err := h.capabilityService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "capability deleted"})
}
