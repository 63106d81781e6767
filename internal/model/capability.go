package model

// CreateCapabilityRequest create capability request
type CreateCapabilityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCapabilityRequest update capability request (nil fields are left unchanged)
type UpdateCapabilityRequest struct {
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
