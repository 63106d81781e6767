package model

// CreateRelayRequest create relay request
type CreateRelayRequest struct {
	RelayName  string `json:"relay_name" binding:"required"`
	ModelType  string `json:"model_type" binding:"required"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	IPAddress  string `json:"ip_address" binding:"required"`
	MACAddress string `json:"mac_address" binding:"required"`
	PortCount  int    `json:"port_count" binding:"required"`
}

// UpdateRelayRequest update relay request (nil fields are left unchanged)
type UpdateRelayRequest struct {
	RelayName  *string `json:"relay_name"`
	ModelType  *string `json:"model_type"`
	Status     *string `json:"status"`
	Location   *string `json:"location"`
	IPAddress  *string `json:"ip_address"`
	MACAddress *string `json:"mac_address"`
	PortCount  *int    `json:"port_count"`
}
