package model

// CreateBoardRequest create board request
type CreateBoardRequest struct {
	Name                 string   `json:"name" binding:"required"`
	HardwareSerialNumber string   `json:"hardware_serial_number" binding:"required"`
	Project              string   `json:"project"`
	Platform             string   `json:"platform" binding:"required"`
	DeviceType           string   `json:"device_type" binding:"required"`
	SDKVersion           string   `json:"sdk_version"`
	SoftwareVersion      string   `json:"software_version"`
	TestFarm             string   `json:"test_farm" binding:"required"`
	CapabilityIDs        []string `json:"capability_ids"`
	Status               string   `json:"status"`
	BoardIP              *string  `json:"board_ip"`
	RelayID              *string  `json:"relay_id"`
	RelayPort            *int     `json:"relay_port"`
	TestPCID             *string  `json:"test_pc_id"`
	Location             string   `json:"location"`
	Description          string   `json:"description"`
	Notes                string   `json:"notes"`
}

// UpdateBoardRequest update board request (nil fields are left unchanged)
type UpdateBoardRequest struct {
	Name            *string   `json:"name"`
	Project         *string   `json:"project"`
	Platform        *string   `json:"platform"`
	DeviceType      *string   `json:"device_type"`
	SDKVersion      *string   `json:"sdk_version"`
	SoftwareVersion *string   `json:"software_version"`
	TestFarm        *string   `json:"test_farm"`
	CapabilityIDs   *[]string `json:"capability_ids"`
	Status          *string   `json:"status"`
	IsAlive         *bool     `json:"is_alive"`
	BoardIP         *string   `json:"board_ip"`
	RelayID         *string   `json:"relay_id"`
	RelayPort       *int      `json:"relay_port"`
	TestPCID        *string   `json:"test_pc_id"`
	Location        *string   `json:"location"`
	Description     *string   `json:"description"`
	Notes           *string   `json:"notes"`
}

// ListBoardsQuery board list filters, bound from query parameters
type ListBoardsQuery struct {
	Status       string `form:"status"`
	Name         string `form:"name"`
	Project      string `form:"project"`
	Platform     string `form:"platform"`
	TestFarm     string `form:"test_farm"`
	IsAlive      *bool  `form:"is_alive"`
	IsLocked     *bool  `form:"is_locked"`
	RelayID      string `form:"relay_id"`
	TestPCID     string `form:"test_pc_id"`
	CapabilityID string `form:"capability_id"`
}

// CreateBoardLogRequest append a log line to a board
type CreateBoardLogRequest struct {
	Level   string `json:"level"`
	Message string `json:"message" binding:"required"`
}
