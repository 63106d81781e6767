package model

// CreateTestPCRequest create test PC request
type CreateTestPCRequest struct {
	Hostname       string  `json:"hostname" binding:"required"`
	IPAddress      string  `json:"ip_address" binding:"required"`
	DomainName     *string `json:"domain_name"`
	Status         string  `json:"status"`
	OSVersion      string  `json:"os_version" binding:"required"`
	DiskMountPoint string  `json:"disk_mount_point"`
	Location       string  `json:"location"`
	Comment        string  `json:"comment"`
}

// UpdateTestPCRequest update test PC request (nil fields are left unchanged)
type UpdateTestPCRequest struct {
	Hostname       *string `json:"hostname"`
	IPAddress      *string `json:"ip_address"`
	DomainName     *string `json:"domain_name"`
	Status         *string `json:"status"`
	OSVersion      *string `json:"os_version"`
	DiskMountPoint *string `json:"disk_mount_point"`
	Location       *string `json:"location"`
	Comment        *string `json:"comment"`
}
