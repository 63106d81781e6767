package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestPCStatus test PC operational status
type TestPCStatus string

const (
	TestPCStatusOnline       TestPCStatus = "ONLINE"
	TestPCStatusOffline      TestPCStatus = "OFFLINE"
	TestPCStatusMaintenance  TestPCStatus = "MAINTENANCE"
	TestPCStatusInitializing TestPCStatus = "INITIALIZING"
)

// Valid reports whether the status is part of the enumeration.
func (s TestPCStatus) Valid() bool {
	switch s {
	case TestPCStatusOnline, TestPCStatusOffline, TestPCStatusMaintenance, TestPCStatusInitializing:
		return true
	}
	return false
}

// OSVersion operating system images supported on test PCs
type OSVersion string

const (
	OSUbuntu2004 OSVersion = "UBUNTU_20_04"
	OSUbuntu2204 OSVersion = "UBUNTU_22_04"
	OSUbuntu2404 OSVersion = "UBUNTU_24_04"
	OSWindows10  OSVersion = "WINDOWS_10"
	OSWindows11  OSVersion = "WINDOWS_11"
)

// Valid reports whether the OS version is part of the enumeration.
func (v OSVersion) Valid() bool {
	switch v {
	case OSUbuntu2004, OSUbuntu2204, OSUbuntu2404, OSWindows10, OSWindows11:
		return true
	}
	return false
}

// TestPC MySQL model for test_pcs table. A test PC drives test execution
// against the boards attached to it.
type TestPC struct {
	ID              string       `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Hostname        string       `gorm:"column:hostname;type:varchar(255);not null;uniqueIndex:idx_testpc_hostname_unique" json:"hostname"`
	IPAddress       string       `gorm:"column:ip_address;type:varchar(45);not null;uniqueIndex:idx_testpc_ip_unique" json:"ip_address"`
	DomainName      *string      `gorm:"column:domain_name;type:varchar(255)" json:"domain_name,omitempty"`
	Status          TestPCStatus `gorm:"column:status;type:varchar(50);not null;default:OFFLINE;index:idx_testpc_status" json:"status"`
	OSVersion       OSVersion    `gorm:"column:os_version;type:varchar(50);not null;index:idx_testpc_os_version" json:"os_version"`
	DiskMountPoint  string       `gorm:"column:disk_mount_point;type:varchar(255)" json:"disk_mount_point"`
	Location        string       `gorm:"column:location;type:varchar(255)" json:"location"`
	Comment         string       `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt       time.Time    `gorm:"column:created_at;not null;index:idx_testpc_created_at" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"column:updated_at;not null" json:"updated_at"`
	LastHeartbeatAt *time.Time   `gorm:"column:last_heartbeat_at" json:"last_heartbeat_at,omitempty"`
}

// TableName specifies the table name for TestPC
func (TestPC) TableName() string {
	return "test_pcs"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (p *TestPC) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Online reports whether the PC is fully up.
func (p *TestPC) Online() bool {
	return p.Status == TestPCStatusOnline
}

// AvailableForTesting reports whether the PC can accept test work.
// A PC that is still initializing is already schedulable.
func (p *TestPC) AvailableForTesting() bool {
	return p.Status == TestPCStatusOnline || p.Status == TestPCStatusInitializing
}
