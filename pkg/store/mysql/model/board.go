package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardStatus board operational status
type BoardStatus string

const (
	BoardStatusIdle        BoardStatus = "IDLE"
	BoardStatusBusy        BoardStatus = "BUSY"
	BoardStatusUpdatingSDK BoardStatus = "UPDATING_SDK"
	BoardStatusOffline     BoardStatus = "OFFLINE"
	BoardStatusDeactivated BoardStatus = "DEACTIVATED"
	BoardStatusError       BoardStatus = "ERROR"
)

// Valid reports whether the status is part of the enumeration.
func (s BoardStatus) Valid() bool {
	switch s {
	case BoardStatusIdle, BoardStatusBusy, BoardStatusUpdatingSDK,
		BoardStatusOffline, BoardStatusDeactivated, BoardStatusError:
		return true
	}
	return false
}

// Platform chip family of the board
type Platform string

const (
	PlatformAM62X  Platform = "AM62X"
	PlatformAM64X  Platform = "AM64X"
	PlatformAM68A  Platform = "AM68A"
	PlatformJ721E  Platform = "J721E"
	PlatformJ784S4 Platform = "J784S4"
	PlatformTDA4VM Platform = "TDA4VM"
)

// Valid reports whether the platform is part of the enumeration.
func (p Platform) Valid() bool {
	switch p {
	case PlatformAM62X, PlatformAM64X, PlatformAM68A, PlatformJ721E, PlatformJ784S4, PlatformTDA4VM:
		return true
	}
	return false
}

// DeviceType physical form factor of the unit under test
type DeviceType string

const (
	DeviceTypeEVM        DeviceType = "EVM"
	DeviceTypeSOM        DeviceType = "SOM"
	DeviceTypeStarterKit DeviceType = "STARTER_KIT"
	DeviceTypeCustom     DeviceType = "CUSTOM"
)

// Valid reports whether the device type is part of the enumeration.
func (d DeviceType) Valid() bool {
	switch d {
	case DeviceTypeEVM, DeviceTypeSOM, DeviceTypeStarterKit, DeviceTypeCustom:
		return true
	}
	return false
}

// TestFarm testing environment the board is grouped under
type TestFarm string

const (
	TestFarmHLOS        TestFarm = "HLOS"
	TestFarmRTOS        TestFarm = "RTOS"
	TestFarmBaremetal   TestFarm = "BAREMETAL"
	TestFarmStaging     TestFarm = "STAGING"
	TestFarmIntegration TestFarm = "INTEGRATION"
)

// Valid reports whether the test farm is part of the enumeration.
func (f TestFarm) Valid() bool {
	switch f {
	case TestFarmHLOS, TestFarmRTOS, TestFarmBaremetal, TestFarmStaging, TestFarmIntegration:
		return true
	}
	return false
}

// Board MySQL model for boards table. A board is one hardware unit under test
// (EVM), optionally wired to a relay port for power cycling and to the test PC
// that drives it.
type Board struct {
	ID                   string       `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name                 string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
	HardwareSerialNumber string       `gorm:"column:hardware_serial_number;type:varchar(255);not null;uniqueIndex:idx_board_serial_unique" json:"hardware_serial_number"`
	Project              string       `gorm:"column:project;type:varchar(255);index:idx_board_project" json:"project"`
	Platform             Platform     `gorm:"column:platform;type:varchar(50);not null;index:idx_board_platform" json:"platform"`
	DeviceType           DeviceType   `gorm:"column:device_type;type:varchar(50);not null" json:"device_type"`
	SDKVersion           string       `gorm:"column:sdk_version;type:varchar(100)" json:"sdk_version"`
	SoftwareVersion      string       `gorm:"column:software_version;type:varchar(100)" json:"software_version"`
	TestFarm             TestFarm     `gorm:"column:test_farm;type:varchar(50);not null;index:idx_board_test_farm" json:"test_farm"`
	Capabilities         []Capability `gorm:"many2many:board_capabilities" json:"capabilities,omitempty"`
	Status               BoardStatus  `gorm:"column:status;type:varchar(50);not null;default:OFFLINE;index:idx_board_status;index:idx_board_status_alive,priority:1" json:"status"`
	IsAlive              bool         `gorm:"column:is_alive;not null;default:false;index:idx_board_is_alive;index:idx_board_status_alive,priority:2" json:"is_alive"`
	IsLocked             bool         `gorm:"column:is_locked;not null;default:false;index:idx_board_is_locked" json:"is_locked"`
	BoardIP              *string      `gorm:"column:board_ip;type:varchar(45)" json:"board_ip,omitempty"`
	RelayID              *string      `gorm:"column:relay_id;type:char(36)" json:"relay_id,omitempty"`
	Relay                *Relay       `gorm:"foreignKey:RelayID;constraint:OnDelete:SET NULL" json:"relay,omitempty"`
	RelayPort            *int         `gorm:"column:relay_port;type:int;check:chk_board_relay_port,relay_port IS NULL OR (relay_port >= 1 AND relay_port <= 100)" json:"relay_port,omitempty"`
	TestPCID             *string      `gorm:"column:test_pc_id;type:char(36);index:idx_board_test_pc" json:"test_pc_id,omitempty"`
	TestPC               *TestPC      `gorm:"foreignKey:TestPCID;constraint:OnDelete:SET NULL" json:"test_pc,omitempty"`
	Location             string       `gorm:"column:location;type:varchar(255)" json:"location"`
	LastSDKUpdateAt      *time.Time   `gorm:"column:last_sdk_update_at" json:"last_sdk_update_at,omitempty"`
	Description          string       `gorm:"column:description;type:text" json:"description"`
	Notes                string       `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt            time.Time    `gorm:"column:created_at;not null;index:idx_board_created_at,sort:desc" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"column:updated_at;not null" json:"updated_at"`
	LastUsedAt           *time.Time   `gorm:"column:last_used_at" json:"last_used_at,omitempty"`
	LastHeartbeatAt      *time.Time   `gorm:"column:last_heartbeat_at" json:"last_heartbeat_at,omitempty"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// CanExecuteTest reports whether the board can be handed to a test run right
// now. Requires the TestPC association to be loaded; a board with no PC can
// never execute.
func (b *Board) CanExecuteTest() bool {
	return b.IsAlive &&
		b.Status == BoardStatusIdle &&
		!b.IsLocked &&
		b.TestPC != nil &&
		b.TestPC.AvailableForTesting()
}

// Healthy reports whether the board is alive and not in an error state.
func (b *Board) Healthy() bool {
	return b.IsAlive && b.Status != BoardStatusError
}
