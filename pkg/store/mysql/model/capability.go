package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CapabilityName is the closed set of test capabilities a board may expose.
type CapabilityName string

const (
	CapabilityCamera    CapabilityName = "CAMERA"
	CapabilityGPIO      CapabilityName = "GPIO"
	CapabilityI2C       CapabilityName = "I2C"
	CapabilitySPI       CapabilityName = "SPI"
	CapabilityUART      CapabilityName = "UART"
	CapabilityCAN       CapabilityName = "CAN"
	CapabilityEthernet  CapabilityName = "ETHERNET"
	CapabilityUSB       CapabilityName = "USB"
	CapabilityHDMI      CapabilityName = "HDMI"
	CapabilityDisplay   CapabilityName = "DISPLAY"
	CapabilityAudio     CapabilityName = "AUDIO"
	CapabilityWiFi      CapabilityName = "WIFI"
	CapabilityBluetooth CapabilityName = "BLUETOOTH"
	CapabilityPCIe      CapabilityName = "PCIE"
)

// Valid reports whether the capability name is part of the enumeration.
func (n CapabilityName) Valid() bool {
	switch n {
	case CapabilityCamera, CapabilityGPIO, CapabilityI2C, CapabilitySPI,
		CapabilityUART, CapabilityCAN, CapabilityEthernet, CapabilityUSB,
		CapabilityHDMI, CapabilityDisplay, CapabilityAudio, CapabilityWiFi,
		CapabilityBluetooth, CapabilityPCIe:
		return true
	}
	return false
}

// Capability MySQL model for capabilities table
type Capability struct {
	ID          string         `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name        CapabilityName `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_capability_name_unique" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for Capability
func (Capability) TableName() string {
	return "capabilities"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (c *Capability) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
