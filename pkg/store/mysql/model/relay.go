package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelayStatus relay operational status
type RelayStatus string

const (
	RelayStatusActive      RelayStatus = "ACTIVE"
	RelayStatusInactive    RelayStatus = "INACTIVE"
	RelayStatusMaintenance RelayStatus = "MAINTENANCE"
	RelayStatusFault       RelayStatus = "FAULT"
)

// Valid reports whether the status is part of the enumeration.
func (s RelayStatus) Valid() bool {
	switch s {
	case RelayStatusActive, RelayStatusInactive, RelayStatusMaintenance, RelayStatusFault:
		return true
	}
	return false
}

// RelayModelType supported relay hardware models
type RelayModelType string

const (
	RelayModelIPPower9258   RelayModelType = "IP_POWER_9258"
	RelayModelNetioPowerPDU RelayModelType = "NETIO_POWERPDU"
	RelayModelWebSwitch16   RelayModelType = "WEB_SWITCH_16"
	RelayModelUSBRelay8Ch   RelayModelType = "USB_RELAY_8CH"
)

// Valid reports whether the model type is part of the enumeration.
func (m RelayModelType) Valid() bool {
	switch m {
	case RelayModelIPPower9258, RelayModelNetioPowerPDU, RelayModelWebSwitch16, RelayModelUSBRelay8Ch:
		return true
	}
	return false
}

// macAddressPattern matches the canonical colon or hyphen separated hex-octet form.
var macAddressPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)

// ValidMACAddress reports whether s is a well-formed MAC address.
func ValidMACAddress(s string) bool {
	return macAddressPattern.MatchString(s)
}

// Relay MySQL model for relays table. A relay is the power/network switch box
// used to remotely power-cycle or isolate boards.
type Relay struct {
	ID            string         `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	RelayName     string         `gorm:"column:relay_name;type:varchar(100);not null;uniqueIndex:idx_relay_name_unique" json:"relay_name"`
	ModelType     RelayModelType `gorm:"column:model_type;type:varchar(50);not null" json:"model_type"`
	Status        RelayStatus    `gorm:"column:status;type:varchar(50);not null;default:INACTIVE;index:idx_relay_status" json:"status"`
	Location      string         `gorm:"column:location;type:varchar(255)" json:"location"`
	IPAddress     string         `gorm:"column:ip_address;type:varchar(45);not null;uniqueIndex:idx_relay_ip_unique" json:"ip_address"`
	MACAddress    string         `gorm:"column:mac_address;type:varchar(17);not null;uniqueIndex:idx_relay_mac_unique" json:"mac_address"`
	PortCount     int            `gorm:"column:port_count;type:int;not null;check:chk_relay_port_count,port_count >= 1 AND port_count <= 100" json:"port_count"`
	CreatedAt     time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	LastCheckedAt *time.Time     `gorm:"column:last_checked_at" json:"last_checked_at,omitempty"`
}

// TableName specifies the table name for Relay
func (Relay) TableName() string {
	return "relays"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (r *Relay) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Healthy reports whether the relay is usable for power cycling.
// Never persisted, always recomputed from the current status.
func (r *Relay) Healthy() bool {
	return r.Status == RelayStatusActive
}
