package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PCStatsStatus health classification of a stats snapshot
type PCStatsStatus string

const (
	PCStatsStatusHealthy  PCStatsStatus = "HEALTHY"
	PCStatsStatusWarning  PCStatsStatus = "WARNING"
	PCStatsStatusCritical PCStatsStatus = "CRITICAL"
	PCStatsStatusUnknown  PCStatsStatus = "UNKNOWN"
)

// Valid reports whether the status is part of the enumeration.
func (s PCStatsStatus) Valid() bool {
	switch s {
	case PCStatsStatusHealthy, PCStatsStatusWarning, PCStatsStatusCritical, PCStatsStatusUnknown:
		return true
	}
	return false
}

// PCStats MySQL model for pc_stats table. One immutable performance snapshot
// for a test PC, appended by the external stats scheduler. Rows are never
// updated; old rows are removed by the retention job.
type PCStats struct {
	ID             string        `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	TestPCID       string        `gorm:"column:test_pc_id;type:char(36);not null;index:idx_stats_pc_time,priority:1" json:"test_pc_id"`
	TestPC         *TestPC       `gorm:"foreignKey:TestPCID;constraint:OnDelete:CASCADE" json:"test_pc,omitempty"`
	Status         PCStatsStatus `gorm:"column:status;type:varchar(50);not null;default:UNKNOWN;index:idx_stats_status_time,priority:1" json:"status"`
	MemoryTotalGB  float64       `gorm:"column:memory_total_gb;not null;default:0;check:chk_stats_memory_total,memory_total_gb >= 0" json:"memory_total_gb"`
	MemoryUsedGB   float64       `gorm:"column:memory_used_gb;not null;default:0;check:chk_stats_memory_used,memory_used_gb >= 0" json:"memory_used_gb"`
	MemoryFreeGB   float64       `gorm:"column:memory_free_gb;not null;default:0;check:chk_stats_memory_free,memory_free_gb >= 0" json:"memory_free_gb"`
	MemoryPercent  int           `gorm:"column:memory_percent;type:int;not null;default:0;check:chk_stats_memory_percent,memory_percent >= 0 AND memory_percent <= 100" json:"memory_percent"`
	DiskTotalGB    float64       `gorm:"column:disk_total_gb;not null;default:0" json:"disk_total_gb"`
	DiskUsedGB     float64       `gorm:"column:disk_used_gb;not null;default:0" json:"disk_used_gb"`
	DiskFreeGB     float64       `gorm:"column:disk_free_gb;not null;default:0" json:"disk_free_gb"`
	DiskPercent    int           `gorm:"column:disk_percent;type:int;not null;default:0;check:chk_stats_disk_percent,disk_percent >= 0 AND disk_percent <= 100" json:"disk_percent"`
	CPUPercent     float64       `gorm:"column:cpu_percent;not null;default:0" json:"cpu_percent"`
	NetworkReadMB  float64       `gorm:"column:network_read_mb;not null;default:0" json:"network_read_mb"`
	NetworkWriteMB float64       `gorm:"column:network_write_mb;not null;default:0" json:"network_write_mb"`
	ProcessCount   int           `gorm:"column:process_count;type:int;not null;default:0" json:"process_count"`
	ThreadCount    int           `gorm:"column:thread_count;type:int;not null;default:0" json:"thread_count"`
	Timestamp      time.Time     `gorm:"column:timestamp;not null;index:idx_stats_timestamp,sort:desc;index:idx_stats_pc_time,priority:2,sort:desc;index:idx_stats_status_time,priority:2,sort:desc" json:"timestamp"`
}

// TableName specifies the table name for PCStats
func (PCStats) TableName() string {
	return "pc_stats"
}

// BeforeCreate assigns a UUID primary key and stamps the snapshot time
func (s *PCStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
	return nil
}

// MemoryAvailableGB derives the headroom from the totals in the snapshot.
func (s *PCStats) MemoryAvailableGB() float64 {
	return s.MemoryTotalGB - s.MemoryUsedGB
}
