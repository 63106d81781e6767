package model

import "time"

// RecordPCStatsRequest append-only stats ingest request, posted by the
// external stats scheduler every few minutes per PC
type RecordPCStatsRequest struct {
	TestPCID       string     `json:"test_pc_id" binding:"required"`
	Status         string     `json:"status"`
	MemoryTotalGB  float64    `json:"memory_total_gb"`
	MemoryUsedGB   float64    `json:"memory_used_gb"`
	MemoryFreeGB   float64    `json:"memory_free_gb"`
	MemoryPercent  int        `json:"memory_percent"`
	DiskTotalGB    float64    `json:"disk_total_gb"`
	DiskUsedGB     float64    `json:"disk_used_gb"`
	DiskFreeGB     float64    `json:"disk_free_gb"`
	DiskPercent    int        `json:"disk_percent"`
	CPUPercent     float64    `json:"cpu_percent"`
	NetworkReadMB  float64    `json:"network_read_mb"`
	NetworkWriteMB float64    `json:"network_write_mb"`
	ProcessCount   int        `json:"process_count"`
	ThreadCount    int        `json:"thread_count"`
	Timestamp      *time.Time `json:"timestamp"` // defaults to now when omitted
}
