package service

import (
	"context"
	"fmt"
	"time"

	"boardfarm/internal/model"
	"boardfarm/pkg/logger"
	"boardfarm/pkg/store/mysql"
	storemodel "boardfarm/pkg/store/mysql/model"
)

// PCStatsService manages the append-only performance snapshot stream
type PCStatsService struct {
	statsRepo  *mysql.PCStatsRepository
	testPCRepo *mysql.TestPCRepository
}

// NewPCStatsService creates a new stats service
func NewPCStatsService(statsRepo *mysql.PCStatsRepository, testPCRepo *mysql.TestPCRepository) *PCStatsService {
	return &PCStatsService{statsRepo: statsRepo, testPCRepo: testPCRepo}
}

// Record appends a snapshot for a test PC. Snapshots are immutable; there is
// no update path.
func (s *PCStatsService) Record(ctx context.Context, req *model.RecordPCStatsRequest) (*storemodel.PCStats, error) {
	status := storemodel.PCStatsStatusUnknown
	if req.Status != "" {
		status = storemodel.PCStatsStatus(req.Status)
		if !status.Valid() {
			return nil, NewValidationError("status", fmt.Sprintf("unknown stats status: %s", req.Status))
		}
	}

	if req.MemoryPercent < 0 || req.MemoryPercent > 100 {
		return nil, NewValidationError("memory_percent", "memory percent must be between 0 and 100")
	}
	if req.DiskPercent < 0 || req.DiskPercent > 100 {
		return nil, NewValidationError("disk_percent", "disk percent must be between 0 and 100")
	}
	if req.CPUPercent < 0 || req.CPUPercent > 100 {
		return nil, NewValidationError("cpu_percent", "cpu percent must be between 0 and 100")
	}
	if req.MemoryTotalGB < 0 || req.MemoryUsedGB < 0 || req.MemoryFreeGB < 0 {
		return nil, NewValidationError("memory_total_gb", "memory sizes must be non-negative")
	}
	if req.DiskTotalGB < 0 || req.DiskUsedGB < 0 || req.DiskFreeGB < 0 {
		return nil, NewValidationError("disk_total_gb", "disk sizes must be non-negative")
	}
	if req.NetworkReadMB < 0 || req.NetworkWriteMB < 0 {
		return nil, NewValidationError("network_read_mb", "network totals must be non-negative")
	}

	pc, err := s.testPCRepo.Get(ctx, req.TestPCID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, NewValidationError("test_pc_id", fmt.Sprintf("test pc %s does not exist", req.TestPCID))
	}

	stats := &storemodel.PCStats{
		TestPCID:       req.TestPCID,
		Status:         status,
		MemoryTotalGB:  req.MemoryTotalGB,
		MemoryUsedGB:   req.MemoryUsedGB,
		MemoryFreeGB:   req.MemoryFreeGB,
		MemoryPercent:  req.MemoryPercent,
		DiskTotalGB:    req.DiskTotalGB,
		DiskUsedGB:     req.DiskUsedGB,
		DiskFreeGB:     req.DiskFreeGB,
		DiskPercent:    req.DiskPercent,
		CPUPercent:     req.CPUPercent,
		NetworkReadMB:  req.NetworkReadMB,
		NetworkWriteMB: req.NetworkWriteMB,
		ProcessCount:   req.ProcessCount,
		ThreadCount:    req.ThreadCount,
	}
	if req.Timestamp != nil {
		stats.Timestamp = *req.Timestamp
	}

	if err := s.statsRepo.Create(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to record stats: %w", err)
	}
	return stats, nil
}

// Get retrieves a snapshot by ID
func (s *PCStatsService) Get(ctx context.Context, id string) (*storemodel.PCStats, error) {
	stats, err := s.statsRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrNotFound
	}
	return stats, nil
}

// List retrieves snapshots newest first
func (s *PCStatsService) List(ctx context.Context, testPCID, status string, limit int) ([]*storemodel.PCStats, error) {
	if status != "" && !storemodel.PCStatsStatus(status).Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown stats status: %s", status))
	}
	return s.statsRepo.List(ctx, mysql.StatsFilter{
		TestPCID: testPCID,
		Status:   storemodel.PCStatsStatus(status),
		Limit:    limit,
	})
}

// Latest retrieves the most recent snapshot for a test PC
func (s *PCStatsService) Latest(ctx context.Context, testPCID string) (*storemodel.PCStats, error) {
	pc, err := s.testPCRepo.Get(ctx, testPCID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, ErrNotFound
	}
	stats, err := s.statsRepo.LatestForPC(ctx, testPCID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrNotFound
	}
	return stats, nil
}

// Prune removes snapshots older than the retention window and returns the
// number of rows removed
func (s *PCStatsService) Prune(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	pruned, err := s.statsRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		logger.InfoCtx(ctx, "pruned %d stats snapshots older than %s", pruned, cutoff.Format(time.RFC3339))
	}
	return pruned, nil
}
