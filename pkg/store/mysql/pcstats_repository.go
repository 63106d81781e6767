package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

// PCStatsRepository handles stats snapshot persistence in MySQL.
// Snapshots are append-only: there is deliberately no update method.
type PCStatsRepository struct {
	ds *Datastore
}

// NewPCStatsRepository creates a new stats repository
func NewPCStatsRepository(ds *Datastore) *PCStatsRepository {
	return &PCStatsRepository{ds: ds}
}

// Create appends a new stats snapshot
func (r *PCStatsRepository) Create(ctx context.Context, stats *model.PCStats) error {
	return r.ds.DB(ctx).Create(stats).Error
}

// Get retrieves a snapshot by ID
func (r *PCStatsRepository) Get(ctx context.Context, id string) (*model.PCStats, error) {
	var stats model.PCStats
	err := r.ds.DB(ctx).Where("id = ?", id).First(&stats).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}

// StatsFilter narrows stats listings
type StatsFilter struct {
	TestPCID string
	Status   model.PCStatsStatus
	Limit    int
}

// List retrieves snapshots newest first
func (r *PCStatsRepository) List(ctx context.Context, filter StatsFilter) ([]*model.PCStats, error) {
	var stats []*model.PCStats
	q := r.ds.DB(ctx).Order("timestamp DESC")
	if filter.TestPCID != "" {
		q = q.Where("test_pc_id = ?", filter.TestPCID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}
	return stats, nil
}

// LatestForPC retrieves the most recent snapshot for a test PC
func (r *PCStatsRepository) LatestForPC(ctx context.Context, testPCID string) (*model.PCStats, error) {
	var stats model.PCStats
	err := r.ds.DB(ctx).
		Where("test_pc_id = ?", testPCID).
		Order("timestamp DESC").
		First(&stats).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest stats: %w", err)
	}
	return &stats, nil
}

// CountForPC counts snapshots recorded for a test PC
func (r *PCStatsRepository) CountForPC(ctx context.Context, testPCID string) (int64, error) {
	var count int64
	err := r.ds.DB(ctx).Model(&model.PCStats{}).
		Where("test_pc_id = ?", testPCID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count stats: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes snapshots recorded before the cutoff and returns the
// number of rows pruned. Used by the retention job.
func (r *PCStatsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.ds.DB(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.PCStats{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune stats: %w", result.Error)
	}
	return result.RowsAffected, nil
}
