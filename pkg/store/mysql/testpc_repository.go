package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

// TestPCRepository handles test PC persistence in MySQL
type TestPCRepository struct {
	ds *Datastore
}

// NewTestPCRepository creates a new test PC repository
func NewTestPCRepository(ds *Datastore) *TestPCRepository {
	return &TestPCRepository{ds: ds}
}

// Create creates a new test PC
func (r *TestPCRepository) Create(ctx context.Context, pc *model.TestPC) error {
	return r.ds.DB(ctx).Create(pc).Error
}

// Get retrieves a test PC by ID
func (r *TestPCRepository) Get(ctx context.Context, id string) (*model.TestPC, error) {
	var pc model.TestPC
	err := r.ds.DB(ctx).Where("id = ?", id).First(&pc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test pc: %w", err)
	}
	return &pc, nil
}

// GetByHostname retrieves a test PC by its unique hostname
func (r *TestPCRepository) GetByHostname(ctx context.Context, hostname string) (*model.TestPC, error) {
	var pc model.TestPC
	err := r.ds.DB(ctx).Where("hostname = ?", hostname).First(&pc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test pc by hostname: %w", err)
	}
	return &pc, nil
}

// GetByIP retrieves a test PC by its unique IP address
func (r *TestPCRepository) GetByIP(ctx context.Context, ip string) (*model.TestPC, error) {
	var pc model.TestPC
	err := r.ds.DB(ctx).Where("ip_address = ?", ip).First(&pc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test pc by ip: %w", err)
	}
	return &pc, nil
}

// List retrieves test PCs, optionally filtered by status, ordered by hostname
func (r *TestPCRepository) List(ctx context.Context, status model.TestPCStatus) ([]*model.TestPC, error) {
	var pcs []*model.TestPC
	q := r.ds.DB(ctx).Order("hostname")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&pcs).Error; err != nil {
		return nil, fmt.Errorf("failed to list test pcs: %w", err)
	}
	return pcs, nil
}

// Update updates a test PC
func (r *TestPCRepository) Update(ctx context.Context, pc *model.TestPC) error {
	return r.ds.DB(ctx).Save(pc).Error
}

// UpdateHeartbeat records a heartbeat from the PC agent
func (r *TestPCRepository) UpdateHeartbeat(ctx context.Context, id string, at time.Time) error {
	result := r.ds.DB(ctx).Model(&model.TestPC{}).
		Where("id = ?", id).
		Update("last_heartbeat_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update heartbeat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithDependents deletes a test PC in one transaction: its stats history
// is removed (the only destructive cascade in the schema) while boards that
// reference it survive with test_pc_id nulled out.
func (r *TestPCRepository) DeleteWithDependents(ctx context.Context, id string) error {
	return r.ds.ExecTx(ctx, func(ctx context.Context) error {
		err := r.ds.DB(ctx).Model(&model.Board{}).
			Where("test_pc_id = ?", id).
			Update("test_pc_id", nil).Error
		if err != nil {
			return fmt.Errorf("failed to detach boards from test pc: %w", err)
		}
		if err := r.ds.DB(ctx).Where("test_pc_id = ?", id).Delete(&model.PCStats{}).Error; err != nil {
			return fmt.Errorf("failed to delete stats history: %w", err)
		}
		return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.TestPC{}).Error
	})
}
