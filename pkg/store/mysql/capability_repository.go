package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

// CapabilityRepository handles capability persistence in MySQL
type CapabilityRepository struct {
	ds *Datastore
}

// NewCapabilityRepository creates a new capability repository
func NewCapabilityRepository(ds *Datastore) *CapabilityRepository {
	return &CapabilityRepository{ds: ds}
}

// Create creates a new capability
func (r *CapabilityRepository) Create(ctx context.Context, capability *model.Capability) error {
	return r.ds.DB(ctx).Create(capability).Error
}

// Get retrieves a capability by ID
func (r *CapabilityRepository) Get(ctx context.Context, id string) (*model.Capability, error) {
	var capability model.Capability
	err := r.ds.DB(ctx).Where("id = ?", id).First(&capability).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get capability: %w", err)
	}
	return &capability, nil
}

// GetByName retrieves a capability by its unique name
func (r *CapabilityRepository) GetByName(ctx context.Context, name model.CapabilityName) (*model.Capability, error) {
	var capability model.Capability
	err := r.ds.DB(ctx).Where("name = ?", name).First(&capability).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get capability by name: %w", err)
	}
	return &capability, nil
}

// GetByIDs retrieves multiple capabilities by their IDs
func (r *CapabilityRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Capability, error) {
	var capabilities []model.Capability
	if len(ids) == 0 {
		return capabilities, nil
	}
	err := r.ds.DB(ctx).Where("id IN ?", ids).Find(&capabilities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get capabilities by ids: %w", err)
	}
	return capabilities, nil
}

// List retrieves all capabilities ordered by name
func (r *CapabilityRepository) List(ctx context.Context) ([]*model.Capability, error) {
	var capabilities []*model.Capability
	err := r.ds.DB(ctx).Order("name").Find(&capabilities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list capabilities: %w", err)
	}
	return capabilities, nil
}

// Update updates a capability
func (r *CapabilityRepository) Update(ctx context.Context, capability *model.Capability) error {
	return r.ds.DB(ctx).Save(capability).Error
}

// Delete removes a capability and its board associations
func (r *CapabilityRepository) Delete(ctx context.Context, id string) error {
	return r.ds.ExecTx(ctx, func(ctx context.Context) error {
		if err := r.ds.DB(ctx).Exec("DELETE FROM board_capabilities WHERE capability_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach capability from boards: %w", err)
		}
		return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.Capability{}).Error
	})
}
