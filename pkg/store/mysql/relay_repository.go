package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

// RelayRepository handles relay persistence in MySQL
type RelayRepository struct {
	ds *Datastore
}

// NewRelayRepository creates a new relay repository
func NewRelayRepository(ds *Datastore) *RelayRepository {
	return &RelayRepository{ds: ds}
}

// Create creates a new relay
func (r *RelayRepository) Create(ctx context.Context, relay *model.Relay) error {
	return r.ds.DB(ctx).Create(relay).Error
}

// Get retrieves a relay by ID
func (r *RelayRepository) Get(ctx context.Context, id string) (*model.Relay, error) {
	var relay model.Relay
	err := r.ds.DB(ctx).Where("id = ?", id).First(&relay).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relay: %w", err)
	}
	return &relay, nil
}

// GetByName retrieves a relay by its unique name
func (r *RelayRepository) GetByName(ctx context.Context, name string) (*model.Relay, error) {
	var relay model.Relay
	err := r.ds.DB(ctx).Where("relay_name = ?", name).First(&relay).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relay by name: %w", err)
	}
	return &relay, nil
}

// GetByIP retrieves a relay by its unique IP address
func (r *RelayRepository) GetByIP(ctx context.Context, ip string) (*model.Relay, error) {
	var relay model.Relay
	err := r.ds.DB(ctx).Where("ip_address = ?", ip).First(&relay).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relay by ip: %w", err)
	}
	return &relay, nil
}

// GetByMAC retrieves a relay by its unique MAC address
func (r *RelayRepository) GetByMAC(ctx context.Context, mac string) (*model.Relay, error) {
	var relay model.Relay
	err := r.ds.DB(ctx).Where("mac_address = ?", mac).First(&relay).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get relay by mac: %w", err)
	}
	return &relay, nil
}

// List retrieves relays, optionally filtered by status, ordered by name
func (r *RelayRepository) List(ctx context.Context, status model.RelayStatus) ([]*model.Relay, error) {
	var relays []*model.Relay
	q := r.ds.DB(ctx).Order("relay_name")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&relays).Error; err != nil {
		return nil, fmt.Errorf("failed to list relays: %w", err)
	}
	return relays, nil
}

// Update updates a relay
func (r *RelayRepository) Update(ctx context.Context, relay *model.Relay) error {
	return r.ds.DB(ctx).Save(relay).Error
}

// UpdateLastChecked records the time of the latest external health check
func (r *RelayRepository) UpdateLastChecked(ctx context.Context, id string, checkedAt time.Time) error {
	return r.ds.DB(ctx).Model(&model.Relay{}).
		Where("id = ?", id).
		Update("last_checked_at", checkedAt).Error
}

// DeleteWithBoardDetach deletes a relay after clearing the reference on every
// board wired to it. Boards survive the delete with relay and relay_port
// nulled out; the whole operation is one transaction.
func (r *RelayRepository) DeleteWithBoardDetach(ctx context.Context, id string) error {
	return r.ds.ExecTx(ctx, func(ctx context.Context) error {
		err := r.ds.DB(ctx).Model(&model.Board{}).
			Where("relay_id = ?", id).
			Updates(map[string]interface{}{
				"relay_id":   nil,
				"relay_port": nil,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to detach boards from relay: %w", err)
		}
		return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.Relay{}).Error
	})
}
