package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

// BoardRepository handles board persistence in MySQL
type BoardRepository struct {
	ds *Datastore
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(ds *Datastore) *BoardRepository {
	return &BoardRepository{ds: ds}
}

// Create creates a new board together with its capability associations
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.ds.DB(ctx).Create(board).Error
}

// Get retrieves a board by ID with relay, test PC and capabilities loaded
func (r *BoardRepository) Get(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	err := r.ds.DB(ctx).
		Preload("Relay").
		Preload("TestPC").
		Preload("Capabilities").
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return &board, nil
}

// GetBySerial retrieves a board by its unique hardware serial number
func (r *BoardRepository) GetBySerial(ctx context.Context, serial string) (*model.Board, error) {
	var board model.Board
	err := r.ds.DB(ctx).
		Preload("Relay").
		Preload("TestPC").
		Preload("Capabilities").
		Where("hardware_serial_number = ?", serial).
		First(&board).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get board by serial: %w", err)
	}
	return &board, nil
}

// BoardFilter narrows board listings. Zero values mean "no constraint".
type BoardFilter struct {
	Status       model.BoardStatus
	Name         string // substring match
	Project      string // substring match
	Platform     model.Platform
	TestFarm     model.TestFarm
	IsAlive      *bool
	IsLocked     *bool
	RelayID      string
	TestPCID     string
	CapabilityID string
}

// List retrieves boards matching the filter, ordered by name
func (r *BoardRepository) List(ctx context.Context, filter BoardFilter) ([]*model.Board, error) {
	var boards []*model.Board
	q := r.ds.DB(ctx).
		Preload("Relay").
		Preload("TestPC").
		Preload("Capabilities").
		Order("name")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Project != "" {
		q = q.Where("project LIKE ?", "%"+filter.Project+"%")
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	if filter.TestFarm != "" {
		q = q.Where("test_farm = ?", filter.TestFarm)
	}
	if filter.IsAlive != nil {
		q = q.Where("is_alive = ?", *filter.IsAlive)
	}
	if filter.IsLocked != nil {
		q = q.Where("is_locked = ?", *filter.IsLocked)
	}
	if filter.RelayID != "" {
		q = q.Where("relay_id = ?", filter.RelayID)
	}
	if filter.TestPCID != "" {
		q = q.Where("test_pc_id = ?", filter.TestPCID)
	}
	if filter.CapabilityID != "" {
		q = q.Where("id IN (?)", r.ds.DB(ctx).
			Table("board_capabilities").
			Select("board_id").
			Where("capability_id = ?", filter.CapabilityID))
	}

	if err := q.Find(&boards).Error; err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Update persists board column changes and, when a capability set is given,
// replaces the capability associations in the same transaction. Either both
// land or neither does.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board, capabilities *[]model.Capability) error {
	return r.ds.ExecTx(ctx, func(ctx context.Context) error {
		if err := r.ds.DB(ctx).Omit("Capabilities", "Relay", "TestPC").Save(board).Error; err != nil {
			return err
		}
		if capabilities != nil {
			return r.ReplaceCapabilities(ctx, board, *capabilities)
		}
		return nil
	})
}

// ReplaceCapabilities replaces the board's capability set
func (r *BoardRepository) ReplaceCapabilities(ctx context.Context, board *model.Board, capabilities []model.Capability) error {
	return r.ds.DB(ctx).Model(board).Association("Capabilities").Replace(capabilities)
}

// AcquireLock atomically claims the board for exclusive use. Returns true only
// for the caller that flipped is_locked from false to true; a concurrent
// claimer sees zero rows affected and loses.
func (r *BoardRepository) AcquireLock(ctx context.Context, id string) (bool, error) {
	result := r.ds.DB(ctx).Model(&model.Board{}).
		Where("id = ? AND is_locked = ?", id, false).
		Update("is_locked", true)
	if result.Error != nil {
		return false, fmt.Errorf("failed to acquire board lock: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ReleaseLock clears the exclusive-use flag
func (r *BoardRepository) ReleaseLock(ctx context.Context, id string) (bool, error) {
	result := r.ds.DB(ctx).Model(&model.Board{}).
		Where("id = ? AND is_locked = ?", id, true).
		Update("is_locked", false)
	if result.Error != nil {
		return false, fmt.Errorf("failed to release board lock: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdateHeartbeat records a heartbeat from the board and marks it alive
func (r *BoardRepository) UpdateHeartbeat(ctx context.Context, id string, at time.Time) error {
	result := r.ds.DB(ctx).Model(&model.Board{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_alive":          true,
			"last_heartbeat_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update board heartbeat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a board together with its log history and capability join
// rows, in one transaction
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	return r.ds.ExecTx(ctx, func(ctx context.Context) error {
		if err := r.ds.DB(ctx).Where("board_id = ?", id).Delete(&model.BoardLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete board logs: %w", err)
		}
		if err := r.ds.DB(ctx).Exec("DELETE FROM board_capabilities WHERE board_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete board capability links: %w", err)
		}
		return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.Board{}).Error
	})
}
