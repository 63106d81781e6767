package mysql

import (
	"context"
	"fmt"

	"boardfarm/pkg/store/mysql/model"
)

// BoardLogRepository handles board log persistence in MySQL
type BoardLogRepository struct {
	ds *Datastore
}

// NewBoardLogRepository creates a new board log repository
func NewBoardLogRepository(ds *Datastore) *BoardLogRepository {
	return &BoardLogRepository{ds: ds}
}

// Create appends a log line for a board
func (r *BoardLogRepository) Create(ctx context.Context, log *model.BoardLog) error {
	return r.ds.DB(ctx).Create(log).Error
}

// ListRecent retrieves the newest log lines for a board
func (r *BoardLogRepository) ListRecent(ctx context.Context, boardID string, limit int) ([]*model.BoardLog, error) {
	var logs []*model.BoardLog
	q := r.ds.DB(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list board logs: %w", err)
	}
	return logs, nil
}

// CountForBoard counts log lines recorded for a board
func (r *BoardLogRepository) CountForBoard(ctx context.Context, boardID string) (int64, error) {
	var count int64
	err := r.ds.DB(ctx).Model(&model.BoardLog{}).
		Where("board_id = ?", boardID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count board logs: %w", err)
	}
	return count, nil
}
