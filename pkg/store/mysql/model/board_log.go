package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardLogLevel severity of a board log line
type BoardLogLevel string

const (
	BoardLogLevelInfo  BoardLogLevel = "INFO"
	BoardLogLevelWarn  BoardLogLevel = "WARN"
	BoardLogLevelError BoardLogLevel = "ERROR"
)

// Valid reports whether the level is part of the enumeration.
func (l BoardLogLevel) Valid() bool {
	switch l {
	case BoardLogLevelInfo, BoardLogLevelWarn, BoardLogLevelError:
		return true
	}
	return false
}

// BoardLog MySQL model for board_logs table. Free-text log lines attached to a
// board, deleted together with it.
type BoardLog struct {
	ID        string        `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	BoardID   string        `gorm:"column:board_id;type:char(36);not null;index:idx_board_log_board" json:"board_id"`
	Board     *Board        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	Level     BoardLogLevel `gorm:"column:level;type:varchar(10);not null;default:INFO;index:idx_board_log_level" json:"level"`
	Message   string        `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time     `gorm:"column:created_at;not null;index:idx_board_log_created_at,sort:desc" json:"created_at"`
}

// TableName specifies the table name for BoardLog
func (BoardLog) TableName() string {
	return "board_logs"
}

// BeforeCreate assigns a UUID primary key when none was provided
func (l *BoardLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
