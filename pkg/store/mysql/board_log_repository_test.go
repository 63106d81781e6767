package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardfarm/pkg/store/mysql/model"
)

func TestBoardLogRepository_ListRecent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	board := seedBoard(t, repo, "SN-LOG-1", nil)

	for i := 0; i < 5; i++ {
		log := &model.BoardLog{
			BoardID: board.ID,
			Level:   model.BoardLogLevelInfo,
			Message: fmt.Sprintf("boot cycle %d", i),
			// Spread creation times so ordering is deterministic
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.BoardLog.Create(ctx, log))
	}

	logs, err := repo.BoardLog.ListRecent(ctx, board.ID, 3)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "boot cycle 4", logs[0].Message, "newest line comes first")
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].CreatedAt.After(logs[i-1].CreatedAt))
	}

	count, err := repo.BoardLog.CountForBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
