package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

func TestTestPCRepository_UniqueColumns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedTestPC(t, repo, "testpc-01", "10.1.0.1")

	err := repo.TestPC.Create(ctx, &model.TestPC{
		Hostname: "testpc-01", IPAddress: "10.1.0.2",
		Status: model.TestPCStatusOnline, OSVersion: model.OSUbuntu2204,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	err = repo.TestPC.Create(ctx, &model.TestPC{
		Hostname: "testpc-02", IPAddress: "10.1.0.1",
		Status: model.TestPCStatusOnline, OSVersion: model.OSUbuntu2204,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestTestPCRepository_UpdateHeartbeat(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-hb", "10.1.1.1")
	require.Nil(t, pc.LastHeartbeatAt)

	at := time.Now().UTC()
	require.NoError(t, repo.TestPC.UpdateHeartbeat(ctx, pc.ID, at))

	got, err := repo.TestPC.Get(ctx, pc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastHeartbeatAt)
	assert.WithinDuration(t, at, *got.LastHeartbeatAt, time.Second)

	err = repo.TestPC.UpdateHeartbeat(ctx, "00000000-0000-0000-0000-000000000000", at)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "heartbeat for unknown pc should report not found")
}

func TestTestPCRepository_DeleteWithDependents(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-del", "10.1.2.1")
	board := seedBoard(t, repo, "SN-PC-1", func(b *model.Board) {
		b.TestPCID = &pc.ID
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{
			TestPCID: pc.ID, Status: model.PCStatsStatusHealthy,
		}))
	}

	require.NoError(t, repo.TestPC.DeleteWithDependents(ctx, pc.ID))

	gone, err := repo.TestPC.Get(ctx, pc.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// The stats history goes with the PC
	count, err := repo.PCStats.CountForPC(ctx, pc.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Boards are detached, never deleted
	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.TestPCID)
}

func TestTestPCRepository_GetByIP(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-lookup", "10.1.5.1")

	byIP, err := repo.TestPC.GetByIP(ctx, "10.1.5.1")
	require.NoError(t, err)
	require.NotNil(t, byIP)
	assert.Equal(t, pc.ID, byIP.ID)

	missing, err := repo.TestPC.GetByIP(ctx, "10.1.5.99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
