package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardfarm/pkg/store/mysql/model"
)

func TestPCStatsRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-stats", "10.2.0.1")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{
			TestPCID:  pc.ID,
			Status:    model.PCStatsStatusHealthy,
			CPUPercent: float64(i * 10),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	stats, err := repo.PCStats.List(ctx, StatsFilter{TestPCID: pc.ID})
	require.NoError(t, err)
	require.Len(t, stats, 5)
	for i := 1; i < len(stats); i++ {
		assert.False(t, stats[i].Timestamp.After(stats[i-1].Timestamp), "snapshots must be ordered newest first")
	}

	limited, err := repo.PCStats.List(ctx, StatsFilter{TestPCID: pc.ID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	latest, err := repo.PCStats.LatestForPC(ctx, pc.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, stats[0].ID, latest.ID)
}

func TestPCStatsRepository_FilterByStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-status", "10.2.1.1")

	require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{TestPCID: pc.ID, Status: model.PCStatsStatusHealthy}))
	require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{TestPCID: pc.ID, Status: model.PCStatsStatusCritical}))

	critical, err := repo.PCStats.List(ctx, StatsFilter{Status: model.PCStatsStatusCritical})
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, model.PCStatsStatusCritical, critical[0].Status)
}

func TestPCStatsRepository_TimestampDefaulted(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-ts", "10.2.2.1")

	stats := &model.PCStats{TestPCID: pc.ID, Status: model.PCStatsStatusHealthy}
	require.NoError(t, repo.PCStats.Create(ctx, stats))
	assert.False(t, stats.Timestamp.IsZero(), "timestamp should be stamped on create")
	assert.WithinDuration(t, time.Now().UTC(), stats.Timestamp, 5*time.Second)
}

func TestPCStatsRepository_RejectsOutOfRangePercent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-chk", "10.2.4.1")

	err := repo.PCStats.Create(ctx, &model.PCStats{
		TestPCID: pc.ID, Status: model.PCStatsStatusHealthy, MemoryPercent: 150,
	})
	require.Error(t, err, "memory percent above 100 must violate the check constraint")

	err = repo.PCStats.Create(ctx, &model.PCStats{
		TestPCID: pc.ID, Status: model.PCStatsStatusHealthy, DiskPercent: 101,
	})
	require.Error(t, err, "disk percent above 100 must violate the check constraint")

	// Rejected inserts leave no partial rows behind
	count, err := repo.PCStats.CountForPC(ctx, pc.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPCStatsRepository_DeleteOlderThan(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pc := seedTestPC(t, repo, "testpc-prune", "10.2.3.1")

	now := time.Now().UTC()
	old := now.AddDate(0, 0, -40)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{
			TestPCID: pc.ID, Status: model.PCStatsStatusHealthy,
			Timestamp: old.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.PCStats.Create(ctx, &model.PCStats{
		TestPCID: pc.ID, Status: model.PCStatsStatusHealthy, Timestamp: now,
	}))

	cutoff := now.AddDate(0, 0, -30)
	pruned, err := repo.PCStats.DeleteOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pruned)

	remaining, err := repo.PCStats.CountForPC(ctx, pc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)

	// Pruning again removes nothing
	pruned, err = repo.PCStats.DeleteOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
