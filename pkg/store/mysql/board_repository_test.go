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

func TestBoardRepository_CreateWithAssociations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	relay := seedRelay(t, repo, "pdu-boards", "10.3.0.1", "AA:BB:CC:00:00:01")
	pc := seedTestPC(t, repo, "testpc-boards", "10.3.0.2")

	cap := &model.Capability{Name: model.CapabilityCamera, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, cap))

	port := 2
	board := seedBoard(t, repo, "SN-ASSOC-1", func(b *model.Board) {
		b.RelayID = &relay.ID
		b.RelayPort = &port
		b.TestPCID = &pc.ID
		b.Capabilities = []model.Capability{*cap}
	})

	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Relay, "relay should be preloaded")
	assert.Equal(t, relay.ID, got.Relay.ID)
	require.NotNil(t, got.TestPC, "test pc should be preloaded")
	assert.Equal(t, pc.ID, got.TestPC.ID)
	require.Len(t, got.Capabilities, 1)
	assert.Equal(t, model.CapabilityCamera, got.Capabilities[0].Name)

	bySerial, err := repo.Board.GetBySerial(ctx, "SN-ASSOC-1")
	require.NoError(t, err)
	require.NotNil(t, bySerial)
	assert.Equal(t, board.ID, bySerial.ID)
}

func TestBoardRepository_DuplicateSerial(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedBoard(t, repo, "SN-DUP-1", nil)

	err := repo.Board.Create(ctx, &model.Board{
		Name:                 "board-dup",
		HardwareSerialNumber: "SN-DUP-1",
		Platform:             model.PlatformAM64X,
		DeviceType:           model.DeviceTypeSOM,
		TestFarm:             model.TestFarmRTOS,
		Status:               model.BoardStatusIdle,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestBoardRepository_ListFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cap := &model.Capability{Name: model.CapabilityGPIO, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, cap))

	seedBoard(t, repo, "SN-F1", func(b *model.Board) {
		b.Name = "alpha-evm"
		b.Project = "vision"
		b.Platform = model.PlatformAM62X
		b.Capabilities = []model.Capability{*cap}
	})
	seedBoard(t, repo, "SN-F2", func(b *model.Board) {
		b.Name = "beta-evm"
		b.Project = "audio"
		b.Platform = model.PlatformJ721E
		b.Status = model.BoardStatusBusy
		b.IsAlive = false
	})

	byStatus, err := repo.Board.List(ctx, BoardFilter{Status: model.BoardStatusBusy})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "beta-evm", byStatus[0].Name)

	byName, err := repo.Board.List(ctx, BoardFilter{Name: "alpha"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "alpha-evm", byName[0].Name)

	byProject, err := repo.Board.List(ctx, BoardFilter{Project: "vis"})
	require.NoError(t, err)
	assert.Len(t, byProject, 1)

	byPlatform, err := repo.Board.List(ctx, BoardFilter{Platform: model.PlatformJ721E})
	require.NoError(t, err)
	assert.Len(t, byPlatform, 1)

	alive := true
	byAlive, err := repo.Board.List(ctx, BoardFilter{IsAlive: &alive})
	require.NoError(t, err)
	require.Len(t, byAlive, 1)
	assert.Equal(t, "alpha-evm", byAlive[0].Name)

	byCapability, err := repo.Board.List(ctx, BoardFilter{CapabilityID: cap.ID})
	require.NoError(t, err)
	require.Len(t, byCapability, 1)
	assert.Equal(t, "alpha-evm", byCapability[0].Name)

	all, err := repo.Board.List(ctx, BoardFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha-evm", all[0].Name, "listing is ordered by name")
}

func TestBoardRepository_AcquireReleaseLock(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	board := seedBoard(t, repo, "SN-LOCK-1", nil)

	acquired, err := repo.Board.AcquireLock(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, acquired)

	// Second claim loses: the row is already locked
	acquired, err = repo.Board.AcquireLock(ctx, board.ID)
	require.NoError(t, err)
	assert.False(t, acquired)

	released, err := repo.Board.ReleaseLock(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, released)

	// Releasing an unlocked board reports false
	released, err = repo.Board.ReleaseLock(ctx, board.ID)
	require.NoError(t, err)
	assert.False(t, released)

	// And the board can be claimed again
	acquired, err = repo.Board.AcquireLock(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestBoardRepository_UpdateHeartbeat(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	board := seedBoard(t, repo, "SN-HB-1", func(b *model.Board) {
		b.IsAlive = false
	})

	at := time.Now().UTC()
	require.NoError(t, repo.Board.UpdateHeartbeat(ctx, board.ID, at))

	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAlive, "heartbeat marks the board alive")
	require.NotNil(t, got.LastHeartbeatAt)
	assert.WithinDuration(t, at, *got.LastHeartbeatAt, time.Second)

	err = repo.Board.UpdateHeartbeat(ctx, "00000000-0000-0000-0000-000000000000", at)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestBoardRepository_ReplaceCapabilities(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c1 := &model.Capability{Name: model.CapabilityI2C, IsActive: true}
	c2 := &model.Capability{Name: model.CapabilitySPI, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, c1))
	require.NoError(t, repo.Capability.Create(ctx, c2))

	board := seedBoard(t, repo, "SN-RC-1", func(b *model.Board) {
		b.Capabilities = []model.Capability{*c1}
	})

	require.NoError(t, repo.Board.ReplaceCapabilities(ctx, board, []model.Capability{*c2}))

	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, got.Capabilities, 1)
	assert.Equal(t, model.CapabilitySPI, got.Capabilities[0].Name)
}

func TestBoardRepository_DeleteRemovesLogsAndLinks(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cap := &model.Capability{Name: model.CapabilityUSB, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, cap))

	board := seedBoard(t, repo, "SN-DEL-1", func(b *model.Board) {
		b.Capabilities = []model.Capability{*cap}
	})

	require.NoError(t, repo.BoardLog.Create(ctx, &model.BoardLog{
		BoardID: board.ID, Level: model.BoardLogLevelInfo, Message: "flashed sdk 10.1",
	}))

	require.NoError(t, repo.Board.Delete(ctx, board.ID))

	gone, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	logCount, err := repo.BoardLog.CountForBoard(ctx, board.ID)
	require.NoError(t, err)
	assert.Zero(t, logCount, "board logs must go with the board")

	// The capability itself survives
	stillThere, err := repo.Capability.Get(ctx, cap.ID)
	require.NoError(t, err)
	assert.NotNil(t, stillThere)
}

func TestBoardRepository_UpdateWithCapabilitySwap(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c1 := &model.Capability{Name: model.CapabilityCamera, IsActive: true}
	c2 := &model.Capability{Name: model.CapabilityGPIO, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, c1))
	require.NoError(t, repo.Capability.Create(ctx, c2))

	board := seedBoard(t, repo, "SN-UPD-1", func(b *model.Board) {
		b.Capabilities = []model.Capability{*c1}
	})

	// Column change and capability swap land together
	board.Name = "renamed-evm"
	require.NoError(t, repo.Board.Update(ctx, board, &[]model.Capability{*c2}))

	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed-evm", got.Name)
	require.Len(t, got.Capabilities, 1)
	assert.Equal(t, model.CapabilityGPIO, got.Capabilities[0].Name)

	// A nil capability set leaves the associations alone
	board.Project = "relabeled"
	require.NoError(t, repo.Board.Update(ctx, board, nil))

	got, err = repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, "relabeled", got.Project)
	require.Len(t, got.Capabilities, 1)
	assert.Equal(t, model.CapabilityGPIO, got.Capabilities[0].Name)
}
