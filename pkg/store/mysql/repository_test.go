package mysql

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"boardfarm/pkg/store/mysql/model"
)

// newTestRepository opens a migrated in-memory SQLite database. Each test gets
// its own database; shared cache keeps it alive across connections.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	ds, err := newDatastore(sqlite.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })

	require.NoError(t, ds.Migrate())
	return newRepositoryWithDatastore(ds)
}

func seedTestPC(t *testing.T, repo *Repository, hostname, ip string) *model.TestPC {
	t.Helper()
	pc := &model.TestPC{
		Hostname:  hostname,
		IPAddress: ip,
		Status:    model.TestPCStatusOnline,
		OSVersion: model.OSUbuntu2204,
	}
	require.NoError(t, repo.TestPC.Create(context.Background(), pc))
	return pc
}

func seedRelay(t *testing.T, repo *Repository, name, ip, mac string) *model.Relay {
	t.Helper()
	relay := &model.Relay{
		RelayName:  name,
		ModelType:  model.RelayModelIPPower9258,
		Status:     model.RelayStatusActive,
		IPAddress:  ip,
		MACAddress: mac,
		PortCount:  8,
	}
	require.NoError(t, repo.Relay.Create(context.Background(), relay))
	return relay
}

func seedBoard(t *testing.T, repo *Repository, serial string, mutate func(*model.Board)) *model.Board {
	t.Helper()
	board := &model.Board{
		Name:                 "board-" + serial,
		HardwareSerialNumber: serial,
		Platform:             model.PlatformAM62X,
		DeviceType:           model.DeviceTypeEVM,
		TestFarm:             model.TestFarmHLOS,
		Status:               model.BoardStatusIdle,
		IsAlive:              true,
	}
	if mutate != nil {
		mutate(board)
	}
	require.NoError(t, repo.Board.Create(context.Background(), board))
	return board
}

func TestDatastore_TimeColumnsRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	board := seedBoard(t, repo, "SN-TIME-1", nil)

	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.CreatedAt.IsZero(), "created_at must scan back as a time")
	assert.False(t, got.UpdatedAt.IsZero(), "updated_at must scan back as a time")
}
