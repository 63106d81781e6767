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

func TestRelayRepository_UniqueColumns(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedRelay(t, repo, "rack1-pdu", "10.0.1.1", "AA:BB:CC:DD:EE:01")

	cases := []struct {
		name  string
		relay *model.Relay
	}{
		{"duplicate name", &model.Relay{
			RelayName: "rack1-pdu", ModelType: model.RelayModelNetioPowerPDU, Status: model.RelayStatusActive,
			IPAddress: "10.0.1.2", MACAddress: "AA:BB:CC:DD:EE:02", PortCount: 4,
		}},
		{"duplicate ip", &model.Relay{
			RelayName: "rack2-pdu", ModelType: model.RelayModelNetioPowerPDU, Status: model.RelayStatusActive,
			IPAddress: "10.0.1.1", MACAddress: "AA:BB:CC:DD:EE:03", PortCount: 4,
		}},
		{"duplicate mac", &model.Relay{
			RelayName: "rack3-pdu", ModelType: model.RelayModelNetioPowerPDU, Status: model.RelayStatusActive,
			IPAddress: "10.0.1.3", MACAddress: "AA:BB:CC:DD:EE:01", PortCount: 4,
		}},
	}
	for _, tc := range cases {
		err := repo.Relay.Create(ctx, tc.relay)
		require.Error(t, err, tc.name)
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "%s should surface as ErrDuplicatedKey, got %v", tc.name, err)
	}
}

func TestRelayRepository_ListByStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seedRelay(t, repo, "pdu-b", "10.0.2.1", "AA:BB:CC:DD:01:01")
	faulty := seedRelay(t, repo, "pdu-a", "10.0.2.2", "AA:BB:CC:DD:01:02")
	faulty.Status = model.RelayStatusFault
	require.NoError(t, repo.Relay.Update(ctx, faulty))

	all, err := repo.Relay.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "pdu-a", all[0].RelayName, "listing is ordered by name")

	active, err := repo.Relay.List(ctx, model.RelayStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "pdu-b", active[0].RelayName)
}

func TestRelayRepository_UpdateLastChecked(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	relay := seedRelay(t, repo, "pdu-check", "10.0.3.1", "AA:BB:CC:DD:02:01")
	require.Nil(t, relay.LastCheckedAt)

	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Relay.UpdateLastChecked(ctx, relay.ID, at))

	got, err := repo.Relay.Get(ctx, relay.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastCheckedAt)
	assert.WithinDuration(t, at, *got.LastCheckedAt, time.Second)
}

func TestRelayRepository_DeleteWithBoardDetach(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	relay := seedRelay(t, repo, "pdu-del", "10.0.4.1", "AA:BB:CC:DD:03:01")
	port := 3
	board := seedBoard(t, repo, "SN-RELAY-1", func(b *model.Board) {
		b.RelayID = &relay.ID
		b.RelayPort = &port
	})

	require.NoError(t, repo.Relay.DeleteWithBoardDetach(ctx, relay.ID))

	gone, err := repo.Relay.Get(ctx, relay.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Board survives with relay reference and port cleared together
	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.RelayID)
	assert.Nil(t, got.RelayPort)
}

func TestRelayRepository_GetByIPAndMAC(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	relay := seedRelay(t, repo, "pdu-lookup", "10.0.5.1", "AA:BB:CC:DD:04:01")

	byIP, err := repo.Relay.GetByIP(ctx, "10.0.5.1")
	require.NoError(t, err)
	require.NotNil(t, byIP)
	assert.Equal(t, relay.ID, byIP.ID)

	byMAC, err := repo.Relay.GetByMAC(ctx, "AA:BB:CC:DD:04:01")
	require.NoError(t, err)
	require.NotNil(t, byMAC)
	assert.Equal(t, relay.ID, byMAC.ID)

	missing, err := repo.Relay.GetByIP(ctx, "10.0.5.99")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.Relay.GetByMAC(ctx, "AA:BB:CC:DD:04:99")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
