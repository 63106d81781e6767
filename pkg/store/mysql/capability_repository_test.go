package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boardfarm/pkg/store/mysql/model"
)

func TestCapabilityRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cap := &model.Capability{Name: model.CapabilityCamera, Description: "CSI camera attached", IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, cap))
	assert.NotEmpty(t, cap.ID, "UUID should be assigned on create")

	got, err := repo.Capability.Get(ctx, cap.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.CapabilityCamera, got.Name)
	assert.True(t, got.IsActive)

	byName, err := repo.Capability.GetByName(ctx, model.CapabilityCamera)
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, cap.ID, byName.ID)

	missing, err := repo.Capability.Get(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCapabilityRepository_DuplicateName(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Capability.Create(ctx, &model.Capability{Name: model.CapabilityGPIO, IsActive: true}))

	err := repo.Capability.Create(ctx, &model.Capability{Name: model.CapabilityGPIO, IsActive: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "duplicate name should surface as ErrDuplicatedKey, got %v", err)
}

func TestCapabilityRepository_GetByIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c1 := &model.Capability{Name: model.CapabilityUART, IsActive: true}
	c2 := &model.Capability{Name: model.CapabilityCAN, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, c1))
	require.NoError(t, repo.Capability.Create(ctx, c2))

	caps, err := repo.Capability.GetByIDs(ctx, []string{c1.ID, c2.ID})
	require.NoError(t, err)
	assert.Len(t, caps, 2)

	// Unknown IDs are simply absent from the result
	caps, err = repo.Capability.GetByIDs(ctx, []string{c1.ID, "00000000-0000-0000-0000-000000000000"})
	require.NoError(t, err)
	assert.Len(t, caps, 1)

	caps, err = repo.Capability.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, caps)
}

func TestCapabilityRepository_DeleteDetachesBoards(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	cap := &model.Capability{Name: model.CapabilityEthernet, IsActive: true}
	require.NoError(t, repo.Capability.Create(ctx, cap))

	board := seedBoard(t, repo, "SN-CAP-1", func(b *model.Board) {
		b.Capabilities = []model.Capability{*cap}
	})

	require.NoError(t, repo.Capability.Delete(ctx, cap.ID))

	gone, err := repo.Capability.Get(ctx, cap.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Board survives, without the capability
	got, err := repo.Board.Get(ctx, board.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Capabilities)
}
