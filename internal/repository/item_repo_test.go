package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestItemRepository_GetByID_NotFound(t *testing.T) {
	logger, logs := warnLogger()
	repo := NewItemRepository(nil, logger)
	q := &stubQuerier{row: errRow(pgx.ErrNoRows)}

	it, err := repo.GetByID(context.Background(), q, 404)

	assert.Nil(t, it)
	assert.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, logs.FilterMessage("Item not found").Len())
}

func TestItemRepository_GetByID_QueryFailure(t *testing.T) {
	logger, logs := warnLogger()
	repo := NewItemRepository(nil, logger)
	base := errors.New("relation does not exist")
	q := &stubQuerier{row: errRow(base)}

	it, err := repo.GetByID(context.Background(), q, 42)

	assert.Nil(t, it)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, base)
	require.Equal(t, 1, logs.FilterMessage("Failed to fetch item").Len())
}

func TestItemRepository_GetByID_Found(t *testing.T) {
	repo := NewItemRepository(nil, zap.NewNop())
	q := &stubQuerier{row: stubRow{scan: func(dest ...any) error {
		*dest[0].(*int) = 42
		*dest[1].(*int) = 1
		*dest[2].(*string) = "Blue Backpack"
		return nil
	}}}

	it, err := repo.GetByID(context.Background(), q, 42)

	require.NoError(t, err)
	assert.Equal(t, 42, it.ID)
	assert.Equal(t, 1, it.ReportedBy)
	assert.Equal(t, "Blue Backpack", it.Title)
}
