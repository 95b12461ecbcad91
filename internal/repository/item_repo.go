package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lostfound/internal/model"
)

type ItemRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewItemRepository(db *pgxpool.Pool, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID returns the item's reporter and title, or ErrNotFound.
func (r *ItemRepository) GetByID(ctx context.Context, q Querier, itemID int) (*model.Item, error) {
	if q == nil {
		q = r.db
	}

	query := `
        SELECT item_id, reported_by, title
        FROM Items
        WHERE item_id = $1
    `
	var it model.Item
	err := q.QueryRow(ctx, query, itemID).Scan(&it.ID, &it.ReportedBy, &it.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Warn("Item not found", zap.Int("item_id", itemID))
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Warn("Failed to fetch item", zap.Int("item_id", itemID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch item %d: %w", itemID, err)
	}
	return &it, nil
}
