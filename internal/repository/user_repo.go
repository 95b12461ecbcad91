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

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID returns the user's email and name. A missing user comes back as
// ErrNotFound with a warning logged; it must not be treated as a failure of
// the caller's transaction.
func (r *UserRepository) GetByID(ctx context.Context, q Querier, userID int) (*model.User, error) {
	if q == nil {
		q = r.db
	}

	query := `
        SELECT user_id, email, name
        FROM Users
        WHERE user_id = $1
    `
	var u model.User
	err := q.QueryRow(ctx, query, userID).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Warn("User not found", zap.Int("user_id", userID))
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Warn("Failed to fetch user", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return &u, nil
}
