package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"lostfound/internal/model"
)

type NotificationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Insert writes one notification row and commits immediately. It always goes
// through the repository's own pool, never a caller-held connection, because
// it is also invoked after the read-phase connection has been released.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	r.logger.Debug("Inserting notification",
		zap.Int("user_id", n.UserID),
		zap.String("type", n.Type),
	)

	query := `
        INSERT INTO Notifications (user_id, message, type, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, n.UserID, n.Message, n.Type, n.Status).Scan(&n.ID)
	if err != nil {
		r.logger.Error("Failed to insert notification",
			zap.Int("user_id", n.UserID),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Notification inserted successfully",
		zap.Int("id", n.ID),
		zap.Int("user_id", n.UserID),
	)
	return nil
}
