package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (id, recipient_id, title, message, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, n.ID, n.RecipientID, n.Title, n.Message, n.Link).Scan(&n.CreatedAt)
	return n, mapError(err)
}

func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]model.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, recipient_id::text, title, message, link, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, recipientID, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Link, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) CountByRecipient(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id = $1
	`, recipientID).Scan(&count)
	return count, mapError(err)
}

func (r *NotificationRepo) DeleteForRecipient(ctx context.Context, id, recipientID string) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND recipient_id = $2
	`, id, recipientID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *NotificationRepo) DeleteAllForRecipient(ctx context.Context, recipientID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM notifications WHERE recipient_id = $1", recipientID)
	if err != nil {
		return 0, mapError(err)
	}
	return cmd.RowsAffected(), nil
}
