package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `INSERT INTO notifications (user_id, message, type, is_read, created_at)
	           VALUES ($1, $2, $3, FALSE, CURRENT_TIMESTAMP)
	           RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Message, n.Type).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("NotificationRepository.Create: %w", err)
	}
	n.CreatedAt = n.CreatedAt.In(time.UTC)
	return n, nil
}

func (r *pgNotificationRepository) FindByID(ctx context.Context, id int) (*domain.Notification, error) {
	n := &domain.Notification{}
	query := `SELECT id, user_id, message, type, is_read, created_at FROM notifications WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("NotificationRepository.FindByID: %w", err)
	}
	n.CreatedAt = n.CreatedAt.In(time.UTC)
	return n, nil
}

func (r *pgNotificationRepository) FindByUser(ctx context.Context, userID int, filter domain.NotificationFilterDTO, q domain.PageQuery) ([]domain.Notification, int, error) {
	args := []interface{}{userID}
	where := `WHERE user_id = $1`
	argIdx := 2
	if filter.Unread != nil && *filter.Unread {
		where += ` AND is_read = FALSE`
	}
	if q.Search != "" {
		where += fmt.Sprintf(" AND message ILIKE $%d", argIdx)
		args = append(args, "%"+q.Search+"%")
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("NotificationRepository.FindByUser (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT id, user_id, message, type, is_read, created_at
	           FROM notifications %s
	           ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("NotificationRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("NotificationRepository.FindByUser (scanning row): %w", err)
		}
		n.CreatedAt = n.CreatedAt.In(time.UTC)
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("NotificationRepository.FindByUser (rows error): %w", err)
	}
	return notifications, total, nil
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("NotificationRepository.MarkRead: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("NotificationRepository.MarkRead (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
