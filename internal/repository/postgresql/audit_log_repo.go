package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type pgAuditLogRepository struct {
	db *sql.DB
}

func NewPgAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &pgAuditLogRepository{db: db}
}

func (r *pgAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `INSERT INTO audit_logs (user_id, table_name, record_id, action, detail, timestamp)
	           VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
	           RETURNING id, timestamp`
	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.TableName, entry.RecordID, entry.Action, entry.Detail,
	).Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("AuditLogRepository.Create: %w", err)
	}
	entry.Timestamp = entry.Timestamp.In(time.UTC)
	return nil
}

func (r *pgAuditLogRepository) Find(ctx context.Context, filter domain.AuditLogFilterDTO, q domain.PageQuery) ([]domain.AuditLog, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.TableName != nil {
		where += fmt.Sprintf(" AND table_name = $%d", argIdx)
		args = append(args, *filter.TableName)
		argIdx++
	}
	if filter.RecordID != nil {
		where += fmt.Sprintf(" AND record_id = $%d", argIdx)
		args = append(args, *filter.RecordID)
		argIdx++
	}
	if filter.Action != nil {
		where += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}
	if filter.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	// Khoảng thời gian inclusive hai đầu, mỗi đầu đều tùy chọn
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND timestamp >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND timestamp <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("AuditLogRepository.Find (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT id, user_id, table_name, record_id, action, detail, timestamp
	           FROM audit_logs %s
	           ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("AuditLogRepository.Find: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.TableName, &entry.RecordID, &entry.Action, &entry.Detail, &entry.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("AuditLogRepository.Find (scanning row): %w", err)
		}
		entry.Timestamp = entry.Timestamp.In(time.UTC)
		logs = append(logs, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("AuditLogRepository.Find (rows error): %w", err)
	}
	return logs, total, nil
}
