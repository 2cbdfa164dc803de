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

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `INSERT INTO payments (user_id, reservation_id, amount, status, method, payment_date, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		payment.UserID, payment.ReservationID, payment.Amount, payment.Status,
		sql.NullString{String: payment.Method, Valid: payment.Method != ""},
		payment.PaymentDate,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.Create: %w", err)
	}
	payment.CreatedAt = payment.CreatedAt.In(time.UTC)
	payment.UpdatedAt = payment.UpdatedAt.In(time.UTC)
	return payment, nil
}

// Complete ghi payment completed và reservation paid trong MỘT transaction,
// để không bao giờ có payment completed mà reservation chưa paid (hoặc ngược lại).
func (r *pgPaymentRepository) Complete(ctx context.Context, paymentID int, transactionID string, reservationID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("PaymentRepository.Complete (begin tx): %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = $1, transaction_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		domain.PaymentCompleted, transactionID, paymentID,
	)
	if err != nil {
		return fmt.Errorf("PaymentRepository.Complete (payment): %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("PaymentRepository.Complete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.ReservationPaid, reservationID,
	)
	if err != nil {
		return fmt.Errorf("PaymentRepository.Complete (reservation): %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("PaymentRepository.Complete (commit): %w", err)
	}
	return nil
}

func (r *pgPaymentRepository) MarkFailed(ctx context.Context, paymentID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.PaymentFailed, paymentID,
	)
	if err != nil {
		return fmt.Errorf("PaymentRepository.MarkFailed: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("PaymentRepository.MarkFailed (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	payment := &domain.Payment{}
	query := `SELECT id, user_id, reservation_id, amount, status, method, transaction_id, payment_date, created_at, updated_at
	           FROM payments WHERE transaction_id = $1`
	var method sql.NullString
	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&payment.ID, &payment.UserID, &payment.ReservationID, &payment.Amount, &payment.Status,
		&method, &payment.TransactionID, &payment.PaymentDate, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("PaymentRepository.FindByTransactionID: %w", err)
	}
	payment.Method = method.String
	payment.PaymentDate = payment.PaymentDate.In(time.UTC)
	payment.CreatedAt = payment.CreatedAt.In(time.UTC)
	payment.UpdatedAt = payment.UpdatedAt.In(time.UTC)
	return payment, nil
}

func buildPaymentFilter(filter domain.PaymentFilterDTO, q domain.PageQuery, args []interface{}, argIdx int) (string, []interface{}, int) {
	where := ""
	if filter.Status != nil {
		where += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND p.payment_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND p.payment_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if q.Search != "" {
		where += fmt.Sprintf(" AND p.transaction_id ILIKE $%d", argIdx)
		args = append(args, "%"+q.Search+"%")
		argIdx++
	}
	return where, args, argIdx
}

func (r *pgPaymentRepository) FindByUser(ctx context.Context, userID int, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	args := []interface{}{userID}
	where := `WHERE p.user_id = $1`
	extra, args, argIdx := buildPaymentFilter(filter, q, args, 2)
	where += extra

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments p `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindByUser (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT p.id, p.user_id, p.reservation_id, p.amount, p.status, p.method, p.transaction_id,
	                 p.payment_date, p.created_at, p.updated_at,
	                 r.start_time, r.end_time, r.status
	           FROM payments p
	           JOIN reservations r ON r.id = p.reservation_id
	           %s
	           ORDER BY p.payment_date DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	payments, err := collectPayments(rows, false)
	if err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindByUser: %w", err)
	}
	return payments, total, nil
}

func (r *pgPaymentRepository) FindAll(ctx context.Context, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	args := []interface{}{}
	where := `WHERE 1=1`
	extra, args, argIdx := buildPaymentFilter(filter, q, args, 1)
	where += extra

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments p `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindAll (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT p.id, p.user_id, p.reservation_id, p.amount, p.status, p.method, p.transaction_id,
	                 p.payment_date, p.created_at, p.updated_at,
	                 r.start_time, r.end_time, r.status,
	                 u.id, u.email, u.first_name, u.last_name
	           FROM payments p
	           JOIN reservations r ON r.id = p.reservation_id
	           JOIN users u ON u.id = p.user_id
	           %s
	           ORDER BY p.payment_date DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindAll: %w", err)
	}
	defer rows.Close()

	payments, err := collectPayments(rows, true)
	if err != nil {
		return nil, 0, fmt.Errorf("PaymentRepository.FindAll: %w", err)
	}
	return payments, total, nil
}

func collectPayments(rows *sql.Rows, withUser bool) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var method sql.NullString
		resSummary := &domain.ReservationSummary{}

		dest := []interface{}{
			&p.ID, &p.UserID, &p.ReservationID, &p.Amount, &p.Status, &method, &p.TransactionID,
			&p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
			&resSummary.StartTime, &resSummary.EndTime, &resSummary.Status,
		}
		user := &domain.UserSummary{}
		if withUser {
			dest = append(dest, &user.ID, &user.Email, &user.FirstName, &user.LastName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		p.Method = method.String
		p.Reservation = resSummary
		if withUser {
			p.User = user
		}
		p.PaymentDate = p.PaymentDate.In(time.UTC)
		p.CreatedAt = p.CreatedAt.In(time.UTC)
		p.UpdatedAt = p.UpdatedAt.In(time.UTC)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return payments, nil
}

func (r *pgPaymentRepository) SumCompleted(ctx context.Context) (float64, error) {
	var sum sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(amount) FROM payments WHERE status = $1`, domain.PaymentCompleted,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("PaymentRepository.SumCompleted: %w", err)
	}
	// SUM trả về NULL khi chưa có payment nào
	return sum.Float64, nil
}
