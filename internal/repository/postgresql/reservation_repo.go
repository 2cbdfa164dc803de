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

type pgReservationRepository struct {
	db *sql.DB
}

func NewPgReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &pgReservationRepository{db: db}
}

// Create thực hiện toàn bộ chuỗi check-then-act trong một transaction:
// khóa dòng slot (FOR UPDATE), kiểm tra trạng thái, kiểm tra trùng khoảng
// thời gian với các reservation active, tạo reservation pending rồi chuyển
// slot sang reserved. Hai request với cùng slot sẽ tuần tự hóa trên khóa dòng.
func (r *pgReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create (begin tx): %w", err)
	}
	defer tx.Rollback()

	slot := &domain.SlotSummary{}
	var slotType sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT slot_number, floor, type, status FROM parking_slots WHERE id = $1 FOR UPDATE`,
		res.SlotID,
	).Scan(&slot.SlotNumber, &slot.Floor, &slotType, &slot.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.Create (lock slot): %w", err)
	}
	slot.Type = slotType.String

	if slot.Status != domain.SlotAvailable {
		return nil, fmt.Errorf("%w: trạng thái hiện tại là '%s'", repository.ErrSlotUnavailable, slot.Status)
	}

	// Kiểm tra trùng khoảng [s, e): s < end AND e > start
	var overlapping int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		  WHERE slot_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4`,
		res.SlotID, domain.ReservationActive, res.EndTime, res.StartTime,
	).Scan(&overlapping)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create (overlap check): %w", err)
	}
	if overlapping > 0 {
		return nil, repository.ErrSlotConflict
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO reservations (user_id, slot_id, vehicle_id, start_time, end_time, status, created_at, updated_at)
		  VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		  RETURNING id, created_at, updated_at`,
		res.UserID, res.SlotID, res.VehicleID, res.StartTime, res.EndTime, res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create (insert): %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.SlotReserved, res.SlotID,
	)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create (update slot): %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create (commit): %w", err)
	}

	slot.Status = domain.SlotReserved
	res.Slot = slot
	res.CreatedAt = res.CreatedAt.In(time.UTC)
	res.UpdatedAt = res.UpdatedAt.In(time.UTC)
	return res, nil
}

func scanReservation(scan func(dest ...interface{}) error, res *domain.Reservation) error {
	var amount sql.NullFloat64
	err := scan(
		&res.ID, &res.UserID, &res.SlotID, &res.VehicleID,
		&res.StartTime, &res.EndTime, &res.Status, &amount,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if amount.Valid {
		res.Amount.SetValid(amount.Float64)
	}
	res.StartTime = res.StartTime.In(time.UTC)
	res.EndTime = res.EndTime.In(time.UTC)
	res.CreatedAt = res.CreatedAt.In(time.UTC)
	res.UpdatedAt = res.UpdatedAt.In(time.UTC)
	return nil
}

func (r *pgReservationRepository) FindByID(ctx context.Context, id int) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT id, user_id, slot_id, vehicle_id, start_time, end_time, status, amount, created_at, updated_at
	           FROM reservations WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := scanReservation(row.Scan, res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindByID: %w", err)
	}
	return res, nil
}

func (r *pgReservationRepository) FindByIDWithDetails(ctx context.Context, id int) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT r.id, r.user_id, r.slot_id, r.vehicle_id, r.start_time, r.end_time, r.status, r.amount,
	                 r.created_at, r.updated_at,
	                 u.id, u.email, u.first_name, u.last_name,
	                 s.slot_number, s.floor, s.type, s.status,
	                 v.type, v.license_plate, v.brand, v.model, v.color
	           FROM reservations r
	           JOIN users u ON u.id = r.user_id
	           JOIN parking_slots s ON s.id = r.slot_id
	           JOIN vehicles v ON v.id = r.vehicle_id
	           WHERE r.id = $1`

	var amount sql.NullFloat64
	user := &domain.UserSummary{}
	slot := &domain.SlotSummary{}
	vehicle := &domain.VehicleSummary{}
	var slotType, vBrand, vModel, vColor sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.UserID, &res.SlotID, &res.VehicleID,
		&res.StartTime, &res.EndTime, &res.Status, &amount,
		&res.CreatedAt, &res.UpdatedAt,
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&slot.SlotNumber, &slot.Floor, &slotType, &slot.Status,
		&vehicle.Type, &vehicle.LicensePlate, &vBrand, &vModel, &vColor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindByIDWithDetails: %w", err)
	}
	if amount.Valid {
		res.Amount.SetValid(amount.Float64)
	}
	slot.Type = slotType.String
	vehicle.Brand = vBrand.String
	vehicle.Model = vModel.String
	vehicle.Color = vColor.String
	res.User = user
	res.Slot = slot
	res.Vehicle = vehicle
	res.StartTime = res.StartTime.In(time.UTC)
	res.EndTime = res.EndTime.In(time.UTC)
	res.CreatedAt = res.CreatedAt.In(time.UTC)
	res.UpdatedAt = res.UpdatedAt.In(time.UTC)
	return res, nil
}

func (r *pgReservationRepository) FindOwned(ctx context.Context, id int, userID int) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	// Tra cứu theo (id, user_id): reservation của user khác trả về ErrNotFound,
	// không để lộ sự tồn tại của bản ghi.
	query := `SELECT id, user_id, slot_id, vehicle_id, start_time, end_time, status, amount, created_at, updated_at
	           FROM reservations WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	if err := scanReservation(row.Scan, res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindOwned: %w", err)
	}
	return res, nil
}

func (r *pgReservationRepository) UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgReservationRepository) UpdateStatusAndAmount(ctx context.Context, id int, status domain.ReservationStatus, amount float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = $1, amount = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		status, amount, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatusAndAmount: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatusAndAmount (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgReservationRepository) UpdateStatusAndReleaseSlot(ctx context.Context, id int, status domain.ReservationStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatusAndReleaseSlot (begin tx): %w", err)
	}
	defer tx.Rollback()

	var slotID int
	err = tx.QueryRowContext(ctx,
		`UPDATE reservations SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING slot_id`,
		status, id,
	).Scan(&slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("ReservationRepository.UpdateStatusAndReleaseSlot: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		domain.SlotAvailable, slotID,
	)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatusAndReleaseSlot (release slot): %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatusAndReleaseSlot (commit): %w", err)
	}
	return nil
}

func buildReservationFilter(filter domain.ReservationFilterDTO, args []interface{}, argIdx int) (string, []interface{}, int) {
	where := ""
	if filter.Status != nil {
		where += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND r.start_time >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND r.start_time <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	return where, args, argIdx
}

func (r *pgReservationRepository) FindByUser(ctx context.Context, userID int, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	args := []interface{}{userID}
	where := `WHERE r.user_id = $1`
	extra, args, argIdx := buildReservationFilter(filter, args, 2)
	where += extra

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations r `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindByUser (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT r.id, r.user_id, r.slot_id, r.vehicle_id, r.start_time, r.end_time, r.status, r.amount,
	                 r.created_at, r.updated_at,
	                 s.slot_number, s.floor, s.type, s.status,
	                 v.type, v.license_plate, v.brand, v.model, v.color
	           FROM reservations r
	           JOIN parking_slots s ON s.id = r.slot_id
	           JOIN vehicles v ON v.id = r.vehicle_id
	           %s
	           ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows, false)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindByUser: %w", err)
	}
	return reservations, total, nil
}

func (r *pgReservationRepository) FindAll(ctx context.Context, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	args := []interface{}{}
	where := `WHERE 1=1`
	extra, args, argIdx := buildReservationFilter(filter, args, 1)
	where += extra

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations r `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindAll (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT r.id, r.user_id, r.slot_id, r.vehicle_id, r.start_time, r.end_time, r.status, r.amount,
	                 r.created_at, r.updated_at,
	                 s.slot_number, s.floor, s.type, s.status,
	                 v.type, v.license_plate, v.brand, v.model, v.color,
	                 u.id, u.email, u.first_name, u.last_name
	           FROM reservations r
	           JOIN parking_slots s ON s.id = r.slot_id
	           JOIN vehicles v ON v.id = r.vehicle_id
	           JOIN users u ON u.id = r.user_id
	           %s
	           ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindAll: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows, true)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationRepository.FindAll: %w", err)
	}
	return reservations, total, nil
}

func collectReservations(rows *sql.Rows, withUser bool) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var amount sql.NullFloat64
		slot := &domain.SlotSummary{}
		vehicle := &domain.VehicleSummary{}
		var slotType, vBrand, vModel, vColor sql.NullString

		dest := []interface{}{
			&res.ID, &res.UserID, &res.SlotID, &res.VehicleID,
			&res.StartTime, &res.EndTime, &res.Status, &amount,
			&res.CreatedAt, &res.UpdatedAt,
			&slot.SlotNumber, &slot.Floor, &slotType, &slot.Status,
			&vehicle.Type, &vehicle.LicensePlate, &vBrand, &vModel, &vColor,
		}
		user := &domain.UserSummary{}
		if withUser {
			dest = append(dest, &user.ID, &user.Email, &user.FirstName, &user.LastName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if amount.Valid {
			res.Amount.SetValid(amount.Float64)
		}
		slot.Type = slotType.String
		vehicle.Brand = vBrand.String
		vehicle.Model = vModel.String
		vehicle.Color = vColor.String
		res.Slot = slot
		res.Vehicle = vehicle
		if withUser {
			res.User = user
		}
		res.StartTime = res.StartTime.In(time.UTC)
		res.EndTime = res.EndTime.In(time.UTC)
		res.CreatedAt = res.CreatedAt.In(time.UTC)
		res.UpdatedAt = res.UpdatedAt.In(time.UTC)
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ReservationRepository.Count: %w", err)
	}
	return count, nil
}

func (r *pgReservationRepository) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ReservationRepository.CountByStatus: %w", err)
	}
	return count, nil
}

func (r *pgReservationRepository) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ReservationRepository.ExpirePending (begin tx): %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`UPDATE reservations SET status = $1, updated_at = CURRENT_TIMESTAMP
		  WHERE status = $2 AND end_time < $3
		  RETURNING slot_id`,
		domain.ReservationCancelled, domain.ReservationPending, now,
	)
	if err != nil {
		return 0, fmt.Errorf("ReservationRepository.ExpirePending: %w", err)
	}
	var slotIDs []int
	for rows.Next() {
		var slotID int
		if err := rows.Scan(&slotID); err != nil {
			rows.Close()
			return 0, fmt.Errorf("ReservationRepository.ExpirePending (scanning row): %w", err)
		}
		slotIDs = append(slotIDs, slotID)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("ReservationRepository.ExpirePending (rows error): %w", err)
	}
	rows.Close()

	for _, slotID := range slotIDs {
		_, err = tx.ExecContext(ctx,
			`UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND status = $3`,
			domain.SlotAvailable, slotID, domain.SlotReserved,
		)
		if err != nil {
			return 0, fmt.Errorf("ReservationRepository.ExpirePending (release slot %d): %w", slotID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("ReservationRepository.ExpirePending (commit): %w", err)
	}
	return len(slotIDs), nil
}
