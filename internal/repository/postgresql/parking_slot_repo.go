package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"

	"github.com/lib/pq"
)

type pgParkingSlotRepository struct {
	db *sql.DB
}

func NewPgParkingSlotRepository(db *sql.DB) repository.ParkingSlotRepository {
	return &pgParkingSlotRepository{db: db}
}

func (r *pgParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	query := `INSERT INTO parking_slots (slot_number, floor, type, status, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		slot.SlotNumber, slot.Floor,
		sql.NullString{String: slot.Type, Valid: slot.Type != ""},
		slot.Status,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "parking_slots_slot_number_key" {
				return nil, fmt.Errorf("%w: chỗ đỗ '%s' đã tồn tại", repository.ErrDuplicateEntry, slot.SlotNumber)
			}
		}
		return nil, fmt.Errorf("ParkingSlotRepository.Create: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := `SELECT id, slot_number, floor, type, status, created_at, updated_at
	           FROM parking_slots WHERE id = $1`
	var slotType sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.SlotNumber, &slot.Floor, &slotType, &slot.Status,
		&slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindByID: %w", err)
	}
	slot.Type = slotType.String
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) Find(ctx context.Context, filter domain.ParkingSlotFilterDTO, q domain.PageQuery) ([]domain.ParkingSlot, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Floor != nil {
		where += fmt.Sprintf(" AND floor = $%d", argIdx)
		args = append(args, *filter.Floor)
		argIdx++
	}
	if q.Search != "" {
		where += fmt.Sprintf(" AND slot_number ILIKE $%d", argIdx)
		args = append(args, "%"+q.Search+"%")
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parking_slots `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ParkingSlotRepository.Find (count): %w", err)
	}

	query := fmt.Sprintf(`SELECT id, slot_number, floor, type, status, created_at, updated_at
	           FROM parking_slots %s
	           ORDER BY floor, slot_number LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ParkingSlotRepository.Find: %w", err)
	}
	defer rows.Close()

	var slots []domain.ParkingSlot
	for rows.Next() {
		var slot domain.ParkingSlot
		var slotType sql.NullString
		if err := rows.Scan(&slot.ID, &slot.SlotNumber, &slot.Floor, &slotType, &slot.Status, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("ParkingSlotRepository.Find (scanning row): %w", err)
		}
		slot.Type = slotType.String
		slot.CreatedAt = slot.CreatedAt.In(time.UTC)
		slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
		slots = append(slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ParkingSlotRepository.Find (rows error): %w", err)
	}
	return slots, total, nil
}

func (r *pgParkingSlotRepository) Update(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	query := `UPDATE parking_slots
	           SET slot_number = $1, floor = $2, type = $3, status = $4, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $5
	           RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		slot.SlotNumber, slot.Floor,
		sql.NullString{String: slot.Type, Valid: slot.Type != ""},
		slot.Status, slot.ID,
	).Scan(&slot.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "parking_slots_slot_number_key" {
				return nil, fmt.Errorf("%w: chỗ đỗ '%s' đã tồn tại", repository.ErrDuplicateEntry, slot.SlotNumber)
			}
		}
		return nil, fmt.Errorf("ParkingSlotRepository.Update: %w", err)
	}
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error {
	query := `UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgParkingSlotRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parking_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgParkingSlotRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parking_slots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ParkingSlotRepository.Count: %w", err)
	}
	return count, nil
}
