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

type pgVehicleRepository struct {
	db *sql.DB
}

func NewPgVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (user_id, type, license_plate, brand, model, color, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		vehicle.UserID, vehicle.Type, vehicle.LicensePlate,
		sql.NullString{String: vehicle.Brand, Valid: vehicle.Brand != ""},
		sql.NullString{String: vehicle.Model, Valid: vehicle.Model != ""},
		sql.NullString{String: vehicle.Color, Valid: vehicle.Color != ""},
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "vehicles_license_plate_key" {
				return nil, fmt.Errorf("%w: biển số '%s' đã được đăng ký", repository.ErrDuplicateEntry, vehicle.LicensePlate)
			}
		}
		return nil, fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByID(ctx context.Context, id int) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	query := `SELECT id, user_id, type, license_plate, brand, model, color, created_at, updated_at
	           FROM vehicles WHERE id = $1`
	var brand, model, color sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID, &vehicle.UserID, &vehicle.Type, &vehicle.LicensePlate,
		&brand, &model, &color, &vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindByID: %w", err)
	}
	vehicle.Brand = brand.String
	vehicle.Model = model.String
	vehicle.Color = color.String
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByUserID(ctx context.Context, userID int, q domain.PageQuery) ([]domain.Vehicle, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM vehicles WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("VehicleRepository.FindByUserID (count): %w", err)
	}

	query := `SELECT id, user_id, type, license_plate, brand, model, color, created_at, updated_at
	           FROM vehicles WHERE user_id = $1
	           ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, q.Limit, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("VehicleRepository.FindByUserID: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var brand, model, color sql.NullString
		if err := rows.Scan(&v.ID, &v.UserID, &v.Type, &v.LicensePlate, &brand, &model, &color, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("VehicleRepository.FindByUserID (scanning row): %w", err)
		}
		v.Brand = brand.String
		v.Model = model.String
		v.Color = color.String
		v.CreatedAt = v.CreatedAt.In(time.UTC)
		v.UpdatedAt = v.UpdatedAt.In(time.UTC)
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("VehicleRepository.FindByUserID (rows error): %w", err)
	}
	return vehicles, total, nil
}

func (r *pgVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `UPDATE vehicles
	           SET type = $1, license_plate = $2, brand = $3, model = $4, color = $5, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $6
	           RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		vehicle.Type, vehicle.LicensePlate,
		sql.NullString{String: vehicle.Brand, Valid: vehicle.Brand != ""},
		sql.NullString{String: vehicle.Model, Valid: vehicle.Model != ""},
		sql.NullString{String: vehicle.Color, Valid: vehicle.Color != ""},
		vehicle.ID,
	).Scan(&vehicle.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "vehicles_license_plate_key" {
				return nil, fmt.Errorf("%w: biển số '%s' đã được đăng ký", repository.ErrDuplicateEntry, vehicle.LicensePlate)
			}
		}
		return nil, fmt.Errorf("VehicleRepository.Update: %w", err)
	}
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("VehicleRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("VehicleRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgVehicleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("VehicleRepository.Count: %w", err)
	}
	return count, nil
}
