package service

import (
	"context"

	"github.com/Chiesa14/pvms-ne/internal/audit"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	auditor     *audit.Recorder
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, auditor *audit.Recorder) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo, auditor: auditor}
}

func (s *VehicleService) Create(ctx context.Context, userID int, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		UserID:       userID,
		LicensePlate: dto.LicensePlate,
		Type:         domain.VehicleType(dto.Type),
		Brand:        dto.Brand,
		Model:        dto.Model,
		Color:        dto.Color,
	}
	created, err := s.vehicleRepo.Create(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	s.auditor.Record(ctx, userID, "vehicles", created.ID, "create", created.LicensePlate)
	return created, nil
}

func (s *VehicleService) ListByUser(ctx context.Context, userID int, q domain.PageQuery) ([]domain.Vehicle, int, error) {
	return s.vehicleRepo.FindByUserID(ctx, userID, q)
}

// findOwned: xe của user khác trả về ErrNotFound, không lộ sự tồn tại.
func (s *VehicleService) findOwned(ctx context.Context, vehicleID, userID int) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return vehicle, nil
}

func (s *VehicleService) Get(ctx context.Context, vehicleID, userID int) (*domain.Vehicle, error) {
	return s.findOwned(ctx, vehicleID, userID)
}

func (s *VehicleService) Update(ctx context.Context, vehicleID, userID int, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	vehicle, err := s.findOwned(ctx, vehicleID, userID)
	if err != nil {
		return nil, err
	}
	vehicle.LicensePlate = dto.LicensePlate
	vehicle.Type = domain.VehicleType(dto.Type)
	vehicle.Brand = dto.Brand
	vehicle.Model = dto.Model
	vehicle.Color = dto.Color

	updated, err := s.vehicleRepo.Update(ctx, vehicle)
	if err != nil {
		return nil, err
	}
	s.auditor.Record(ctx, userID, "vehicles", updated.ID, "update", updated.LicensePlate)
	return updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, vehicleID, userID int) error {
	vehicle, err := s.findOwned(ctx, vehicleID, userID)
	if err != nil {
		return err
	}
	if err := s.vehicleRepo.Delete(ctx, vehicle.ID); err != nil {
		return err
	}
	s.auditor.Record(ctx, userID, "vehicles", vehicle.ID, "delete", vehicle.LicensePlate)
	return nil
}
