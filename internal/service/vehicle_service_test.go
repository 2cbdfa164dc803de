package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

func TestVehicleService_Get_ForeignVehicleReturnsNotFound(t *testing.T) {
	auditor, _ := newTestAuditor()
	vehicleRepo := &fakeVehicleRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, UserID: 99}, nil // xe của user khác
		},
	}
	svc := NewVehicleService(vehicleRepo, auditor)

	_, err := svc.Get(context.Background(), 1, 7)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVehicleService_Update_OwnVehicle(t *testing.T) {
	auditor, auditRepo := newTestAuditor()
	vehicleRepo := &fakeVehicleRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, UserID: 7, Type: domain.VehicleCar, LicensePlate: "29A-11111"}, nil
		},
		UpdateFn: func(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
			return vehicle, nil
		},
	}
	svc := NewVehicleService(vehicleRepo, auditor)

	vehicle, err := svc.Update(context.Background(), 1, 7, domain.VehicleDTO{
		Type: "truck", LicensePlate: "29A-22222", Brand: "Hino",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VehicleTruck, vehicle.Type)
	assert.Equal(t, "29A-22222", vehicle.LicensePlate)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "vehicles", auditRepo.entries[0].TableName)
	assert.Equal(t, "update", auditRepo.entries[0].Action)
}

func TestVehicleService_Delete_ForeignVehicle(t *testing.T) {
	auditor, auditRepo := newTestAuditor()
	vehicleRepo := &fakeVehicleRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, UserID: 99}, nil
		},
	}
	svc := NewVehicleService(vehicleRepo, auditor)

	err := svc.Delete(context.Background(), 1, 7)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, auditRepo.entries)
}
