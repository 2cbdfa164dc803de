package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiesa14/pvms-ne/internal/domain"
)

func TestFormatOccupancyRate(t *testing.T) {
	assert.Equal(t, "0%", formatOccupancyRate(0, 0)) // không có slot -> không chia cho 0
	assert.Equal(t, "0.00%", formatOccupancyRate(0, 10))
	assert.Equal(t, "50.00%", formatOccupancyRate(5, 10))
	assert.Equal(t, "66.67%", formatOccupancyRate(2, 3))
	assert.Equal(t, "100.00%", formatOccupancyRate(3, 3))
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	userRepo := &fakeUserRepo{CountFn: func(ctx context.Context) (int, error) { return 12, nil }}
	vehicleRepo := &fakeVehicleRepo{CountFn: func(ctx context.Context) (int, error) { return 20, nil }}
	slotRepo := &fakeSlotRepo{CountFn: func(ctx context.Context) (int, error) { return 10, nil }}
	resRepo := &fakeReservationRepo{
		CountFn: func(ctx context.Context) (int, error) { return 30, nil },
		CountByStatusFn: func(ctx context.Context, status domain.ReservationStatus) (int, error) {
			assert.Equal(t, domain.ReservationActive, status)
			return 4, nil
		},
	}
	paymentRepo := &fakePaymentRepo{SumCompletedFn: func(ctx context.Context) (float64, error) { return 96000, nil }}

	svc := NewAnalyticsService(userRepo, vehicleRepo, slotRepo, resRepo, paymentRepo)

	stats, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalUsers)
	assert.Equal(t, 20, stats.TotalVehicles)
	assert.Equal(t, 30, stats.TotalReservations)
	assert.Equal(t, float64(96000), stats.TotalRevenue)
	assert.Equal(t, "40.00%", stats.OccupancyRate)
}
