package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type AnalyticsService struct {
	userRepo        repository.UserRepository
	vehicleRepo     repository.VehicleRepository
	slotRepo        repository.ParkingSlotRepository
	reservationRepo repository.ReservationRepository
	paymentRepo     repository.PaymentRepository
}

func NewAnalyticsService(
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	slotRepo repository.ParkingSlotRepository,
	reservationRepo repository.ReservationRepository,
	paymentRepo repository.PaymentRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:        userRepo,
		vehicleRepo:     vehicleRepo,
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
	}
}

// Dashboard gom số liệu tổng hợp. Occupancy = reservation active / tổng slot;
// không có slot nào thì trả "0%" thay vì chia cho 0.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm users: %w", err)
	}
	totalVehicles, err := s.vehicleRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm vehicles: %w", err)
	}
	totalSlots, err := s.slotRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm parking slots: %w", err)
	}
	totalReservations, err := s.reservationRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm reservations: %w", err)
	}
	occupied, err := s.reservationRepo.CountByStatus(ctx, domain.ReservationActive)
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm reservation active: %w", err)
	}
	totalRevenue, err := s.paymentRepo.SumCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi tính doanh thu: %w", err)
	}

	return &domain.DashboardStats{
		TotalUsers:        totalUsers,
		TotalVehicles:     totalVehicles,
		TotalReservations: totalReservations,
		TotalRevenue:      totalRevenue,
		OccupancyRate:     formatOccupancyRate(occupied, totalSlots),
	}, nil
}

func formatOccupancyRate(occupied, totalSlots int) string {
	if totalSlots == 0 {
		return "0%"
	}
	rate := float64(occupied) / float64(totalSlots) * 100
	return strconv.FormatFloat(rate, 'f', 2, 64) + "%"
}
