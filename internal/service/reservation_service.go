package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/audit"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

var ErrInvalidTimeRange = errors.New("end time phải sau start time")

// Bảng giá theo giờ theo loại xe. Loại không biết dùng giá mặc định.
var pricePerHourByVehicleType = map[domain.VehicleType]float64{
	domain.VehicleMotorcycle: 500,
	domain.VehicleBus:        1000,
	domain.VehicleCar:        800,
	domain.VehicleTruck:      1500,
}

const defaultPricePerHour = 800

type ReservationService struct {
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	notifier        Notifier
	auditor         *audit.Recorder
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	notifier Notifier,
	auditor *audit.Recorder,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		notifier:        notifier,
		auditor:         auditor,
	}
}

// Create tạo reservation pending cho user. Slot phải available và không có
// reservation active nào trùng khoảng [start, end) trên cùng slot; toàn bộ
// chuỗi kiểm tra + ghi được repo thực hiện trong một transaction.
func (s *ReservationService) Create(ctx context.Context, userID int, dto domain.CreateReservationDTO) (*domain.Reservation, error) {
	if !dto.StartTime.Before(dto.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, dto.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: xe %d không tồn tại", repository.ErrNotFound, dto.VehicleID)
		}
		return nil, fmt.Errorf("lỗi kiểm tra xe: %w", err)
	}

	res := &domain.Reservation{
		UserID:    userID,
		SlotID:    dto.SlotID,
		VehicleID: dto.VehicleID,
		StartTime: dto.StartTime.UTC(),
		EndTime:   dto.EndTime.UTC(),
		Status:    domain.ReservationPending,
	}

	created, err := s.reservationRepo.Create(ctx, res)
	if err != nil {
		return nil, err
	}
	created.Vehicle = &domain.VehicleSummary{
		Type:         vehicle.Type,
		LicensePlate: vehicle.LicensePlate,
		Brand:        vehicle.Brand,
		Model:        vehicle.Model,
		Color:        vehicle.Color,
	}

	s.auditor.Record(ctx, userID, "reservations", created.ID, "create",
		fmt.Sprintf("slot %d, %s -> %s", created.SlotID, created.StartTime.Format(time.RFC3339), created.EndTime.Format(time.RFC3339)))
	s.notifier.NotifyAdmins(ctx,
		fmt.Sprintf("Yêu cầu đặt chỗ mới #%d từ user #%d", created.ID, userID),
		domain.NotifReservation)

	return created, nil
}

// Acknowledge chuyển reservation sang active, tính ticket (thời lượng làm
// tròn lên theo giờ nhân với giá theo loại xe), ghi tổng tiền lên reservation
// và gửi vé qua email cho chủ reservation (best-effort).
func (s *ReservationService) Acknowledge(ctx context.Context, reservationID int, adminID int) (*domain.Reservation, *domain.Ticket, error) {
	res, err := s.reservationRepo.FindByIDWithDetails(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}

	ticket := computeTicket(res.StartTime, res.EndTime, res.Vehicle.Type)

	if err := s.reservationRepo.UpdateStatusAndAmount(ctx, res.ID, domain.ReservationActive, ticket.TotalPrice); err != nil {
		return nil, nil, err
	}
	res.Status = domain.ReservationActive
	res.Amount.SetValid(ticket.TotalPrice)

	s.auditor.Record(ctx, adminID, "reservations", res.ID, "status_change", "acknowledge")

	emailBody := fmt.Sprintf(`Xin chào %s,

Reservation đỗ xe của bạn đã được xác nhận!

Chỗ đỗ: %s
Loại xe: %s
Thời lượng: %d giờ
Giá mỗi giờ: %.0f
Tổng tiền: %.0f

Bắt đầu: %s
Kết thúc: %s

Cảm ơn bạn đã sử dụng dịch vụ!`,
		res.User.FirstName, res.Slot.SlotNumber, ticket.VehicleType, ticket.DurationHours,
		ticket.PricePerHour, ticket.TotalPrice,
		res.StartTime.Format("02/01/2006 15:04"), res.EndTime.Format("02/01/2006 15:04"))
	s.notifier.SendEmail(ctx, res.User.Email, "Vé đỗ xe của bạn", emailBody)
	s.notifier.NotifyUser(ctx, res.UserID, "Reservation của bạn đã được admin xác nhận.", domain.NotifReservation)

	return res, ticket, nil
}

// computeTicket: thời lượng tính theo giờ nguyên, làm tròn LÊN
// (ví dụ 10:00 -> 12:30 là 3 giờ).
func computeTicket(start, end time.Time, vehicleType domain.VehicleType) *domain.Ticket {
	durationHours := int(math.Ceil(end.Sub(start).Hours()))
	pricePerHour, ok := pricePerHourByVehicleType[vehicleType]
	if !ok {
		pricePerHour = defaultPricePerHour
	}
	return &domain.Ticket{
		DurationHours: durationHours,
		VehicleType:   string(vehicleType),
		PricePerHour:  pricePerHour,
		TotalPrice:    float64(durationHours) * pricePerHour,
	}
}

// Revoke (admin) chuyển reservation sang revoked và trả slot về available.
func (s *ReservationService) Revoke(ctx context.Context, reservationID int, adminID int) (*domain.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.reservationRepo.UpdateStatusAndReleaseSlot(ctx, res.ID, domain.ReservationRevoked); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationRevoked

	s.auditor.Record(ctx, adminID, "reservations", res.ID, "status_change", "revoke")
	s.notifier.NotifyUser(ctx, res.UserID, "Reservation của bạn đã bị admin thu hồi.", domain.NotifReservation)
	return res, nil
}

// Cancel (chủ reservation) chuyển sang cancelled và trả slot về available.
// Tra cứu theo (id, user_id): reservation của user khác trả về ErrNotFound.
func (s *ReservationService) Cancel(ctx context.Context, reservationID int, userID int) (*domain.Reservation, error) {
	res, err := s.reservationRepo.FindOwned(ctx, reservationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.reservationRepo.UpdateStatusAndReleaseSlot(ctx, res.ID, domain.ReservationCancelled); err != nil {
		return nil, err
	}
	res.Status = domain.ReservationCancelled

	s.auditor.Record(ctx, userID, "reservations", res.ID, "status_change", "cancel")
	s.notifier.NotifyUser(ctx, userID, "Reservation của bạn đã được hủy thành công!", domain.NotifReservation)
	return res, nil
}

func (s *ReservationService) ListByUser(ctx context.Context, userID int, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	return s.reservationRepo.FindByUser(ctx, userID, filter, q)
}

func (s *ReservationService) ListAll(ctx context.Context, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	return s.reservationRepo.FindAll(ctx, filter, q)
}

// ExpirePending hủy các reservation pending đã quá end_time (job nền gọi định kỳ).
func (s *ReservationService) ExpirePending(ctx context.Context) (int, error) {
	count, err := s.reservationRepo.ExpirePending(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Đã hủy %d reservation pending quá hạn", count)
	}
	return count, nil
}
