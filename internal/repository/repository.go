package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/domain"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi")
var ErrDuplicateEntry = errors.New("bản ghi đã tồn tại")
var ErrSlotUnavailable = errors.New("chỗ đỗ không ở trạng thái available")
var ErrSlotConflict = errors.New("chỗ đỗ đã có reservation trùng khoảng thời gian")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindAdmins(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id int) (*domain.Vehicle, error)
	FindByUserID(ctx context.Context, userID int, q domain.PageQuery) ([]domain.Vehicle, int, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type ParkingSlotRepository interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error)
	Find(ctx context.Context, filter domain.ParkingSlotFilterDTO, q domain.PageQuery) ([]domain.ParkingSlot, int, error)
	Update(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

type ReservationRepository interface {
	// Create kiểm tra slot (FOR UPDATE), phát hiện trùng khoảng thời gian,
	// tạo reservation pending và chuyển slot sang reserved trong MỘT transaction.
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id int) (*domain.Reservation, error)
	// FindByIDWithDetails join thêm user, slot, vehicle (dùng cho acknowledge).
	FindByIDWithDetails(ctx context.Context, id int) (*domain.Reservation, error)
	// FindOwned tìm theo (id, user_id); trả ErrNotFound nếu reservation thuộc user khác.
	FindOwned(ctx context.Context, id int, userID int) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error
	// UpdateStatusAndAmount ghi trạng thái mới cùng tổng tiền đã tính (acknowledge).
	UpdateStatusAndAmount(ctx context.Context, id int, status domain.ReservationStatus, amount float64) error
	// UpdateStatusAndReleaseSlot chuyển trạng thái và trả slot về available trong một transaction.
	UpdateStatusAndReleaseSlot(ctx context.Context, id int, status domain.ReservationStatus) error
	FindByUser(ctx context.Context, userID int, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error)
	FindAll(ctx context.Context, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error)
	// ExpirePending hủy các reservation pending đã quá end_time và trả slot về available.
	ExpirePending(ctx context.Context, now time.Time) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	// Complete đánh dấu payment completed với transaction id và reservation
	// tương ứng thành paid trong MỘT transaction.
	Complete(ctx context.Context, paymentID int, transactionID string, reservationID int) error
	MarkFailed(ctx context.Context, paymentID int) error
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
	FindByUser(ctx context.Context, userID int, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error)
	FindAll(ctx context.Context, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error)
	SumCompleted(ctx context.Context) (float64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id int) (*domain.Notification, error)
	FindByUser(ctx context.Context, userID int, filter domain.NotificationFilterDTO, q domain.PageQuery) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, id int) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	Find(ctx context.Context, filter domain.AuditLogFilterDTO, q domain.PageQuery) ([]domain.AuditLog, int, error)
}
