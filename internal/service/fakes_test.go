package service

import (
	"context"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/gateway"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

// Fake repositories cho unit test: mỗi method ủy quyền cho một func field,
// method không được gán thì panic để lộ ra call không mong đợi.

type fakeReservationRepo struct {
	CreateFn                     func(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindByIDFn                   func(ctx context.Context, id int) (*domain.Reservation, error)
	FindByIDWithDetailsFn        func(ctx context.Context, id int) (*domain.Reservation, error)
	FindOwnedFn                  func(ctx context.Context, id, userID int) (*domain.Reservation, error)
	UpdateStatusFn               func(ctx context.Context, id int, status domain.ReservationStatus) error
	UpdateStatusAndAmountFn      func(ctx context.Context, id int, status domain.ReservationStatus, amount float64) error
	UpdateStatusAndReleaseSlotFn func(ctx context.Context, id int, status domain.ReservationStatus) error
	FindByUserFn                 func(ctx context.Context, userID int, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error)
	FindAllFn                    func(ctx context.Context, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error)
	CountFn                      func(ctx context.Context) (int, error)
	CountByStatusFn              func(ctx context.Context, status domain.ReservationStatus) (int, error)
	ExpirePendingFn              func(ctx context.Context, now time.Time) (int, error)
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	return f.CreateFn(ctx, res)
}
func (f *fakeReservationRepo) FindByID(ctx context.Context, id int) (*domain.Reservation, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeReservationRepo) FindByIDWithDetails(ctx context.Context, id int) (*domain.Reservation, error) {
	return f.FindByIDWithDetailsFn(ctx, id)
}
func (f *fakeReservationRepo) FindOwned(ctx context.Context, id, userID int) (*domain.Reservation, error) {
	return f.FindOwnedFn(ctx, id, userID)
}
func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	return f.UpdateStatusFn(ctx, id, status)
}
func (f *fakeReservationRepo) UpdateStatusAndAmount(ctx context.Context, id int, status domain.ReservationStatus, amount float64) error {
	return f.UpdateStatusAndAmountFn(ctx, id, status, amount)
}
func (f *fakeReservationRepo) UpdateStatusAndReleaseSlot(ctx context.Context, id int, status domain.ReservationStatus) error {
	return f.UpdateStatusAndReleaseSlotFn(ctx, id, status)
}
func (f *fakeReservationRepo) FindByUser(ctx context.Context, userID int, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	return f.FindByUserFn(ctx, userID, filter, q)
}
func (f *fakeReservationRepo) FindAll(ctx context.Context, filter domain.ReservationFilterDTO, q domain.PageQuery) ([]domain.Reservation, int, error) {
	return f.FindAllFn(ctx, filter, q)
}
func (f *fakeReservationRepo) Count(ctx context.Context) (int, error) { return f.CountFn(ctx) }
func (f *fakeReservationRepo) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int, error) {
	return f.CountByStatusFn(ctx, status)
}
func (f *fakeReservationRepo) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	return f.ExpirePendingFn(ctx, now)
}

type fakeVehicleRepo struct {
	CreateFn       func(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByIDFn     func(ctx context.Context, id int) (*domain.Vehicle, error)
	FindByUserIDFn func(ctx context.Context, userID int, q domain.PageQuery) ([]domain.Vehicle, int, error)
	UpdateFn       func(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	DeleteFn       func(ctx context.Context, id int) error
	CountFn        func(ctx context.Context) (int, error)
}

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	return f.CreateFn(ctx, vehicle)
}
func (f *fakeVehicleRepo) FindByID(ctx context.Context, id int) (*domain.Vehicle, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeVehicleRepo) FindByUserID(ctx context.Context, userID int, q domain.PageQuery) ([]domain.Vehicle, int, error) {
	return f.FindByUserIDFn(ctx, userID, q)
}
func (f *fakeVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	return f.UpdateFn(ctx, vehicle)
}
func (f *fakeVehicleRepo) Delete(ctx context.Context, id int) error { return f.DeleteFn(ctx, id) }
func (f *fakeVehicleRepo) Count(ctx context.Context) (int, error)   { return f.CountFn(ctx) }

type fakeUserRepo struct {
	CreateFn      func(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFn    func(ctx context.Context, id int) (*domain.User, error)
	FindAdminsFn  func(ctx context.Context) ([]domain.User, error)
	CountFn       func(ctx context.Context) (int, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return f.CreateFn(ctx, user)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.FindByEmailFn(ctx, email)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindAdmins(ctx context.Context) ([]domain.User, error) {
	return f.FindAdminsFn(ctx)
}
func (f *fakeUserRepo) Count(ctx context.Context) (int, error) { return f.CountFn(ctx) }

type fakeSlotRepo struct {
	CreateFn       func(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	FindByIDFn     func(ctx context.Context, id int) (*domain.ParkingSlot, error)
	FindFn         func(ctx context.Context, filter domain.ParkingSlotFilterDTO, q domain.PageQuery) ([]domain.ParkingSlot, int, error)
	UpdateFn       func(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	UpdateStatusFn func(ctx context.Context, id int, status domain.SlotStatus) error
	DeleteFn       func(ctx context.Context, id int) error
	CountFn        func(ctx context.Context) (int, error)
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	return f.CreateFn(ctx, slot)
}
func (f *fakeSlotRepo) FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeSlotRepo) Find(ctx context.Context, filter domain.ParkingSlotFilterDTO, q domain.PageQuery) ([]domain.ParkingSlot, int, error) {
	return f.FindFn(ctx, filter, q)
}
func (f *fakeSlotRepo) Update(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	return f.UpdateFn(ctx, slot)
}
func (f *fakeSlotRepo) UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error {
	return f.UpdateStatusFn(ctx, id, status)
}
func (f *fakeSlotRepo) Delete(ctx context.Context, id int) error { return f.DeleteFn(ctx, id) }
func (f *fakeSlotRepo) Count(ctx context.Context) (int, error)   { return f.CountFn(ctx) }

type fakePaymentRepo struct {
	CreateFn              func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	CompleteFn            func(ctx context.Context, paymentID int, transactionID string, reservationID int) error
	MarkFailedFn          func(ctx context.Context, paymentID int) error
	FindByTransactionIDFn func(ctx context.Context, transactionID string) (*domain.Payment, error)
	FindByUserFn          func(ctx context.Context, userID int, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error)
	FindAllFn             func(ctx context.Context, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error)
	SumCompletedFn        func(ctx context.Context) (float64, error)
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	return f.CreateFn(ctx, payment)
}
func (f *fakePaymentRepo) Complete(ctx context.Context, paymentID int, transactionID string, reservationID int) error {
	return f.CompleteFn(ctx, paymentID, transactionID, reservationID)
}
func (f *fakePaymentRepo) MarkFailed(ctx context.Context, paymentID int) error {
	return f.MarkFailedFn(ctx, paymentID)
}
func (f *fakePaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return f.FindByTransactionIDFn(ctx, transactionID)
}
func (f *fakePaymentRepo) FindByUser(ctx context.Context, userID int, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	return f.FindByUserFn(ctx, userID, filter, q)
}
func (f *fakePaymentRepo) FindAll(ctx context.Context, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	return f.FindAllFn(ctx, filter, q)
}
func (f *fakePaymentRepo) SumCompleted(ctx context.Context) (float64, error) {
	return f.SumCompletedFn(ctx)
}

type fakeNotificationRepo struct {
	CreateFn     func(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByIDFn   func(ctx context.Context, id int) (*domain.Notification, error)
	FindByUserFn func(ctx context.Context, userID int, filter domain.NotificationFilterDTO, q domain.PageQuery) ([]domain.Notification, int, error)
	MarkReadFn   func(ctx context.Context, id int) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	return f.CreateFn(ctx, n)
}
func (f *fakeNotificationRepo) FindByID(ctx context.Context, id int) (*domain.Notification, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeNotificationRepo) FindByUser(ctx context.Context, userID int, filter domain.NotificationFilterDTO, q domain.PageQuery) ([]domain.Notification, int, error) {
	return f.FindByUserFn(ctx, userID, filter, q)
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id int) error {
	return f.MarkReadFn(ctx, id)
}

// fakeAuditRepo ghi lại mọi entry để assert.
type fakeAuditRepo struct {
	entries []domain.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}
func (f *fakeAuditRepo) Find(ctx context.Context, filter domain.AuditLogFilterDTO, q domain.PageQuery) ([]domain.AuditLog, int, error) {
	return f.entries, len(f.entries), nil
}

var _ repository.AuditLogRepository = (*fakeAuditRepo)(nil)

// fakeNotifier ghi lại các intent đã phát.
type fakeNotifier struct {
	userNotices  []string
	adminNotices []string
	emails       []string
}

func (f *fakeNotifier) NotifyUser(ctx context.Context, userID int, message string, typ domain.NotificationType) {
	f.userNotices = append(f.userNotices, message)
}
func (f *fakeNotifier) NotifyAdmins(ctx context.Context, message string, typ domain.NotificationType) {
	f.adminNotices = append(f.adminNotices, message)
}
func (f *fakeNotifier) SendEmail(ctx context.Context, to, subject, body string) {
	f.emails = append(f.emails, to)
}

type fakeGateway struct {
	ChargeFn func(ctx context.Context, amount float64, method string) (gateway.Result, error)
}

func (f *fakeGateway) Charge(ctx context.Context, amount float64, method string) (gateway.Result, error) {
	return f.ChargeFn(ctx, amount, method)
}

var (
	_ repository.ReservationRepository  = (*fakeReservationRepo)(nil)
	_ repository.VehicleRepository      = (*fakeVehicleRepo)(nil)
	_ repository.UserRepository         = (*fakeUserRepo)(nil)
	_ repository.ParkingSlotRepository  = (*fakeSlotRepo)(nil)
	_ repository.PaymentRepository      = (*fakePaymentRepo)(nil)
	_ repository.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ Notifier                          = (*fakeNotifier)(nil)
	_ gateway.Gateway                   = (*fakeGateway)(nil)
)
