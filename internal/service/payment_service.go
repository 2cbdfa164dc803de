package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chiesa14/pvms-ne/internal/audit"
	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/gateway"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

var (
	ErrReservationAlreadyPaid = errors.New("reservation đã được thanh toán")
	ErrReservationNotPriced   = errors.New("reservation chưa được admin xác nhận nên chưa có giá")
	ErrPaymentFailed          = errors.New("thanh toán thất bại")
)

type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	gateway         gateway.Gateway
	notifier        Notifier
	auditor         *audit.Recorder
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	gw gateway.Gateway,
	notifier Notifier,
	auditor *audit.Recorder,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		gateway:         gw,
		notifier:        notifier,
		auditor:         auditor,
	}
}

// Initiate tạo payment pending với amount lấy từ reservation rồi gọi gateway.
// Thành công: payment -> completed và reservation -> paid trong một transaction.
// Thất bại: payment -> failed, reservation giữ nguyên.
func (s *PaymentService) Initiate(ctx context.Context, userID int, dto domain.InitiatePaymentDTO) (*domain.Payment, error) {
	res, err := s.reservationRepo.FindByID(ctx, dto.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ReservationPaid {
		return nil, ErrReservationAlreadyPaid
	}
	if !res.Amount.Valid {
		return nil, ErrReservationNotPriced
	}

	payment := &domain.Payment{
		ReservationID: res.ID,
		UserID:        userID,
		Amount:        res.Amount.Float64,
		Method:        dto.Method,
		Status:        domain.PaymentPending,
		PaymentDate:   time.Now().UTC(),
	}
	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Charge(ctx, created.Amount, created.Method)
	if err != nil {
		if markErr := s.paymentRepo.MarkFailed(ctx, created.ID); markErr != nil {
			return nil, fmt.Errorf("lỗi gateway (%v) và không thể đánh dấu payment failed: %w", err, markErr)
		}
		return nil, fmt.Errorf("lỗi gateway: %w", err)
	}
	if !result.Success {
		if err := s.paymentRepo.MarkFailed(ctx, created.ID); err != nil {
			return nil, err
		}
		created.Status = domain.PaymentFailed
		s.auditor.Record(ctx, userID, "payments", created.ID, "payment_failed", "")
		return created, ErrPaymentFailed
	}

	if err := s.paymentRepo.Complete(ctx, created.ID, result.TransactionID, created.ReservationID); err != nil {
		return nil, err
	}
	created.Status = domain.PaymentCompleted
	created.TransactionID.SetValid(result.TransactionID)

	s.auditor.Record(ctx, userID, "payments", created.ID, "payment_completed", result.TransactionID)
	s.notifier.NotifyUser(ctx, userID,
		fmt.Sprintf("Thanh toán %.0f cho reservation #%d thành công.", created.Amount, created.ReservationID),
		domain.NotifPayment)

	return created, nil
}

// Verify tra cứu payment theo transaction id (dùng cho đối soát).
func (s *PaymentService) Verify(ctx context.Context, dto domain.VerifyPaymentDTO) (*domain.Payment, error) {
	return s.paymentRepo.FindByTransactionID(ctx, dto.TransactionID)
}

func (s *PaymentService) ListByUser(ctx context.Context, userID int, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	return s.paymentRepo.FindByUser(ctx, userID, filter, q)
}

func (s *PaymentService) ListAll(ctx context.Context, filter domain.PaymentFilterDTO, q domain.PageQuery) ([]domain.Payment, int, error) {
	return s.paymentRepo.FindAll(ctx, filter, q)
}
