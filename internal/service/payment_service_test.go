package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/gateway"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

func TestPaymentService_Initiate_ReservationNotFound(t *testing.T) {
	auditor, _ := newTestAuditor()
	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewPaymentService(&fakePaymentRepo{}, resRepo, &fakeGateway{}, &fakeNotifier{}, auditor)

	_, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 99, Method: "card"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPaymentService_Initiate_AlreadyPaid(t *testing.T) {
	auditor, _ := newTestAuditor()
	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, Status: domain.ReservationPaid, Amount: null.FloatFrom(2400)}, nil
		},
	}
	svc := NewPaymentService(&fakePaymentRepo{}, resRepo, &fakeGateway{}, &fakeNotifier{}, auditor)

	_, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 42, Method: "card"})

	assert.ErrorIs(t, err, ErrReservationAlreadyPaid)
}

func TestPaymentService_Initiate_NotPriced(t *testing.T) {
	auditor, _ := newTestAuditor()
	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			// pending, admin chưa acknowledge nên amount còn NULL
			return &domain.Reservation{ID: id, Status: domain.ReservationPending}, nil
		},
	}
	svc := NewPaymentService(&fakePaymentRepo{}, resRepo, &fakeGateway{}, &fakeNotifier{}, auditor)

	_, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 42, Method: "card"})

	assert.ErrorIs(t, err, ErrReservationNotPriced)
}

func TestPaymentService_Initiate_Success(t *testing.T) {
	auditor, auditRepo := newTestAuditor()
	notifier := &fakeNotifier{}

	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, UserID: 7, Status: domain.ReservationActive, Amount: null.FloatFrom(2400)}, nil
		},
	}
	completed := false
	paymentRepo := &fakePaymentRepo{
		CreateFn: func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
			created := *payment
			created.ID = 5
			return &created, nil
		},
		CompleteFn: func(ctx context.Context, paymentID int, transactionID string, reservationID int) error {
			assert.Equal(t, 5, paymentID)
			assert.Equal(t, 42, reservationID)
			assert.Equal(t, "TXN-abc", transactionID)
			completed = true
			return nil
		},
	}
	gw := &fakeGateway{
		ChargeFn: func(ctx context.Context, amount float64, method string) (gateway.Result, error) {
			assert.Equal(t, float64(2400), amount)
			assert.Equal(t, "card", method)
			return gateway.Result{Success: true, TransactionID: "TXN-abc"}, nil
		},
	}
	svc := NewPaymentService(paymentRepo, resRepo, gw, notifier, auditor)

	payment, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 42, Method: "card"})

	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.Equal(t, "TXN-abc", payment.TransactionID.String)
	assert.Len(t, notifier.userNotices, 1)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "payment_completed", auditRepo.entries[0].Action)
}

func TestPaymentService_Initiate_GatewayDeclined(t *testing.T) {
	auditor, _ := newTestAuditor()
	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, UserID: 7, Status: domain.ReservationActive, Amount: null.FloatFrom(2400)}, nil
		},
	}
	markedFailed := false
	paymentRepo := &fakePaymentRepo{
		CreateFn: func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
			created := *payment
			created.ID = 5
			return &created, nil
		},
		MarkFailedFn: func(ctx context.Context, paymentID int) error {
			markedFailed = true
			return nil
		},
	}
	gw := &fakeGateway{
		ChargeFn: func(ctx context.Context, amount float64, method string) (gateway.Result, error) {
			return gateway.Result{Success: false}, nil
		},
	}
	svc := NewPaymentService(paymentRepo, resRepo, gw, &fakeNotifier{}, auditor)

	payment, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 42, Method: "card"})

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.True(t, markedFailed)
	require.NotNil(t, payment)
	assert.Equal(t, domain.PaymentFailed, payment.Status)
}

func TestPaymentService_Initiate_GatewayError(t *testing.T) {
	auditor, _ := newTestAuditor()
	resRepo := &fakeReservationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Reservation, error) {
			return &domain.Reservation{ID: id, UserID: 7, Status: domain.ReservationActive, Amount: null.FloatFrom(2400)}, nil
		},
	}
	markedFailed := false
	paymentRepo := &fakePaymentRepo{
		CreateFn: func(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
			created := *payment
			created.ID = 5
			return &created, nil
		},
		MarkFailedFn: func(ctx context.Context, paymentID int) error {
			markedFailed = true
			return nil
		},
	}
	gw := &fakeGateway{
		ChargeFn: func(ctx context.Context, amount float64, method string) (gateway.Result, error) {
			return gateway.Result{}, errors.New("timeout kết nối gateway")
		},
	}
	svc := NewPaymentService(paymentRepo, resRepo, gw, &fakeNotifier{}, auditor)

	_, err := svc.Initiate(context.Background(), 7, domain.InitiatePaymentDTO{ReservationID: 42, Method: "card"})

	require.Error(t, err)
	assert.True(t, markedFailed)
}

func TestPaymentService_Verify_UnknownTransaction(t *testing.T) {
	auditor, _ := newTestAuditor()
	paymentRepo := &fakePaymentRepo{
		FindByTransactionIDFn: func(ctx context.Context, transactionID string) (*domain.Payment, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewPaymentService(paymentRepo, &fakeReservationRepo{}, &fakeGateway{}, &fakeNotifier{}, auditor)

	_, err := svc.Verify(context.Background(), domain.VerifyPaymentDTO{TransactionID: "TXN-missing"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
