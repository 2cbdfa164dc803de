package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID            int           `json:"id"`
	UserID        int           `json:"user_id"`
	ReservationID int           `json:"reservation_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Method        string        `json:"method,omitempty"`
	TransactionID null.String   `json:"transaction_id"`
	PaymentDate   time.Time     `json:"payment_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Reservation *ReservationSummary `json:"reservation,omitempty"` // Không map vào DB
	User        *UserSummary        `json:"user,omitempty"`        // Không map vào DB, chỉ cho admin
}

// ReservationSummary dùng khi join payment với reservation
type ReservationSummary struct {
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    ReservationStatus `json:"status"`
}

type InitiatePaymentDTO struct {
	ReservationID int    `json:"reservation_id" binding:"required"`
	Method        string `json:"payment_method" binding:"required,max=30"`
}

type VerifyPaymentDTO struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

type PaymentFilterDTO struct {
	Status    *string    `form:"status"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}
