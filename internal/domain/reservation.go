package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationActive    ReservationStatus = "active"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationRevoked   ReservationStatus = "revoked"
)

type Reservation struct {
	ID        int               `json:"id"`
	UserID    int               `json:"user_id"`
	SlotID    int               `json:"slot_id"`
	VehicleID int               `json:"vehicle_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    ReservationStatus `json:"status"`
	Amount    null.Float        `json:"amount"` // Được ghi khi admin xác nhận (tính từ ticket)
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Slot    *SlotSummary    `json:"slot,omitempty"`    // Không map vào DB, dùng để trả về API
	Vehicle *VehicleSummary `json:"vehicle,omitempty"` // Không map vào DB
	User    *UserSummary    `json:"user,omitempty"`    // Không map vào DB, chỉ cho admin
}

type CreateReservationDTO struct {
	SlotID    int       `json:"slot_id" binding:"required"`
	VehicleID int       `json:"vehicle_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type ReservationFilterDTO struct {
	Status    *string    `form:"status"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// Ticket là bảng tính giá trả về khi admin xác nhận reservation
type Ticket struct {
	DurationHours int     `json:"durationHours"`
	VehicleType   string  `json:"vehicleType"`
	PricePerHour  float64 `json:"pricePerHour"`
	TotalPrice    float64 `json:"totalPrice"`
}
