package domain

import "time"

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotReserved    SlotStatus = "reserved"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
)

type ParkingSlot struct {
	ID         int        `json:"id"`
	SlotNumber string     `json:"slot_number"`
	Floor      int        `json:"floor"`
	Type       string     `json:"type"` // Loại chỗ đỗ: "standard", "compact", "large", ...
	Status     SlotStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SlotSummary dùng khi join với reservation
type SlotSummary struct {
	SlotNumber string     `json:"slot_number"`
	Floor      int        `json:"floor"`
	Type       string     `json:"type"`
	Status     SlotStatus `json:"status,omitempty"`
}

type ParkingSlotDTO struct {
	SlotNumber string `json:"slot_number" binding:"required,max=20"`
	Floor      int    `json:"floor" binding:"min=0"`
	Type       string `json:"type" binding:"max=30"`
	Status     string `json:"status,omitempty"`
}

type ParkingSlotFilterDTO struct {
	Status *string `form:"status"`
	Floor  *int    `form:"floor"`
}
