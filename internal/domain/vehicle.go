package domain

import "time"

type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleBus        VehicleType = "bus"
	VehicleTruck      VehicleType = "truck"
)

type Vehicle struct {
	ID           int         `json:"id"`
	UserID       int         `json:"user_id"`
	Type         VehicleType `json:"type"`
	LicensePlate string      `json:"license_plate"`
	Brand        string      `json:"brand,omitempty"`
	Model        string      `json:"model,omitempty"`
	Color        string      `json:"color,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// VehicleSummary dùng khi join với reservation
type VehicleSummary struct {
	Type         VehicleType `json:"type"`
	LicensePlate string      `json:"license_plate"`
	Brand        string      `json:"brand,omitempty"`
	Model        string      `json:"model,omitempty"`
	Color        string      `json:"color,omitempty"`
}

type VehicleDTO struct {
	Type         string `json:"type" binding:"required,oneof=car motorcycle bus truck"`
	LicensePlate string `json:"license_plate" binding:"required,max=20"`
	Brand        string `json:"brand" binding:"max=50"`
	Model        string `json:"model" binding:"max=50"`
	Color        string `json:"color" binding:"max=30"`
}
