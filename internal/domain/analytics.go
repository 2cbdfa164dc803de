package domain

// DashboardStats là snapshot tổng hợp cho dashboard của admin.
// OccupancyRate là chuỗi phần trăm hai chữ số thập phân, ví dụ "66.67%".
type DashboardStats struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalVehicles     int     `json:"totalVehicles"`
	TotalReservations int     `json:"totalReservations"`
	TotalRevenue      float64 `json:"totalRevenue"`
	OccupancyRate     string  `json:"occupancyRate"`
}
