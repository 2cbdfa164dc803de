package domain

import "time"

type NotificationType string

const (
	NotifReservation NotificationType = "reservation"
	NotifPayment     NotificationType = "payment"
	NotifOther       NotificationType = "other"
)

// Notification là bản ghi append-only, được tạo bởi notifier như một side effect.
// Không bao giờ là điều kiện đúng đắn của nghiệp vụ chính.
type Notification struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationFilterDTO struct {
	Unread *bool `form:"unread"`
}
