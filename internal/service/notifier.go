package service

import (
	"context"

	"github.com/Chiesa14/pvms-ne/internal/domain"
)

// Notifier là ranh giới side effect mà các service phát intent vào.
// Mọi phương thức đều best-effort: không trả lỗi, không làm hỏng thao tác chính.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int, message string, typ domain.NotificationType)
	NotifyAdmins(ctx context.Context, message string, typ domain.NotificationType)
	SendEmail(ctx context.Context, to string, subject string, body string)
}
