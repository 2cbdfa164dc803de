// Package notifier là ranh giới dispatch-and-log cho mọi side effect
// (notification, email, đẩy WebSocket): nghiệp vụ chính phát intent, notifier
// tự chịu trách nhiệm gửi. Mọi lỗi ở đây được log và nuốt, không bao giờ
// lan ngược về caller hay làm hỏng kết quả của thao tác chính.
package notifier

import (
	"context"
	"log"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

type Notifier struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	email     EmailSender // Có thể nil nếu chưa cấu hình SES
	hub       *Hub        // Có thể nil (ví dụ trong test)
}

func New(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, email EmailSender, hub *Hub) *Notifier {
	return &Notifier{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		email:     email,
		hub:       hub,
	}
}

// NotifyUser tạo notification cho một user và đẩy xuống dashboard.
func (n *Notifier) NotifyUser(ctx context.Context, userID int, message string, typ domain.NotificationType) {
	_, err := n.notifRepo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Message: message,
		Type:    typ,
	})
	if err != nil {
		log.Printf("Notifier: lỗi tạo notification cho user %d: %v", userID, err)
		return
	}
	if n.hub != nil {
		n.hub.BroadcastNotification(NotificationEvent{
			UserID:  userID,
			Message: message,
			Type:    string(typ),
		})
	}
}

// NotifyAdmins gửi notification cho tất cả user có role admin.
func (n *Notifier) NotifyAdmins(ctx context.Context, message string, typ domain.NotificationType) {
	admins, err := n.userRepo.FindAdmins(ctx)
	if err != nil {
		log.Printf("Notifier: lỗi lấy danh sách admin: %v", err)
		return
	}
	for _, admin := range admins {
		n.NotifyUser(ctx, admin.ID, message, typ)
	}
}

// SendEmail gửi email best-effort; không cấu hình email sender thì chỉ log.
func (n *Notifier) SendEmail(ctx context.Context, to string, subject string, body string) {
	if n.email == nil {
		log.Printf("Notifier: email sender chưa được cấu hình, bỏ qua email tới %s", to)
		return
	}
	if err := n.email.Send(ctx, to, subject, body); err != nil {
		log.Printf("Notifier: lỗi gửi email tới %s: %v", to, err)
	}
}
