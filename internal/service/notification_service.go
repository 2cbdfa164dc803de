package service

import (
	"context"
	"errors"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

var ErrNotificationNotOwned = errors.New("notification không thuộc về user này")

type NotificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID int, filter domain.NotificationFilterDTO, q domain.PageQuery) ([]domain.Notification, int, error) {
	return s.notifRepo.FindByUser(ctx, userID, filter, q)
}

// MarkRead đánh dấu đã đọc. Notification của user khác trả về
// ErrNotificationNotOwned (403), khác với không tồn tại (404).
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int) (*domain.Notification, error) {
	notif, err := s.notifRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notif.UserID != userID {
		return nil, ErrNotificationNotOwned
	}
	if err := s.notifRepo.MarkRead(ctx, notif.ID); err != nil {
		return nil, err
	}
	notif.IsRead = true
	return notif, nil
}
