package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

func TestNotificationService_MarkRead_Owned(t *testing.T) {
	marked := false
	notifRepo := &fakeNotificationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Notification, error) {
			return &domain.Notification{ID: id, UserID: 7, Message: "test"}, nil
		},
		MarkReadFn: func(ctx context.Context, id int) error {
			marked = true
			return nil
		},
	}
	svc := NewNotificationService(notifRepo)

	notif, err := svc.MarkRead(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.True(t, marked)
	assert.True(t, notif.IsRead)
}

func TestNotificationService_MarkRead_NotOwned(t *testing.T) {
	notifRepo := &fakeNotificationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Notification, error) {
			return &domain.Notification{ID: id, UserID: 99}, nil
		},
	}
	svc := NewNotificationService(notifRepo)

	_, err := svc.MarkRead(context.Background(), 1, 7)

	// khác 404: notification tồn tại nhưng không thuộc về user -> 403
	assert.ErrorIs(t, err, ErrNotificationNotOwned)
}

func TestNotificationService_MarkRead_Missing(t *testing.T) {
	notifRepo := &fakeNotificationRepo{
		FindByIDFn: func(ctx context.Context, id int) (*domain.Notification, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewNotificationService(notifRepo)

	_, err := svc.MarkRead(context.Background(), 1, 7)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
