package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/repo"
)

// NotificationService exposes a recipient's notification feed.
type NotificationService struct {
	DB *gorm.DB
}

// List returns one page of the recipient's notifications, newest first,
// together with the total matching count and the overall unread count.
func (s *NotificationService) List(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, int64, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, err := repo.ListNotificationsPage(ctx, s.DB, recipientID, unreadOnly, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	total, unread, err := repo.NotificationStats(ctx, s.DB, recipientID)
	if err != nil {
		return nil, 0, 0, err
	}
	if unreadOnly {
		return items, unread, unread, nil
	}
	return items, total, unread, nil
}

// MarkRead flips one of the recipient's notifications to read. Notifications
// belonging to someone else surface as not found.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	err := repo.MarkNotificationRead(ctx, s.DB, notificationID, recipientID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
