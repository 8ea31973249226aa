// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Notification
// model. Notifications are only ever written as a symmetric pair alongside a
// new MatchDecision, so the write path is a single both-or-neither insert.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
)

// InsertNotificationPair persists both notifications of a match atomically.
// When db is already a transaction handle the pair joins that transaction
// (gorm nests via savepoints); otherwise a transaction is opened here. Either
// both rows are committed or neither is.
func InsertNotificationPair(ctx context.Context, db *gorm.DB, a, b *domain.Notification) error {
	now := time.Now().UTC()
	for _, n := range []*domain.Notification{a, b} {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.Type == "" {
			n.Type = domain.NotificationTypeMatch
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Create(b).Error
	})
}

// CountNotifications returns the number of notifications for recipientID,
// optionally restricted to unread rows.
func CountNotifications(ctx context.Context, db *gorm.DB, recipientID string, unreadOnly bool) (int64, error) {
	q := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListNotificationsPage returns a paginated slice of notifications for
// recipientID, newest first, optionally restricted to unread rows.
func ListNotificationsPage(ctx context.Context, db *gorm.DB, recipientID string, unreadOnly bool, offset, limit int) ([]domain.Notification, error) {
	q := db.WithContext(ctx).
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var out []domain.Notification
	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkNotificationRead flags one notification as read, enforcing recipient
// ownership. If no rows are affected (row missing or owned by someone else),
// it returns ErrNotFound. Marking an already-read row is a no-op success.
func MarkNotificationRead(ctx context.Context, db *gorm.DB, id, recipientID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish "missing" from "already read": gorm still reports one
		// affected row for a same-value update on SQLite, so zero means missing.
		var count int64
		if err := db.WithContext(ctx).
			Model(&domain.Notification{}).
			Where("id = ? AND recipient_id = ?", id, recipientID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}
