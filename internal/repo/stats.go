// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for pagination metadata and conditional responses in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
)

// ReportStats returns aggregate metadata for an owner's reports: the total
// number of rows and the maximum UpdatedAt timestamp among those rows.
//
// When the owner has no reports, the returned count is 0 and maxUpdatedAt
// is nil.
func ReportStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.DocumentReport{}).Where("owner_id = ?", ownerID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// NotificationStats returns the total and unread notification counts for a
// recipient in two lightweight queries.
func NotificationStats(ctx context.Context, db *gorm.DB, recipientID string) (total, unread int64, err error) {
	if total, err = CountNotifications(ctx, db, recipientID, false); err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}
	if unread, err = CountNotifications(ctx, db, recipientID, true); err != nil {
		return 0, 0, err
	}
	return total, unread, nil
}
