// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the MatchDecision
// model, whose unique pair-key index is the idempotency boundary of the whole
// matching engine: concurrent passes over the same report pair race on one
// atomic insert instead of a check-then-insert.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
)

// TryInsertDecision atomically records a decision for the (lost, found) pair.
//
// It returns (decision, true, nil) when this call created the row, and
// (existing, false, nil) when a decision for the canonical pair key was
// already present, in which case the existing row is returned unchanged.
// Any other DB error is propagated.
//
// Duplicate detection relies on the unique index on pair_key: the insert is
// attempted first and a unique-constraint violation is translated into a
// fetch of the winning row. There is deliberately no pre-insert existence
// check; that ordering is what makes concurrent same-pair passes safe.
func TryInsertDecision(ctx context.Context, db *gorm.DB, lostID, foundID string, score int, reasons []string) (*domain.MatchDecision, bool, error) {
	d := &domain.MatchDecision{
		ID:            uuid.NewString(),
		PairKey:       domain.PairKey(lostID, foundID),
		LostReportID:  lostID,
		FoundReportID: foundID,
		Score:         score,
		Reasons:       reasons,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, false, err
		}
		existing, gerr := GetDecisionByPairKey(ctx, db, d.PairKey)
		if gerr != nil {
			return nil, false, gerr
		}
		return existing, false, nil
	}
	return d, true, nil
}

// GetDecisionByPairKey fetches the decision for a canonical pair key, or
// ErrNotFound when no decision has been recorded for that pair.
func GetDecisionByPairKey(ctx context.Context, db *gorm.DB, pairKey string) (*domain.MatchDecision, error) {
	var d domain.MatchDecision
	err := db.WithContext(ctx).
		Where("pair_key = ?", pairKey).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FirstDecisionForReport returns the earliest decision involving reportID on
// either side, or ErrNotFound. A non-nil result means the report has reached
// the Matched state as far as the engine observes it.
func FirstDecisionForReport(ctx context.Context, db *gorm.DB, reportID string) (*domain.MatchDecision, error) {
	var d domain.MatchDecision
	err := db.WithContext(ctx).
		Where("lost_report_id = ? OR found_report_id = ?", reportID, reportID).
		Order("created_at asc").
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations,
// so the message is sniffed in addition to gorm's translated sentinel.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
