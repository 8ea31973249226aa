// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// DocumentReport model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a report is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.ReportService and services.MatchService) which enforces
// validation, scoring, and decision policy.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateReport inserts a new DocumentReport row. The report ID is a randomly
// generated UUID (string) unless already set, and CreatedAt defaults to UTC now.
//
// On success, it returns the persisted report. On failure, it returns a DB error.
func CreateReport(ctx context.Context, db *gorm.DB, r *domain.DocumentReport) (*domain.DocumentReport, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetReport fetches a single report by its ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetReport(ctx context.Context, db *gorm.DB, id string) (*domain.DocumentReport, error) {
	var r domain.DocumentReport
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountReports returns the total number of reports submitted by ownerID.
// On DB error, it returns the error.
func CountReports(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.DocumentReport{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error
	return total, err
}

// ListReportsPage returns a paginated slice of reports for ownerID, ordered by
// creation time descending. Use CountReports to obtain the total for pagination
// metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListReportsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.DocumentReport, error) {
	var out []domain.DocumentReport
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListCandidateReports returns the candidate set for a matching pass: reports
// of the given type and status, not owned by excludeOwnerID, created at or
// after createdAfter. Results are ordered by creation time ascending so that
// downstream tie-breaking favours whoever reported first.
func ListCandidateReports(ctx context.Context, db *gorm.DB, docType, status, excludeOwnerID string, createdAfter time.Time) ([]domain.DocumentReport, error) {
	var out []domain.DocumentReport
	err := db.WithContext(ctx).
		Where("type = ? AND status = ? AND owner_id <> ? AND created_at >= ?",
			docType, status, excludeOwnerID, createdAfter).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// ListNumberedReports returns all reports of the given type (any status) that
// carry a non-empty document number. Used by the fuzzy number search.
func ListNumberedReports(ctx context.Context, db *gorm.DB, docType string) ([]domain.DocumentReport, error) {
	var out []domain.DocumentReport
	err := db.WithContext(ctx).
		Where("type = ? AND document_number <> ''", docType).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}
