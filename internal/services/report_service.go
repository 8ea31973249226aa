package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Matcher is the slice of MatchService that ReportService needs. Declared
// here so report tests can stub the matching pass.
type Matcher interface {
	FindMatches(ctx context.Context, r *domain.DocumentReport) ([]domain.MatchCandidate, error)
	EvaluateAndNotify(ctx context.Context, r *domain.DocumentReport) (*domain.MatchDecision, error)
}

// ReportService handles report submission and retrieval. Creating a report
// also triggers one bounded matching pass; a failed pass never fails the
// submission.
type ReportService struct {
	DB      *gorm.DB
	Matcher Matcher

	// MatchTimeout bounds the creation-time matching pass (defaults to 3s).
	MatchTimeout time.Duration
}

// Create validates and persists a new report, then runs a matching pass
// against the opposite-status pool. The pass is best-effort: retrieval
// failures and timeouts are logged and the freshly created report is still
// returned.
func (s *ReportService) Create(ctx context.Context, r *domain.DocumentReport) (*domain.DocumentReport, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("report.type", r.Type),
			attribute.String("report.status", r.Status),
		),
	)
	defer span.End()

	if err := normalizeReport(r); err != nil {
		return nil, err
	}
	if _, err := repo.CreateReport(ctx, s.DB, r); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("report.id", r.ID))

	if s.Matcher != nil {
		mctx, cancel := context.WithTimeout(ctx, s.matchTimeout())
		defer cancel()
		if _, err := s.Matcher.EvaluateAndNotify(mctx, r); err != nil {
			log.Warn().
				Err(err).
				Str("report_id", r.ID).
				Msg("matching pass aborted, report created without it")
		}
	}
	return r, nil
}

// Get returns a report by ID together with its match decision, if one has
// been recorded for it on either side of a pair. A nil decision means the
// report is unmatched.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.DocumentReport, *domain.MatchDecision, error) {
	r, err := repo.GetReport(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrReportNotFound
		}
		return nil, nil, err
	}

	decision, err := repo.FirstDecisionForReport(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return r, nil, nil
		}
		return nil, nil, err
	}
	return r, decision, nil
}

// List returns one page of the owner's reports, newest first, plus the
// owner's total count.
func (s *ReportService) List(ctx context.Context, ownerID string, page, pageSize int) ([]domain.DocumentReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := repo.CountReports(ctx, s.DB, ownerID)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListReportsPage(ctx, s.DB, ownerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Stats returns the owner's report count and the latest update timestamp
// among their reports (nil when they have none). The HTTP layer derives weak
// ETags from it for conditional list responses.
func (s *ReportService) Stats(ctx context.Context, ownerID string) (int64, *time.Time, error) {
	return repo.ReportStats(ctx, s.DB, ownerID)
}

// Matches returns the surfaced candidates for one of the requester's own
// reports. Reports belonging to other users are reported as not found rather
// than forbidden.
func (s *ReportService) Matches(ctx context.Context, reportID, userID string) ([]domain.MatchCandidate, error) {
	r, err := s.ownedReport(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}
	return s.Matcher.FindMatches(ctx, r)
}

// Evaluate re-runs the decision pass for one of the requester's own reports.
// The result is nil when no candidate clears the notify threshold; a repeat
// call for an already decided pair returns the existing decision.
func (s *ReportService) Evaluate(ctx context.Context, reportID, userID string) (*domain.MatchDecision, error) {
	r, err := s.ownedReport(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}
	return s.Matcher.EvaluateAndNotify(ctx, r)
}

func (s *ReportService) ownedReport(ctx context.Context, reportID, userID string) (*domain.DocumentReport, error) {
	r, err := repo.GetReport(ctx, s.DB, reportID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if r.OwnerID != userID {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (s *ReportService) matchTimeout() time.Duration {
	if s.MatchTimeout <= 0 {
		return 3 * time.Second
	}
	return s.MatchTimeout
}

// normalizeReport trims and lowercases the categorical fields and enforces
// the submission rules: known type, lost/found status, non-empty title and
// owner, coordinates as a pair or not at all.
func normalizeReport(r *domain.DocumentReport) error {
	r.OwnerID = strings.TrimSpace(r.OwnerID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DocumentNumber = strings.TrimSpace(r.DocumentNumber)

	if r.OwnerID == "" || r.Title == "" {
		return ErrInvalidReport
	}
	if !domain.KnownType(r.Type) {
		return ErrInvalidReport
	}
	if domain.OppositeStatus(r.Status) == "" {
		return ErrInvalidStatus
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return ErrIncompleteLocation
	}
	return nil
}
