// Package services – MatchService
//
// This file implements MatchService, the decision core of the engine. Given a
// report it retrieves candidate reports of the opposite status, scores every
// pair with the independent signal scorers, aggregates the contributions into
// one bounded confidence score, and — when confidence clears the notify
// threshold — persists a MatchDecision together with its symmetric
// notification pair in a single transaction.
//
// Idempotency is not implemented here: it lives at the persistence boundary
// (the unique pair-key index behind repo.TryInsertDecision), so concurrent
// passes over the same pair need no in-process locking.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include report identifiers, candidate counts, and top scores.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/match"
	"github.com/docufind/go-match-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchService runs the matching pipeline: retrieve, score, decide, notify.
type MatchService struct {
	DB      *gorm.DB
	Weights match.Weights

	// SuggestThreshold is the minimum composite score for a candidate to be
	// surfaced by FindMatches (defaults to 20). NotifyThreshold is the
	// minimum top score for EvaluateAndNotify to record a decision
	// (defaults to 50). Both comparisons are inclusive.
	SuggestThreshold int
	NotifyThreshold  int

	// RecencyWindow bounds candidate retrieval (defaults to 30 days).
	RecencyWindow time.Duration

	// MinSimilarity is the default fuzzy-search cutoff in percent
	// (defaults to 70).
	MinSimilarity int

	// Locale used for casing document-type labels in notification copy.
	Locale language.Tag
}

// FindMatches retrieves and scores candidates for the given report and
// returns every candidate worth surfacing (score at or above the suggest
// threshold), sorted by score descending with ties broken by the earliest
// candidate creation time. It is read-only and has no side effects.
//
// When the document store is unreachable the result is an empty slice plus an
// error wrapping ErrRetrievalFailed; callers in the report-creation flow log
// it and move on rather than failing the submission.
func (s *MatchService) FindMatches(ctx context.Context, r *domain.DocumentReport) ([]domain.MatchCandidate, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "FindMatches",
		trace.WithAttributes(attribute.String("report.id", r.ID)),
	)
	defer span.End()

	ranked, err := s.rankCandidates(ctx, r)
	if err != nil {
		return []domain.MatchCandidate{}, err
	}

	threshold := s.suggestThreshold()
	out := make([]domain.MatchCandidate, 0, len(ranked))
	for _, c := range ranked {
		if c.Score >= threshold {
			out = append(out, c)
		}
	}
	span.SetAttributes(attribute.Int("candidates.surfaced", len(out)))
	return out, nil
}

// EvaluateAndNotify runs the same pipeline as FindMatches but acts only on the
// top candidate, and only when its score reaches the notify threshold. On a
// confident match it persists the MatchDecision and both notifications in one
// transaction; if a decision already exists for the canonical pair the
// existing decision is returned unchanged and nothing new is written.
//
// It returns (nil, nil) when there is no confident match this pass.
func (s *MatchService) EvaluateAndNotify(ctx context.Context, r *domain.DocumentReport) (*domain.MatchDecision, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "EvaluateAndNotify",
		trace.WithAttributes(attribute.String("report.id", r.ID)),
	)
	defer span.End()

	ranked, err := s.rankCandidates(ctx, r)
	if err != nil {
		matchPasses.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(ranked) == 0 {
		matchPasses.WithLabelValues("no_match").Inc()
		return nil, nil
	}

	top := ranked[0]
	topScores.Observe(float64(top.Score))
	span.SetAttributes(
		attribute.Int("top.score", top.Score),
		attribute.String("top.report_id", top.Report.ID),
	)

	if top.Score < s.notifyThreshold() {
		matchPasses.WithLabelValues("no_match").Inc()
		return nil, nil
	}

	lost, found := r, &top.Report
	if r.Status == domain.StatusFound {
		lost, found = &top.Report, r
	}

	var (
		decision *domain.MatchDecision
		isNew    bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, fresh, derr := repo.TryInsertDecision(ctx, tx, lost.ID, found.ID, top.Score, top.Reasons)
		if derr != nil {
			return derr
		}
		decision, isNew = d, fresh
		if !fresh {
			return nil
		}
		toLoser, toFinder := s.buildNotificationPair(d, lost, found)
		return repo.InsertNotificationPair(ctx, tx, toLoser, toFinder)
	})
	if err != nil {
		matchPasses.WithLabelValues("error").Inc()
		return nil, err
	}

	if isNew {
		decisionsCreated.Inc()
		matchPasses.WithLabelValues("decided").Inc()
	} else {
		matchPasses.WithLabelValues("duplicate").Inc()
	}
	return decision, nil
}

// SearchSimilar looks up reports of the given type whose document number is
// within minSimilarity percent of the query under normalized Levenshtein
// similarity, sorted by similarity descending. An empty number or type yields
// an empty result rather than an error; minSimilarity <= 0 falls back to the
// configured default.
func (s *MatchService) SearchSimilar(ctx context.Context, number, docType string, minSimilarity int) ([]domain.ScoredCandidate, error) {
	tr := otel.Tracer("services/MatchService")
	ctx, span := tr.Start(ctx, "SearchSimilar",
		trace.WithAttributes(attribute.String("document.type", docType)),
	)
	defer span.End()

	number = strings.TrimSpace(number)
	if number == "" || strings.TrimSpace(docType) == "" {
		return []domain.ScoredCandidate{}, nil
	}
	if minSimilarity <= 0 {
		minSimilarity = s.minSimilarity()
	}

	reports, err := repo.ListNumberedReports(ctx, s.DB, docType)
	if err != nil {
		return []domain.ScoredCandidate{}, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	query := strings.ToUpper(number)
	out := make([]domain.ScoredCandidate, 0, len(reports))
	for _, rep := range reports {
		sim := match.LevenshteinSimilarity(query, strings.ToUpper(strings.TrimSpace(rep.DocumentNumber)))
		if sim >= minSimilarity {
			out = append(out, domain.ScoredCandidate{Report: rep, Similarity: sim})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Report.CreatedAt.Before(out[j].Report.CreatedAt)
	})

	span.SetAttributes(attribute.Int("results", len(out)))
	return out, nil
}

// rankCandidates retrieves the candidate set and scores every pair, returning
// all candidates ordered by score descending, ties broken by the earliest
// candidate creation time (fairness to whoever reported first).
func (s *MatchService) rankCandidates(ctx context.Context, r *domain.DocumentReport) ([]domain.MatchCandidate, error) {
	opposite := domain.OppositeStatus(r.Status)
	if opposite == "" {
		return nil, ErrInvalidStatus
	}
	if r.Type == "" {
		return nil, ErrInvalidReport
	}

	cutoff := time.Now().UTC().Add(-s.recencyWindow())
	candidates, err := repo.ListCandidateReports(ctx, s.DB, r.Type, opposite, r.OwnerID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	weights := s.weights()
	ranked := make([]domain.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		score, reasons := match.Score(weights, *r, c)
		ranked = append(ranked, domain.MatchCandidate{
			Report:  c,
			Score:   score,
			Reasons: reasons,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Report.CreatedAt.Before(ranked[j].Report.CreatedAt)
	})
	return ranked, nil
}

// buildNotificationPair produces the two notifications accompanying a new
// decision: one addressed to the owner of the lost report, one to the finder.
func (s *MatchService) buildNotificationPair(d *domain.MatchDecision, lost, found *domain.DocumentReport) (*domain.Notification, *domain.Notification) {
	label := s.typeLabel(lost.Type)

	toLoser := &domain.Notification{
		RecipientID:         lost.OwnerID,
		Type:                domain.NotificationTypeMatch,
		Message:             fmt.Sprintf("A found %s may match the one you reported lost", label),
		MatchedReportID:     lost.ID,
		MatchScore:          d.Score,
		MatchedWithReportID: found.ID,
	}
	toFinder := &domain.Notification{
		RecipientID:         found.OwnerID,
		Type:                domain.NotificationTypeMatch,
		Message:             fmt.Sprintf("Someone reported losing a %s you may have found", label),
		MatchedReportID:     found.ID,
		MatchScore:          d.Score,
		MatchedWithReportID: lost.ID,
	}
	return toLoser, toFinder
}

// typeLabel turns a document type slug into display copy ("national-id" ->
// "National Id") using the configured locale.
func (s *MatchService) typeLabel(docType string) string {
	label := strings.ReplaceAll(docType, "-", " ")
	return cases.Title(s.localeOrDefault()).String(label)
}

func (s *MatchService) localeOrDefault() language.Tag {
	if s.Locale == language.Und {
		return language.English
	}
	return s.Locale
}

// --- threshold/config defaulting ---

func (s *MatchService) weights() match.Weights {
	if s.Weights == (match.Weights{}) {
		return match.DefaultWeights()
	}
	return s.Weights
}

func (s *MatchService) suggestThreshold() int {
	if s.SuggestThreshold <= 0 {
		return 20
	}
	return s.SuggestThreshold
}

func (s *MatchService) notifyThreshold() int {
	if s.NotifyThreshold <= 0 {
		return 50
	}
	return s.NotifyThreshold
}

func (s *MatchService) recencyWindow() time.Duration {
	if s.RecencyWindow <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.RecencyWindow
}

func (s *MatchService) minSimilarity() int {
	if s.MinSimilarity <= 0 {
		return 70
	}
	return s.MinSimilarity
}
