// Report HTTP handlers.
//
// This file exposes REST endpoints for lost/found document reports:
//   - POST /reports                (submit a report; triggers a matching pass)
//   - GET  /reports                (list own reports, paginated, ETag support)
//   - GET  /reports/{id}          (fetch one report with its match decision)
//   - GET  /reports/{id}/matches  (score candidates for one of your reports)
//   - POST /reports/{id}/evaluate (re-run the decision pass for a report)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/services"
	"github.com/docufind/go-match-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ReportService defines the report lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ReportService interface {
	// Create validates and persists a report, then runs a matching pass.
	Create(ctx context.Context, r *domain.DocumentReport) (*domain.DocumentReport, error)
	// Get returns a report and its match decision (nil when unmatched).
	Get(ctx context.Context, id string) (*domain.DocumentReport, *domain.MatchDecision, error)
	// List returns a page of the owner's reports and the total count.
	List(ctx context.Context, ownerID string, page, pageSize int) ([]domain.DocumentReport, int64, error)
	// Stats returns the owner's report count and latest update time,
	// used to derive weak ETags for conditional list responses.
	Stats(ctx context.Context, ownerID string) (int64, *time.Time, error)
	// Matches scores candidates for one of the requester's reports.
	Matches(ctx context.Context, reportID, userID string) ([]domain.MatchCandidate, error)
	// Evaluate re-runs the decision pass for one of the requester's reports.
	Evaluate(ctx context.Context, reportID, userID string) (*domain.MatchDecision, error)
}

// SearchService defines the fuzzy document-number lookup.
type SearchService interface {
	// SearchSimilar finds reports whose number is within minSimilarity
	// percent of the query under edit-distance similarity.
	SearchSimilar(ctx context.Context, number, docType string, minSimilarity int) ([]domain.ScoredCandidate, error)
}

// NotificationService defines the per-recipient notification feed.
type NotificationService interface {
	// List returns a page of notifications plus total and unread counts.
	List(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, int64, int64, error)
	// MarkRead marks one of the recipient's notifications as read.
	MarkRead(ctx context.Context, notificationID, recipientID string) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for reports, fuzzy search, and notifications.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	reportSvc ReportService
	searchSvc SearchService
	notifSvc  NotificationService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(reportSvc ReportService, searchSvc SearchService, notifSvc NotificationService) *Handlers {
	return &Handlers{reportSvc: reportSvc, searchSvc: searchSvc, notifSvc: notifSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// CreateReportRequest is the JSON payload for submitting a report.
type CreateReportRequest struct {
	// Type is the document type: national-id, passport, drivers-license, other.
	Type string `json:"type" binding:"required" example:"passport"`
	// Status is the side of the report: lost or found.
	Status string `json:"status" binding:"required" example:"lost"`
	// Title is a short human description of the document.
	Title string `json:"title" binding:"required,min=1,max=255" example:"Red passport, cover slightly torn"`
	// Description optionally adds free-text detail.
	Description string `json:"description" example:"Lost near the central market on Saturday"`
	// DocumentNumber is the printed number, when known.
	DocumentNumber string `json:"document_number" example:"AB1234567"`
	// Latitude/Longitude are the last-seen coordinates; provide both or neither.
	Latitude  *float64 `json:"latitude" example:"-25.9692"`
	Longitude *float64 `json:"longitude" example:"32.5732"`
}

// ReportResponse wraps a report together with its match state.
type ReportResponse struct {
	Report *domain.DocumentReport `json:"report"`
	// Matched is true when a decision exists for this report.
	Matched bool `json:"matched"`
	// Decision is present only when Matched is true.
	Decision *domain.MatchDecision `json:"decision,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListReportsResponse wraps a page of reports and pagination information.
type ListReportsResponse struct {
	Reports    []domain.DocumentReport `json:"reports"`
	Pagination Pagination              `json:"pagination"`
}

// MatchesResponse wraps the scored candidates for a report.
type MatchesResponse struct {
	Matches []domain.MatchCandidate `json:"matches"`
}

// EvaluateResponse reports the outcome of a decision pass.
type EvaluateResponse struct {
	// Decided is true when a decision exists after the pass (new or prior).
	Decided  bool                  `json:"decided"`
	Decision *domain.MatchDecision `json:"decision,omitempty"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// CreateReport godoc
// @ID          createReport
// @Summary     Submit a lost or found report
// @Description Creates a report for the current user and runs one matching pass
// @Description against the opposite-status pool. A degraded pass never fails the submission.
// @Tags        Reports
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CreateReportRequest  true  "Report payload"
//
// @Success     201  {object}  domain.DocumentReport
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type, status, and title are required")
		return
	}

	r := &domain.DocumentReport{
		OwnerID:        userID(c),
		Type:           req.Type,
		Status:         req.Status,
		Title:          req.Title,
		Description:    req.Description,
		DocumentNumber: req.DocumentNumber,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	}

	created, err := h.reportSvc.Create(c.Request.Context(), r)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReport):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown document type or missing title")
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be lost or found")
		case errors.Is(err, services.ErrIncompleteLocation):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "latitude and longitude must be provided together")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// GetReport godoc
// @ID          getReport
// @Summary     Fetch a report with its match state
// @Description Returns the report and, when a confident match has been recorded,
// @Description the decision that links it to its counterpart.
// @Tags        Reports
// @Produce     json
//
// @Param       id  path  string  true  "Report ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ReportResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Report not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reports/{id} [get]
func (h *Handlers) GetReport(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report id must be a UUID")
		return
	}

	r, decision, err := h.reportSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "report not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ReportResponse{Report: r, Matched: decision != nil, Decision: decision})
}

// ListReports godoc
// @ID          listReports
// @Summary     List your reports (paginated)
// @Description Returns a page of the user's reports. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Reports
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListReportsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reports [get]
func (h *Handlers) ListReports(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort; a stats failure falls through to the list).
	if count, maxTS, err := h.reportSvc.Stats(ctx, uid); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"reports:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.reportSvc.List(ctx, uid, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListReportsResponse{
		Reports: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// ListReportMatches godoc
// @ID          listReportMatches
// @Summary     Score candidates for one of your reports
// @Description Runs the read-only matching pipeline and returns every candidate
// @Description at or above the suggest threshold, best first. Degraded retrieval
// @Description returns an empty list rather than an error.
// @Tags        Reports
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Report ID (UUID)"       format(uuid)
//
// @Success     200  {object} handlers.MatchesResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Report not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reports/{id}/matches [get]
func (h *Handlers) ListReportMatches(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report id must be a UUID")
		return
	}

	matches, err := h.reportSvc.Matches(c.Request.Context(), id, userID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "report not found")
		case errors.Is(err, services.ErrRetrievalFailed):
			// Degraded pass: surface the empty result, not a 5xx.
			ok(c, http.StatusOK, MatchesResponse{Matches: []domain.MatchCandidate{}})
		default:
			fail(c, http.StatusInternalServerError, ErrCodeMatchFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, MatchesResponse{Matches: matches})
}

// EvaluateReport godoc
// @ID          evaluateReport
// @Summary     Re-run the decision pass for a report
// @Description Evaluates the top candidate against the notify threshold. A pair
// @Description that was already decided returns the existing decision unchanged.
// @Tags        Reports
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Report ID (UUID)"       format(uuid)
//
// @Success     200  {object} handlers.EvaluateResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Report not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /reports/{id}/evaluate [post]
func (h *Handlers) EvaluateReport(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "report id must be a UUID")
		return
	}

	decision, err := h.reportSvc.Evaluate(c.Request.Context(), id, userID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "report not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeMatchFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, EvaluateResponse{Decided: decision != nil, Decision: decision})
}
