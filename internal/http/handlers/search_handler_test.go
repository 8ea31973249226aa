package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docufind/go-match-backend/internal/domain"
)

func TestSearchSimilar_ReturnsHits(t *testing.T) {
	ss := &stubSearchSvc{hits: []domain.ScoredCandidate{
		{Report: domain.DocumentReport{ID: "r1", OwnerID: "u1", Status: domain.StatusFound, Title: "passport"}, Similarity: 100},
		{Report: domain.DocumentReport{ID: "r2", OwnerID: "u2", Status: domain.StatusLost, Title: "passport"}, Similarity: 88},
	}}
	r := newTestRouter(&stubReportSvc{}, ss, &stubNotifSvc{})

	req := httptest.NewRequest(http.MethodGet, "/search/similar?number=AB1234567&type=passport", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp SearchSimilarResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Count != 2 || len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", resp)
	}
	if resp.Results[0].ReportID != "r1" || resp.Results[0].Similarity != 100 {
		t.Fatalf("unexpected first result: %+v", resp.Results[0])
	}
}

func TestSearchSimilar_MissingParams(t *testing.T) {
	r := newTestRouter(&stubReportSvc{}, &stubSearchSvc{}, &stubNotifSvc{})

	for _, q := range []string{"", "?number=AB123", "?type=passport"} {
		req := httptest.NewRequest(http.MethodGet, "/search/similar"+q, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status=%d", q, w.Code)
		}
	}
}

func TestSearchSimilar_MinOutOfRange(t *testing.T) {
	r := newTestRouter(&stubReportSvc{}, &stubSearchSvc{}, &stubNotifSvc{})

	req := httptest.NewRequest(http.MethodGet, "/search/similar?number=AB123&type=passport&min=150", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}
