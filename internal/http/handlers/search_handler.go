// Fuzzy document-number search handler.
//
// This file exposes:
//   - GET /search/similar?number=…&type=…&min=…
//
// The endpoint tolerates transcription errors in printed document numbers:
// results are reports of the requested type whose number is within `min`
// percent (default 70) of the query under normalized Levenshtein similarity.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docufind/go-match-backend/internal/utils"
)

// SearchSimilarResponse wraps the fuzzy-search results.
type SearchSimilarResponse struct {
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// SearchResult is one fuzzy-search hit.
type SearchResult struct {
	ReportID   string `json:"report_id"`
	OwnerID    string `json:"owner_id"`
	Status     string `json:"status"`
	Title      string `json:"title"`
	Similarity int    `json:"similarity"`
}

// SearchSimilar godoc
// @ID          searchSimilar
// @Summary     Fuzzy search by document number
// @Description Finds reports of the given type whose document number is close to
// @Description the query under edit-distance similarity, best first.
// @Tags        Search
// @Produce     json
//
// @Param       number  query  string  true  "Document number to search for"  example(AB1234567)
// @Param       type    query  string  true  "Document type"                  example(passport)
// @Param       min     query  int     false "Minimum similarity percent"     minimum(1) maximum(100) default(70)
//
// @Success     200  {object} handlers.SearchSimilarResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /search/similar [get]
func (h *Handlers) SearchSimilar(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	docType := strings.TrimSpace(c.Query("type"))
	if number == "" || docType == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "number and type query parameters are required")
		return
	}
	min := utils.AtoiDefault(c.Query("min"), 0)
	if min < 0 || min > 100 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "min must be between 1 and 100")
		return
	}

	hits, err := h.searchSvc.SearchSimilar(c.Request.Context(), number, docType, min)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSearchFailed, err.Error())
		return
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, SearchResult{
			ReportID:   hit.Report.ID,
			OwnerID:    hit.Report.OwnerID,
			Status:     hit.Report.Status,
			Title:      hit.Report.Title,
			Similarity: hit.Similarity,
		})
	}
	ok(c, http.StatusOK, SearchSimilarResponse{Results: results, Count: len(results)})
}
