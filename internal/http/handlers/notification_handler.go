// Notification HTTP handlers.
//
// This file exposes the per-recipient notification feed:
//   - GET   /notifications             (list, paginated, ?unread=true filter)
//   - PATCH /notifications/{id}/read  (mark one notification as read)
//
// Notifications are only ever created by the matching engine (in the same
// transaction as a MatchDecision); these endpoints are read/acknowledge only.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docufind/go-match-backend/internal/domain"
	"github.com/docufind/go-match-backend/internal/services"
)

// ListNotificationsResponse wraps a page of notifications with counts.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	// UnreadCount is the recipient's overall unread count, independent of
	// the current page or filter.
	UnreadCount int64      `json:"unread_count"`
	Pagination  Pagination `json:"pagination"`
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     List your notifications (paginated)
// @Description Returns a page of the user's notifications, newest first. Pass
// @Description unread=true to restrict the page to unread entries; the
// @Description unread_count field is always the overall unread total.
// @Tags        Notifications
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       unread     query   bool    false "Only unread entries"     default(false)
// @Param       page       query   int     false "Page number"             minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"          minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListNotificationsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	uid := userID(c)
	page, pageSize := clampPagination(c)
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	items, total, unread, err := h.notifSvc.List(c.Request.Context(), uid, unreadOnly, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListNotificationsResponse{
		Notifications: items,
		UnreadCount:   unread,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// MarkNotificationRead godoc
// @ID          markNotificationRead
// @Summary     Mark a notification as read
// @Description Acknowledges one of the user's notifications. Notifications that
// @Description belong to another recipient read as not found.
// @Tags        Notifications
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"    example(user123)
// @Param       id         path    string  true  "Notification ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Notification not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id}/read [patch]
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "notification id must be a UUID")
		return
	}

	if err := h.notifSvc.MarkRead(c.Request.Context(), id, userID(c)); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "notification not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
