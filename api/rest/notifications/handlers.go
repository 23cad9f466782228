package notifications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/api/rest/pagination"
	"github.com/Muneerali199/website-builder/internal/auth"
	apierrors "github.com/Muneerali199/website-builder/internal/errors"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/notifications"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ListHandler godoc
// @Summary List notifications
// @Description Quota notices for the signed-in user, newest first
// @Tags notifications
// @Produce json
// @Param limit query int false "Max results (1-100)" default(50)
// @Param offset query int false "Results to skip" default(0)
// @Param unread query bool false "Only unread"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/notifications [get]
// @Security BearerAuth
func ListHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, defaultListLimit, maxListLimit)
		unreadOnly := c.Query("unread") == "true"

		notifs, err := svc.ListForUser(c.Request.Context(), userID, params.Limit, params.Offset, unreadOnly)
		if err != nil {
			apierrors.InternalError(c, "failed to fetch notifications", err)
			return
		}

		total, err := svc.CountForUser(c.Request.Context(), userID, unreadOnly)
		if err != nil {
			apierrors.InternalError(c, "failed to count notifications", err)
			return
		}

		unreadCount, err := svc.GetUnreadCount(c.Request.Context(), userID)
		if err != nil {
			logger.ErrorErr(err, "failed to count unread notifications", "user_id", userID)
			unreadCount = 0
		}

		response := make([]NotificationResponse, 0, len(notifs))

		for _, n := range notifs {
			response = append(response, NotificationResponse{
				ID:        n.ID,
				Type:      n.Type,
				Title:     n.Title,
				Body:      n.Body,
				Data:      n.Data,
				Read:      n.Read,
				CreatedAt: n.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, ListResponse{
			Notifications: response,
			UnreadCount:   unreadCount,
			Pagination:    pagination.NewMeta(params, total),
		})
	}
}

// MarkReadHandler godoc
// @Summary Mark a notification read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/notifications/{id}/read [post]
// @Security BearerAuth
func MarkReadHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		notificationID, ok := apierrors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		err := svc.MarkRead(c.Request.Context(), userID, notificationID)
		if errors.Is(err, notifications.ErrNotificationNotFound) {
			apierrors.NotFound(c, "notification")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to mark notification as read", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// MarkAllReadHandler godoc
// @Summary Mark all notifications read
// @Tags notifications
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/notifications/read-all [post]
// @Security BearerAuth
func MarkAllReadHandler(svc *notifications.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if err := svc.MarkAllRead(c.Request.Context(), userID); err != nil {
			apierrors.InternalError(c, "failed to mark notifications as read", err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
