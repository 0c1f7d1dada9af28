package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendbook/internal/services"
)

// NotificationHandler handles notification requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetUserNotifications handles listing a user's notifications.
// @Summary     List a user's notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "Notifications"
// @Router      /notifications/{id} [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadNotifications handles listing a user's unread notifications.
// @Summary     List a user's unread notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} map[string]interface{} "Unread notifications"
// @Router      /notifications/{id}/unread [get]
func (h *NotificationHandler) GetUnreadNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetUnreadByUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead handles marking a single notification as read.
// @Summary     Mark a notification as read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     200 {object} MessageResponse "Marked as read"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/mark-read [post]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead handles marking all of a user's notifications as read.
// @Summary     Mark all notifications as read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse "All marked as read"
// @Router      /notifications/{id}/mark-all-read [post]
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
