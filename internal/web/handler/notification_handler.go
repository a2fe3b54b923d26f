package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reserveaqui/webgateway/internal/services"
)

// NotificationHandler proxies the logged-in user's notification feed.
type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type unreadCountResponse struct {
	Unread int `json:"nao_lidas"`
}

// List handles GET /notifications.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        page  query  int   false  "Page number"
// @Param        read  query  bool  false  "Filter by read state"
// @Success      200  {object}  domain.Page[domain.Notification]
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	page, err := h.notifications.List(c.Request().Context(), services.ListNotificationsParams{
		Page: queryInt(c, "page"),
		Read: queryBool(c, "read"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /notifications/:id.
//
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	notification, err := h.notifications.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}

// MarkRead handles POST /notifications/:id/read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	notification, err := h.notifications.MarkRead(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notification)
}

// MarkAllRead handles POST /notifications/read-all.
//
// @Summary      Mark every notification read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notifications.MarkAllRead(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Notificações marcadas como lidas."})
}

// UnreadCount handles GET /notifications/unread-count, the badge number.
//
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  unreadCountResponse
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notifications.CountUnread(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Unread: count})
}
