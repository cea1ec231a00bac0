package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/webserver"
)

func registerNotificationRoutes() {
	webserver.ApiGET("/notifications", listNotifications)
	webserver.ApiPUT("/notifications/:id/read", markNotificationRead)
	webserver.ApiDELETE("/notifications/:id", deleteNotification)
}

func listNotifications(c echo.Context) error {
	notifier := webserver.GetApp(c).Notifier()
	return ok(c, map[string]interface{}{
		"notifications": notifier.Latest(),
		"unread":        notifier.Unread(),
	})
}

func markNotificationRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "missing notification ID")
	}
	if err := webserver.GetApp(c).Notifier().MarkRead(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]string{"id": id})
}

func deleteNotification(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "missing notification ID")
	}
	if err := webserver.GetApp(c).Notifier().Delete(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]string{"id": id})
}
