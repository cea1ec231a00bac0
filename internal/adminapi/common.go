package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/draft"
	"github.com/florelia/floraladmin/internal/payments"
	"github.com/florelia/floraladmin/internal/upload"
)

// Register wires all console routes; call after webserver.Init.
func Register() {
	registerAuthRoutes()
	registerProductRoutes()
	registerFormRoutes()
	registerOrderRoutes()
	registerPaymentRoutes()
	registerDashboardRoutes()
	registerNotificationRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{"success": false, "message": message})
}

// failErr maps the console error taxonomy onto HTTP statuses. Every failed
// user action ends in exactly one message; backend business messages pass
// through verbatim.
func failErr(c echo.Context, err error) error {
	var verr draft.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, upload.ErrInFlight):
		return fail(c, http.StatusConflict, "an upload is already in progress, please wait")
	case errors.Is(err, payments.ErrNotConfigured),
		errors.Is(err, payments.ErrInvalidAmount):
		return fail(c, http.StatusBadRequest, err.Error())
	case api.IsDisabledAccount(err):
		return fail(c, http.StatusForbidden,
			"your account is disabled, please contact a super administrator")
	case api.IsUnauthorized(err):
		return fail(c, http.StatusUnauthorized, "your session has expired, please log in again")
	case api.IsTransport(err):
		return fail(c, http.StatusBadGateway, "cannot reach the Florelia backend, please try again")
	}
	var serr *api.ServerError
	if errors.As(err, &serr) {
		status := serr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadRequest
		}
		return fail(c, status, serr.Error())
	}
	return fail(c, http.StatusInternalServerError, err.Error())
}
