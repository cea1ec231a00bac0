package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/webserver"
)

func registerAuthRoutes() {
	webserver.ApiPOST("/auth/login", login)
	webserver.ApiPOST("/auth/logout", logout)
	webserver.ApiGET("/auth/verify", verify)
	webserver.ApiPUT("/auth/change-password", changePassword)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse login request")
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "username and password are required")
	}

	app := webserver.GetApp(c)
	res, err := app.Gateway().Login(payload.Username, payload.Password)
	if err != nil {
		return failErr(c, err)
	}
	if err := app.Session().SetToken(res.Token, res.Admin); err != nil {
		return failErr(c, err)
	}
	zap.L().Info("admin logged in", zap.String("username", payload.Username))
	return ok(c, res.Admin)
}

func logout(c echo.Context) error {
	if err := webserver.GetApp(c).Session().Clear(); err != nil {
		return failErr(c, err)
	}
	return ok(c, nil)
}

func verify(c echo.Context) error {
	admin, err := webserver.GetApp(c).Gateway().Verify()
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, admin)
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func changePassword(c echo.Context) error {
	var payload changePasswordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse password change request")
	}
	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "both passwords are required")
	}

	app := webserver.GetApp(c)
	if err := app.Gateway().ChangePassword(payload.CurrentPassword, payload.NewPassword); err != nil {
		return failErr(c, err)
	}
	// password changed: the old token is void, force a fresh login
	if err := app.Session().Clear(); err != nil {
		zap.L().Warn("session clear after password change failed", zap.Error(err))
	}
	return ok(c, map[string]bool{"reLogin": true})
}
