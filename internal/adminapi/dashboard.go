package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/domain"
	"github.com/florelia/floraladmin/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", loadDashboard)
}

// loadDashboard returns stats, analytics and seller performance in one
// response. Backend or session failures yield a labeled degraded snapshot
// instead of an error, so the page renders its offline state.
func loadDashboard(c echo.Context) error {
	r := domain.AnalyticsRange(c.QueryParam("range"))
	snap, err := webserver.GetApp(c).Dashboard().Load(c.Request().Context(), r)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, snap)
}
