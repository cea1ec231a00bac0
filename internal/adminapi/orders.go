package adminapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/domain"
	"github.com/florelia/floraladmin/internal/orders"
	"github.com/florelia/floraladmin/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
	webserver.ApiGET("/orders/export", exportOrders)
}

func orderFilter(c echo.Context) orders.Filter {
	return orders.Filter{
		Status: domain.OrderStatus(c.QueryParam("status")),
		Search: c.QueryParam("q"),
	}
}

func listOrders(c echo.Context) error {
	svc := webserver.GetApp(c).Orders()
	if err := svc.Refresh(); err != nil {
		return failErr(c, err)
	}
	return ok(c, svc.Filtered(orderFilter(c)))
}

func updateOrderStatus(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "missing order ID")
	}
	var payload struct {
		OrderStatus domain.OrderStatus `json:"orderStatus"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse order status")
	}
	applied, err := webserver.GetApp(c).Orders().UpdateStatus(id, payload.OrderStatus)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "orderStatus": applied})
}

// exportOrders downloads the current (filtered) order list as a spreadsheet.
func exportOrders(c echo.Context) error {
	svc := webserver.GetApp(c).Orders()
	if err := svc.Refresh(); err != nil {
		return failErr(c, err)
	}
	list := svc.Filtered(orderFilter(c))

	var buf bytes.Buffer
	if err := orders.ExportXLSX(&buf, list); err != nil {
		return failErr(c, err)
	}
	filename := "orders-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
