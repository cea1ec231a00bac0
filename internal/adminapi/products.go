package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/florelia/floraladmin/internal/catalog"
	"github.com/florelia/floraladmin/internal/domain"
	"github.com/florelia/floraladmin/internal/webserver"
)

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts refetches the admin's own listings and applies the category
// filter and search term from the query string.
func listProducts(c echo.Context) error {
	app := webserver.GetApp(c)
	svc := app.Catalog()
	if err := svc.Refresh(); err != nil {
		return failErr(c, err)
	}
	filter := catalog.Filter{
		Category: domain.Category(strings.TrimSpace(c.QueryParam("category"))),
		Search:   c.QueryParam("q"),
	}
	return ok(c, svc.Filtered(filter))
}

func updateProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "missing product ID")
	}
	var payload domain.Product
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse product")
	}
	updated, err := webserver.GetApp(c).Catalog().Update(id, &payload)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, updated)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return fail(c, http.StatusBadRequest, "missing product ID")
	}
	if err := webserver.GetApp(c).Catalog().Delete(id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
