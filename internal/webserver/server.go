package webserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/app"
)

// AppContextKey is where the application is stashed on each request context.
const AppContextKey = "floraladmin.app"

var server *WebServer

// routes that must work without a session
var openRoutes = map[string]bool{
	"/auth/login": true,
	"/status":     true,
}

type WebServer struct {
	root *echo.Echo
	app  app.AppContext
}

func Init(appCtx app.AppContext) {
	server = NewWebServer(appCtx)
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &WebServer{root: e, app: appCtx}
	e.Use(s.injectApp)

	e.GET("/api/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]bool{"loggedIn": appCtx.Session().LoggedIn()},
		})
	})
	return s
}

func Listen() error {
	cfg := server.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("console listening on %s", addr)
	return server.root.Start(addr)
}

func Stop() {
	_ = server.root.Close()
}

// Echo exposes the router for handler tests.
func (s *WebServer) Echo() *echo.Echo { return s.root }

// Server returns the active instance; nil before Init.
func Server() *WebServer { return server }

func (s *WebServer) injectApp(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(AppContextKey, s.app)
		return next(c)
	}
}

// GetApp recovers the application from the request context.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

func (s *WebServer) add(method, path string, h echo.HandlerFunc) {
	handler := h
	if !openRoutes[path] {
		handler = requireSession(h)
	}
	s.root.Add(method, "/api"+path, handler)
}

// requireSession gates console routes on a held backend token. The backend
// still authorizes every forwarded call; this only keeps logged-out browsers
// off the console API.
func requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !GetApp(c).Session().LoggedIn() {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "please log in",
			})
		}
		return next(c)
	}
}

func ApiGET(path string, h echo.HandlerFunc)    { server.add(http.MethodGet, path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.add(http.MethodPost, path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.add(http.MethodPut, path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.add(http.MethodDelete, path, h) }
