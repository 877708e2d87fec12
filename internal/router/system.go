package router

import (
	"io/fs"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/usuarios-api/internal/handler"
)

// registerSystemRoutes registers the endpoints outside the usuarios API:
// health, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, assets fs.FS) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", assets)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
