// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/usuarios-api/internal/handler"
	"github.com/deppfellow/usuarios-api/internal/middleware"
	"github.com/deppfellow/usuarios-api/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
//
// Order matters: New Relic opens the transaction, RequestID feeds the
// context logger, and the request logger reads both.
func NewRouter(s *server.Server, h *handler.Handlers, assets fs.FS) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, assets)
	registerUsuarioRoutes(router, h)

	return router
}

func registerUsuarioRoutes(r *echo.Echo, h *handler.Handlers) {
	usuarios := r.Group("/usuarios")

	usuarios.GET("", handler.Handle(h.Usuario.ListUsuarios, http.StatusOK))
	usuarios.GET("/:id", handler.Handle(h.Usuario.GetUsuario, http.StatusOK))
	usuarios.POST("", handler.Handle(h.Usuario.CreateUsuario, http.StatusCreated))
	usuarios.PUT("/:id", handler.Handle(h.Usuario.UpdateUsuario, http.StatusOK))
	usuarios.DELETE("/:id", handler.Handle(h.Usuario.DeleteUsuario, http.StatusOK))
}
