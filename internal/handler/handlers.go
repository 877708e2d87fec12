package handler

import (
	"io/fs"

	"github.com/deppfellow/usuarios-api/internal/server"
	"github.com/deppfellow/usuarios-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Usuario *UsuarioHandler
}

// NewHandlers builds every handler. assets holds openapi.html and openapi.json.
func NewHandlers(s *server.Server, services *service.Services, assets fs.FS) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, assets),
		Usuario: NewUsuarioHandler(s, services.Usuarios),
	}
}
