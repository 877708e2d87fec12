package repository

import (
	"github.com/deppfellow/usuarios-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Usuarios UsuarioRepository
}

// NewRepositories wires the repositories onto the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Usuarios: NewPostgresUsuarioRepository(s.DB.Pool),
	}
}
