// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/usuarios-api/internal/password"
	"github.com/deppfellow/usuarios-api/internal/repository"
	"github.com/deppfellow/usuarios-api/internal/server"
)

type Services struct {
	Usuarios *UsuarioService
}

// NewServices wires the services. The welcome email is scheduled only
// when the job worker is running and email delivery is configured.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var welcome WelcomeEnqueuer
	if s.Job != nil && s.Config.Integration.EmailEnabled() {
		welcome = s.Job
	}

	hasher := password.NewBcryptHasher(s.Config.Password.BcryptCost)

	return &Services{
		Usuarios: NewUsuarioService(repos.Usuarios, hasher, welcome, s.Logger),
	}, nil
}
