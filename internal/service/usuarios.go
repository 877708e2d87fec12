package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/usuarios-api/internal/errs"
	"github.com/deppfellow/usuarios-api/internal/model"
	"github.com/deppfellow/usuarios-api/internal/password"
	"github.com/deppfellow/usuarios-api/internal/repository"
)

const (
	MessageUsuarioNotFound = "Usuario no encontrado"
	MessageEmailTaken      = "El email ya está registrado"
	MessageEmailTakenOther = "El email ya está registrado por otro usuario"
)

var (
	codeUsuarioNotFound = "USUARIO_NOT_FOUND"
	codeEmailTaken      = "EMAIL_ALREADY_REGISTERED"
)

// ErrUsuarioNotFound is returned for every lookup that matches no row.
var ErrUsuarioNotFound = errs.NewNotFoundError(MessageUsuarioNotFound, true, &codeUsuarioNotFound)

// WelcomeEnqueuer schedules the welcome email. *job.JobService satisfies it.
type WelcomeEnqueuer interface {
	EnqueueWelcome(ctx context.Context, to, nombre string) error
}

// CreateUsuarioInput holds an already validated and normalized create request.
type CreateUsuarioInput struct {
	Nombre   string
	Email    string
	Password string
}

// UpdateUsuarioInput holds the fields a caller supplied. Nil means absent.
// Password is plaintext.
type UpdateUsuarioInput struct {
	Nombre   *string
	Email    *string
	Password *string
	Activo   *bool
}

type UsuarioService struct {
	repo    repository.UsuarioRepository
	hasher  password.Hasher
	welcome WelcomeEnqueuer
	logger  *zerolog.Logger
}

// NewUsuarioService builds the service. welcome may be nil, in which case
// no welcome email is scheduled.
func NewUsuarioService(
	repo repository.UsuarioRepository,
	hasher password.Hasher,
	welcome WelcomeEnqueuer,
	logger *zerolog.Logger,
) *UsuarioService {
	return &UsuarioService{
		repo:    repo,
		hasher:  hasher,
		welcome: welcome,
		logger:  logger,
	}
}

func (s *UsuarioService) List(ctx context.Context) ([]model.Usuario, error) {
	usuarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list usuarios")
	}
	return usuarios, nil
}

func (s *UsuarioService) GetByID(ctx context.Context, id string) (*model.Usuario, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to get usuario")
	}
	return u, nil
}

// Create hashes the password and stores a new active usuario. The welcome
// email is scheduled afterwards and its failure never fails the request.
func (s *UsuarioService) Create(ctx context.Context, in CreateUsuarioInput) (*model.Usuario, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}

	created, err := s.repo.Create(ctx, &model.Usuario{
		Nombre:   in.Nombre,
		Email:    in.Email,
		Password: hash,
		Activo:   true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, errs.NewBadRequestError(MessageEmailTaken, true, &codeEmailTaken, nil)
		}
		return nil, internalError(err, "failed to create usuario")
	}

	s.enqueueWelcome(ctx, created)

	return created, nil
}

// Update writes only the supplied fields. The password is rehashed only
// when a new one is supplied.
func (s *UsuarioService) Update(ctx context.Context, id string, in UpdateUsuarioInput) (*model.Usuario, error) {
	changes := model.UsuarioChanges{
		Nombre: in.Nombre,
		Email:  in.Email,
		Activo: in.Activo,
	}

	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, internalError(err, "failed to hash password")
		}
		changes.Password = &hash
	}

	// Nothing to write: report the current state without touching updated_at.
	if changes.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, errs.NewBadRequestError(MessageEmailTakenOther, true, &codeEmailTaken, nil)
		}
		return nil, s.mapError(err, "failed to update usuario")
	}

	return updated, nil
}

func (s *UsuarioService) Delete(ctx context.Context, id string) (*model.UsuarioEliminado, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to delete usuario")
	}
	return deleted, nil
}

func (s *UsuarioService) mapError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUsuarioNotFound
	}
	return internalError(err, msg)
}

// internalError marks err as a 500. Store errors still carry their
// SQLSTATE, and a constraint code here is a bug, not a client mistake.
func internalError(err error, msg string) error {
	return errs.NewInternalServerError(fmt.Errorf("%s: %w", msg, err))
}

func (s *UsuarioService) enqueueWelcome(ctx context.Context, u *model.Usuario) {
	if s.welcome == nil {
		return
	}

	if err := s.welcome.EnqueueWelcome(ctx, u.Email, u.Nombre); err != nil {
		s.logger.Warn().
			Err(err).
			Str("usuario_id", u.ID).
			Msg("failed to enqueue welcome email")
	}
}
