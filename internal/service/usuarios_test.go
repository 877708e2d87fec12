package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/usuarios-api/internal/errs"
	"github.com/deppfellow/usuarios-api/internal/model"
	"github.com/deppfellow/usuarios-api/internal/password"
	"github.com/deppfellow/usuarios-api/internal/repository"
)

type fakeEnqueuer struct {
	calls []string
	err   error
}

func (f *fakeEnqueuer) EnqueueWelcome(_ context.Context, to, _ string) error {
	f.calls = append(f.calls, to)
	return f.err
}

// failingRepo fails every call with err.
type failingRepo struct {
	repository.UsuarioRepository
	err error
}

func (r failingRepo) List(context.Context) ([]model.Usuario, error) { return nil, r.err }
func (r failingRepo) FindByID(context.Context, string) (*model.Usuario, error) {
	return nil, r.err
}

func (r failingRepo) Create(context.Context, *model.Usuario) (*model.Usuario, error) {
	return nil, r.err
}

func newTestService(t *testing.T, repo repository.UsuarioRepository, welcome WelcomeEnqueuer) *UsuarioService {
	t.Helper()
	logger := zerolog.Nop()
	return NewUsuarioService(repo, password.NewBcryptHasher(4), welcome, &logger)
}

func ptr[T any](v T) *T { return &v }

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestCreate_HashesPasswordAndActivates(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{
		Nombre: "Ana Lopez", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	assert.True(t, created.Activo)
	assert.NotEqual(t, "secret1", created.Password)

	ok, err := svc.hasher.Verify("secret1", created.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)
	in := CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"}

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), in)
	requireHTTPError(t, err, http.StatusBadRequest, MessageEmailTaken)

	usuarios, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, usuarios, 1)
}

func TestCreate_EnqueuesWelcomeEmail(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), enq)

	_, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ana@x.com"}, enq.calls)
}

func TestCreate_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), enq)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreate_DuplicateDoesNotEnqueue(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), enq)
	in := CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"}

	_, _ = svc.Create(context.Background(), in)
	_, _ = svc.Create(context.Background(), in)

	assert.Len(t, enq.calls, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), nil)

	_, err := svc.GetByID(context.Background(), "missing")
	requireHTTPError(t, err, http.StatusNotFound, MessageUsuarioNotFound)
}

func TestUpdate_ActivoOnlyKeepsOtherFields(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateUsuarioInput{Activo: ptr(false)})
	require.NoError(t, err)

	assert.False(t, updated.Activo)
	assert.Equal(t, "Ana", updated.Nombre)
	assert.Equal(t, "ana@x.com", updated.Email)
	assert.Equal(t, created.Password, updated.Password)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateUsuarioInput{Password: ptr("nuevo-secreto")})
	require.NoError(t, err)

	assert.NotEqual(t, created.Password, updated.Password)
	ok, err := svc.hasher.Verify("nuevo-secreto", updated.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_EmptyInputReturnsCurrentState(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	same, err := svc.Update(context.Background(), created.ID, UpdateUsuarioInput{})
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, same.UpdatedAt)

	_, err = svc.Update(context.Background(), "missing", UpdateUsuarioInput{})
	requireHTTPError(t, err, http.StatusNotFound, MessageUsuarioNotFound)
}

func TestUpdate_EmailCollision(t *testing.T) {
	repo := repository.NewMemoryUsuarioRepository()
	svc := newTestService(t, repo, nil)

	ana, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Beto", Email: "beto@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), ana.ID, UpdateUsuarioInput{Email: ptr("beto@x.com")})
	requireHTTPError(t, err, http.StatusBadRequest, MessageEmailTakenOther)

	// Own email is not a collision.
	_, err = svc.Update(context.Background(), ana.ID, UpdateUsuarioInput{Email: ptr("ana@x.com")})
	assert.NoError(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), nil)

	_, err := svc.Update(context.Background(), "missing", UpdateUsuarioInput{Nombre: ptr("Ana")})
	requireHTTPError(t, err, http.StatusNotFound, MessageUsuarioNotFound)
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	svc := newTestService(t, repository.NewMemoryUsuarioRepository(), nil)

	created, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, &model.UsuarioEliminado{ID: created.ID, Nombre: "Ana", Email: "ana@x.com"}, deleted)

	_, err = svc.GetByID(context.Background(), created.ID)
	requireHTTPError(t, err, http.StatusNotFound, MessageUsuarioNotFound)
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(t, failingRepo{err: boom}, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = svc.GetByID(context.Background(), "id")
	assert.ErrorIs(t, err, boom)

	_, err = svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, boom)
	requireHTTPError(t, err, http.StatusInternalServerError, errs.MessageInternal)
}

func TestUnexpectedConstraintErrorsAreInternal(t *testing.T) {
	for _, code := range []string{"23502", "22001", "23505"} {
		pgErr := &pgconn.PgError{Code: code, ConstraintName: "usuarios_other_check", ColumnName: "nombre"}
		svc := newTestService(t, failingRepo{err: fmt.Errorf("db error: %w", pgErr)}, nil)

		_, err := svc.Create(context.Background(), CreateUsuarioInput{Nombre: "Ana", Email: "ana@x.com", Password: "secret1"})
		requireHTTPError(t, err, http.StatusInternalServerError, errs.MessageInternal)
		assert.ErrorIs(t, err, pgErr, code)

		_, err = svc.List(context.Background())
		requireHTTPError(t, err, http.StatusInternalServerError, errs.MessageInternal)
	}
}
