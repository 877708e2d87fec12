package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/usuarios-api/internal/model"
	"github.com/deppfellow/usuarios-api/internal/sqlerr"
)

// EmailConstraint is the unique constraint guarding usuarios.email.
const EmailConstraint = "usuarios_email_key"

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUsuarioRepository stores usuarios in PostgreSQL.
type PostgresUsuarioRepository struct {
	db DBTX
}

func NewPostgresUsuarioRepository(db DBTX) *PostgresUsuarioRepository {
	return &PostgresUsuarioRepository{db: db}
}

const usuarioColumns = `id, nombre, email, password, activo, created_at, updated_at`

func (r *PostgresUsuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	query := `
		SELECT id, nombre, email, activo, created_at, updated_at
		FROM usuarios
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	usuarios, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[model.Usuario])
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return usuarios, nil
}

func (r *PostgresUsuarioRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`

	u, err := scanUsuario(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}

	return u, nil
}

func (r *PostgresUsuarioRepository) Create(ctx context.Context, u *model.Usuario) (*model.Usuario, error) {
	query := `
		INSERT INTO usuarios (nombre, email, password, activo)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + usuarioColumns

	created, err := scanUsuario(r.db.QueryRow(ctx, query, u.Nombre, u.Email, u.Password, u.Activo))
	if err != nil {
		return nil, translate(err)
	}

	return created, nil
}

// Update writes only the supplied columns. COALESCE keeps the stored value
// for every NULL parameter, so the merge happens in one statement.
func (r *PostgresUsuarioRepository) Update(ctx context.Context, id string, changes model.UsuarioChanges) (*model.Usuario, error) {
	query := `
		UPDATE usuarios SET
			nombre = COALESCE($2, nombre),
			email = COALESCE($3, email),
			password = COALESCE($4, password),
			activo = COALESCE($5, activo),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + usuarioColumns

	updated, err := scanUsuario(r.db.QueryRow(ctx, query,
		id, changes.Nombre, changes.Email, changes.Password, changes.Activo))
	if err != nil {
		return nil, translate(err)
	}

	return updated, nil
}

func (r *PostgresUsuarioRepository) Delete(ctx context.Context, id string) (*model.UsuarioEliminado, error) {
	query := `DELETE FROM usuarios WHERE id = $1 RETURNING id, nombre, email`

	deleted := &model.UsuarioEliminado{}
	err := r.db.QueryRow(ctx, query, id).Scan(&deleted.ID, &deleted.Nombre, &deleted.Email)
	if err != nil {
		return nil, translate(err)
	}

	return deleted, nil
}

func (r *PostgresUsuarioRepository) Ping(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanUsuario(row pgx.Row) (*model.Usuario, error) {
	u := &model.Usuario{}
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.Password, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// translate maps driver errors onto the repository sentinels.
// A malformed uuid can never match a row, so it reads as not found.
func translate(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case sqlerr.ErrCode(err) == sqlerr.InvalidText:
		return ErrNotFound
	case sqlerr.ErrCode(err) == sqlerr.UniqueViolation && sqlerr.Constraint(err) == EmailConstraint:
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

var _ UsuarioRepository = (*PostgresUsuarioRepository)(nil)
