// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/usuarios-api/internal/model"
)

var (
	// ErrNotFound is returned when no usuario matches the id.
	ErrNotFound = errors.New("usuario not found")

	// ErrEmailTaken is returned when a write collides with another
	// usuario's email. The store, not the caller, detects it.
	ErrEmailTaken = errors.New("email already registered")
)

// UsuarioRepository is the persistence contract of the usuarios resource.
type UsuarioRepository interface {
	// List returns every usuario, newest first. Password hashes are not loaded.
	List(ctx context.Context) ([]model.Usuario, error)

	// FindByID returns the usuario including its password hash.
	FindByID(ctx context.Context, id string) (*model.Usuario, error)

	// Create inserts u and returns the stored row with id and timestamps set.
	Create(ctx context.Context, u *model.Usuario) (*model.Usuario, error)

	// Update applies the non-nil fields of changes in a single write.
	Update(ctx context.Context, id string, changes model.UsuarioChanges) (*model.Usuario, error)

	// Delete removes the usuario permanently.
	Delete(ctx context.Context, id string) (*model.UsuarioEliminado, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}
