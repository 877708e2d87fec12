// Package model holds the persisted entities.
package model

import "time"

// Usuario is a user account.
//
// Password always holds the bcrypt hash, never the plaintext, and is
// excluded from every JSON payload.
type Usuario struct {
	ID        string    `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Activo    bool      `json:"activo" db:"activo"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UsuarioEliminado is the confirmation payload of a delete.
type UsuarioEliminado struct {
	ID     string `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
	Email  string `json:"email" db:"email"`
}

// UsuarioChanges lists the columns an update writes. Nil fields keep
// their stored value.
type UsuarioChanges struct {
	Nombre   *string
	Email    *string
	Password *string
	Activo   *bool
}

// IsEmpty reports whether no field is set.
func (c UsuarioChanges) IsEmpty() bool {
	return c.Nombre == nil && c.Email == nil && c.Password == nil && c.Activo == nil
}
