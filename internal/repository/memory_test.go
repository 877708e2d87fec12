package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/usuarios-api/internal/model"
)

func seed(t *testing.T, r *MemoryUsuarioRepository, nombre, email string) *model.Usuario {
	t.Helper()

	u, err := r.Create(context.Background(), &model.Usuario{
		Nombre: nombre, Email: email, Password: "hash", Activo: true,
	})
	require.NoError(t, err)
	return u
}

func TestMemoryCreate_AssignsIDAndTimestamps(t *testing.T) {
	r := NewMemoryUsuarioRepository()

	u := seed(t, r, "Ana", "ana@example.com")

	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestMemoryCreate_DuplicateEmail(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	seed(t, r, "Ana", "ana@example.com")

	_, err := r.Create(context.Background(), &model.Usuario{Nombre: "Otra", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryList_NewestFirstWithoutPassword(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	seed(t, r, "Ana", "ana@example.com")
	seed(t, r, "Beto", "beto@example.com")

	usuarios, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, usuarios, 2)
	assert.Equal(t, "Beto", usuarios[0].Nombre)
	assert.Equal(t, "Ana", usuarios[1].Nombre)
	assert.Empty(t, usuarios[0].Password)
}

func TestMemoryList_SameTimestampUsesInsertionOrder(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	seed(t, r, "Ana", "ana@example.com")
	seed(t, r, "Beto", "beto@example.com")

	usuarios, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Beto", usuarios[0].Nombre)
}

func TestMemoryFindByID(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	u := seed(t, r, "Ana", "ana@example.com")

	found, err := r.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", found.Password)

	_, err = r.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdate_MergesAndBumpsUpdatedAt(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	u := seed(t, r, "Ana", "ana@example.com")

	activo := false
	updated, err := r.Update(context.Background(), u.ID, model.UsuarioChanges{Activo: &activo})
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.Nombre)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, "hash", updated.Password)
	assert.False(t, updated.Activo)
	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))
	assert.Equal(t, u.CreatedAt, updated.CreatedAt)
}

func TestMemoryUpdate_EmailOwnership(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	ana := seed(t, r, "Ana", "ana@example.com")
	seed(t, r, "Beto", "beto@example.com")

	taken := "beto@example.com"
	_, err := r.Update(context.Background(), ana.ID, model.UsuarioChanges{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Re-submitting your own email is not a conflict.
	own := "ana@example.com"
	_, err = r.Update(context.Background(), ana.ID, model.UsuarioChanges{Email: &own})
	require.NoError(t, err)

	// The released address becomes available.
	fresh := "ana.maria@example.com"
	_, err = r.Update(context.Background(), ana.ID, model.UsuarioChanges{Email: &fresh})
	require.NoError(t, err)
	seed(t, r, "Otra Ana", "ana@example.com")
}

func TestMemoryUpdate_NotFound(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	nombre := "Ana"

	_, err := r.Update(context.Background(), "missing", model.UsuarioChanges{Nombre: &nombre})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDelete(t *testing.T) {
	r := NewMemoryUsuarioRepository()
	u := seed(t, r, "Ana", "ana@example.com")

	deleted, err := r.Delete(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, deleted.ID)
	assert.Equal(t, "Ana", deleted.Nombre)

	_, err = r.Delete(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Email is free again.
	seed(t, r, "Ana", "ana@example.com")
}

func TestMemoryCreate_ConcurrentSameEmail(t *testing.T) {
	r := NewMemoryUsuarioRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(context.Background(), &model.Usuario{Nombre: "Ana", Email: "ana@example.com"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}
