package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/usuarios-api/internal/model"
)

// MemoryUsuarioRepository keeps usuarios in process memory.
//
// It honours the same contract as the Postgres repository, including
// email uniqueness, and backs the handler and service tests.
type MemoryUsuarioRepository struct {
	mu     sync.RWMutex
	byID   map[string]*memoryRecord
	byMail map[string]string
	seq    int64
	now    func() time.Time
}

type memoryRecord struct {
	usuario model.Usuario
	seq     int64
}

func NewMemoryUsuarioRepository() *MemoryUsuarioRepository {
	return &MemoryUsuarioRepository{
		byID:   make(map[string]*memoryRecord),
		byMail: make(map[string]string),
		now:    time.Now,
	}
}

func (r *MemoryUsuarioRepository) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*memoryRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		records = append(records, rec)
	}

	// Newest first. Insertion order breaks timestamp ties.
	slices.SortFunc(records, func(a, b *memoryRecord) int {
		if c := b.usuario.CreatedAt.Compare(a.usuario.CreatedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})

	usuarios := make([]model.Usuario, 0, len(records))
	for _, rec := range records {
		u := rec.usuario
		u.Password = ""
		usuarios = append(usuarios, u)
	}

	return usuarios, nil
}

func (r *MemoryUsuarioRepository) FindByID(_ context.Context, id string) (*model.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	u := rec.usuario
	return &u, nil
}

func (r *MemoryUsuarioRepository) Create(_ context.Context, u *model.Usuario) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byMail[u.Email]; taken {
		return nil, ErrEmailTaken
	}

	now := r.now()
	r.seq++

	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &memoryRecord{usuario: stored, seq: r.seq}
	r.byMail[stored.Email] = stored.ID

	return &stored, nil
}

func (r *MemoryUsuarioRepository) Update(_ context.Context, id string, changes model.UsuarioChanges) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if changes.Email != nil {
		if owner, taken := r.byMail[*changes.Email]; taken && owner != id {
			return nil, ErrEmailTaken
		}
	}

	u := rec.usuario
	if changes.Nombre != nil {
		u.Nombre = *changes.Nombre
	}
	if changes.Email != nil {
		delete(r.byMail, u.Email)
		u.Email = *changes.Email
		r.byMail[u.Email] = id
	}
	if changes.Password != nil {
		u.Password = *changes.Password
	}
	if changes.Activo != nil {
		u.Activo = *changes.Activo
	}
	u.UpdatedAt = r.now()

	rec.usuario = u

	return &u, nil
}

func (r *MemoryUsuarioRepository) Delete(_ context.Context, id string) (*model.UsuarioEliminado, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byMail, rec.usuario.Email)

	return &model.UsuarioEliminado{
		ID:     rec.usuario.ID,
		Nombre: rec.usuario.Nombre,
		Email:  rec.usuario.Email,
	}, nil
}

func (r *MemoryUsuarioRepository) Ping(_ context.Context) error {
	return nil
}

var _ UsuarioRepository = (*MemoryUsuarioRepository)(nil)
