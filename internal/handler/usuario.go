package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/usuarios-api/internal/response"
	"github.com/deppfellow/usuarios-api/internal/server"
	"github.com/deppfellow/usuarios-api/internal/service"
	"github.com/deppfellow/usuarios-api/internal/validation"
)

const (
	MessageUsuariosListed = "Usuarios Obtenidos Correctamente"
	MessageUsuarioFound   = "Usuario obtenido correctamente"
	MessageUsuarioCreated = "Usuario creado exitosamente"
	MessageUsuarioUpdated = "Usuario actualizado exitosamente"
	MessageUsuarioDeleted = "Usuario eliminado exitosamente"
)

type ListUsuariosRequest struct{}

func (r *ListUsuariosRequest) Validate() error { return nil }

// UsuarioIDRequest addresses a single usuario by path id.
type UsuarioIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *UsuarioIDRequest) Validate() error { return nil }

type CreateUsuarioRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (r *CreateUsuarioRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateUsuarioRequest) Normalize() {
	r.Email = validation.NormalizeEmail(r.Email)
}

// UpdateUsuarioRequest has every field optional. A missing key and a JSON
// null both mean "leave unchanged". Activo is untyped so that non-boolean
// JSON values reach Validate instead of failing the decode.
type UpdateUsuarioRequest struct {
	ID       string  `param:"id" json:"-"`
	Nombre   *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	Activo   any     `json:"activo"`
}

func (r *UpdateUsuarioRequest) Validate() error {
	fieldErrors := validation.Fields(r)

	if r.Activo != nil {
		if _, ok := r.Activo.(bool); !ok {
			fieldErrors = append(fieldErrors, validation.CustomValidationError{
				Field:   "activo",
				Message: validation.MessageActivoBoolean,
			})
		}
	}

	return fieldErrors.Err()
}

func (r *UpdateUsuarioRequest) Normalize() {
	if r.Email != nil {
		email := validation.NormalizeEmail(*r.Email)
		r.Email = &email
	}
}

func (r *UpdateUsuarioRequest) input() service.UpdateUsuarioInput {
	in := service.UpdateUsuarioInput{
		Nombre:   r.Nombre,
		Email:    r.Email,
		Password: r.Password,
	}
	if activo, ok := r.Activo.(bool); ok {
		in.Activo = &activo
	}
	return in
}

type UsuarioHandler struct {
	Handler
	usuarios *service.UsuarioService
}

func NewUsuarioHandler(s *server.Server, usuarios *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{
		Handler:  NewHandler(s),
		usuarios: usuarios,
	}
}

func (h *UsuarioHandler) ListUsuarios(c echo.Context, _ *ListUsuariosRequest) (*response.Envelope, error) {
	usuarios, err := h.usuarios.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return response.List(MessageUsuariosListed, usuarios), nil
}

func (h *UsuarioHandler) GetUsuario(c echo.Context, req *UsuarioIDRequest) (*response.Envelope, error) {
	if !validation.IsValidUUID(req.ID) {
		return nil, service.ErrUsuarioNotFound
	}

	u, err := h.usuarios.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return response.OK(MessageUsuarioFound, u), nil
}

func (h *UsuarioHandler) CreateUsuario(c echo.Context, req *CreateUsuarioRequest) (*response.Envelope, error) {
	u, err := h.usuarios.Create(c.Request().Context(), service.CreateUsuarioInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return response.OK(MessageUsuarioCreated, u), nil
}

func (h *UsuarioHandler) UpdateUsuario(c echo.Context, req *UpdateUsuarioRequest) (*response.Envelope, error) {
	if !validation.IsValidUUID(req.ID) {
		return nil, service.ErrUsuarioNotFound
	}

	u, err := h.usuarios.Update(c.Request().Context(), req.ID, req.input())
	if err != nil {
		return nil, err
	}
	return response.OK(MessageUsuarioUpdated, u), nil
}

func (h *UsuarioHandler) DeleteUsuario(c echo.Context, req *UsuarioIDRequest) (*response.Envelope, error) {
	if !validation.IsValidUUID(req.ID) {
		return nil, service.ErrUsuarioNotFound
	}

	deleted, err := h.usuarios.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return response.OK(MessageUsuarioDeleted, deleted), nil
}
