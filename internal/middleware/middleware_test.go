package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/usuarios-api/internal/config"
	"github.com/deppfellow/usuarios-api/internal/errs"
	"github.com/deppfellow/usuarios-api/internal/response"
	"github.com/deppfellow/usuarios-api/internal/server"
)

func newTestServer(buf *bytes.Buffer) *server.Server {
	logger := zerolog.New(buf)
	return &server.Server{
		Config: &config.Config{
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func serveError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	global := NewGlobalMiddlewares(newTestServer(&bytes.Buffer{}))
	e := echo.New()
	req := httptest.NewRequest(method, "/usuarios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	global.GlobalErrorHandler(err, c)

	var env response.Envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestGlobalErrorHandler_HTTPError(t *testing.T) {
	rec, env := serveError(t, http.MethodGet, errs.ValidationError([]errs.FieldError{{Field: "email", Message: "Debe ser un email válido"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, errs.MessageValidation, env.Message)
	assert.Equal(t, []errs.FieldError{{Field: "email", Message: "Debe ser un email válido"}}, env.Errors)
	assert.Empty(t, env.Error)
}

func TestGlobalErrorHandler_RouteNotFound(t *testing.T) {
	rec, env := serveError(t, http.MethodGet, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.MessageRouteNotFound, env.Message)
}

func TestGlobalErrorHandler_MethodNotAllowed(t *testing.T) {
	rec, env := serveError(t, http.MethodGet, echo.ErrMethodNotAllowed)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, MessageMethodNotAllowed, env.Message)
}

func TestGlobalErrorHandler_UnknownErrorIs500WithRawError(t *testing.T) {
	rec, env := serveError(t, http.MethodGet, errors.New("failed to list usuarios: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, errs.MessageInternal, env.Message)
	assert.Equal(t, "failed to list usuarios: connection refused", env.Error)
}

func TestGlobalErrorHandler_PgErrorGoesThroughSQLErr(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "usuarios", ColumnName: "nombre"}
	rec, env := serveError(t, http.MethodPost, pgErr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "nombre", env.Errors[0].Field)
}

func TestGlobalErrorHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := serveError(t, http.MethodHead, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Len(t, seen, 36)
}

func TestEnhanceContext_LoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	enhancer := NewContextEnhancer(newTestServer(&buf))

	e := echo.New()
	h := RequestID()(enhancer.EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from handler")
		LoggerFromContext(c.Request().Context()).Info().Msg("from service")
		return nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	require.NoError(t, h(e.NewContext(req, httptest.NewRecorder())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var fields map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &fields))
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, http.MethodGet, fields["method"])
	}
}

func TestGetLogger_WithoutEnhancerIsNop(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NotNil(t, GetLogger(c))
	require.NotNil(t, LoggerFromContext(c.Request().Context()))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(errs.NewNotFoundError("x", false, nil)))
	assert.Equal(t, http.StatusMethodNotAllowed, statusOf(echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}
