package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stellarmotion-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stellarmotion-erp/pkg/jwt"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret     = "test-secret-key-for-unit-tests"
	testCookie     = "session"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testRolID      = "00000000-0000-0000-0000-0000000000aa"
	testContactoID = "00000000-0000-0000-0000-0000000000cc"
	testIssuer     = "stellarmotion-test"
	testExpMin     = 60
)

// fakeChecker concede las acciones listadas por "modulo/accion".
type fakeChecker struct {
	granted map[string]bool
	err     error
	calls   int
}

func (f *fakeChecker) Allows(_ context.Context, rolID, modulo, accion string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if rolID == "" {
		return false, nil
	}
	return f.granted[modulo+"/"+accion], nil
}

func sessionToken(t *testing.T, rolID, contactoID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Session{
		UserID:     testUserID,
		Email:      "ana@stellarmotion.io",
		RolID:      rolID,
		ContactoID: contactoID,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token válido")
	return tok
}

// buildTestApp monta sesión + permiso y un handler que devuelve los Locals de la sesión.
func buildTestApp(checker *fakeChecker, modulo, accion string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.SessionMiddleware(testSecret, testCookie),
		apphttp.RequirePermiso(modulo, accion, checker, logger.Nop()),
		func(c *fiber.Ctx) error {
			email, _ := c.Locals(apphttp.LocalEmail).(string)
			return c.JSON(pkgjwt.Session{
				UserID:     apphttp.GetUserID(c),
				Email:      email,
				RolID:      apphttp.GetRolID(c),
				ContactoID: apphttp.GetContactoID(c),
			})
		},
	)
	return app
}

type reqOpt func(*http.Request)

func withBearer(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func withCookie(tok string) reqOpt {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: testCookie, Value: tok}) }
}

func doRequest(t *testing.T, app *fiber.App, opts ...reqOpt) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, o := range opts {
		o(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_CookieCargaLocals(t *testing.T) {
	checker := &fakeChecker{granted: map[string]bool{"clientes/ver": true}}
	app := buildTestApp(checker, "clientes", "ver")

	resp := doRequest(t, app, withCookie(sessionToken(t, testRolID, testContactoID)))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var s pkgjwt.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	assert.Equal(t, testUserID, s.UserID)
	assert.Equal(t, "ana@stellarmotion.io", s.Email)
	assert.Equal(t, testRolID, s.RolID)
	assert.Equal(t, testContactoID, s.ContactoID)
}

func TestSession_BearerTambienSirve(t *testing.T) {
	checker := &fakeChecker{granted: map[string]bool{"clientes/ver": true}}
	app := buildTestApp(checker, "clientes", "ver")

	resp := doRequest(t, app, withBearer(sessionToken(t, testRolID, "")))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSession_SinCredenciales_401(t *testing.T) {
	checker := &fakeChecker{}
	app := buildTestApp(checker, "clientes", "ver")

	resp := doRequest(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_SESSION")
	assert.Zero(t, checker.calls, "sin sesión no se consulta la matriz")
}

func TestSession_TokenInvalido_401(t *testing.T) {
	app := buildTestApp(&fakeChecker{}, "clientes", "ver")

	for name, opt := range map[string]reqOpt{
		"malformado": withBearer("token.invalido.aqui"),
		"cookie":     withCookie("basura"),
		"esquema": func(r *http.Request) {
			r.Header.Set("Authorization", "Basic abc")
		},
	} {
		resp := doRequest(t, app, opt)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
		resp.Body.Close()
	}
}

func TestSession_TokenExpirado_401(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Session{UserID: testUserID}, testIssuer, -1)
	require.NoError(t, err)
	app := buildTestApp(&fakeChecker{}, "clientes", "ver")

	resp := doRequest(t, app, withCookie(tok))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermiso
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermiso_SinPermiso_403ConMensaje(t *testing.T) {
	checker := &fakeChecker{granted: map[string]bool{"clientes/ver": true}}
	app := buildTestApp(checker, "clientes", "eliminar")

	resp := doRequest(t, app, withCookie(sessionToken(t, testRolID, "")))
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "No tienes permiso para eliminar en el módulo clientes", body["error"])
}

func TestRequirePermiso_SinRol_403(t *testing.T) {
	checker := &fakeChecker{granted: map[string]bool{"clientes/ver": true}}
	app := buildTestApp(checker, "clientes", "ver")

	resp := doRequest(t, app, withCookie(sessionToken(t, "", "")))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermiso_FalloInfraestructura_503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("conexión rechazada")}
	app := buildTestApp(checker, "clientes", "ver")

	resp := doRequest(t, app, withCookie(sessionToken(t, testRolID, "")))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_CHECK_FAILED")
}
