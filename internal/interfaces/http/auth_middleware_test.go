package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Remisiones-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Remisiones-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "remisiones-api-test"
	testExpMin    = 60
)

// buildRoleApp monta GET /protected con AuthMiddleware + RequireRole.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// buildWriteApp monta un recurso con los cuatro verbos detrás de RequireWriteRole.
func buildWriteApp() *fiber.App {
	app := fiber.New()
	g := app.Group("/r", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireWriteRole())
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	g.Get("/", ok)
	g.Post("/", ok)
	g.Patch("/", ok)
	g.Delete("/", ok)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, pkgjwt.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, pkgjwt.RoleAdmin, body["role"])
}

func TestRequireRole_OperadorEnRutaMultiRol(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin, pkgjwt.RoleOperator)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, pkgjwt.RoleOperator))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ConsultaBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, pkgjwt.RoleViewer))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildRoleApp(pkgjwt.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})

	resp := doRequest(t, app, http.MethodGet, "/me", tokenForRole(t, pkgjwt.RoleOperator))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, pkgjwt.RoleOperator, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireWriteRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireWriteRole_Matriz(t *testing.T) {
	cases := []struct {
		role   string
		method string
		want   int
	}{
		{pkgjwt.RoleViewer, http.MethodGet, http.StatusOK},
		{pkgjwt.RoleViewer, http.MethodPost, http.StatusForbidden},
		{pkgjwt.RoleViewer, http.MethodPatch, http.StatusForbidden},
		{pkgjwt.RoleViewer, http.MethodDelete, http.StatusForbidden},
		{pkgjwt.RoleOperator, http.MethodGet, http.StatusOK},
		{pkgjwt.RoleOperator, http.MethodPost, http.StatusOK},
		{pkgjwt.RoleOperator, http.MethodPatch, http.StatusOK},
		{pkgjwt.RoleOperator, http.MethodDelete, http.StatusForbidden},
		{pkgjwt.RoleAdmin, http.MethodPost, http.StatusOK},
		{pkgjwt.RoleAdmin, http.MethodDelete, http.StatusOK},
		{"desconocido", http.MethodGet, http.StatusForbidden},
	}
	app := buildWriteApp()
	for _, tc := range cases {
		t.Run(tc.role+"_"+tc.method, func(t *testing.T) {
			resp := doRequest(t, app, tc.method, "/r", tokenForRole(t, tc.role))
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
