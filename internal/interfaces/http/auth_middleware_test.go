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

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	apphttp "github.com/jhoicas/bodega-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bodega-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "tester@example.com"
	testIssuer    = "bodega-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePermission para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(perm entity.Permission) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + permiso
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(perm),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"role":  apphttp.GetRole(c),
				"perms": apphttp.GetPermissions(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol y los permisos indicados.
func tokenFor(t *testing.T, role string, perms ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, perms, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el usuario tiene el permiso requerido → HTTP 200.
func TestRequirePermission_UsuarioConPermisoAccede(t *testing.T) {
	app := buildTestApp(entity.PermReceiptsPost)
	resp := doRequest(t, app, tokenFor(t, entity.RoleUser, string(entity.PermReceiptsPost)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un usuario con receipts.post debe poder contabilizar primke")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleUser, body["role"])
}

// Caso 1b: admin accede sin tener el permiso explícito → HTTP 200.
func TestRequirePermission_AdminOmiteElChequeo(t *testing.T) {
	app := buildTestApp(entity.PermStocktakesPost)
	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin accede a cualquier ruta sin permisos explícitos")
}

// Caso 2: usuario sin el permiso → HTTP 403 con código FORBIDDEN.
func TestRequirePermission_UsuarioSinPermisoBloqueado(t *testing.T) {
	app := buildTestApp(entity.PermDispatchesPost)
	resp := doRequest(t, app, tokenFor(t, entity.RoleUser, string(entity.PermReceiptsEdit)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"sin dispatches.post no se puede contabilizar otpremnice")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
	assert.Contains(t, string(body), "dispatches.post",
		"el mensaje debe nombrar el permiso que falta")
}

// Caso 3: token sin rol → HTTP 401 con código MISSING_ROLE.
func TestRequirePermission_TokenSinRol(t *testing.T) {
	app := buildTestApp(entity.PermItemsEdit)
	resp := doRequest(t, app, tokenFor(t, "", string(entity.PermItemsEdit)))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

// buildAdminApp monta una ruta detrás de RequireAdmin, como el grupo de
// administración de usuarios.
func buildAdminApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAdmin(),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

// Admin accede → HTTP 200.
func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Un usuario común queda fuera aunque tenga todos los permisos → HTTP 403.
func TestRequireAdmin_UsuarioBloqueadoAunConPermisos(t *testing.T) {
	perms := make([]string, 0, len(entity.AllPermissions()))
	for _, p := range entity.AllPermissions() {
		perms = append(perms, string(p))
	}

	app := buildAdminApp()
	resp := doRequest(t, app, tokenFor(t, entity.RoleUser, perms...))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"la administración de usuarios exige rol admin, no alcanza ningún permiso")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(entity.PermItemsEdit)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Header sin esquema Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_EsquemaInvalido(t *testing.T) {
	app := buildTestApp(entity.PermItemsEdit)
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token firmado con otro secret → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testUserID, testEmail, entity.RoleAdmin, nil, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(entity.PermItemsEdit)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token expirado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, entity.RoleAdmin, nil, testIssuer, -5)
	require.NoError(t, err)

	app := buildTestApp(entity.PermItemsEdit)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Token válido → los claims quedan disponibles vía locals.
func TestAuthMiddleware_ExponeClaimsEnLocals(t *testing.T) {
	app := buildTestApp(entity.PermLocationsEdit)
	resp := doRequest(t, app, tokenFor(t, entity.RoleUser,
		string(entity.PermLocationsEdit), string(entity.PermItemsEdit)))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Role  string   `json:"role"`
		Perms []string `json:"perms"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleUser, body.Role)
	assert.ElementsMatch(t, []string{"locations.edit", "items.edit"}, body.Perms)
}
