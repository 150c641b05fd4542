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

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	apphttp "github.com/pawsitive-care/inventory-api/internal/interfaces/http"
	pkgjwt "github.com/pawsitive-care/inventory-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pawsitive-care-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireCapability para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(capability string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(capability),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
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
// Tests RequireCapability
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireCapability_AdminReconcilia(t *testing.T) {
	app := buildTestApp(entity.CapInventoryAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireCapability_VetRegistraMovimientos(t *testing.T) {
	app := buildTestApp(entity.CapInventoryMove)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleVet))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "vet puede mover stock")
}

func TestRequireCapability_VetNoEditaCatalogo(t *testing.T) {
	app := buildTestApp(entity.CapInventoryWrite)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleVet))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireCapability_StaffNoReconcilia(t *testing.T) {
	app := buildTestApp(entity.CapInventoryAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleStaff))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "sin herencia de roles: staff no es admin")
}

func TestRequireCapability_ClienteSoloCotiza(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.CapPricingQuote), tokenForRole(t, entity.RoleClient))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doRequest(t, buildTestApp(entity.CapInventoryRead), tokenForRole(t, entity.RoleClient))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}

// Token sin claim de rol → HTTP 401 MISSING_ROLE.
func TestRequireCapability_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.CapInventoryRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireCapability_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.CapInventoryRead), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireCapability_TokenInvalido_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.CapInventoryRead), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_SoloRolesListados(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	for role, want := range map[string]int{
		entity.RoleAdmin: http.StatusOK,
		entity.RoleStaff: http.StatusForbidden,
		entity.RoleVet:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", tokenForRole(t, role))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleVet))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "vet", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "staff", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "staff", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
