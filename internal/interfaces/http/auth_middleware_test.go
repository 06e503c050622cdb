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

	apphttp "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stockledger-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "U1"
	testIssuer    = "stockledger-test"
	testExpMin    = 60
)

// buildAuthApp construye una aplicación Fiber mínima con ActorMiddleware y un handler
// dummy que devuelve el user_id cargado en locals.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.ActorMiddleware(testJWTSecret, nil),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.ActorID(c),
			})
		},
	)
	return app
}

// bearer genera un header Authorization válido para userID.
func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ActorMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Token válido → pasa y deja el user_id en locals.
func TestActorMiddleware_TokenValido(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(), bearer(t, testUserID))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, testUserID, body["user_id"])
}

// Sin header Authorization → 401 MISSING_TOKEN.
func TestActorMiddleware_SinToken(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(), "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeMap(t, resp)["code"])
}

// Header sin prefijo Bearer → 401 INVALID_TOKEN.
func TestActorMiddleware_FormatoInvalido(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(), "Token abc")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeMap(t, resp)["code"])
}

// Token firmado con otro secret → 401 INVALID_TOKEN.
func TestActorMiddleware_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, buildAuthApp(), "Bearer "+tok)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeMap(t, resp)["code"])
}

// Token expirado → 401 INVALID_TOKEN.
func TestActorMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	resp := doAuthRequest(t, buildAuthApp(), "Bearer "+tok)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// El esquema no distingue mayúsculas.
func TestActorMiddleware_EsquemaMinusculas(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, buildAuthApp(), "bearer "+tok)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, decodeMap(t, resp)["user_id"])
}
