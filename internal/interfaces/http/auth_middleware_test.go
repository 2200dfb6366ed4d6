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

	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	apphttp "github.com/huggingsoft/backoffice-api/internal/interfaces/http"
	pkgjwt "github.com/huggingsoft/backoffice-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testMainID    = "00000000-0000-0000-0000-000000000001"
	testSubID     = "00000000-0000-0000-0000-000000000002"
	testInactive  = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "backoffice-test"
	testExpMin    = 60
)

// fakeUserRepo responde solo a GetByID, que es lo único que usa el resolver.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	mainID := testMainID
	return &fakeUserRepo{users: map[string]*entity.User{
		testMainID:   {ID: testMainID, Username: "principal", Active: true},
		testSubID:    {ID: testSubID, Username: "cajero", Active: true, ParentUserID: &mainID},
		testInactive: {ID: testInactive, Username: "suspendido", Active: false},
	}}
}

func (r *fakeUserRepo) Create(*entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserRepo) ExistsByUsername(string) (bool, error)      { return false, nil }
func (r *fakeUserRepo) ExistsByEmail(string) (bool, error)         { return false, nil }
func (r *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (r *fakeUserRepo) Delete(string) error                        { return nil }
func (r *fakeUserRepo) ListSubUsers(string, *bool, int, int) ([]*entity.User, error) {
	return nil, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y resolver el tenant
//   - Un handler dummy que expone el contexto resuelto
func buildTestApp() *fiber.App {
	app := fiber.New()
	resolver := tenant.NewResolver(newFakeUserRepo())
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, resolver),
		func(c *fiber.Ctx) error {
			tc := apphttp.GetTenant(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"tenant_id": tc.TenantID,
				"actor_id":  tc.ActorID,
				"sub_user":  tc.SubUser,
			})
		},
	)
	return app
}

// tokenFor genera un JWT válido para el usuario indicado.
func tokenFor(t *testing.T, userID, username string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, username, testIssuer, testExpMin)
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
// Tests AuthMiddleware — resolución de tenant
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: usuario principal con token válido → HTTP 200, es su propio tenant.
func TestAuthMiddleware_UsuarioPrincipalResuelveSuTenant(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, testMainID, "principal"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testMainID, body["tenant_id"])
	assert.Equal(t, testMainID, body["actor_id"])
	assert.Equal(t, false, body["sub_user"])
}

// Caso 2: sub-usuario → HTTP 200, el tenant es el del usuario padre.
func TestAuthMiddleware_SubUsuarioOperaSobreElTenantDelPadre(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, testSubID, "cajero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testMainID, body["tenant_id"], "el sub-usuario ve los datos del padre")
	assert.Equal(t, testSubID, body["actor_id"], "la autoría es del sub-usuario")
	assert.Equal(t, true, body["sub_user"])
}

// Caso 3: cuenta desactivada → HTTP 401 aunque el token siga vigente.
func TestAuthMiddleware_CuentaInactivaPierdeAcceso(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, testInactive, "suspendido"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"la desactivación aplica de inmediato, sin esperar a que expire el token")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

// Caso 4: token de un usuario que ya no existe → HTTP 401.
func TestAuthMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, "00000000-0000-0000-0000-0000000000ff", "fantasma"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 6: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc123", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header: %q", header)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testMainID, "principal", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, username, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testMainID, userID)
	assert.Equal(t, "principal", username)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testMainID, "principal", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testMainID, "principal", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
