package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	apphttp "github.com/jhoicas/stock-distribution/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-distribution/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "stock-distribution-test"
	testExpMin    = 60
)

// tokenForRole devuelve el header Authorization para un token válido con el rol dado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp monta POST /guarded detrás de AuthMiddleware + RequireRole(allowed...).
// El handler responde el rol que vio en locals.
func guardedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Post("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func postWithAuth(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware + RequireRole aislados
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_MatrizDeEscritura(t *testing.T) {
	app := guardedApp(apphttp.RoleAdmin, apphttp.RoleBodeguero)

	cases := []struct {
		role     string
		wantCode int
		wantErr  string
	}{
		{apphttp.RoleAdmin, http.StatusOK, ""},
		{apphttp.RoleBodeguero, http.StatusOK, ""},
		{apphttp.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"auditor", http.StatusForbidden, "FORBIDDEN"},
		{"", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run("rol="+tc.role, func(t *testing.T) {
			resp := postWithAuth(t, app, "/guarded", tokenForRole(t, tc.role))
			require.Equal(t, tc.wantCode, resp.StatusCode)
			if tc.wantErr == "" {
				body := decode[map[string]string](t, resp)
				assert.Equal(t, tc.role, body["role"])
				assert.Equal(t, testUserID, body["user_id"])
				return
			}
			assert.Equal(t, tc.wantErr, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

func TestAuthMiddleware_TokensRechazados(t *testing.T) {
	app := guardedApp(apphttp.RoleAdmin)

	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, apphttp.RoleAdmin, testIssuer, -5)
	require.NoError(t, err)
	otherKey, err := pkgjwt.Generate("otra-clave", testUserID, apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := map[string]struct {
		header  string
		wantErr string
	}{
		"sin header":     {"", "MISSING_TOKEN"},
		"sin esquema":    {expired, "INVALID_TOKEN"},
		"malformado":     {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"expirado":       {"Bearer " + expired, "INVALID_TOKEN"},
		"firma distinta": {"Bearer " + otherKey, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := postWithAuth(t, app, "/guarded", tc.header)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.wantErr, decode[dto.ErrorResponse](t, resp).Code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC sobre las rutas de distribución del router real
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_DistribucionSoloAdminYBodeguero(t *testing.T) {
	s := newTestServer(t)
	_, mouseID := s.seed(t)

	resp := s.call(t, http.MethodPost, "/api/distributions", apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.call(t, http.MethodPost, "/api/distributions/"+mouseID, apphttp.RoleVendedor, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// El 403 no debe haber movido stock: bodeguero distribuye el mouse completo después.
	resp = s.call(t, http.MethodPost, "/api/distributions/"+mouseID, apphttp.RoleBodeguero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductDistributionDTO](t, resp)
	assert.Equal(t, int64(56), out.WarehouseAfter)
}

func TestRouter_EscrituraConTokenSinRol(t *testing.T) {
	s := newTestServer(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	for _, path := range []string{"/api/distributions", "/api/products", "/api/branches"} {
		resp := postWithAuth(t, s.app, path, "Bearer "+tok)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "MISSING_ROLE", decode[dto.ErrorResponse](t, resp).Code, path)
	}

	// Las lecturas no exigen rol.
	req := httptest.NewRequest(http.MethodGet, "/api/reports/stock", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
