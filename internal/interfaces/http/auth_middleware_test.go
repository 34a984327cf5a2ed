package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBranchID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "taller-api-test"
)

func signedToken(t *testing.T, role string, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBranchID, role, testIssuer, expMinutes)
	require.NoError(t, err)
	return tok
}

// tokenForRole header Authorization listo para usar con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return "Bearer " + signedToken(t, role, 60)
}

func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":   apphttp.GetUserID(c),
				"branch_id": apphttp.GetBranchID(c),
				"role":      apphttp.GetRole(c),
			})
		},
	)
	return app
}

func TestAuthGuards(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		header   func(t *testing.T) string
		wantCode int
		wantErr  string
	}{
		{
			name:     "admin en ruta de admin",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return tokenForRole(t, entity.RoleAdmin) },
			wantCode: http.StatusOK,
		},
		{
			name:     "rol sin distinguir mayúsculas",
			allowed:  []string{"ADMIN"},
			header:   func(t *testing.T) string { return tokenForRole(t, entity.RoleAdmin) },
			wantCode: http.StatusOK,
		},
		{
			name:     "manager en ruta admin o manager",
			allowed:  []string{entity.RoleAdmin, entity.RoleManager},
			header:   func(t *testing.T) string { return tokenForRole(t, entity.RoleManager) },
			wantCode: http.StatusOK,
		},
		{
			name:     "técnico en ruta de admin",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return tokenForRole(t, entity.RoleTechnician) },
			wantCode: http.StatusForbidden,
			wantErr:  "FORBIDDEN",
		},
		{
			name:     "token sin rol",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Bearer " + signedToken(t, "", 60) },
			wantCode: http.StatusUnauthorized,
			wantErr:  "MISSING_ROLE",
		},
		{
			name:     "sin header",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "" },
			wantCode: http.StatusUnauthorized,
			wantErr:  "MISSING_TOKEN",
		},
		{
			name:     "esquema distinto de Bearer",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Basic dXNlcjpwYXNz" },
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_TOKEN",
		},
		{
			name:     "token malformado",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Bearer token.invalido.aqui" },
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_TOKEN",
		},
		{
			name:     "token expirado",
			allowed:  []string{entity.RoleAdmin},
			header:   func(t *testing.T) string { return "Bearer " + signedToken(t, entity.RoleAdmin, -5) },
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := guardedApp(tt.allowed...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			if tt.wantErr != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantErr, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_CopiaClaimsALocals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleManager))

	resp, err := guardedApp(entity.RoleManager).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testBranchID, body["branch_id"])
	assert.Equal(t, entity.RoleManager, body["role"])
}
