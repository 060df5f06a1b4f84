package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"taskflow/internal/model"
)

func protectedServer(t *testing.T, svc *JWTService, roles ...model.Role) *echo.Echo {
	t.Helper()
	e := echo.New()
	mws := []echo.MiddlewareFunc{Middleware(svc)}
	if len(roles) > 0 {
		mws = append(mws, RequireRole(roles...))
	}
	e.GET("/protected", func(c echo.Context) error {
		claims, err := ClaimsFrom(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, claims.Email)
	}, mws...)
	return e
}

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	token, err := svc.Issue(testUser())
	assert.NoError(t, err)

	rec := doRequest(protectedServer(t, svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test@example.com", rec.Body.String())
}

// Every authentication failure mode must produce the identical 401 body:
// the client cannot tell a missing header from a bad or expired token.
func TestMiddleware_UniformUnauthenticated(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	expiredSvc := NewJWTService("test-secret", time.Nanosecond)
	expired, err := expiredSvc.Issue(testUser())
	assert.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	foreign, err := NewJWTService("other-secret", time.Hour).Issue(testUser())
	assert.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"malformed token", "Bearer not.a.token"},
		{"wrong signature", "Bearer " + foreign},
		{"expired token", "Bearer " + expired},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(protectedServer(t, svc), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, ErrInvalidToken.Error(), resp["message"])
			bodies = append(bodies, rec.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestRequireRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	userToken, err := svc.Issue(testUser())
	assert.NoError(t, err)

	admin := testUser()
	admin.Role = model.RoleAdmin
	adminToken, err := svc.Issue(admin)
	assert.NoError(t, err)

	e := protectedServer(t, svc, model.RoleAdmin)

	rec := doRequest(e, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "not allowed", resp["message"])

	// Authorization without authentication always refuses.
	rec = doRequest(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
