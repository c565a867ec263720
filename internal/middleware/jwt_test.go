package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/movie-catalog/internal/utils"
)

const testSecret = "test-secret"

// newProtectedServer wires JWTAuth (and optionally RequireAdmin) in front of
// a handler echoing the claims it finds in context.
func newProtectedServer(adminOnly bool) *echo.Echo {
	e := echo.New()
	g := e.Group("/secure")
	g.Use(JWTAuth(testSecret))
	if adminOnly {
		g.Use(RequireAdmin())
	}
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"username": c.Get(CtxUsername),
			"isAdmin":  c.Get(CtxIsAdmin),
		})
	})
	return e
}

func bearer(t *testing.T, isAdmin bool, ttlMin int) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 1, "alice", isAdmin, ttlMin)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token abc", wantCode: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "expired token", header: bearer(t, false, -1), wantCode: http.StatusUnauthorized},
		{name: "valid token", header: bearer(t, false, 120), wantCode: http.StatusOK},
	}
	e := newProtectedServer(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	e := newProtectedServer(true)

	t.Run("valid non-admin token is 403 not 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", bearer(t, false, 120))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", bearer(t, true, 120))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isAdmin":true`)
	})

	t.Run("missing token is still 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
