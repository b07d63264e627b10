package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"loyaltyjo.backend/pkg/jwt"
	"loyaltyjo.backend/pkg/logger"
)

func issue(t *testing.T, svc *jwt.JWTService, identity jwt.Identity) string {
	t.Helper()
	token, err := svc.GenerateToken(identity)
	require.NoError(t, err)
	return token
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_BearerFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute)

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("missing token", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/me", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthorizationHeader, "Basic abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/me", "invalid")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewJWTService("secret", -time.Minute)
		token := issue(t, expired, jwt.Identity{SubjectID: uuid.New(), Role: jwt.RoleOwner})
		w := serve(r, http.MethodGet, "/me", token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("valid token", func(t *testing.T) {
		token := issue(t, jwtService, jwt.Identity{SubjectID: uuid.New(), BusinessID: uuid.New(), Role: jwt.RoleOwner})
		w := serve(r, http.MethodGet, "/me", token)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute)
	businessID := uuid.New()
	staffID := uuid.New()

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	r.GET("/me", func(c *gin.Context) {
		gotBusiness, ok := GetBusinessID(c)
		require.True(t, ok)
		require.Equal(t, businessID, gotBusiness)

		gotStaff := GetStaffID(c)
		require.NotNil(t, gotStaff)
		require.Equal(t, staffID, *gotStaff)

		subject, ok := GetSubjectID(c)
		require.True(t, ok)
		require.Equal(t, staffID, subject)

		role, ok := GetRole(c)
		require.True(t, ok)
		require.Equal(t, jwt.RoleStaff, role)

		require.Equal(t, businessID.String(), c.Request.Context().Value(logger.BusinessIDKey))
		c.Status(http.StatusNoContent)
	})

	token := issue(t, jwtService, jwt.Identity{SubjectID: staffID, BusinessID: businessID, StaffID: &staffID, Role: jwt.RoleStaff})
	w := serve(r, http.MethodGet, "/me", token)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRoleGuards(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute)
	businessID := uuid.New()
	staffID := uuid.New()

	owner := issue(t, jwtService, jwt.Identity{SubjectID: businessID, BusinessID: businessID, Role: jwt.RoleOwner})
	staff := issue(t, jwtService, jwt.Identity{SubjectID: staffID, BusinessID: businessID, StaffID: &staffID, Role: jwt.RoleStaff})
	admin := issue(t, jwtService, jwt.Identity{SubjectID: uuid.New(), Role: jwt.RoleAdmin})

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/business", RequireBusiness(), ok)
	r.GET("/owner", RequireOwner(), ok)
	r.GET("/admin", RequireAdmin(), ok)

	cases := []struct {
		path  string
		token string
		want  int
	}{
		{"/business", owner, http.StatusNoContent},
		{"/business", staff, http.StatusNoContent},
		{"/business", admin, http.StatusForbidden},
		{"/owner", owner, http.StatusNoContent},
		{"/owner", staff, http.StatusForbidden},
		{"/admin", admin, http.StatusNoContent},
		{"/admin", owner, http.StatusForbidden},
	}
	for _, tc := range cases {
		w := serve(r, http.MethodGet, tc.path, tc.token)
		require.Equal(t, tc.want, w.Code, tc.path)
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRole(jwt.RoleOwner), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/x", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
