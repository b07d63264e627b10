package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/pkg/jwt"
	"loyaltyjo.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SubjectIDKey is the context key for the token subject
	SubjectIDKey = "subjectId"
	// BusinessIDKey is the context key for the caller's business
	BusinessIDKey = "businessId"
	// StaffIDKey is the context key for the staff operator, if any
	StaffIDKey = "staffId"
	// EmailKey is the context key for the caller's email
	EmailKey = "email"
	// RoleKey is the context key for the caller's role
	RoleKey = "role"
)

// AuthMiddleware validates the bearer token and stores its identity in the gin context
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Token has expired")
				return
			}
			response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid token")
			return
		}

		c.Set(SubjectIDKey, claims.SubjectID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)
		if claims.BusinessID != uuid.Nil {
			c.Set(BusinessIDKey, claims.BusinessID)
			ctx := logger.WithBusinessID(c.Request.Context(), claims.BusinessID.String())
			c.Request = c.Request.WithContext(ctx)
		}
		if claims.StaffID != nil {
			c.Set(StaffIDKey, *claims.StaffID)
		}

		c.Next()
	}
}

// GetSubjectID gets the token subject from context
func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(SubjectIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetBusinessID gets the caller's business from context
func GetBusinessID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(BusinessIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// GetStaffID returns the staff operator, or nil when the owner is acting
func GetStaffID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(StaffIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetRole gets the caller's role from context
func GetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			response.ErrorWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "User role not found")
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.ErrorWithError(c, http.StatusForbidden, domainerrors.CodeForbidden, "Insufficient permissions")
	}
}

// RequireBusiness allows owners and staff whose token carries a business
func RequireBusiness() gin.HandlerFunc {
	roleCheck := RequireRole(jwt.RoleOwner, jwt.RoleStaff)
	return func(c *gin.Context) {
		if _, ok := GetBusinessID(c); !ok {
			response.ErrorWithError(c, http.StatusForbidden, domainerrors.CodeForbidden, "Business account required")
			return
		}
		roleCheck(c)
	}
}

// RequireOwner allows business owners only
func RequireOwner() gin.HandlerFunc {
	return RequireRole(jwt.RoleOwner)
}

// RequireAdmin allows platform admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin, jwt.RoleSuperAdmin)
}
