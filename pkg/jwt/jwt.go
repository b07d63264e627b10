package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Roles carried in tokens
const (
	RoleOwner      = "owner"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Identity is the subject a token is issued for.
// Owners carry only BusinessID, staff carry BusinessID and StaffID,
// admins carry neither.
type Identity struct {
	SubjectID  uuid.UUID
	BusinessID uuid.UUID
	StaffID    *uuid.UUID
	Email      string
	Role       string
}

// Claims represents JWT claims
type Claims struct {
	SubjectID  uuid.UUID  `json:"sub_id"`
	BusinessID uuid.UUID  `json:"businessId,omitempty"`
	StaffID    *uuid.UUID `json:"staffId,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT operations
type JWTService struct {
	secret       []byte
	accessExpiry time.Duration
	now          func() time.Time
}

var signJWTToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string, accessExpiry time.Duration) *JWTService {
	return &JWTService{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		now:          time.Now,
	}
}

// AccessExpiry returns how long issued tokens stay valid
func (s *JWTService) AccessExpiry() time.Duration {
	return s.accessExpiry
}

// GenerateToken issues an access token for the identity
func (s *JWTService) GenerateToken(identity Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		SubjectID:  identity.SubjectID,
		BusinessID: identity.BusinessID,
		StaffID:    identity.StaffID,
		Email:      identity.Email,
		Role:       identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signJWTToken(token, s.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
