package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BusinessStatus represents the account lifecycle of a business
type BusinessStatus string

const (
	BusinessStatusTrial     BusinessStatus = "trial"
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

// Valid reports whether s is a known status
func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessStatusTrial, BusinessStatusActive, BusinessStatusSuspended:
		return true
	}
	return false
}

// DefaultPlanType is assigned to self-registered businesses
const DefaultPlanType = "premium"

// Business represents a merchant running a loyalty program
type Business struct {
	ID           uuid.UUID      `json:"id"`
	BusinessName string         `json:"businessName"`
	OwnerName    string         `json:"ownerName"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Phone        null.String    `json:"phone,omitempty"`
	BusinessType null.String    `json:"businessType,omitempty"`
	PlanType     string         `json:"planType"`
	Status       BusinessStatus `json:"status"`
	TrialEndsAt  null.Time      `json:"trialEndsAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// RegisterBusinessInput represents owner self-registration
type RegisterBusinessInput struct {
	BusinessName string `json:"businessName" binding:"required,min=2,max=255"`
	OwnerName    string `json:"ownerName" binding:"required,max=255"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

// LoginInput is shared by owner, staff and admin logins
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by every successful login or registration
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	Business  *Business `json:"business,omitempty"`
	Staff     *Staff    `json:"staff,omitempty"`
	Admin     *Admin    `json:"admin,omitempty"`
}
