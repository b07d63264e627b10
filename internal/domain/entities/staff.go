package entities

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a scanner-app operator belonging to a business
type Staff struct {
	ID           uuid.UUID `json:"id"`
	BusinessID   uuid.UUID `json:"businessId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateStaffInput is posted by a business owner
type CreateStaffInput struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
