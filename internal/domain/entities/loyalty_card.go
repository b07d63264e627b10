package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CardStatus represents whether a card accepts new activity
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusInactive CardStatus = "inactive"
)

const (
	DefaultBackgroundColor = "#6366f1"
	DefaultTextColor       = "#ffffff"
)

// LoyaltyCard is the single stamp-card program of a business
type LoyaltyCard struct {
	ID                uuid.UUID   `json:"id"`
	BusinessID        uuid.UUID   `json:"businessId"`
	CardName          string      `json:"cardName"`
	Description       null.String `json:"description,omitempty"`
	StampsRequired    int         `json:"stampsRequired"`
	RewardDescription null.String `json:"rewardDescription,omitempty"`
	BackgroundColor   string      `json:"backgroundColor"`
	TextColor         string      `json:"textColor"`
	LogoText          null.String `json:"logoText,omitempty"`
	CardCode          string      `json:"cardCode"`
	Status            CardStatus  `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// UpsertCardInput carries the mutable fields of a card
type UpsertCardInput struct {
	CardName          string `json:"cardName" binding:"required,max=255"`
	Description       string `json:"description,omitempty"`
	StampsRequired    int    `json:"stampsRequired" binding:"omitempty,min=1,max=100"`
	RewardDescription string `json:"rewardDescription,omitempty"`
	BackgroundColor   string `json:"backgroundColor" binding:"omitempty,hexcolor"`
	TextColor         string `json:"textColor" binding:"omitempty,hexcolor"`
	LogoText          string `json:"logoText" binding:"omitempty,max=10"`
}

// PublicCard is the customer-app view of a card
type PublicCard struct {
	LoyaltyCard
	BusinessName string `json:"businessName"`
}
