package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Membership binds one customer to one loyalty card (a customer_cards row)
type Membership struct {
	ID              uuid.UUID `json:"id"`
	CustomerID      uuid.UUID `json:"customerId"`
	CardID          uuid.UUID `json:"cardId"`
	BusinessID      uuid.UUID `json:"businessId"`
	StampsCount     int       `json:"stampsCount"`
	RewardsEarned   int       `json:"rewardsEarned"`
	RewardsRedeemed int       `json:"rewardsRedeemed"`
	LastStampDate   null.Time `json:"lastStampDate,omitempty"`
	QRCodeData      string    `json:"qrCodeData"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RegisterMembershipInput is posted by the customer app
type RegisterMembershipInput struct {
	Phone  string `json:"phone" binding:"required,min=4,max=50"`
	Name   string `json:"name,omitempty"`
	CardID string `json:"cardId" binding:"required"`
}

// MembershipResponse is returned after registration
type MembershipResponse struct {
	MembershipID uuid.UUID   `json:"customerCardId"`
	CustomerID   uuid.UUID   `json:"customerId"`
	Name         null.String `json:"name,omitempty"`
	Phone        string      `json:"phone"`
	Stamps       int         `json:"stamps"`
	MaxStamps    int         `json:"maxStamps"`
	QRToken      string      `json:"qrToken"`
	Created      bool        `json:"created"`
}

// StampInput identifies a membership by id or QR token
type StampInput struct {
	CustomerCardID string `json:"customerCardId" binding:"required"`
}

// ScanInput looks a membership up by phone or QR token
type ScanInput struct {
	Phone  string `json:"phone,omitempty"`
	QRCode string `json:"qrCode,omitempty"`
}

// MembershipView is a membership joined with its customer and card
type MembershipView struct {
	CustomerID        uuid.UUID   `json:"customerId"`
	MembershipID      uuid.UUID   `json:"customerCardId"`
	Name              null.String `json:"name,omitempty"`
	Phone             string      `json:"phone"`
	CurrentStamps     int         `json:"currentStamps"`
	MaxStamps         int         `json:"maxStamps"`
	RewardsRedeemed   int         `json:"rewardsRedeemed"`
	LastStampDate     null.Time   `json:"lastStampDate,omitempty"`
	LastVisit         string      `json:"lastVisit"`
	RewardDescription null.String `json:"rewardDescription,omitempty"`
}

// LedgerAck confirms a stamp or redemption
type LedgerAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
