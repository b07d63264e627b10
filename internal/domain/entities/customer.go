package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Customer is identified globally by phone number
type Customer struct {
	ID        uuid.UUID   `json:"id"`
	Phone     string      `json:"phone"`
	Name      null.String `json:"name,omitempty"`
	Email     null.String `json:"email,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CustomerSummary is a row of a business's customer list
type CustomerSummary struct {
	CustomerID    uuid.UUID   `json:"customerId"`
	MembershipID  uuid.UUID   `json:"customerCardId"`
	Name          null.String `json:"name,omitempty"`
	Phone         string      `json:"phone"`
	StampsCount   int         `json:"stampsCount"`
	RewardsEarned int         `json:"rewardsEarned"`
	LastStampDate null.Time   `json:"lastStampDate,omitempty"`
	JoinedAt      time.Time   `json:"joinedAt"`
}
