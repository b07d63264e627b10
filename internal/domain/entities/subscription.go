package entities

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the state of a paid subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// SubscriptionPlan is a product sold to businesses
type SubscriptionPlan struct {
	ID             uuid.UUID `json:"id"`
	PlanName       string    `json:"planName"`
	Price          float64   `json:"price"`
	DurationMonths int       `json:"durationMonths"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BusinessSubscription links a business to a plan for a period
type BusinessSubscription struct {
	ID         uuid.UUID          `json:"id"`
	BusinessID uuid.UUID          `json:"businessId"`
	PlanID     uuid.UUID          `json:"planId"`
	Status     SubscriptionStatus `json:"status"`
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	AmountPaid float64            `json:"amountPaid"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// SubscriptionRow is a subscription joined with its business and plan
type SubscriptionRow struct {
	BusinessSubscription
	BusinessName string  `json:"businessName"`
	Email        string  `json:"email"`
	PlanName     string  `json:"planName"`
	Price        float64 `json:"price"`
}
