package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AdminRole is the platform-operator role
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

// Admin is a platform operator
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         AdminRole `json:"role"`
	IsActive     bool      `json:"isActive"`
	LastLogin    null.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AdminDashboard aggregates platform totals
type AdminDashboard struct {
	TotalBusinesses     int64   `json:"totalBusinesses"`
	ActiveBusinesses    int64   `json:"activeBusinesses"`
	TotalCustomers      int64   `json:"totalCustomers"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
	MonthlyRevenue      float64 `json:"monthlyRevenue"`
}

// BusinessStatusCount is the number of businesses in one status
type BusinessStatusCount struct {
	Status BusinessStatus `json:"status"`
	Count  int64          `json:"count"`
}

// MonthlyRevenue totals the subscriptions created in one calendar month
type MonthlyRevenue struct {
	Month         time.Time `json:"month"`
	Revenue       float64   `json:"revenue"`
	Subscriptions int64     `json:"subscriptions"`
}

// AdminAnalytics is the platform growth report
type AdminAnalytics struct {
	RevenueGrowth  []MonthlyRevenue      `json:"revenueGrowth"`
	BusinessStatus []BusinessStatusCount `json:"businessStatus"`
}

// BusinessFilter narrows the admin business listing
type BusinessFilter struct {
	Status string
	Search string
}

// AdminBusinessRow is one row of the admin business listing
type AdminBusinessRow struct {
	ID                 uuid.UUID      `json:"id"`
	BusinessName       string         `json:"businessName"`
	Email              string         `json:"email"`
	Phone              null.String    `json:"phone,omitempty"`
	Status             BusinessStatus `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	SubscriptionStatus null.String    `json:"subscriptionStatus,omitempty"`
	EndDate            null.Time      `json:"endDate,omitempty"`
	PlanName           null.String    `json:"planName,omitempty"`
	Price              null.Float64   `json:"price,omitempty"`
	CustomerCount      int64          `json:"customerCount"`
}

// AdminCreateBusinessInput creates a business on behalf of its owner
type AdminCreateBusinessInput struct {
	BusinessName string    `json:"businessName" binding:"required,min=2,max=255"`
	OwnerName    string    `json:"ownerName" binding:"required,max=255"`
	Email        string    `json:"email" binding:"required,email"`
	Phone        string    `json:"phone,omitempty"`
	PlanID       uuid.UUID `json:"planId" binding:"required"`
}

// AdminCreateBusinessResponse includes the one-time temporary password
type AdminCreateBusinessResponse struct {
	Business          *Business             `json:"business"`
	Subscription      *BusinessSubscription `json:"subscription"`
	TemporaryPassword string                `json:"temporaryPassword"`
}

// UpdateBusinessStatusInput changes a business status
type UpdateBusinessStatusInput struct {
	Status BusinessStatus `json:"status" binding:"required"`
}
