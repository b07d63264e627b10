package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"loyaltyjo.backend/pkg/utils"
)

type StaffUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time
}

func (m *StaffUser) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(50);not null"`
	IsActive     bool      `gorm:"not null"`
	LastLogin    *time.Time
	CreatedAt    time.Time
}

func (m *AdminUser) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type SubscriptionPlan struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanName       string    `gorm:"type:varchar(100);not null"`
	Price          float64   `gorm:"type:decimal(10,2);not null"`
	DurationMonths int       `gorm:"not null"`
	IsActive       bool      `gorm:"not null"`
	CreatedAt      time.Time
}

func (m *SubscriptionPlan) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type BusinessSubscription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanID     uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"type:varchar(50);not null;index"`
	StartDate  time.Time
	EndDate    time.Time
	AmountPaid float64 `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
}

func (m *BusinessSubscription) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

// All lists every model in dependency order, for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Business{},
		&LoyaltyCard{},
		&Customer{},
		&CustomerCard{},
		&StaffUser{},
		&StampTransaction{},
		&AdminUser{},
		&SubscriptionPlan{},
		&BusinessSubscription{},
	}
}
