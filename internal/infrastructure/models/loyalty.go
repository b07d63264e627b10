package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"loyaltyjo.backend/pkg/utils"
)

type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName string    `gorm:"type:varchar(255);not null"`
	OwnerName    string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        *string   `gorm:"type:varchar(50)"`
	BusinessType *string   `gorm:"type:varchar(50)"`
	PlanType     string    `gorm:"type:varchar(50);not null"`
	Status       string    `gorm:"type:varchar(50);not null;index"`
	TrialEndsAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *Business) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type LoyaltyCard struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CardName          string    `gorm:"type:varchar(255);not null"`
	Description       *string   `gorm:"type:text"`
	StampsRequired    int       `gorm:"not null"`
	RewardDescription *string   `gorm:"type:text"`
	BackgroundColor   string    `gorm:"type:varchar(7);not null"`
	TextColor         string    `gorm:"type:varchar(7);not null"`
	LogoText          *string   `gorm:"type:varchar(10)"`
	CardCode          string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status            string    `gorm:"type:varchar(50);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m *LoyaltyCard) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      *string   `gorm:"type:varchar(255)"`
	Email     *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Customer) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type CustomerCard struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_cards_customer_card"`
	CardID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_cards_customer_card"`
	BusinessID      uuid.UUID `gorm:"type:uuid;not null;index"`
	StampsCount     int       `gorm:"not null"`
	RewardsEarned   int       `gorm:"not null"`
	RewardsRedeemed int       `gorm:"not null"`
	LastStampDate   *time.Time
	QRCodeData      string `gorm:"column:qr_code_data;type:text;not null;uniqueIndex"`
	IsActive        bool   `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (m *CustomerCard) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}

type StampTransaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerCardID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	BusinessID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_stamp_transactions_business_created"`
	StaffID         *uuid.UUID `gorm:"type:uuid"`
	TransactionType string     `gorm:"type:varchar(50);not null"`
	StampsAdded     int        `gorm:"not null"`
	CreatedAt       time.Time  `gorm:"index:idx_stamp_transactions_business_created"`
}

func (m *StampTransaction) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	return nil
}
