package entities

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes ledger entries
type TransactionType string

const (
	TransactionTypeStamp  TransactionType = "stamp"
	TransactionTypeRedeem TransactionType = "redeem"
)

// StampTransaction is an append-only ledger entry
type StampTransaction struct {
	ID              uuid.UUID       `json:"id"`
	MembershipID    uuid.UUID       `json:"customerCardId"`
	BusinessID      uuid.UUID       `json:"businessId"`
	StaffID         *uuid.UUID      `json:"staffId,omitempty"`
	TransactionType TransactionType `json:"transactionType"`
	StampsAdded     int             `json:"stampsAdded"`
	CreatedAt       time.Time       `json:"createdAt"`
}
