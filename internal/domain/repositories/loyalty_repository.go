package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/pkg/utils"
)

// CardRepository defines loyalty card data operations
type CardRepository interface {
	Create(ctx context.Context, card *entities.LoyaltyCard) error
	Update(ctx context.Context, card *entities.LoyaltyCard) error
	GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*entities.LoyaltyCard, error)
	// GetByIdentifier resolves a card by card_code, or by id when identifier is a UUID
	GetByIdentifier(ctx context.Context, identifier string) (*entities.LoyaltyCard, error)
	GetPublic(ctx context.Context, identifier string) (*entities.PublicCard, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.LoyaltyCard, error)
	CountActiveByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error)
}

// CustomerRepository defines customer data operations
type CustomerRepository interface {
	// FindOrCreateByPhone inserts the customer unless the phone exists, then returns the stored row
	FindOrCreateByPhone(ctx context.Context, customer *entities.Customer) (*entities.Customer, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	CountAll(ctx context.Context) (int64, error)
}

// MembershipRepository defines customer_cards data operations
type MembershipRepository interface {
	// FindOrCreate inserts the membership unless (customer, card) exists, then returns the stored row
	FindOrCreate(ctx context.Context, membership *entities.Membership) (*entities.Membership, bool, error)
	// GetForBusiness resolves identifier (id or qr token) to a membership owned by businessID
	GetForBusiness(ctx context.Context, businessID uuid.UUID, identifier string) (*entities.Membership, error)
	// IncrementStamps adds one stamp in a single UPDATE scoped to the owning business
	IncrementStamps(ctx context.Context, businessID, id uuid.UUID, at time.Time) error
	// ResetForRedemption zeroes stamps and advances reward counters in a single UPDATE
	ResetForRedemption(ctx context.Context, businessID, id uuid.UUID, at time.Time) error
	Scan(ctx context.Context, businessID uuid.UUID, phone, qrToken string) (*entities.MembershipView, error)
	ListCustomers(ctx context.Context, businessID uuid.UUID, pagination utils.PaginationParams) ([]*entities.CustomerSummary, int64, error)
	CountDistinctCustomers(ctx context.Context, businessID uuid.UUID) (int64, error)
}

// StampTransactionRepository defines the append-only ledger
type StampTransactionRepository interface {
	Create(ctx context.Context, tx *entities.StampTransaction) error
	ListByMembership(ctx context.Context, businessID, membershipID uuid.UUID) ([]*entities.StampTransaction, error)
	CountSince(ctx context.Context, businessID uuid.UUID, txType entities.TransactionType, since time.Time) (int64, error)
	CountDistinctMembershipsSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int64, error)
}
