package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/pkg/utils"
)

// BusinessRepository defines business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error)
	GetByEmail(ctx context.Context, email string) (*entities.Business, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error
	// SuspendExpiredTrials moves every trial business whose trial ended before now to suspended
	SuspendExpiredTrials(ctx context.Context, now time.Time) (int64, error)
	ListForAdmin(ctx context.Context, filter entities.BusinessFilter, pagination utils.PaginationParams) ([]*entities.AdminBusinessRow, int64, error)
	CountByStatus(ctx context.Context) (total int64, active int64, err error)
	CountGroupedByStatus(ctx context.Context) ([]entities.BusinessStatusCount, error)
}

// StaffRepository defines staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entities.Staff) error
	GetByEmail(ctx context.Context, email string) (*entities.Staff, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Staff, error)
}

// AdminRepository defines admin user data operations
type AdminRepository interface {
	GetActiveByEmail(ctx context.Context, email string) (*entities.Admin, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SubscriptionRepository defines plan and subscription operations
type SubscriptionRepository interface {
	GetPlan(ctx context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error)
	ListActivePlans(ctx context.Context) ([]*entities.SubscriptionPlan, error)
	Create(ctx context.Context, sub *entities.BusinessSubscription) error
	List(ctx context.Context) ([]*entities.SubscriptionRow, error)
	CountActive(ctx context.Context) (int64, error)
	// RevenueSince sums amount_paid of active subscriptions created at or after since
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	// ListCreatedSince returns subscriptions of any status created at or after since, oldest first
	ListCreatedSince(ctx context.Context, since time.Time) ([]*entities.BusinessSubscription, error)
}
