package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) GetByEmail(ctx context.Context, email string) (*entities.Business, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Business), args.Error(1)
}

func (m *MockBusinessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBusinessRepository) SuspendExpiredTrials(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessRepository) ListForAdmin(ctx context.Context, filter entities.BusinessFilter, pagination utils.PaginationParams) ([]*entities.AdminBusinessRow, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AdminBusinessRow), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) CountByStatus(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessRepository) CountGroupedByStatus(ctx context.Context) ([]entities.BusinessStatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BusinessStatusCount), args.Error(1)
}

// Mock StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *entities.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Staff, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Staff), args.Error(1)
}

// Mock AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetActiveByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAdminRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// Mock SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetPlan(ctx context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActivePlans(ctx context.Context) ([]*entities.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *entities.BusinessSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) List(ctx context.Context) ([]*entities.SubscriptionRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SubscriptionRow), args.Error(1)
}

func (m *MockSubscriptionRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSubscriptionRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*entities.BusinessSubscription, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BusinessSubscription), args.Error(1)
}

// Mock CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *entities.LoyaltyCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, card *entities.LoyaltyCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*entities.LoyaltyCard, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoyaltyCard), args.Error(1)
}

func (m *MockCardRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.LoyaltyCard, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoyaltyCard), args.Error(1)
}

func (m *MockCardRepository) GetPublic(ctx context.Context, identifier string) (*entities.PublicCard, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PublicCard), args.Error(1)
}

func (m *MockCardRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.LoyaltyCard, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoyaltyCard), args.Error(1)
}

func (m *MockCardRepository) CountActiveByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindOrCreateByPhone(ctx context.Context, customer *entities.Customer) (*entities.Customer, bool, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Customer), args.Bool(1), args.Error(2)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindOrCreate(ctx context.Context, membership *entities.Membership) (*entities.Membership, bool, error) {
	args := m.Called(ctx, membership)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Membership), args.Bool(1), args.Error(2)
}

func (m *MockMembershipRepository) GetForBusiness(ctx context.Context, businessID uuid.UUID, identifier string) (*entities.Membership, error) {
	args := m.Called(ctx, businessID, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) IncrementStamps(ctx context.Context, businessID, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, id, at)
	return args.Error(0)
}

func (m *MockMembershipRepository) ResetForRedemption(ctx context.Context, businessID, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, businessID, id, at)
	return args.Error(0)
}

func (m *MockMembershipRepository) Scan(ctx context.Context, businessID uuid.UUID, phone, qrToken string) (*entities.MembershipView, error) {
	args := m.Called(ctx, businessID, phone, qrToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MembershipView), args.Error(1)
}

func (m *MockMembershipRepository) ListCustomers(ctx context.Context, businessID uuid.UUID, pagination utils.PaginationParams) ([]*entities.CustomerSummary, int64, error) {
	args := m.Called(ctx, businessID, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.CustomerSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockMembershipRepository) CountDistinctCustomers(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock StampTransactionRepository
type MockStampTransactionRepository struct {
	mock.Mock
}

func (m *MockStampTransactionRepository) Create(ctx context.Context, tx *entities.StampTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStampTransactionRepository) ListByMembership(ctx context.Context, businessID, membershipID uuid.UUID) ([]*entities.StampTransaction, error) {
	args := m.Called(ctx, businessID, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StampTransaction), args.Error(1)
}

func (m *MockStampTransactionRepository) CountSince(ctx context.Context, businessID uuid.UUID, txType entities.TransactionType, since time.Time) (int64, error) {
	args := m.Called(ctx, businessID, txType, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStampTransactionRepository) CountDistinctMembershipsSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, businessID, since)
	return args.Get(0).(int64), args.Error(1)
}
