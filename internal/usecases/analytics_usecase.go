package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/internal/domain/repositories"
)

// AnalyticsUsecase computes per-business activity reports
type AnalyticsUsecase struct {
	membershipRepo repositories.MembershipRepository
	cardRepo       repositories.CardRepository
	txRepo         repositories.StampTransactionRepository
	now            func() time.Time
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	membershipRepo repositories.MembershipRepository,
	cardRepo repositories.CardRepository,
	txRepo repositories.StampTransactionRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		membershipRepo: membershipRepo,
		cardRepo:       cardRepo,
		txRepo:         txRepo,
		now:            utcNow,
	}
}

// Dashboard reports the current calendar month (UTC)
func (u *AnalyticsUsecase) Dashboard(ctx context.Context, businessID uuid.UUID) (*entities.BusinessDashboard, error) {
	monthStart := startOfMonth(u.now())

	customers, err := u.membershipRepo.CountDistinctCustomers(ctx, businessID)
	if err != nil {
		return nil, err
	}
	stamps, err := u.txRepo.CountSince(ctx, businessID, entities.TransactionTypeStamp, monthStart)
	if err != nil {
		return nil, err
	}
	redeemed, err := u.txRepo.CountSince(ctx, businessID, entities.TransactionTypeRedeem, monthStart)
	if err != nil {
		return nil, err
	}
	cards, err := u.cardRepo.CountActiveByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return &entities.BusinessDashboard{
		TotalCustomers:  customers,
		StampsThisMonth: stamps,
		RewardsRedeemed: redeemed,
		ActiveCards:     cards,
	}, nil
}

// Today reports activity since midnight UTC
func (u *AnalyticsUsecase) Today(ctx context.Context, businessID uuid.UUID) (*entities.TodayStats, error) {
	dayStart := startOfDay(u.now())

	stamps, err := u.txRepo.CountSince(ctx, businessID, entities.TransactionTypeStamp, dayStart)
	if err != nil {
		return nil, err
	}
	served, err := u.txRepo.CountDistinctMembershipsSince(ctx, businessID, dayStart)
	if err != nil {
		return nil, err
	}
	redeemed, err := u.txRepo.CountSince(ctx, businessID, entities.TransactionTypeRedeem, dayStart)
	if err != nil {
		return nil, err
	}

	return &entities.TodayStats{
		StampsGiven:     stamps,
		CustomersServed: served,
		RewardsRedeemed: redeemed,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
