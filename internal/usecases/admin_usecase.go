package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/domain/repositories"
	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/utils"
)

var generateTemporaryPassword = crypto.GenerateTemporaryPassword

// AdminUsecase backs the platform operator panel
type AdminUsecase struct {
	businessRepo     repositories.BusinessRepository
	customerRepo     repositories.CustomerRepository
	subscriptionRepo repositories.SubscriptionRepository
	uow              repositories.UnitOfWork
	now              func() time.Time
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	businessRepo repositories.BusinessRepository,
	customerRepo repositories.CustomerRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	uow repositories.UnitOfWork,
) *AdminUsecase {
	return &AdminUsecase{
		businessRepo:     businessRepo,
		customerRepo:     customerRepo,
		subscriptionRepo: subscriptionRepo,
		uow:              uow,
		now:              utcNow,
	}
}

// Dashboard returns platform totals; revenue covers subscriptions created this month
func (u *AdminUsecase) Dashboard(ctx context.Context) (*entities.AdminDashboard, error) {
	total, active, err := u.businessRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := u.customerRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	subscriptions, err := u.subscriptionRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := u.subscriptionRepo.RevenueSince(ctx, startOfMonth(u.now()))
	if err != nil {
		return nil, err
	}

	return &entities.AdminDashboard{
		TotalBusinesses:     total,
		ActiveBusinesses:    active,
		TotalCustomers:      customers,
		ActiveSubscriptions: subscriptions,
		MonthlyRevenue:      revenue,
	}, nil
}

// analyticsWindow is how far back the revenue growth report reaches
const analyticsWindow = 6

// Analytics reports subscription revenue per month over the last six months
// and the business count per status
func (u *AdminUsecase) Analytics(ctx context.Context) (*entities.AdminAnalytics, error) {
	subs, err := u.subscriptionRepo.ListCreatedSince(ctx, u.now().AddDate(0, -analyticsWindow, 0))
	if err != nil {
		return nil, err
	}
	statuses, err := u.businessRepo.CountGroupedByStatus(ctx)
	if err != nil {
		return nil, err
	}

	growth := make([]entities.MonthlyRevenue, 0, analyticsWindow+1)
	for _, sub := range subs {
		month := startOfMonth(sub.CreatedAt.UTC())
		if n := len(growth); n == 0 || !growth[n-1].Month.Equal(month) {
			growth = append(growth, entities.MonthlyRevenue{Month: month})
		}
		bucket := &growth[len(growth)-1]
		bucket.Revenue += sub.AmountPaid
		bucket.Subscriptions++
	}

	return &entities.AdminAnalytics{
		RevenueGrowth:  growth,
		BusinessStatus: statuses,
	}, nil
}

// ListBusinesses lists businesses filtered by status and a free-text search
func (u *AdminUsecase) ListBusinesses(ctx context.Context, filter entities.BusinessFilter, page, limit int) ([]*entities.AdminBusinessRow, utils.PaginationMeta, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	filter.Search = strings.TrimSpace(filter.Search)
	if strings.EqualFold(filter.Status, "all") {
		filter.Status = ""
	}
	if filter.Status != "" && !entities.BusinessStatus(filter.Status).Valid() {
		return nil, utils.PaginationMeta{}, domainerrors.BadRequest("invalid status filter")
	}

	params := utils.GetPaginationParams(page, limit)
	rows, total, err := u.businessRepo.ListForAdmin(ctx, filter, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return rows, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// CreateBusiness provisions an active business with a subscription to planID.
// The temporary password is only ever returned here.
func (u *AdminUsecase) CreateBusiness(ctx context.Context, input *entities.AdminCreateBusinessInput) (*entities.AdminCreateBusinessResponse, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.BusinessName) == "" {
		return nil, domainerrors.BadRequest("businessName and email are required")
	}
	if input.PlanID == uuid.Nil {
		return nil, domainerrors.BadRequest("planId is required")
	}

	plan, err := u.subscriptionRepo.GetPlan(ctx, input.PlanID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("subscription plan not found")
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, domainerrors.BadRequest("subscription plan is not active")
	}

	password, err := generateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := u.now()
	business := &entities.Business{
		BusinessName: strings.TrimSpace(input.BusinessName),
		OwnerName:    strings.TrimSpace(input.OwnerName),
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        optionalString(input.Phone),
		PlanType:     plan.PlanName,
		Status:       entities.BusinessStatusActive,
	}
	subscription := &entities.BusinessSubscription{
		PlanID:     plan.ID,
		Status:     entities.SubscriptionStatusActive,
		StartDate:  now,
		EndDate:    now.AddDate(0, plan.DurationMonths, 0),
		AmountPaid: plan.Price,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.businessRepo.Create(txCtx, business); err != nil {
			return err
		}
		subscription.BusinessID = business.ID
		return u.subscriptionRepo.Create(txCtx, subscription)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}

	logger.Info(ctx, "Business provisioned by admin",
		zap.String("business_id", business.ID.String()),
		zap.String("plan_id", plan.ID.String()),
	)

	return &entities.AdminCreateBusinessResponse{
		Business:          business,
		Subscription:      subscription,
		TemporaryPassword: password,
	}, nil
}

// UpdateBusinessStatus moves a business to trial, active or suspended
func (u *AdminUsecase) UpdateBusinessStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	if !status.Valid() {
		return domainerrors.BadRequest("status must be one of trial, active, suspended")
	}
	if err := u.businessRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("business not found")
		}
		return err
	}
	logger.Info(ctx, "Business status updated", zap.String("business_id", id.String()), zap.String("status", string(status)))
	return nil
}

// ListPlans returns the plans that can be sold
func (u *AdminUsecase) ListPlans(ctx context.Context) ([]*entities.SubscriptionPlan, error) {
	return u.subscriptionRepo.ListActivePlans(ctx)
}

// ListSubscriptions returns every subscription with its business and plan
func (u *AdminUsecase) ListSubscriptions(ctx context.Context) ([]*entities.SubscriptionRow, error) {
	return u.subscriptionRepo.List(ctx)
}
