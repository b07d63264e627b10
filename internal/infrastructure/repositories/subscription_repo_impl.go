package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/internal/infrastructure/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetPlan(ctx context.Context, id uuid.UUID) (*entities.SubscriptionPlan, error) {
	var m models.SubscriptionPlan
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return planToEntity(&m), nil
}

func (r *SubscriptionRepository) ListActivePlans(ctx context.Context) ([]*entities.SubscriptionPlan, error) {
	var ms []models.SubscriptionPlan
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.SubscriptionPlan, 0, len(ms))
	for i := range ms {
		items = append(items, planToEntity(&ms[i]))
	}
	return items, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *entities.BusinessSubscription) error {
	m := &models.BusinessSubscription{
		ID:         sub.ID,
		BusinessID: sub.BusinessID,
		PlanID:     sub.PlanID,
		Status:     string(sub.Status),
		StartDate:  sub.StartDate,
		EndDate:    sub.EndDate,
		AmountPaid: sub.AmountPaid,
		CreatedAt:  sub.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	sub.ID = m.ID
	sub.CreatedAt = m.CreatedAt
	return nil
}

type subscriptionRow struct {
	models.BusinessSubscription
	BusinessName string
	Email        string
	PlanName     string
	Price        float64
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]*entities.SubscriptionRow, error) {
	var rows []subscriptionRow
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Table("business_subscriptions AS bs").
		Select("bs.*, b.business_name, b.email, sp.plan_name, sp.price").
		Joins("JOIN businesses b ON b.id = bs.business_id").
		Joins("JOIN subscription_plans sp ON sp.id = bs.plan_id").
		Order("bs.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.SubscriptionRow, 0, len(rows))
	for i := range rows {
		row := rows[i]
		items = append(items, &entities.SubscriptionRow{
			BusinessSubscription: *subscriptionToEntity(&row.BusinessSubscription),
			BusinessName:         row.BusinessName,
			Email:                row.Email,
			PlanName:             row.PlanName,
			Price:                row.Price,
		})
	}
	return items, nil
}

func (r *SubscriptionRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.BusinessSubscription{}).
		Where("status = ?", string(entities.SubscriptionStatusActive)).
		Count(&n).Error
	return n, err
}

func (r *SubscriptionRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.BusinessSubscription{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Where("status = ? AND created_at >= ?", string(entities.SubscriptionStatusActive), since).
		Row().Scan(&total)
	return total, err
}

func (r *SubscriptionRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*entities.BusinessSubscription, error) {
	var ms []models.BusinessSubscription
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.BusinessSubscription, 0, len(ms))
	for i := range ms {
		items = append(items, subscriptionToEntity(&ms[i]))
	}
	return items, nil
}

func planToEntity(m *models.SubscriptionPlan) *entities.SubscriptionPlan {
	return &entities.SubscriptionPlan{
		ID:             m.ID,
		PlanName:       m.PlanName,
		Price:          m.Price,
		DurationMonths: m.DurationMonths,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

func subscriptionToEntity(m *models.BusinessSubscription) *entities.BusinessSubscription {
	return &entities.BusinessSubscription{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		PlanID:     m.PlanID,
		Status:     entities.SubscriptionStatus(m.Status),
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		AmountPaid: m.AmountPaid,
		CreatedAt:  m.CreatedAt,
	}
}
