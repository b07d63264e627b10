package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/infrastructure/models"
	"loyaltyjo.backend/pkg/utils"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	m := r.toModel(business)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	business.ID = m.ID
	business.CreatedAt = m.CreatedAt
	business.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Business, error) {
	var m models.Business
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *BusinessRepository) GetByEmail(ctx context.Context, email string) (*entities.Business, error) {
	var m models.Business
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *BusinessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BusinessStatus) error {
	res := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BusinessRepository) SuspendExpiredTrials(ctx context.Context, now time.Time) (int64, error) {
	res := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Business{}).
		Where("status = ? AND trial_ends_at IS NOT NULL AND trial_ends_at < ?", string(entities.BusinessStatusTrial), now).
		Updates(map[string]interface{}{"status": string(entities.BusinessStatusSuspended), "updated_at": now})
	return res.RowsAffected, res.Error
}

type adminBusinessRow struct {
	ID                 uuid.UUID
	BusinessName       string
	Email              string
	Phone              *string
	Status             string
	CreatedAt          time.Time
	SubscriptionStatus *string
	EndDate            *time.Time
	PlanName           *string
	Price              *float64
	CustomerCount      int64
}

// ListForAdmin builds the filtered listing from bound parameters only
func (r *BusinessRepository) ListForAdmin(ctx context.Context, filter entities.BusinessFilter, pagination utils.PaginationParams) ([]*entities.AdminBusinessRow, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	applyFilter := func(q *gorm.DB) *gorm.DB {
		if status := strings.TrimSpace(filter.Status); status != "" && status != "all" {
			q = q.Where("b.status = ?", status)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			term := "%" + strings.ToLower(search) + "%"
			q = q.Where("(LOWER(b.business_name) LIKE ? OR LOWER(b.email) LIKE ?)", term, term)
		}
		return q
	}

	var total int64
	if err := applyFilter(db.Table("businesses AS b")).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyFilter(db.Table("businesses AS b").
		Select(`b.id, b.business_name, b.email, b.phone, b.status, b.created_at,
			bs.status AS subscription_status, bs.end_date, sp.plan_name, sp.price,
			(SELECT COUNT(*) FROM customer_cards cc WHERE cc.business_id = b.id) AS customer_count`).
		Joins("LEFT JOIN business_subscriptions bs ON bs.business_id = b.id AND bs.status = ?", string(entities.SubscriptionStatusActive)).
		Joins("LEFT JOIN subscription_plans sp ON sp.id = bs.plan_id")).
		Order("b.created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []adminBusinessRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.AdminBusinessRow, 0, len(rows))
	for i := range rows {
		row := rows[i]
		items = append(items, &entities.AdminBusinessRow{
			ID:                 row.ID,
			BusinessName:       row.BusinessName,
			Email:              row.Email,
			Phone:              null.StringFromPtr(row.Phone),
			Status:             entities.BusinessStatus(row.Status),
			CreatedAt:          row.CreatedAt,
			SubscriptionStatus: null.StringFromPtr(row.SubscriptionStatus),
			EndDate:            null.TimeFromPtr(row.EndDate),
			PlanName:           null.StringFromPtr(row.PlanName),
			Price:              null.Float64FromPtr(row.Price),
			CustomerCount:      row.CustomerCount,
		})
	}
	return items, total, nil
}

func (r *BusinessRepository) CountByStatus(ctx context.Context) (int64, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	var total, active int64
	if err := db.Model(&models.Business{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&models.Business{}).Where("status = ?", string(entities.BusinessStatusActive)).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *BusinessRepository) CountGroupedByStatus(ctx context.Context) ([]entities.BusinessStatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Business{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]entities.BusinessStatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entities.BusinessStatusCount{Status: entities.BusinessStatus(row.Status), Count: row.Count})
	}
	return counts, nil
}

func (r *BusinessRepository) toModel(e *entities.Business) *models.Business {
	return &models.Business{
		ID:           e.ID,
		BusinessName: e.BusinessName,
		OwnerName:    e.OwnerName,
		Email:        strings.ToLower(e.Email),
		PasswordHash: e.PasswordHash,
		Phone:        e.Phone.Ptr(),
		BusinessType: e.BusinessType.Ptr(),
		PlanType:     e.PlanType,
		Status:       string(e.Status),
		TrialEndsAt:  e.TrialEndsAt.Ptr(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (r *BusinessRepository) toEntity(m *models.Business) *entities.Business {
	return &entities.Business{
		ID:           m.ID,
		BusinessName: m.BusinessName,
		OwnerName:    m.OwnerName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        null.StringFromPtr(m.Phone),
		BusinessType: null.StringFromPtr(m.BusinessType),
		PlanType:     m.PlanType,
		Status:       entities.BusinessStatus(m.Status),
		TrialEndsAt:  null.TimeFromPtr(m.TrialEndsAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
