package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/infrastructure/models"
	"loyaltyjo.backend/pkg/utils"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// FindOrCreate inserts unless (customer_id, card_id) already exists; existing progress is never touched.
func (r *MembershipRepository) FindOrCreate(ctx context.Context, membership *entities.Membership) (*entities.Membership, bool, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	m := r.toModel(membership)
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "card_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return nil, false, translateError(res.Error)
	}
	created := res.RowsAffected > 0

	var stored models.CustomerCard
	if err := db.Where("customer_id = ? AND card_id = ?", membership.CustomerID, membership.CardID).First(&stored).Error; err != nil {
		return nil, false, translateError(err)
	}
	return r.toEntity(&stored), created, nil
}

func (r *MembershipRepository) GetForBusiness(ctx context.Context, businessID uuid.UUID, identifier string) (*entities.Membership, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domainerrors.ErrNotFound
	}

	query := GetDB(ctx, r.db).WithContext(ctx).Where("business_id = ?", businessID)
	if id, ok := utils.ParseUUID(identifier); ok {
		query = query.Where("(id = ? OR qr_code_data = ?)", id, identifier)
	} else {
		query = query.Where("qr_code_data = ?", identifier)
	}

	var m models.CustomerCard
	if err := query.First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

// IncrementStamps is a single UPDATE so concurrent stamps never lose an increment
func (r *MembershipRepository) IncrementStamps(ctx context.Context, businessID, id uuid.UUID, at time.Time) error {
	return r.updateOwned(ctx, businessID, id, map[string]interface{}{
		"stamps_count":    gorm.Expr("stamps_count + ?", 1),
		"last_stamp_date": at,
		"updated_at":      at,
	})
}

func (r *MembershipRepository) ResetForRedemption(ctx context.Context, businessID, id uuid.UUID, at time.Time) error {
	return r.updateOwned(ctx, businessID, id, map[string]interface{}{
		"stamps_count":     0,
		"rewards_earned":   gorm.Expr("rewards_earned + ?", 1),
		"rewards_redeemed": gorm.Expr("rewards_redeemed + ?", 1),
		"last_stamp_date":  at,
		"updated_at":       at,
	})
}

func (r *MembershipRepository) updateOwned(ctx context.Context, businessID, id uuid.UUID, values map[string]interface{}) error {
	res := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CustomerCard{}).
		Where("id = ? AND business_id = ? AND is_active = ?", id, businessID, true).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

type membershipViewRow struct {
	CustomerID        uuid.UUID
	MembershipID      uuid.UUID
	Name              *string
	Phone             string
	StampsCount       int
	RewardsRedeemed   int
	LastStampDate     *time.Time
	StampsRequired    int
	RewardDescription *string
}

// Scan looks a membership up within businessID by phone, QR token, or either
func (r *MembershipRepository) Scan(ctx context.Context, businessID uuid.UUID, phone, qrToken string) (*entities.MembershipView, error) {
	phone = strings.TrimSpace(phone)
	qrToken = strings.TrimSpace(qrToken)

	query := GetDB(ctx, r.db).WithContext(ctx).
		Table("customer_cards AS cc").
		Select(`c.id AS customer_id, cc.id AS membership_id, c.name, c.phone,
			cc.stamps_count, cc.rewards_redeemed, cc.last_stamp_date,
			lc.stamps_required, lc.reward_description`).
		Joins("JOIN customers c ON c.id = cc.customer_id").
		Joins("JOIN loyalty_cards lc ON lc.id = cc.card_id").
		Where("cc.business_id = ?", businessID)

	switch {
	case phone != "" && qrToken != "":
		query = query.Where("(c.phone = ? OR cc.qr_code_data = ?)", phone, qrToken)
	case phone != "":
		query = query.Where("c.phone = ?", phone)
	case qrToken != "":
		query = query.Where("cc.qr_code_data = ?", qrToken)
	default:
		return nil, domainerrors.ErrInvalidInput
	}

	var rows []membershipViewRow
	if err := query.Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}

	row := rows[0]
	return &entities.MembershipView{
		CustomerID:        row.CustomerID,
		MembershipID:      row.MembershipID,
		Name:              null.StringFromPtr(row.Name),
		Phone:             row.Phone,
		CurrentStamps:     row.StampsCount,
		MaxStamps:         row.StampsRequired,
		RewardsRedeemed:   row.RewardsRedeemed,
		LastStampDate:     null.TimeFromPtr(row.LastStampDate),
		RewardDescription: null.StringFromPtr(row.RewardDescription),
	}, nil
}

type customerSummaryRow struct {
	CustomerID    uuid.UUID
	MembershipID  uuid.UUID
	Name          *string
	Phone         string
	StampsCount   int
	RewardsEarned int
	LastStampDate *time.Time
	JoinedAt      time.Time
}

func (r *MembershipRepository) ListCustomers(ctx context.Context, businessID uuid.UUID, pagination utils.PaginationParams) ([]*entities.CustomerSummary, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.CustomerCard{}).Where("business_id = ?", businessID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Table("customer_cards AS cc").
		Select(`c.id AS customer_id, cc.id AS membership_id, c.name, c.phone,
			cc.stamps_count, cc.rewards_earned, cc.last_stamp_date, cc.created_at AS joined_at`).
		Joins("JOIN customers c ON c.id = cc.customer_id").
		Where("cc.business_id = ?", businessID).
		Order("cc.last_stamp_date IS NULL, cc.last_stamp_date DESC, cc.created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var rows []customerSummaryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.CustomerSummary, 0, len(rows))
	for i := range rows {
		row := rows[i]
		items = append(items, &entities.CustomerSummary{
			CustomerID:    row.CustomerID,
			MembershipID:  row.MembershipID,
			Name:          null.StringFromPtr(row.Name),
			Phone:         row.Phone,
			StampsCount:   row.StampsCount,
			RewardsEarned: row.RewardsEarned,
			LastStampDate: null.TimeFromPtr(row.LastStampDate),
			JoinedAt:      row.JoinedAt,
		})
	}
	return items, total, nil
}

func (r *MembershipRepository) CountDistinctCustomers(ctx context.Context, businessID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CustomerCard{}).
		Where("business_id = ?", businessID).
		Distinct("customer_id").
		Count(&n).Error
	return n, err
}

func (r *MembershipRepository) toModel(e *entities.Membership) *models.CustomerCard {
	return &models.CustomerCard{
		ID:              e.ID,
		CustomerID:      e.CustomerID,
		CardID:          e.CardID,
		BusinessID:      e.BusinessID,
		StampsCount:     e.StampsCount,
		RewardsEarned:   e.RewardsEarned,
		RewardsRedeemed: e.RewardsRedeemed,
		LastStampDate:   e.LastStampDate.Ptr(),
		QRCodeData:      e.QRCodeData,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *MembershipRepository) toEntity(m *models.CustomerCard) *entities.Membership {
	return &entities.Membership{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		CardID:          m.CardID,
		BusinessID:      m.BusinessID,
		StampsCount:     m.StampsCount,
		RewardsEarned:   m.RewardsEarned,
		RewardsRedeemed: m.RewardsRedeemed,
		LastStampDate:   null.TimeFromPtr(m.LastStampDate),
		QRCodeData:      m.QRCodeData,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
