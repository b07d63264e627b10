package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/infrastructure/models"
	"loyaltyjo.backend/pkg/utils"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *entities.LoyaltyCard) error {
	m := r.toModel(card)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	card.ID = m.ID
	card.CreatedAt = m.CreatedAt
	card.UpdatedAt = m.UpdatedAt
	return nil
}

// Update rewrites the mutable fields of the business's card; card_code and ownership never change
func (r *CardRepository) Update(ctx context.Context, card *entities.LoyaltyCard) error {
	card.UpdatedAt = time.Now().UTC()
	res := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LoyaltyCard{}).
		Where("id = ? AND business_id = ?", card.ID, card.BusinessID).
		Updates(map[string]interface{}{
			"card_name":          card.CardName,
			"description":        card.Description.Ptr(),
			"stamps_required":    card.StampsRequired,
			"reward_description": card.RewardDescription.Ptr(),
			"background_color":   card.BackgroundColor,
			"text_color":         card.TextColor,
			"logo_text":          card.LogoText.Ptr(),
			"updated_at":         card.UpdatedAt,
		})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CardRepository) GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*entities.LoyaltyCard, error) {
	var m models.LoyaltyCard
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("business_id = ?", businessID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *CardRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.LoyaltyCard, error) {
	var m models.LoyaltyCard
	if err := r.byIdentifier(GetDB(ctx, r.db).WithContext(ctx), "", identifier).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

type publicCardRow struct {
	models.LoyaltyCard
	BusinessName string
}

func (r *CardRepository) GetPublic(ctx context.Context, identifier string) (*entities.PublicCard, error) {
	var row publicCardRow
	query := GetDB(ctx, r.db).WithContext(ctx).
		Table("loyalty_cards AS lc").
		Select("lc.*, b.business_name").
		Joins("JOIN businesses b ON b.id = lc.business_id")
	if err := r.byIdentifier(query, "lc.", identifier).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return &entities.PublicCard{
		LoyaltyCard:  *r.toEntity(&row.LoyaltyCard),
		BusinessName: row.BusinessName,
	}, nil
}

func (r *CardRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.LoyaltyCard, error) {
	var ms []models.LoyaltyCard
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.LoyaltyCard, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CardRepository) CountActiveByBusiness(ctx context.Context, businessID uuid.UUID) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.LoyaltyCard{}).
		Where("business_id = ? AND status = ?", businessID, string(entities.CardStatusActive)).
		Count(&n).Error
	return n, err
}

// byIdentifier matches card_code, and also the primary key when identifier parses as a UUID
func (r *CardRepository) byIdentifier(q *gorm.DB, prefix, identifier string) *gorm.DB {
	if id, ok := utils.ParseUUID(identifier); ok {
		return q.Where("("+prefix+"id = ? OR "+prefix+"card_code = ?)", id, identifier)
	}
	return q.Where(prefix+"card_code = ?", identifier)
}

func (r *CardRepository) toModel(e *entities.LoyaltyCard) *models.LoyaltyCard {
	return &models.LoyaltyCard{
		ID:                e.ID,
		BusinessID:        e.BusinessID,
		CardName:          e.CardName,
		Description:       e.Description.Ptr(),
		StampsRequired:    e.StampsRequired,
		RewardDescription: e.RewardDescription.Ptr(),
		BackgroundColor:   e.BackgroundColor,
		TextColor:         e.TextColor,
		LogoText:          e.LogoText.Ptr(),
		CardCode:          e.CardCode,
		Status:            string(e.Status),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func (r *CardRepository) toEntity(m *models.LoyaltyCard) *entities.LoyaltyCard {
	return &entities.LoyaltyCard{
		ID:                m.ID,
		BusinessID:        m.BusinessID,
		CardName:          m.CardName,
		Description:       null.StringFromPtr(m.Description),
		StampsRequired:    m.StampsRequired,
		RewardDescription: null.StringFromPtr(m.RewardDescription),
		BackgroundColor:   m.BackgroundColor,
		TextColor:         m.TextColor,
		LogoText:          null.StringFromPtr(m.LogoText),
		CardCode:          m.CardCode,
		Status:            entities.CardStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
