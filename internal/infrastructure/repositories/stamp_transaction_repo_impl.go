package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/internal/infrastructure/models"
)

type StampTransactionRepository struct {
	db *gorm.DB
}

func NewStampTransactionRepository(db *gorm.DB) *StampTransactionRepository {
	return &StampTransactionRepository{db: db}
}

// Create appends a ledger entry. Entries are never updated or deleted.
func (r *StampTransactionRepository) Create(ctx context.Context, tx *entities.StampTransaction) error {
	m := &models.StampTransaction{
		ID:              tx.ID,
		CustomerCardID:  tx.MembershipID,
		BusinessID:      tx.BusinessID,
		StaffID:         tx.StaffID,
		TransactionType: string(tx.TransactionType),
		StampsAdded:     tx.StampsAdded,
		CreatedAt:       tx.CreatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	return nil
}

func (r *StampTransactionRepository) ListByMembership(ctx context.Context, businessID, membershipID uuid.UUID) ([]*entities.StampTransaction, error) {
	var ms []models.StampTransaction
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("business_id = ? AND customer_card_id = ?", businessID, membershipID).
		Order("created_at DESC, id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.StampTransaction, 0, len(ms))
	for i := range ms {
		m := ms[i]
		items = append(items, &entities.StampTransaction{
			ID:              m.ID,
			MembershipID:    m.CustomerCardID,
			BusinessID:      m.BusinessID,
			StaffID:         m.StaffID,
			TransactionType: entities.TransactionType(m.TransactionType),
			StampsAdded:     m.StampsAdded,
			CreatedAt:       m.CreatedAt,
		})
	}
	return items, nil
}

func (r *StampTransactionRepository) CountSince(ctx context.Context, businessID uuid.UUID, txType entities.TransactionType, since time.Time) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.StampTransaction{}).
		Where("business_id = ? AND transaction_type = ? AND created_at >= ?", businessID, string(txType), since).
		Count(&n).Error
	return n, err
}

func (r *StampTransactionRepository) CountDistinctMembershipsSince(ctx context.Context, businessID uuid.UUID, since time.Time) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.StampTransaction{}).
		Where("business_id = ? AND created_at >= ?", businessID, since).
		Distinct("customer_card_id").
		Count(&n).Error
	return n, err
}
