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
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, staff *entities.Staff) error {
	m := &models.StaffUser{
		ID:           staff.ID,
		BusinessID:   staff.BusinessID,
		Name:         staff.Name,
		Email:        strings.ToLower(staff.Email),
		PasswordHash: staff.PasswordHash,
		Role:         staff.Role,
		IsActive:     staff.IsActive,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	staff.ID = m.ID
	staff.Email = m.Email
	staff.CreatedAt = m.CreatedAt
	return nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	var m models.StaffUser
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return staffToEntity(&m), nil
}

func (r *StaffRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entities.Staff, error) {
	var ms []models.StaffUser
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Staff, 0, len(ms))
	for i := range ms {
		items = append(items, staffToEntity(&ms[i]))
	}
	return items, nil
}

func staffToEntity(m *models.StaffUser) *entities.Staff {
	return &entities.Staff{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetActiveByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	var m models.AdminUser
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("email = ? AND is_active = ?", strings.ToLower(email), true).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &entities.Admin{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         entities.AdminRole(m.Role),
		IsActive:     m.IsActive,
		LastLogin:    null.TimeFromPtr(m.LastLogin),
		CreatedAt:    m.CreatedAt,
	}, nil
}

func (r *AdminRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
