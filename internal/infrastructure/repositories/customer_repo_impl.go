package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"loyaltyjo.backend/internal/domain/entities"
	"loyaltyjo.backend/internal/infrastructure/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindOrCreateByPhone relies on the unique phone index: a concurrent insert of the
// same phone turns into a no-op and both callers read back the single stored row.
func (r *CustomerRepository) FindOrCreateByPhone(ctx context.Context, customer *entities.Customer) (*entities.Customer, bool, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	m := r.toModel(customer)
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return nil, false, translateError(res.Error)
	}
	created := res.RowsAffected > 0

	var stored models.Customer
	if err := db.Where("phone = ?", customer.Phone).First(&stored).Error; err != nil {
		return nil, false, translateError(err)
	}
	return r.toEntity(&stored), created, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return r.toEntity(&m), nil
}

func (r *CustomerRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).Count(&n).Error
	return n, err
}

func (r *CustomerRepository) toModel(e *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:        e.ID,
		Phone:     e.Phone,
		Name:      e.Name.Ptr(),
		Email:     e.Email.Ptr(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *CustomerRepository) toEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:        m.ID,
		Phone:     m.Phone,
		Name:      null.StringFromPtr(m.Name),
		Email:     null.StringFromPtr(m.Email),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
