package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/domain/repositories"
	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/jwt"
	"loyaltyjo.backend/pkg/logger"
)

const staffRole = "staff"

// AuthUsecase handles business, staff and admin authentication
type AuthUsecase struct {
	businessRepo  repositories.BusinessRepository
	staffRepo     repositories.StaffRepository
	adminRepo     repositories.AdminRepository
	jwtService    *jwt.JWTService
	trialDuration time.Duration
	now           func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	businessRepo repositories.BusinessRepository,
	staffRepo repositories.StaffRepository,
	adminRepo repositories.AdminRepository,
	jwtService *jwt.JWTService,
	trialDuration time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		businessRepo:  businessRepo,
		staffRepo:     staffRepo,
		adminRepo:     adminRepo,
		jwtService:    jwtService,
		trialDuration: trialDuration,
		now:           utcNow,
	}
}

// RegisterBusiness creates a trial business and signs its owner in
func (u *AuthUsecase) RegisterBusiness(ctx context.Context, input *entities.RegisterBusinessInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.BusinessName) == "" || input.Password == "" {
		return nil, domainerrors.BadRequest("businessName, email and password are required")
	}

	// Check if email already exists
	_, err := u.businessRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	business := &entities.Business{
		BusinessName: strings.TrimSpace(input.BusinessName),
		OwnerName:    strings.TrimSpace(input.OwnerName),
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        optionalString(input.Phone),
		BusinessType: optionalString(input.BusinessType),
		PlanType:     entities.DefaultPlanType,
		Status:       entities.BusinessStatusTrial,
		TrialEndsAt:  null.TimeFrom(u.now().Add(u.trialDuration)),
	}

	if err := u.businessRepo.Create(ctx, business); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}

	logger.Info(ctx, "Business registered", zap.String("business_id", business.ID.String()))
	return u.ownerResponse(business)
}

// LoginBusiness signs a business owner in
func (u *AuthUsecase) LoginBusiness(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	business, err := u.businessRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, business.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if business.Status == entities.BusinessStatusSuspended {
		return nil, domainerrors.ErrBusinessSuspended
	}

	return u.ownerResponse(business)
}

func (u *AuthUsecase) ownerResponse(business *entities.Business) (*entities.AuthResponse, error) {
	token, err := u.jwtService.GenerateToken(jwt.Identity{
		SubjectID:  business.ID,
		BusinessID: business.ID,
		Email:      business.Email,
		Role:       jwt.RoleOwner,
	})
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: u.now().Add(u.jwtService.AccessExpiry()),
		Role:      jwt.RoleOwner,
		Business:  business,
	}, nil
}

// LoginStaff signs a scanner-app operator in
func (u *AuthUsecase) LoginStaff(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	staff, err := u.staffRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !staff.IsActive || !crypto.CheckPassword(input.Password, staff.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	business, err := u.businessRepo.GetByID(ctx, staff.BusinessID)
	if err != nil {
		return nil, err
	}
	if business.Status == entities.BusinessStatusSuspended {
		return nil, domainerrors.ErrBusinessSuspended
	}

	staffID := staff.ID
	token, err := u.jwtService.GenerateToken(jwt.Identity{
		SubjectID:  staff.ID,
		BusinessID: staff.BusinessID,
		StaffID:    &staffID,
		Email:      staff.Email,
		Role:       jwt.RoleStaff,
	})
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: u.now().Add(u.jwtService.AccessExpiry()),
		Role:      jwt.RoleStaff,
		Business:  business,
		Staff:     staff,
	}, nil
}

// CreateStaff adds an operator to the owner's business
func (u *AuthUsecase) CreateStaff(ctx context.Context, businessID uuid.UUID, input *entities.CreateStaffInput) (*entities.Staff, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.BadRequest("email and password are required")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	staff := &entities.Staff{
		BusinessID:   businessID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         staffRole,
		IsActive:     true,
	}
	if err := u.staffRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("staff email already registered")
		}
		return nil, err
	}
	return staff, nil
}

// ListStaff returns the operators of a business
func (u *AuthUsecase) ListStaff(ctx context.Context, businessID uuid.UUID) ([]*entities.Staff, error) {
	return u.staffRepo.ListByBusiness(ctx, businessID)
}

// GetBusiness returns the caller's business profile
func (u *AuthUsecase) GetBusiness(ctx context.Context, businessID uuid.UUID) (*entities.Business, error) {
	business, err := u.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("business not found")
		}
		return nil, err
	}
	return business, nil
}

// LoginAdmin signs a platform operator in and records the login time
func (u *AuthUsecase) LoginAdmin(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	admin, err := u.adminRepo.GetActiveByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	role := jwt.RoleAdmin
	if admin.Role == entities.AdminRoleSuperAdmin {
		role = jwt.RoleSuperAdmin
	}
	token, err := u.jwtService.GenerateToken(jwt.Identity{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Role:      role,
	})
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := u.adminRepo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		logger.Warn(ctx, "Failed to record admin login", zap.String("admin_id", admin.ID.String()), zap.Error(err))
	} else {
		admin.LastLogin = null.TimeFrom(now)
	}

	return &entities.AuthResponse{
		Token:     token,
		ExpiresAt: now.Add(u.jwtService.AccessExpiry()),
		Role:      role,
		Admin:     admin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
