package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/domain/repositories"
	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/metrics"
	"loyaltyjo.backend/pkg/utils"
)

var generateMembershipToken = crypto.GenerateMembershipToken

// LedgerUsecase maintains stamp-card memberships and their transaction log
type LedgerUsecase struct {
	cardRepo       repositories.CardRepository
	customerRepo   repositories.CustomerRepository
	membershipRepo repositories.MembershipRepository
	txRepo         repositories.StampTransactionRepository
	uow            repositories.UnitOfWork
	now            func() time.Time
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	cardRepo repositories.CardRepository,
	customerRepo repositories.CustomerRepository,
	membershipRepo repositories.MembershipRepository,
	txRepo repositories.StampTransactionRepository,
	uow repositories.UnitOfWork,
) *LedgerUsecase {
	return &LedgerUsecase{
		cardRepo:       cardRepo,
		customerRepo:   customerRepo,
		membershipRepo: membershipRepo,
		txRepo:         txRepo,
		uow:            uow,
		now:            utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// RegisterMembership enrols a customer (found or created by phone) on a card.
// Registering the same phone on the same card again returns the existing membership untouched.
func (u *LedgerUsecase) RegisterMembership(ctx context.Context, input *entities.RegisterMembershipInput) (*entities.MembershipResponse, error) {
	phone := strings.TrimSpace(input.Phone)
	cardIdentifier := strings.TrimSpace(input.CardID)
	if phone == "" {
		return nil, domainerrors.BadRequest("phone is required")
	}
	if cardIdentifier == "" {
		return nil, domainerrors.BadRequest("cardId is required")
	}

	card, err := u.cardRepo.GetByIdentifier(ctx, cardIdentifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("loyalty card not found")
		}
		return nil, err
	}
	if card.Status != entities.CardStatusActive {
		return nil, domainerrors.NotFound("loyalty card not found")
	}

	customer := &entities.Customer{Phone: phone}
	if name := strings.TrimSpace(input.Name); name != "" {
		customer.Name = null.StringFrom(name)
	}
	customer, _, err = u.customerRepo.FindOrCreateByPhone(ctx, customer)
	if err != nil {
		return nil, err
	}

	token, err := generateMembershipToken(customer.ID.String(), card.ID.String(), card.BusinessID.String())
	if err != nil {
		return nil, err
	}

	membership, created, err := u.membershipRepo.FindOrCreate(ctx, &entities.Membership{
		CustomerID: customer.ID,
		CardID:     card.ID,
		BusinessID: card.BusinessID,
		QRCodeData: token,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMembershipRegistration(created)
	if created {
		logger.Info(ctx, "Membership registered",
			zap.String("membership_id", membership.ID.String()),
			zap.String("card_id", card.ID.String()),
		)
	}

	return &entities.MembershipResponse{
		MembershipID: membership.ID,
		CustomerID:   customer.ID,
		Name:         customer.Name,
		Phone:        customer.Phone,
		Stamps:       membership.StampsCount,
		MaxStamps:    card.StampsRequired,
		QRToken:      membership.QRCodeData,
		Created:      created,
	}, nil
}

// AddStamp appends one stamp to a membership owned by businessID.
// identifier may be the membership id or its QR token.
func (u *LedgerUsecase) AddStamp(ctx context.Context, businessID uuid.UUID, staffID *uuid.UUID, identifier string) (*entities.LedgerAck, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domainerrors.BadRequest("customerCardId is required")
	}

	var membershipID uuid.UUID
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		membership, err := u.resolveMembership(txCtx, businessID, identifier)
		if err != nil {
			return err
		}
		membershipID = membership.ID

		at := u.now()
		if err := u.txRepo.Create(txCtx, &entities.StampTransaction{
			MembershipID:    membership.ID,
			BusinessID:      businessID,
			StaffID:         staffID,
			TransactionType: entities.TransactionTypeStamp,
			StampsAdded:     1,
			CreatedAt:       at,
		}); err != nil {
			return err
		}
		return u.membershipRepo.IncrementStamps(txCtx, businessID, membership.ID, at)
	})
	if err != nil {
		return nil, u.ledgerError(ctx, "add stamp", err)
	}

	metrics.RecordStampAdded()
	logger.Info(ctx, "Stamp added", zap.String("membership_id", membershipID.String()))
	return &entities.LedgerAck{Success: true, Message: "Stamp added successfully"}, nil
}

// RedeemReward logs a redemption and resets the membership counter in one transaction.
// Redemption is manual: reaching stamps_required never triggers it and it is not blocked below it.
func (u *LedgerUsecase) RedeemReward(ctx context.Context, businessID uuid.UUID, staffID *uuid.UUID, identifier string) (*entities.LedgerAck, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domainerrors.BadRequest("customerCardId is required")
	}

	var membershipID uuid.UUID
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		membership, err := u.resolveMembership(txCtx, businessID, identifier)
		if err != nil {
			return err
		}
		membershipID = membership.ID

		at := u.now()
		if err := u.txRepo.Create(txCtx, &entities.StampTransaction{
			MembershipID:    membership.ID,
			BusinessID:      businessID,
			StaffID:         staffID,
			TransactionType: entities.TransactionTypeRedeem,
			StampsAdded:     0,
			CreatedAt:       at,
		}); err != nil {
			return err
		}
		return u.membershipRepo.ResetForRedemption(txCtx, businessID, membership.ID, at)
	})
	if err != nil {
		return nil, u.ledgerError(ctx, "redeem reward", err)
	}

	metrics.RecordRewardRedeemed()
	logger.Info(ctx, "Reward redeemed", zap.String("membership_id", membershipID.String()))
	return &entities.LedgerAck{Success: true, Message: "Reward redeemed successfully"}, nil
}

func (u *LedgerUsecase) resolveMembership(txCtx context.Context, businessID uuid.UUID, identifier string) (*entities.Membership, error) {
	membership, err := u.membershipRepo.GetForBusiness(u.uow.WithLock(txCtx), businessID, identifier)
	if err != nil {
		return nil, err
	}
	if !membership.IsActive {
		return nil, domainerrors.ErrMembershipInactive
	}
	return membership, nil
}

func (u *LedgerUsecase) ledgerError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("customer card not found")
	case errors.Is(err, domainerrors.ErrMembershipInactive):
		return domainerrors.FromError(err)
	default:
		logger.Error(ctx, "Ledger operation failed", zap.String("op", op), zap.Error(err))
		return domainerrors.InternalError(err)
	}
}

// ScanMembership resolves a membership of businessID by phone or QR token
func (u *LedgerUsecase) ScanMembership(ctx context.Context, businessID uuid.UUID, input *entities.ScanInput) (*entities.MembershipView, error) {
	phone := strings.TrimSpace(input.Phone)
	qr := strings.TrimSpace(input.QRCode)
	if phone == "" && qr == "" {
		return nil, domainerrors.BadRequest("phone or qrCode is required")
	}

	view, err := u.membershipRepo.Scan(ctx, businessID, phone, qr)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("customer not found")
		}
		return nil, err
	}

	view.LastVisit = LastVisitLabel(view.LastStampDate, u.now())
	return view, nil
}

// LastVisitLabel renders the time since the last stamp in whole elapsed days
func LastVisitLabel(last null.Time, now time.Time) string {
	if !last.Valid {
		return "First visit"
	}
	days := int(now.Sub(last.Time) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// ListCustomers returns the business's members, most recently stamped first
func (u *LedgerUsecase) ListCustomers(ctx context.Context, businessID uuid.UUID, page, limit int) ([]*entities.CustomerSummary, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	items, total, err := u.membershipRepo.ListCustomers(ctx, businessID, params)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return items, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// ListTransactions returns the audit trail of one membership, newest first
func (u *LedgerUsecase) ListTransactions(ctx context.Context, businessID, membershipID uuid.UUID) ([]*entities.StampTransaction, error) {
	if _, err := u.membershipRepo.GetForBusiness(ctx, businessID, membershipID.String()); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("customer card not found")
		}
		return nil, err
	}
	return u.txRepo.ListByMembership(ctx, businessID, membershipID)
}
