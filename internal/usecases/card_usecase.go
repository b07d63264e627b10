package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/domain/repositories"
	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/logger"
)

const cardCodeAttempts = 3

var generateCardCode = crypto.GenerateCardCode

// CardUsecase manages the loyalty card of each business
type CardUsecase struct {
	cardRepo            repositories.CardRepository
	defaultStampsNeeded int
}

// NewCardUsecase creates a new card usecase
func NewCardUsecase(cardRepo repositories.CardRepository, defaultStampsNeeded int) *CardUsecase {
	if defaultStampsNeeded <= 0 {
		defaultStampsNeeded = 10
	}
	return &CardUsecase{cardRepo: cardRepo, defaultStampsNeeded: defaultStampsNeeded}
}

// UpsertCard updates the business's card in place, or creates it with a fresh card code.
// The returned bool reports whether a card was created.
func (u *CardUsecase) UpsertCard(ctx context.Context, businessID uuid.UUID, input *entities.UpsertCardInput) (*entities.LoyaltyCard, bool, error) {
	if strings.TrimSpace(input.CardName) == "" {
		return nil, false, domainerrors.BadRequest("cardName is required")
	}
	if input.StampsRequired < 0 {
		return nil, false, domainerrors.BadRequest("stampsRequired must be positive")
	}

	existing, err := u.cardRepo.GetByBusinessID(ctx, businessID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		card, err := u.update(ctx, existing, input)
		return card, false, err
	}

	for attempt := 0; attempt < cardCodeAttempts; attempt++ {
		code, err := generateCardCode()
		if err != nil {
			return nil, false, err
		}

		card := &entities.LoyaltyCard{
			BusinessID: businessID,
			CardCode:   code,
			Status:     entities.CardStatusActive,
		}
		u.apply(card, input)

		err = u.cardRepo.Create(ctx, card)
		if err == nil {
			logger.Info(ctx, "Loyalty card created", zap.String("card_code", card.CardCode))
			return card, true, nil
		}
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, false, err
		}

		// either the code collided or a concurrent request created the card first
		existing, lookupErr := u.cardRepo.GetByBusinessID(ctx, businessID)
		if lookupErr == nil {
			card, err := u.update(ctx, existing, input)
			return card, false, err
		}
		if !errors.Is(lookupErr, domainerrors.ErrNotFound) {
			return nil, false, lookupErr
		}
	}

	return nil, false, domainerrors.InternalServerError("could not allocate a unique card code")
}

func (u *CardUsecase) update(ctx context.Context, card *entities.LoyaltyCard, input *entities.UpsertCardInput) (*entities.LoyaltyCard, error) {
	u.apply(card, input)
	if err := u.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (u *CardUsecase) apply(card *entities.LoyaltyCard, input *entities.UpsertCardInput) {
	card.CardName = strings.TrimSpace(input.CardName)
	card.Description = optionalString(input.Description)
	card.RewardDescription = optionalString(input.RewardDescription)
	card.LogoText = optionalString(input.LogoText)

	card.StampsRequired = input.StampsRequired
	if card.StampsRequired == 0 {
		card.StampsRequired = u.defaultStampsNeeded
	}
	card.BackgroundColor = input.BackgroundColor
	if card.BackgroundColor == "" {
		card.BackgroundColor = entities.DefaultBackgroundColor
	}
	card.TextColor = input.TextColor
	if card.TextColor == "" {
		card.TextColor = entities.DefaultTextColor
	}
}

// ListCards returns the cards of a business
func (u *CardUsecase) ListCards(ctx context.Context, businessID uuid.UUID) ([]*entities.LoyaltyCard, error) {
	return u.cardRepo.ListByBusiness(ctx, businessID)
}

// GetPublicCard resolves a card by code or id for the customer app
func (u *CardUsecase) GetPublicCard(ctx context.Context, identifier string) (*entities.PublicCard, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domainerrors.BadRequest("card identifier is required")
	}
	card, err := u.cardRepo.GetPublic(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("card not found")
		}
		return nil, err
	}
	return card, nil
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
