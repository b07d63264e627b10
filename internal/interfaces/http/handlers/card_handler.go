package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/internal/usecases"
)

// CardHandler handles loyalty card endpoints
type CardHandler struct {
	cardUsecase *usecases.CardUsecase
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardUsecase *usecases.CardUsecase) *CardHandler {
	return &CardHandler{cardUsecase: cardUsecase}
}

// UpsertCard creates the business card or updates it in place
// POST /api/v1/cards
func (h *CardHandler) UpsertCard(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	var input entities.UpsertCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	card, created, err := h.cardUsecase.UpsertCard(c.Request.Context(), businessID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"card": card})
}

// ListCards lists the caller's cards
// GET /api/v1/cards
func (h *CardHandler) ListCards(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	cards, err := h.cardUsecase.ListCards(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cards": cards})
}

// GetPublicCard shows a card to the customer app
// GET /api/v1/public/cards/:cardId
func (h *CardHandler) GetPublicCard(c *gin.Context) {
	card, err := h.cardUsecase.GetPublicCard(c.Request.Context(), c.Param("cardId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"card": card})
}
