package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/middleware"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/internal/usecases"
)

// LedgerHandler handles membership, stamp and redemption endpoints
type LedgerHandler struct {
	ledgerUsecase *usecases.LedgerUsecase
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUsecase *usecases.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledgerUsecase: ledgerUsecase}
}

// RegisterCustomer enrols a customer on a card from the customer app
// POST /api/v1/customers/register
func (h *LedgerHandler) RegisterCustomer(c *gin.Context) {
	var input entities.RegisterMembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.ledgerUsecase.RegisterMembership(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, res)
}

// ScanCustomer looks a member up by phone or QR token
// POST /api/v1/customers/scan
func (h *LedgerHandler) ScanCustomer(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	var input entities.ScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	view, err := h.ledgerUsecase.ScanMembership(c.Request.Context(), businessID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": view})
}

// AddStamp adds one stamp
// POST /api/v1/stamps/add
func (h *LedgerHandler) AddStamp(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	var input entities.StampInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ack, err := h.ledgerUsecase.AddStamp(c.Request.Context(), businessID, middleware.GetStaffID(c), input.CustomerCardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, ack)
}

// RedeemReward redeems the reward and resets the card
// POST /api/v1/stamps/redeem
func (h *LedgerHandler) RedeemReward(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	var input entities.StampInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ack, err := h.ledgerUsecase.RedeemReward(c.Request.Context(), businessID, middleware.GetStaffID(c), input.CustomerCardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, ack)
}

// ListCustomers lists the members of the caller's business
// GET /api/v1/customers
func (h *LedgerHandler) ListCustomers(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	page, limit := pageQuery(c)
	items, meta, err := h.ledgerUsecase.ListCustomers(c.Request.Context(), businessID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "customers", items, meta)
}

// ListTransactions returns a membership's audit trail
// GET /api/v1/memberships/:id/transactions
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}
	membershipID, ok := parseIDParam(c, "id", "membership ID")
	if !ok {
		return
	}

	txs, err := h.ledgerUsecase.ListTransactions(c.Request.Context(), businessID, membershipID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transactions": txs})
}
