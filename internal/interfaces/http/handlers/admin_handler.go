package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/internal/usecases"
)

// AdminHandler handles platform operator endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// GetStats returns platform totals
// GET /api/v1/admin/dashboard
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// GetAnalytics returns monthly subscription revenue and the business status breakdown
// GET /api/v1/admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	report, err := h.adminUsecase.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// ListBusinesses lists businesses with optional status and search filters
// GET /api/v1/admin/businesses
func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	page, limit := pageQuery(c)
	filter := entities.BusinessFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	rows, meta, err := h.adminUsecase.ListBusinesses(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, "businesses", rows, meta)
}

// CreateBusiness provisions a business with a subscription
// POST /api/v1/admin/businesses
func (h *AdminHandler) CreateBusiness(c *gin.Context) {
	var input entities.AdminCreateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.adminUsecase.CreateBusiness(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// UpdateBusinessStatus changes a business status
// PUT /api/v1/admin/businesses/:id/status
func (h *AdminHandler) UpdateBusinessStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "business ID")
	if !ok {
		return
	}

	var input entities.UpdateBusinessStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.UpdateBusinessStatus(c.Request.Context(), id, input.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Business status updated"})
}

// ListPlans lists sellable plans
// GET /api/v1/admin/plans
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.adminUsecase.ListPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

// ListSubscriptions lists all subscriptions
// GET /api/v1/admin/subscriptions
func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.adminUsecase.ListSubscriptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscriptions": subs})
}
