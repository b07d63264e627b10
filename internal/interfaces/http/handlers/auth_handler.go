package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"loyaltyjo.backend/internal/domain/entities"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/response"
	"loyaltyjo.backend/internal/usecases"
)

// AuthHandler handles account endpoints for owners, staff and admins
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Register handles business self-registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.authUsecase.RegisterBusiness(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login handles owner login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.authUsecase.LoginBusiness(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// StaffLogin handles scanner-app login
// POST /api/v1/auth/staff/login
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.authUsecase.LoginStaff(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// AdminLogin handles platform operator login
// POST /api/v1/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	res, err := h.authUsecase.LoginAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetBusiness returns the caller's business
// GET /api/v1/business
func (h *AuthHandler) GetBusiness(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	business, err := h.authUsecase.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"business": business})
}

// CreateStaff adds an operator
// POST /api/v1/staff
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	var input entities.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	staff, err := h.authUsecase.CreateStaff(c.Request.Context(), businessID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"staff": staff})
}

// ListStaff lists the operators of the caller's business
// GET /api/v1/staff
func (h *AuthHandler) ListStaff(c *gin.Context) {
	businessID, ok := requireBusinessID(c)
	if !ok {
		return
	}

	staff, err := h.authUsecase.ListStaff(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": staff})
}
