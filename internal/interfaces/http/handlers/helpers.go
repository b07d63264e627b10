package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/internal/interfaces/http/middleware"
	"loyaltyjo.backend/internal/interfaces/http/response"
)

// requireBusinessID writes a 403 and returns false when the caller carries no business
func requireBusinessID(c *gin.Context) (uuid.UUID, bool) {
	businessID, ok := middleware.GetBusinessID(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("business account required"))
		return uuid.Nil, false
	}
	return businessID, true
}

func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid "+label))
		return uuid.Nil, false
	}
	return id, true
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
