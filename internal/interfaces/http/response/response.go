package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "loyaltyjo.backend/internal/domain/errors"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list together with its pagination metadata
func Paginated(c *gin.Context, status int, key string, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, gin.H{
		key:          items,
		"pagination": meta,
	})
}

// Error sends an error response. Internal errors are logged and replaced by a generic message.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}
