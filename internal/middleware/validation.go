package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models/dto"
)

// BindJSON decodes the request body into obj and runs its binding tags.
// On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abortWithError(c, dto.HandleValidationError(err))
		return false
	}
	return true
}
