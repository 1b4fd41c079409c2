package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
)

// Context keys set by the JWT middleware
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "roleType"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID int64
	Email  string
	Role   models.RoleType
}

// HasRole reports whether the principal holds any of roles
func (p Principal) HasRole(roles ...models.RoleType) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Authorize returns ErrPermissionDenied unless the principal holds one of roles
func (p Principal) Authorize(roles ...models.RoleType) error {
	if !p.HasRole(roles...) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// SetPrincipal stores the caller on the request context
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(ContextUserID, p.UserID)
	c.Set(ContextEmail, p.Email)
	c.Set(ContextRole, string(p.Role))
}

// PrincipalFrom reads the caller stored by SetPrincipal. A request that
// never passed authentication yields ErrTokenInvalid.
func PrincipalFrom(c *gin.Context) (Principal, error) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return Principal{}, apperrors.ErrTokenInvalid
	}
	id, ok := userID.(int64)
	if !ok {
		return Principal{}, apperrors.ErrTokenInvalid
	}
	return Principal{
		UserID: id,
		Email:  c.GetString(ContextEmail),
		Role:   models.RoleType(c.GetString(ContextRole)),
	}, nil
}
