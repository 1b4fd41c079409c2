package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/placement-portal/internal/app/auth"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller's principal
// in the gin context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			abortWithError(c, tokenErrorDetail(err))
			return
		}

		appauth.SetPrincipal(c, appauth.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

func tokenErrorDetail(err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		detail.Code = dto.ErrorCodeExpiredToken
		return detail.WithDetails("Token has expired")
	case errors.Is(err, apperrors.ErrInvalidFormat):
		return detail.WithDetails("Invalid token format")
	default:
		return detail.WithDetails("Invalid token")
	}
}

// RoleRequired rejects callers that hold none of roles. JWTAuth must run first.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := appauth.PrincipalFrom(c)
		if err != nil {
			abortWithError(c, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("User role not found"))
			return
		}

		if err := principal.Authorize(roles...); err != nil {
			abortWithError(c, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("Role "+string(principal.Role)+" cannot use this endpoint"))
			return
		}

		c.Next()
	}
}
