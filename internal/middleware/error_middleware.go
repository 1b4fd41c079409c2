package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/logger"
)

// Checked in order; specific sentinels wrap the generic ones below them.
var errorMappings = []struct {
	err     error
	code    dto.ErrorCode
	message string
}{
	{apperrors.ErrValidationFailed, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrStudentNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrUserNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrInvalidCredentials, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrAccountDisabled, dto.ErrorCodeForbidden, "Account is disabled"},
	{apperrors.ErrPermissionDenied, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrResourceAlreadyExists, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
}

// HandleAPIError maps a service error onto the standard error body. Unknown
// errors are logged and answered with a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetailFor(err)
	if detail.Code == dto.ErrorCodeInternalServer {
		fallback := logger.Component("http")
		logger.FromContext(c.Request.Context(), &fallback).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
	}
	abortWithError(c, detail)
}

func errorDetailFor(err error) *dto.ErrorDetail {
	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		messages := make([]string, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			messages = append(messages, f.Message)
		}
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, strings.Join(messages, ", ")).WithDetails(vErr.Fields)
	}

	if errors.Is(err, apperrors.ErrBadRequest) {
		message := "Bad request"
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			message = custom.Message
		}
		return dto.NewErrorDetail(dto.ErrorCodeBadRequest, message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return dto.NewErrorDetail(m.code, m.message)
		}
	}
	return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

func abortWithError(c *gin.Context, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(detail.Code.HTTPStatus(), dto.NewErrorResponse(detail))
}
