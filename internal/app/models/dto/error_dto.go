package dto

import (
	"net/http"
	"time"
)

// ErrorCode is the machine readable part of an error body. Each code is
// always sent with the same HTTP status.
type ErrorCode string

const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

var errorCodeStatus = map[ErrorCode]int{
	ErrorCodeInvalidCredentials:    http.StatusUnauthorized,
	ErrorCodeInvalidToken:          http.StatusUnauthorized,
	ErrorCodeExpiredToken:          http.StatusUnauthorized,
	ErrorCodeUnauthorized:          http.StatusUnauthorized,
	ErrorCodeForbidden:             http.StatusForbidden,
	ErrorCodeResourceNotFound:      http.StatusNotFound,
	ErrorCodeResourceAlreadyExists: http.StatusConflict,
	ErrorCodeValidationFailed:      http.StatusBadRequest,
	ErrorCodeBadRequest:            http.StatusBadRequest,
}

// HTTPStatus returns the status the code is answered with; unknown codes are 500.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := errorCodeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorDetail is the "error" member of an error response
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"VAL_001"`
	Message string      `json:"message" example:"cgpa must be between 0 and 10"`
	Field   string      `json:"field,omitempty" example:"cgpa"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField names the request field the error is about
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches extra context, e.g. the list of failed fields
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorResponse wraps an error detail in the response envelope
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
