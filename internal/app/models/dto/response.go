package dto

import "time"

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Count     *int         `json:"count,omitempty" example:"42"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewListResponse is NewSuccessResponse with the item count set.
func NewListResponse(data interface{}, count int) APIResponse {
	resp := NewSuccessResponse(data)
	resp.Count = &count
	return resp
}
