/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// Error codes used in --json failure output
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeStorage      = "STORAGE_ERROR"
	CodeConfig       = "CONFIG_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse provides structured error information for --json output
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewErrorResponse creates a new structured error
func NewErrorResponse(code string, message string, details map[string]interface{}) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}
