// pkg/models/api.go
package models

// Envelope is the uniform response body. Success is always HTTP 200 with
// Status=true; every non-200 response carries Status=false.
type Envelope struct {
	Status  bool   `json:"status" example:"true"`
	Message string `json:"message,omitempty" example:"Case created successfully"`
	Data    any    `json:"data,omitempty"`
}

// ValidationErrorResponse is the 400 body for request-shape failures.
type ValidationErrorResponse struct {
	Status  bool                `json:"status" example:"false"`
	Message string              `json:"message" example:"Validation error: caseTitle is required"`
	Errors  map[string][]string `json:"errors"`
}

// ErrorResponse is the generic failure body (404/409/500).
type ErrorResponse struct {
	Status  bool   `json:"status" example:"false"`
	Message string `json:"message" example:"Case not found"`
	Code    string `json:"code,omitempty" example:"NOT_FOUND"`
}
