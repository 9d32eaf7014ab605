package handler

import "umlage/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// ProcessResponse is the body of a successful batch run.
type ProcessResponse struct {
	BatchID  string              `json:"batch_id" example:"3f2c1a9e-8d4b-4c0e-9a51-0c7f2b6e1d44"`
	Invoices []domain.FileResult `json:"invoices"`
}

// ErrorResponseBody represents an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
