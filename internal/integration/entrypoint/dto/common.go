// Package dto defines request and response payloads for the API endpoints.
package dto

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WarningResponse describes a partial-consistency warning attached to an
// otherwise successful response.
type WarningResponse struct {
	TransactionID string `json:"transactionId,omitempty"`
	AccountID     string `json:"accountId"`
	Reason        string `json:"reason"`
}
