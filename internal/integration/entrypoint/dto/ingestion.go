package dto

import (
	"github.com/wealthflow/backend/internal/application/usecase/ingestion"
)

// ImportTransactionsRequest is the payload for POST /transactions/import.
type ImportTransactionsRequest struct {
	Rows []CreateTransactionRequest `json:"rows" binding:"required"`
}

// RowFailureResponse describes why one imported row was rejected.
type RowFailureResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportTransactionsResponse is the response for POST /transactions/import.
type ImportTransactionsResponse struct {
	Imported int                  `json:"imported"`
	Failed   int                  `json:"failed"`
	Failures []RowFailureResponse `json:"failures,omitempty"`
}

// ToImportTransactionsResponse converts the import output to its API representation.
func ToImportTransactionsResponse(output *ingestion.ImportTransactionsOutput) ImportTransactionsResponse {
	response := ImportTransactionsResponse{
		Imported: output.Imported,
		Failed:   output.Failed,
	}
	for _, f := range output.Failures {
		response.Failures = append(response.Failures, RowFailureResponse{
			Row:    f.Row,
			Reason: f.Reason,
		})
	}
	return response
}
