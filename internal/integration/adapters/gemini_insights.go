// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wealthflow/backend/internal/application/adapter"
)

// GeminiInsightsService implements the InsightsService using Google Gemini.
type GeminiInsightsService struct {
	apiKey    string
	modelName string
}

// NewGeminiInsightsService creates a new Gemini insights service instance.
func NewGeminiInsightsService(apiKey string) *GeminiInsightsService {
	return &GeminiInsightsService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiInsightsService) IsAvailable() bool {
	return s.apiKey != ""
}

// GenerateMonthlyInsights produces a few short insight sentences for the stats.
func (s *GeminiInsightsService) GenerateMonthlyInsights(ctx context.Context, stats adapter.MonthlyStats) ([]string, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(stats)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	insights, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return insights, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiInsightsService) buildPrompt(stats adapter.MonthlyStats) string {
	var sb strings.Builder

	sb.WriteString(`You are a friendly financial assistant. Analyze this monthly financial data and provide 3 concise, actionable insights. Be encouraging but honest.

MONTHLY DATA:
`)
	sb.WriteString(fmt.Sprintf("- Month: %s\n", stats.MonthName))
	sb.WriteString(fmt.Sprintf("- Total income: %s\n", stats.TotalIncome))
	sb.WriteString(fmt.Sprintf("- Total expenses: %s\n", stats.TotalExpense))
	sb.WriteString(fmt.Sprintf("- Net: %s\n", stats.Net))
	sb.WriteString(fmt.Sprintf("- Number of transactions: %d\n", stats.TransactionCount))

	sb.WriteString(`
Respond with a JSON array of exactly 3 strings, each a single short insight sentence.

RESPONSE FORMAT: Return only the JSON array, no additional text.
`)

	return sb.String()
}

// parseResponse parses the Gemini response into insight strings.
func (s *GeminiInsightsService) parseResponse(resp *genai.GenerateContentResponse) ([]string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var insights []string
	if err := json.Unmarshal([]byte(textContent), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	return insights, nil
}

// Ensure implementation satisfies the interface.
var _ adapter.InsightsService = (*GeminiInsightsService)(nil)
