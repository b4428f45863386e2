// Package templates provides notification template rendering functionality.
package templates

import (
	"strings"
	"testing"
)

func TestRenderer(t *testing.T) {
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	t.Run("budget alert renders both formats", func(t *testing.T) {
		data := map[string]interface{}{
			"RecipientName":  "Jordan",
			"accountName":    "Checking",
			"percentageUsed": "85.5",
			"budgetAmount":   "1000",
			"totalExpenses":  "855",
		}

		html, text, err := renderer.Render("budget-alert", data)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		for _, want := range []string{"Jordan", "Checking", "85.5"} {
			if !strings.Contains(html, want) {
				t.Errorf("HTML output missing %q", want)
			}
			if !strings.Contains(text, want) {
				t.Errorf("text output missing %q", want)
			}
		}
	})

	t.Run("monthly report renders insights", func(t *testing.T) {
		data := map[string]interface{}{
			"RecipientName": "Jordan",
			"month":         "March 2025",
			"totalIncome":   "5000",
			"totalExpense":  "3200",
			"net":           "1800",
			"insights":      []string{"Spending was steady.", "Savings rate improved."},
		}

		html, _, err := renderer.Render("monthly-report", data)
		if err != nil {
			t.Fatalf("render failed: %v", err)
		}
		if !strings.Contains(html, "March 2025") {
			t.Error("HTML output missing the report month")
		}
		if !strings.Contains(html, "Savings rate improved.") {
			t.Error("HTML output missing an insight")
		}
	})

	t.Run("unknown template returns an error", func(t *testing.T) {
		if _, _, err := renderer.Render("password-reset", nil); err == nil {
			t.Error("expected an error for an unknown template")
		}
	})
}
