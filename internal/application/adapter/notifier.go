// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// NotificationKind identifies the template/category of a notification.
type NotificationKind string

const (
	NotificationKindBudgetAlert   NotificationKind = "budget-alert"
	NotificationKindMonthlyReport NotificationKind = "monthly-report"
)

// Notification represents an outbound notification payload. Delivery and
// templating live behind this interface; the ledger core only assembles the
// payload.
type Notification struct {
	RecipientEmail string
	RecipientName  string
	Kind           NotificationKind
	Subject        string
	Payload        map[string]interface{}
}

// Notifier defines the interface for delivering notifications to users.
type Notifier interface {
	// Notify delivers a single notification.
	Notify(ctx context.Context, notification Notification) error
}
