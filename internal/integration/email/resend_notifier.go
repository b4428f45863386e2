// Package email delivers notifications to users via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/wealthflow/backend/internal/application/adapter"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
	"github.com/wealthflow/backend/internal/integration/email/templates"
)

// ResendNotifier implements the adapter.Notifier interface using Resend.
type ResendNotifier struct {
	client    *resend.Client
	renderer  *templates.Renderer
	fromName  string
	fromEmail string
}

// NewResendNotifier creates a new Resend-backed notifier.
func NewResendNotifier(apiKey, fromName, fromEmail string) (*ResendNotifier, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}

	return &ResendNotifier{
		client:    resend.NewClient(apiKey),
		renderer:  renderer,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// Notify renders the notification's template and sends it by email.
func (n *ResendNotifier) Notify(ctx context.Context, notification adapter.Notification) error {
	data := map[string]interface{}{
		"RecipientName": notification.RecipientName,
	}
	for key, value := range notification.Payload {
		data[key] = value
	}

	html, text, err := n.renderer.Render(string(notification.Kind), data)
	if err != nil {
		return domainerror.NewNotificationError(
			domainerror.ErrCodeInvalidNotificationKind,
			"no template for notification kind "+string(notification.Kind),
			err,
		)
	}

	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{notification.RecipientEmail},
		Subject: notification.Subject,
		Html:    html,
		Text:    text,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		if isPermanentError(err) {
			return domainerror.NewNotificationError(
				domainerror.ErrCodePermanentDeliveryFailure,
				"permanent delivery failure",
				err,
			)
		}
		return domainerror.NewNotificationError(
			domainerror.ErrCodeTemporaryDeliveryFailure,
			"temporary delivery failure",
			err,
		)
	}

	return nil
}

// isPermanentError checks if the error is a permanent error that should not be retried.
// Permanent errors include: 401 (Unauthorized), 403 (Forbidden), 422 (Validation Error)
// Temporary errors include: 429 (Rate Limit), 5xx (Server Errors)
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockNotifier is a mock implementation for testing.
type MockNotifier struct {
	Sent       []adapter.Notification
	ShouldFail bool
	FailError  error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		Sent: make([]adapter.Notification, 0),
	}
}

// Notify implements the adapter.Notifier interface for testing.
func (m *MockNotifier) Notify(ctx context.Context, notification adapter.Notification) error {
	if m.ShouldFail {
		err := m.FailError
		if err == nil {
			err = domainerror.ErrNotificationFailed
		}
		return domainerror.NewNotificationError(
			domainerror.ErrCodeTemporaryDeliveryFailure,
			"mock delivery failure",
			err,
		)
	}

	m.Sent = append(m.Sent, notification)
	return nil
}

// Reset clears all sent notifications and failure configuration.
func (m *MockNotifier) Reset() {
	m.Sent = make([]adapter.Notification, 0)
	m.ShouldFail = false
	m.FailError = nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.Notifier = (*ResendNotifier)(nil)
	_ adapter.Notifier = (*MockNotifier)(nil)
)
