package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/raykavin/signalert/core"
	log "github.com/sirupsen/logrus"
)

// Webhook posts the flattened analysis snapshot to a configured endpoint.
// Unlike the text channels it receives structured data, so it implements
// core.SnapshotNotifier instead of core.Notifier.
type Webhook struct {
	client *resty.Client
	url    string
}

// NewWebhook creates a webhook client from validated settings
func NewWebhook(settings core.WebhookSettings) *Webhook {
	client := resty.New().SetTimeout(defaultHTTPTimeout)
	if settings.Username != "" {
		client.SetBasicAuth(settings.Username, settings.Password)
	}

	return &Webhook{
		client: client,
		url:    settings.URL,
	}
}

// Name implements core.SnapshotNotifier.
func (w *Webhook) Name() string {
	return NameWebhook
}

// NotifySnapshot implements core.SnapshotNotifier.
func (w *Webhook) NotifySnapshot(ctx context.Context, snapshot core.FlatSnapshot) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(snapshot).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: send: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode())
	}

	log.Debug("notification/webhook: snapshot delivered")
	return nil
}
