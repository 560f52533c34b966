package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/raykavin/signalert/core"
	log "github.com/sirupsen/logrus"
)

// Slack sends alerts to an incoming webhook
type Slack struct {
	client  *resty.Client
	webhook string
}

// NewSlack creates a Slack client from validated settings
func NewSlack(settings core.SlackSettings) *Slack {
	return &Slack{
		client:  resty.New().SetTimeout(defaultHTTPTimeout),
		webhook: settings.Webhook,
	}
}

// Name implements core.Notifier.
func (s *Slack) Name() string {
	return NameSlack
}

// Notify implements core.Notifier.
func (s *Slack) Notify(ctx context.Context, text string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(s.webhook)
	if err != nil {
		return fmt.Errorf("slack: send: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("slack: unexpected status %d", resp.StatusCode())
	}

	log.Debug("notification/slack: message delivered")
	return nil
}
