package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/raykavin/signalert/core"
	log "github.com/sirupsen/logrus"
)

// Discord sends alerts to a channel webhook
type Discord struct {
	client   *resty.Client
	webhook  string
	username string
	avatar   string
}

// NewDiscord creates a Discord client from validated settings
func NewDiscord(settings core.DiscordSettings) *Discord {
	return &Discord{
		client:   resty.New().SetTimeout(defaultHTTPTimeout),
		webhook:  settings.Webhook,
		username: settings.Username,
		avatar:   settings.Avatar,
	}
}

// Name implements core.Notifier.
func (d *Discord) Name() string {
	return NameDiscord
}

// Notify implements core.Notifier.
func (d *Discord) Notify(ctx context.Context, text string) error {
	body := map[string]string{
		"content":  text,
		"username": d.username,
	}
	if d.avatar != "" {
		body["avatar_url"] = d.avatar
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(d.webhook)
	if err != nil {
		return fmt.Errorf("discord: send: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("discord: unexpected status %d", resp.StatusCode())
	}

	log.Debug("notification/discord: message delivered")
	return nil
}
