package notification

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/raykavin/signalert/core"
	log "github.com/sirupsen/logrus"
)

const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// Twilio sends alerts as SMS through the Twilio Messages API
type Twilio struct {
	client   *resty.Client
	key      string
	sender   string
	receiver string
}

// NewTwilio creates a Twilio client from validated settings
func NewTwilio(settings core.TwilioSettings) *Twilio {
	client := resty.New().
		SetTimeout(defaultHTTPTimeout).
		SetBasicAuth(settings.Key, settings.Secret)

	return &Twilio{
		client:   client,
		key:      settings.Key,
		sender:   settings.SenderNumber,
		receiver: settings.ReceiverNumber,
	}
}

// Name implements core.Notifier.
func (t *Twilio) Name() string {
	return NameTwilio
}

// Notify implements core.Notifier.
func (t *Twilio) Notify(ctx context.Context, text string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": t.sender,
			"To":   t.receiver,
			"Body": text,
		}).
		Post(fmt.Sprintf(twilioMessagesURL, t.key))
	if err != nil {
		return fmt.Errorf("twilio: send: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode())
	}

	log.Debug("notification/twilio: message delivered")
	return nil
}
