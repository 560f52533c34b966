package notification

import (
	"context"
	"strings"
	"time"

	"github.com/raykavin/signalert/core"
	"github.com/samber/lo"
)

// Channel name identifiers, used as template keys and in logs
const (
	NameTwilio   = "twilio"
	NameSlack    = "slack"
	NameDiscord  = "discord"
	NameGmail    = "gmail"
	NameTelegram = "telegram"
	NameWebhook  = "webhook"
)

const defaultHTTPTimeout = 10 * time.Second

// Dispatcher owns the enabled channel clients and fans one cycle's engine
// output across them. A channel whose required settings are incomplete is
// simply never constructed; a failing channel is logged and never blocks
// the others.
type Dispatcher struct {
	log       core.Logger
	channels  []core.Notifier
	snapshots []core.SnapshotNotifier
	templates map[string]string
}

// NewDispatcher builds the dispatcher from settings, constructing a client
// for every channel whose required fields are all present
func NewDispatcher(settings core.Settings, log core.Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		log:       log,
		templates: make(map[string]string),
	}

	if settings.Twilio.Enabled() {
		d.Register(NewTwilio(settings.Twilio), settings.Twilio.Template)
	}

	if settings.Slack.Enabled() {
		d.Register(NewSlack(settings.Slack), settings.Slack.Template)
	}

	if settings.Discord.Enabled() {
		d.Register(NewDiscord(settings.Discord), settings.Discord.Template)
	}

	if settings.Gmail.Enabled() {
		d.Register(NewMail(settings.Gmail), settings.Gmail.Template)
	}

	if settings.Telegram.Enabled() {
		telegram, err := NewTelegram(settings.Telegram)
		if err != nil {
			return nil, err
		}
		d.Register(telegram, settings.Telegram.Template)
	}

	if settings.Webhook.Enabled() {
		d.snapshots = append(d.snapshots, NewWebhook(settings.Webhook))
	}

	log.Infof("enabled notifiers: %v", d.Names())
	return d, nil
}

// Register adds a text channel with its template source. An empty template
// selects the engine's default.
func (d *Dispatcher) Register(notifier core.Notifier, template string) {
	d.channels = append(d.channels, notifier)
	d.templates[notifier.Name()] = template
}

// Names lists every enabled channel
func (d *Dispatcher) Names() []string {
	names := lo.Map(d.channels, func(n core.Notifier, _ int) string {
		return n.Name()
	})
	for _, n := range d.snapshots {
		names = append(names, n.Name())
	}
	return names
}

// TemplateSources returns the configured template string per text channel,
// ready for alert.ParseTemplates
func (d *Dispatcher) TemplateSources() map[string]string {
	sources := make(map[string]string, len(d.templates))
	for channel, template := range d.templates {
		sources[channel] = template
	}
	return sources
}

// Dispatch delivers the per-channel messages produced by one cycle. Text
// channels with empty accumulated text are skipped; the webhook channels
// receive the flattened snapshot regardless of the text output. Delivery
// failures are logged and isolated per channel.
func (d *Dispatcher) Dispatch(ctx context.Context, messages map[string]string, snapshot core.AnalysisSnapshot) {
	for _, channel := range d.channels {
		text := messages[channel.Name()]
		if strings.TrimSpace(text) == "" {
			continue
		}

		if err := channel.Notify(ctx, text); err != nil {
			d.log.WithError(err).
				WithField("channel", channel.Name()).
				Error("failed to deliver notification")
		}
	}

	if len(d.snapshots) == 0 {
		return
	}

	flat := snapshot.Flatten()
	for _, channel := range d.snapshots {
		if err := channel.NotifySnapshot(ctx, flat); err != nil {
			d.log.WithError(err).
				WithField("channel", channel.Name()).
				Error("failed to deliver snapshot")
		}
	}
}
