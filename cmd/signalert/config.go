package main

import (
	"fmt"
	"strings"

	"github.com/raykavin/signalert/core"
	"github.com/spf13/viper"
)

// loadSettings builds the application settings from an optional YAML file
// plus environment variables (e.g. TELEGRAM_TOKEN overrides telegram.token)
func loadSettings(configPath string) (core.Settings, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("interval", "5m")
	v.SetDefault("state.driver", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return core.Settings{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	settings := core.Settings{
		Interval: v.GetString("interval"),
		Feed: core.FeedSettings{
			URL: v.GetString("feed.url"),
		},
		State: core.StateSettings{
			Driver: v.GetString("state.driver"),
			Path:   v.GetString("state.path"),
		},
		Twilio: core.TwilioSettings{
			Key:            v.GetString("twilio.key"),
			Secret:         v.GetString("twilio.secret"),
			SenderNumber:   v.GetString("twilio.sender_number"),
			ReceiverNumber: v.GetString("twilio.receiver_number"),
			Template:       v.GetString("twilio.template"),
		},
		Slack: core.SlackSettings{
			Webhook:  v.GetString("slack.webhook"),
			Template: v.GetString("slack.template"),
		},
		Discord: core.DiscordSettings{
			Webhook:  v.GetString("discord.webhook"),
			Username: v.GetString("discord.username"),
			Avatar:   v.GetString("discord.avatar"),
			Template: v.GetString("discord.template"),
		},
		Gmail: core.GmailSettings{
			Username:          v.GetString("gmail.username"),
			Password:          v.GetString("gmail.password"),
			DestinationEmails: v.GetStringSlice("gmail.destination_emails"),
			Template:          v.GetString("gmail.template"),
		},
		Telegram: core.TelegramSettings{
			Token:    v.GetString("telegram.token"),
			ChatID:   v.GetInt64("telegram.chat_id"),
			Template: v.GetString("telegram.template"),
		},
		Webhook: core.WebhookSettings{
			URL:      v.GetString("webhook.url"),
			Username: v.GetString("webhook.username"),
			Password: v.GetString("webhook.password"),
		},
	}

	return settings, nil
}
