package core

// Settings represents the main configuration for the application
type Settings struct {
	Interval string           // Evaluation cycle interval (e.g. "5m", "1h")
	Feed     FeedSettings     // Upstream analysis feed settings
	State    StateSettings    // Alert status persistence settings
	Twilio   TwilioSettings   // Twilio SMS notification settings
	Slack    SlackSettings    // Slack notification settings
	Discord  DiscordSettings  // Discord notification settings
	Gmail    GmailSettings    // Gmail notification settings
	Telegram TelegramSettings // Telegram notification settings
	Webhook  WebhookSettings  // Generic webhook settings
}

// FeedSettings configures where analysis snapshots are pulled from
type FeedSettings struct {
	URL string // Endpoint serving one AnalysisSnapshot as JSON per request
}

// StateSettings configures the optional persistence of last-fired statuses
type StateSettings struct {
	Driver string // "buntdb" or "sqlite"; empty keeps state in memory only
	Path   string // Database file path
}

// TwilioSettings holds configuration for Twilio SMS integration
type TwilioSettings struct {
	Key            string // Twilio account SID
	Secret         string // Twilio auth token
	SenderNumber   string // Sending phone number
	ReceiverNumber string // Receiving phone number
	Template       string // Message template, optional
}

// Enabled reports whether all required Twilio fields are present
func (s TwilioSettings) Enabled() bool {
	return s.Key != "" && s.Secret != "" && s.SenderNumber != "" && s.ReceiverNumber != ""
}

// SlackSettings holds configuration for Slack integration
type SlackSettings struct {
	Webhook  string // Incoming webhook URL
	Template string // Message template, optional
}

// Enabled reports whether all required Slack fields are present
func (s SlackSettings) Enabled() bool {
	return s.Webhook != ""
}

// DiscordSettings holds configuration for Discord integration
type DiscordSettings struct {
	Webhook  string // Channel webhook URL
	Username string // Display name for the webhook bot
	Avatar   string // Avatar URL, optional
	Template string // Message template, optional
}

// Enabled reports whether all required Discord fields are present
func (s DiscordSettings) Enabled() bool {
	return s.Webhook != "" && s.Username != ""
}

// GmailSettings holds configuration for Gmail SMTP integration
type GmailSettings struct {
	Username          string   // Gmail account username
	Password          string   // Gmail account (app) password
	DestinationEmails []string // Recipient addresses
	Template          string   // Message template, optional
}

// Enabled reports whether all required Gmail fields are present
func (s GmailSettings) Enabled() bool {
	return s.Username != "" && s.Password != "" && len(s.DestinationEmails) > 0
}

// TelegramSettings holds configuration for Telegram integration
type TelegramSettings struct {
	Token    string // Telegram bot token
	ChatID   int64  // Target chat or channel ID
	Template string // Message template, optional
}

// Enabled reports whether all required Telegram fields are present
func (s TelegramSettings) Enabled() bool {
	return s.Token != "" && s.ChatID != 0
}

// WebhookSettings holds configuration for the generic webhook channel
type WebhookSettings struct {
	URL      string // Endpoint receiving the flattened snapshot
	Username string // Basic auth username, optional
	Password string // Basic auth password, optional
}

// Enabled reports whether all required webhook fields are present
func (s WebhookSettings) Enabled() bool {
	return s.URL != ""
}
