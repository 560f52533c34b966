package signalert

import (
	"time"

	"github.com/raykavin/signalert/core"
)

// Option is a function that configures a Signalert instance
type Option func(*Signalert)

// WithLogger replaces the default zerolog console logger
func WithLogger(log core.Logger) Option {
	return func(s *Signalert) {
		s.log = log
	}
}

// WithInterval overrides the cycle interval from the settings
func WithInterval(interval time.Duration) Option {
	return func(s *Signalert) {
		s.interval = interval
	}
}

// WithStateStorage persists last-fired statuses across restarts
func WithStateStorage(storage core.StateStorage) Option {
	return func(s *Signalert) {
		s.storage = storage
	}
}

// WithNotifier registers an additional channel beyond the built-in ones.
// An empty template selects the default message template.
func WithNotifier(notifier core.Notifier, template string) Option {
	return func(s *Signalert) {
		s.extras = append(s.extras, extraChannel{notifier: notifier, template: template})
	}
}
