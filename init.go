package signalert

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/signalert/logger/zerolog"
	str2duration "github.com/xhit/go-str2duration/v2"
)

const defaultInterval = 5 * time.Minute

// initializeLogger falls back to the zerolog console adapter when no logger
// option was provided
func initializeLogger(s *Signalert) error {
	if s.log == nil {
		s.log = zerolog.NewDefault()
	}
	return nil
}

// initializeInterval resolves the cycle interval from options or settings
func initializeInterval(s *Signalert) error {
	if s.interval > 0 {
		return nil
	}

	if s.settings.Interval == "" {
		s.interval = defaultInterval
		return nil
	}

	interval, err := str2duration.ParseDuration(s.settings.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", s.settings.Interval, err)
	}

	s.interval = interval
	return nil
}

// restoreState seeds the engine's dedup state from storage, if configured
func restoreState(ctx context.Context, s *Signalert) error {
	if s.storage == nil {
		return nil
	}

	statuses, err := s.storage.LoadStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore alert statuses: %w", err)
	}

	if len(statuses) > 0 {
		s.engine.Restore(statuses)
		s.log.Infof("restored %d alert statuses", len(statuses))
	}

	return nil
}
