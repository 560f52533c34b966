// Package signalert wires the alert engine, the notification channels and an
// upstream analysis feeder into a long-running notification service.
package signalert

import (
	"context"
	"fmt"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/signalert/alert"
	"github.com/raykavin/signalert/core"
	"github.com/raykavin/signalert/notification"
)

type extraChannel struct {
	notifier core.Notifier
	template string
}

// Signalert runs the evaluation loop: each cycle one snapshot is pulled from
// the feeder, evaluated by the engine, and the resulting messages dispatched
// to every enabled channel.
type Signalert struct {
	settings   core.Settings
	feeder     core.AnalysisFeeder
	engine     *alert.Engine
	dispatcher *notification.Dispatcher
	templates  alert.Templates
	storage    core.StateStorage
	log        core.Logger
	interval   time.Duration

	extras []extraChannel
}

// New creates a Signalert service from settings and an analysis feeder
func New(ctx context.Context, settings core.Settings, feeder core.AnalysisFeeder, options ...Option) (*Signalert, error) {
	s := &Signalert{
		settings: settings,
		feeder:   feeder,
	}

	// Apply custom options
	for _, option := range options {
		option(s)
	}

	if err := initializeLogger(s); err != nil {
		return nil, err
	}

	if err := initializeInterval(s); err != nil {
		return nil, err
	}

	dispatcher, err := notification.NewDispatcher(settings, s.log)
	if err != nil {
		return nil, err
	}
	s.dispatcher = dispatcher

	for _, extra := range s.extras {
		s.dispatcher.Register(extra.notifier, extra.template)
	}

	templates, err := alert.ParseTemplates(s.dispatcher.TemplateSources())
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.engine = alert.NewEngine(s.log)
	if err := restoreState(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Run executes evaluation cycles at the configured interval until the
// context is canceled. Feeder failures back off exponentially and never
// commit a partial cycle.
func (s *Signalert) Run(ctx context.Context) error {
	s.log.Infof("starting evaluation loop, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	retry := &backoff.Backoff{
		Min:    time.Second,
		Max:    s.interval,
		Factor: 2,
		Jitter: true,
	}

	for {
		if err := s.EvaluateOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			wait := retry.Duration()
			s.log.WithError(err).Warnf("cycle failed, retrying in %s", wait)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		retry.Reset()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// EvaluateOnce runs a single cycle: fetch, evaluate, dispatch, persist
func (s *Signalert) EvaluateOnce(ctx context.Context) error {
	snapshot, err := s.feeder.Next(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch analysis snapshot: %w", err)
	}

	messages := s.engine.EvaluateCycle(snapshot, s.templates)
	s.dispatcher.Dispatch(ctx, messages, snapshot)

	// Delivery failures never roll back the evaluated state
	if s.storage != nil {
		if err := s.storage.SaveStatuses(ctx, s.engine.Statuses()); err != nil {
			s.log.WithError(err).Error("failed to persist alert statuses")
		}
	}

	return nil
}

// Channels lists every enabled notification channel
func (s *Signalert) Channels() []string {
	return s.dispatcher.Names()
}
