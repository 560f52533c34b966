package core

import (
	"context"
)

// Notifier delivers a rendered alert message through one notification channel.
type Notifier interface {
	// Name returns the channel identifier (e.g. "slack", "telegram")
	Name() string
	// Notify sends the given text through the channel
	Notify(ctx context.Context, text string) error
}

// SnapshotNotifier receives the flattened analysis snapshot instead of
// templated text. The webhook channel implements this.
type SnapshotNotifier interface {
	// Name returns the channel identifier
	Name() string
	// NotifySnapshot sends the flattened snapshot through the channel
	NotifySnapshot(ctx context.Context, snapshot FlatSnapshot) error
}

// AnalysisFeeder produces one analysis snapshot per evaluation cycle.
// The upstream analysis pipeline implements this.
type AnalysisFeeder interface {
	Next(ctx context.Context) (AnalysisSnapshot, error)
}

// StateStorage persists the last-fired status per occurrence so a restarted
// service does not re-fire alerts for unchanged conditions.
type StateStorage interface {
	// SaveStatuses stores the given statuses keyed by OccurrenceKey
	SaveStatuses(ctx context.Context, statuses map[string]Status) error

	// LoadStatuses retrieves all stored statuses keyed by OccurrenceKey
	LoadStatuses(ctx context.Context) (map[string]Status, error)
}
