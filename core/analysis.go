package core

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/StudioSol/set"
	"github.com/samber/lo"
)

// Status is the alert state derived from an indicator's latest row
type Status string

const (
	// StatusNone is the sentinel for "no alert has ever fired for this occurrence".
	// It is distinct from every real status, so a first alert-worthy
	// observation is never suppressed.
	StatusNone    Status = ""
	StatusHot     Status = "hot"
	StatusCold    Status = "cold"
	StatusNeutral Status = "neutral"
)

// AlertWorthy reports whether the status should produce an alert
func (s Status) AlertWorthy() bool {
	return s == StatusHot || s == StatusCold
}

// Frequency controls how often an unchanged alert-worthy condition re-fires
type Frequency string

const (
	// FrequencyOnce suppresses a repeat of the same alert-worthy status
	FrequencyOnce Frequency = "once"
	// FrequencyAlways fires on every alert-worthy cycle
	FrequencyAlways Frequency = "always"
)

// Well-known row columns every indicator result must carry
const (
	ColumnIsHot  = "is_hot"
	ColumnIsCold = "is_cold"
)

// Row is a single time-ordered indicator result record, mapping column
// names to their computed values
type Row map[string]any

// Flag reads a boolean column from the row. A missing or non-boolean value
// means the upstream analysis produced malformed data.
func (r Row) Flag(column string) (bool, error) {
	raw, ok := r[column]
	if !ok {
		return false, fmt.Errorf("%w: missing column %q", ErrMalformedAnalysis, column)
	}

	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: column %q is not a boolean", ErrMalformedAnalysis, column)
	}

	return value, nil
}

// IndicatorConfig holds the per-indicator alerting policy
type IndicatorConfig struct {
	// Signal lists the result columns included in rendered messages,
	// in their configured order
	Signal *set.LinkedHashSetString

	// AlertFrequency is the repeat-suppression policy
	AlertFrequency Frequency

	// AlertEnabled disables alerting for this indicator entirely when false
	AlertEnabled bool
}

type indicatorConfigJSON struct {
	Signal         []string  `json:"signal"`
	AlertFrequency Frequency `json:"alert_frequency"`
	AlertEnabled   bool      `json:"alert_enabled"`
}

// MarshalJSON encodes the signal set as an ordered array
func (c IndicatorConfig) MarshalJSON() ([]byte, error) {
	var signals []string
	if c.Signal != nil {
		for signal := range c.Signal.Iter() {
			signals = append(signals, signal)
		}
	}

	return json.Marshal(indicatorConfigJSON{
		Signal:         signals,
		AlertFrequency: c.AlertFrequency,
		AlertEnabled:   c.AlertEnabled,
	})
}

// UnmarshalJSON decodes the signal array preserving its order
func (c *IndicatorConfig) UnmarshalJSON(data []byte) error {
	var raw indicatorConfigJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Signal = set.NewLinkedHashSetString(raw.Signal...)
	c.AlertFrequency = raw.AlertFrequency
	c.AlertEnabled = raw.AlertEnabled
	return nil
}

// Occurrence is one indicator instance at a fixed index within a market.
// Its position inside the indicator's occurrence slice is its identity
// across cycles.
type Occurrence struct {
	// Config is the alerting policy for this occurrence
	Config IndicatorConfig `json:"config"`

	// Result holds the computed rows, time-ordered; only the last row
	// matters for alerting
	Result []Row `json:"result"`

	// Status is the status recorded the last time an alert fired,
	// StatusNone until then. Neutral cycles never overwrite it.
	Status Status `json:"status,omitempty"`
}

// LastRow returns the most recent result row, if any
func (o *Occurrence) LastRow() (Row, bool) {
	if len(o.Result) == 0 {
		return nil, false
	}
	return o.Result[len(o.Result)-1], true
}

// MarketAnalysis groups all indicator occurrences computed for one market
type MarketAnalysis struct {
	Indicators map[string][]*Occurrence `json:"indicators"`
}

// AnalysisSnapshot is the full analysis tree for one evaluation cycle,
// keyed by exchange name, then market name
type AnalysisSnapshot map[string]map[string]*MarketAnalysis

// FlatSnapshot is the snapshot reduced for structured delivery: each
// occurrence collapsed to its most recent row. An occurrence with no rows
// becomes a nil entry so indexes stay aligned with the source snapshot.
type FlatSnapshot map[string]map[string]map[string][]Row

// WalkFunc visits one occurrence during a snapshot traversal
type WalkFunc func(exchange, market, indicator string, index int, occurrence *Occurrence) error

// Walk traverses the snapshot in deterministic order: exchanges, markets and
// indicators sorted by name, occurrences in slice order. Returning an error
// from fn stops the traversal.
func (s AnalysisSnapshot) Walk(fn WalkFunc) error {
	for _, exchange := range sortedKeys(s) {
		markets := s[exchange]
		for _, market := range sortedKeys(markets) {
			analysis := markets[market]
			if analysis == nil {
				continue
			}
			for _, indicator := range sortedKeys(analysis.Indicators) {
				for index, occurrence := range analysis.Indicators[indicator] {
					if err := fn(exchange, market, indicator, index, occurrence); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// Flatten reduces every occurrence to its last result row
func (s AnalysisSnapshot) Flatten() FlatSnapshot {
	flat := make(FlatSnapshot, len(s))
	_ = s.Walk(func(exchange, market, indicator string, index int, occurrence *Occurrence) error {
		if _, ok := flat[exchange]; !ok {
			flat[exchange] = make(map[string]map[string][]Row)
		}
		if _, ok := flat[exchange][market]; !ok {
			flat[exchange][market] = make(map[string][]Row)
		}

		row, _ := occurrence.LastRow()
		flat[exchange][market][indicator] = append(flat[exchange][market][indicator], row)
		return nil
	})
	return flat
}

// OccurrenceKey builds the stable identity of one occurrence, used as the
// deduplication and persistence key
func OccurrenceKey(exchange, market, indicator string, index int) string {
	return fmt.Sprintf("%s:%s:%s:%d", exchange, market, indicator, index)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
