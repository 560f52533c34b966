package alert

import (
	"strings"
	"sync"
	"text/template"

	"github.com/raykavin/signalert/core"
)

// DefaultTemplate is used for channels without a configured template
const DefaultTemplate = "{{.Market}} {{.Indicator}} is {{.Status}}!\n"

// Templates maps channel names to their compiled message templates
type Templates map[string]*template.Template

// ParseTemplates compiles one template per channel, falling back to
// DefaultTemplate where a channel has none configured
func ParseTemplates(sources map[string]string) (Templates, error) {
	templates := make(Templates, len(sources))
	for channel, source := range sources {
		if strings.TrimSpace(source) == "" {
			source = DefaultTemplate
		}

		tmpl, err := ParseTemplate(channel, source)
		if err != nil {
			return nil, err
		}
		templates[channel] = tmpl
	}
	return templates, nil
}

// Engine evaluates one analysis snapshot per cycle against the last-fired
// state and produces the accumulated alert text per channel. It performs no
// I/O; delivery belongs to the dispatch layer.
type Engine struct {
	mu    sync.Mutex
	state *State
	log   core.Logger
}

// NewEngine creates an engine with empty dedup state
func NewEngine(log core.Logger) *Engine {
	return &Engine{
		state: NewState(),
		log:   log,
	}
}

type firedAlert struct {
	key string
	ctx Context
}

// EvaluateCycle classifies every occurrence in the snapshot, applies the
// per-indicator alert policy against the last fired status, renders the
// fired alerts once per channel, and merges the snapshot into the state.
//
// The returned map holds the concatenated alert text per channel; a channel
// with no alerts maps to the empty string and must not be dispatched.
// Cycles are serialized: the state is read and merged under one lock, and
// the merge happens exactly once, after all occurrences were evaluated.
func (e *Engine) EvaluateCycle(snapshot core.AnalysisSnapshot, templates Templates) map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	fired := e.evaluate(snapshot)

	messages := make(map[string]string, len(templates))
	for channel, tmpl := range templates {
		messages[channel] = e.renderChannel(channel, tmpl, fired)
	}

	e.state.Merge(snapshot)
	return messages
}

// Statuses exports the fired statuses for persistence
func (e *Engine) Statuses() map[string]core.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Statuses()
}

// Restore seeds the dedup state from persisted statuses. Meant to be called
// once at startup, before the first cycle.
func (e *Engine) Restore(statuses map[string]core.Status) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Restore(statuses)
}

// evaluate walks the snapshot and collects every occurrence whose current
// status should fire, marking the new status on the snapshot so the merge
// records it. A malformed occurrence is logged and skipped; it never aborts
// the rest of the cycle.
func (e *Engine) evaluate(snapshot core.AnalysisSnapshot) []firedAlert {
	var fired []firedAlert

	_ = snapshot.Walk(func(exchange, market, indicator string, index int, occurrence *core.Occurrence) error {
		row, ok := occurrence.LastRow()
		if !ok {
			return nil
		}

		status, err := Classify(row)
		if err != nil {
			e.occurrenceLog(exchange, market, indicator, index).
				WithError(err).
				Error("skipping occurrence with malformed result")
			return nil
		}

		if !status.AlertWorthy() {
			return nil
		}

		lastStatus := e.state.LastStatus(exchange, market, indicator, index)
		if !ShouldAlert(status, lastStatus, occurrence.Config) {
			return nil
		}

		values, err := SignalValues(occurrence)
		if err != nil {
			e.occurrenceLog(exchange, market, indicator, index).
				WithError(err).
				Error("skipping occurrence with malformed signal values")
			return nil
		}

		occurrence.Status = status
		fired = append(fired, firedAlert{
			key: core.OccurrenceKey(exchange, market, indicator, index),
			ctx: Context{
				Values:          values,
				Exchange:        exchange,
				Market:          market,
				Indicator:       indicator,
				IndicatorNumber: index,
				Analysis:        occurrence,
				Status:          status,
				LastStatus:      lastStatus,
			},
		})
		return nil
	})

	return fired
}

// renderChannel concatenates the rendered text of every fired alert.
// A failing render drops only that alert's contribution to this channel.
func (e *Engine) renderChannel(channel string, tmpl *template.Template, fired []firedAlert) string {
	var sb strings.Builder
	for _, alert := range fired {
		text, err := Render(tmpl, alert.ctx)
		if err != nil {
			e.log.WithError(err).
				WithFields(map[string]any{"channel": channel, "occurrence": alert.key}).
				Error("failed to render alert message")
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func (e *Engine) occurrenceLog(exchange, market, indicator string, index int) core.Logger {
	return e.log.WithFields(map[string]any{
		"exchange":  exchange,
		"market":    market,
		"indicator": indicator,
		"index":     index,
	})
}
