package alert

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/raykavin/signalert/core"
)

// Context carries everything a message template can reference
type Context struct {
	Values          map[string]any   // Formatted signal values, keyed by column name
	Exchange        string           // Exchange name
	Market          string           // Market symbol (e.g. BTC/USD)
	Indicator       string           // Indicator name
	IndicatorNumber int              // Occurrence index within the indicator
	Analysis        *core.Occurrence // The full occurrence record
	Status          core.Status      // Current classified status
	LastStatus      core.Status      // Status at the previous fired alert, or StatusNone
}

// ParseTemplate compiles a channel's message template. A reference to a
// missing value is a rendering error rather than a silent blank.
func ParseTemplate(channel, text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("channel %s: %w", channel, core.ErrEmptyTemplate)
	}

	tmpl, err := template.New(channel).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("channel %s: invalid template: %w", channel, err)
	}

	return tmpl, nil
}

// Render executes the template against the given context
func Render(tmpl *template.Template, ctx Context) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, ctx); err != nil {
		return "", fmt.Errorf("template %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// SignalValues extracts the configured signal columns from the occurrence's
// last row. Float values are formatted as fixed-point strings with 8 decimal
// places; everything else passes through unchanged.
func SignalValues(occurrence *core.Occurrence) (map[string]any, error) {
	row, ok := occurrence.LastRow()
	if !ok {
		return nil, fmt.Errorf("%w: no result rows", core.ErrMalformedAnalysis)
	}

	values := make(map[string]any)
	if occurrence.Config.Signal == nil {
		return values, nil
	}

	for signal := range occurrence.Config.Signal.Iter() {
		raw, ok := row[signal]
		if !ok {
			return nil, fmt.Errorf("%w: missing signal column %q", core.ErrMalformedAnalysis, signal)
		}

		switch v := raw.(type) {
		case float64:
			values[signal] = strconv.FormatFloat(v, 'f', 8, 64)
		case float32:
			values[signal] = strconv.FormatFloat(float64(v), 'f', 8, 32)
		default:
			values[signal] = raw
		}
	}

	return values, nil
}
