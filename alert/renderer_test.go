package alert

import (
	"testing"

	"github.com/StudioSol/set"
	"github.com/raykavin/signalert/core"
	"github.com/stretchr/testify/require"
)

func TestSignalValues_FloatFormatting(t *testing.T) {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString("value")},
		Result: []core.Row{{"is_hot": true, "is_cold": false, "value": 0.1}},
	}

	values, err := SignalValues(occurrence)
	require.NoError(t, err)
	require.Equal(t, "0.10000000", values["value"])
}

func TestSignalValues_NonFloatPassthrough(t *testing.T) {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString("trend", "count")},
		Result: []core.Row{{"trend": "up", "count": 3}},
	}

	values, err := SignalValues(occurrence)
	require.NoError(t, err)
	require.Equal(t, "up", values["trend"])
	require.Equal(t, 3, values["count"])
}

func TestSignalValues_UsesLastRowOnly(t *testing.T) {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString("value")},
		Result: []core.Row{
			{"value": 1.0},
			{"value": 2.0},
		},
	}

	values, err := SignalValues(occurrence)
	require.NoError(t, err)
	require.Equal(t, "2.00000000", values["value"])
}

func TestSignalValues_MissingSignalColumn(t *testing.T) {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString("value")},
		Result: []core.Row{{"is_hot": true}},
	}

	_, err := SignalValues(occurrence)
	require.ErrorIs(t, err, core.ErrMalformedAnalysis)
}

func TestSignalValues_NoRows(t *testing.T) {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString("value")},
	}

	_, err := SignalValues(occurrence)
	require.ErrorIs(t, err, core.ErrMalformedAnalysis)
}

func TestParseTemplate_Empty(t *testing.T) {
	_, err := ParseTemplate("slack", "   ")
	require.ErrorIs(t, err, core.ErrEmptyTemplate)
}

func TestParseTemplate_Invalid(t *testing.T) {
	_, err := ParseTemplate("slack", "{{.Status")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	tmpl, err := ParseTemplate("test", "{{.Indicator}} is {{.Status}}: {{.Values.value}}")
	require.NoError(t, err)

	text, err := Render(tmpl, Context{
		Values:    map[string]any{"value": "71.23400000"},
		Indicator: "rsi",
		Status:    core.StatusHot,
	})
	require.NoError(t, err)
	require.Equal(t, "rsi is hot: 71.23400000", text)
}

func TestRender_MissingValue(t *testing.T) {
	tmpl, err := ParseTemplate("test", "{{.Values.missing}}")
	require.NoError(t, err)

	_, err = Render(tmpl, Context{Values: map[string]any{}})
	require.Error(t, err)
}

func TestRender_LastStatusSentinelIsEmpty(t *testing.T) {
	tmpl, err := ParseTemplate("test", "was [{{.LastStatus}}]")
	require.NoError(t, err)

	text, err := Render(tmpl, Context{LastStatus: core.StatusNone})
	require.NoError(t, err)
	require.Equal(t, "was []", text)
}
