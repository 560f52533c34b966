package alert

import (
	"testing"

	"github.com/StudioSol/set"
	"github.com/raykavin/signalert/core"
	adapter "github.com/raykavin/signalert/logger/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLogger() core.Logger {
	nop := zerolog.Nop()
	return adapter.NewAdapter(&nop)
}

func testTemplates(t *testing.T) Templates {
	t.Helper()
	templates, err := ParseTemplates(map[string]string{
		"slack": "{{.Indicator}} is {{.Status}}: {{.Values.value}}",
	})
	require.NoError(t, err)
	return templates
}

func hotRow(value float64) core.Row {
	return core.Row{"is_hot": true, "is_cold": false, "value": value}
}

func coldRow(value float64) core.Row {
	return core.Row{"is_hot": false, "is_cold": true, "value": value}
}

func neutralRow(value float64) core.Row {
	return core.Row{"is_hot": false, "is_cold": false, "value": value}
}

func rsiSnapshot(frequency core.Frequency, enabled bool, rows ...core.Row) core.AnalysisSnapshot {
	occurrence := &core.Occurrence{
		Config: core.IndicatorConfig{
			Signal:         set.NewLinkedHashSetString("value"),
			AlertFrequency: frequency,
			AlertEnabled:   enabled,
		},
		Result: rows,
	}

	return core.AnalysisSnapshot{
		"ex1": {
			"BTC/USD": &core.MarketAnalysis{
				Indicators: map[string][]*core.Occurrence{
					"rsi": {occurrence},
				},
			},
		},
	}
}

func TestEngine_RendersAlert(t *testing.T) {
	engine := NewEngine(testLogger())

	messages := engine.EvaluateCycle(
		rsiSnapshot(core.FrequencyAlways, true, hotRow(71.234)),
		testTemplates(t),
	)

	require.Equal(t, "rsi is hot: 71.23400000", messages["slack"])
}

func TestEngine_DisabledIndicatorProducesNothing(t *testing.T) {
	engine := NewEngine(testLogger())

	messages := engine.EvaluateCycle(
		rsiSnapshot(core.FrequencyAlways, false, hotRow(71.234)),
		testTemplates(t),
	)

	require.Empty(t, messages["slack"])
	require.Empty(t, engine.Statuses())
}

func TestEngine_OnceSuppressesRepeatedStatus(t *testing.T) {
	engine := NewEngine(testLogger())
	templates := testTemplates(t)

	first := engine.EvaluateCycle(rsiSnapshot(core.FrequencyOnce, true, hotRow(71.0)), templates)
	require.NotEmpty(t, first["slack"])
	require.Equal(t, core.StatusHot, engine.Statuses()["ex1:BTC/USD:rsi:0"])

	second := engine.EvaluateCycle(rsiSnapshot(core.FrequencyOnce, true, hotRow(72.0)), templates)
	require.Empty(t, second["slack"])
}

func TestEngine_OnceFiresOnStatusTransition(t *testing.T) {
	engine := NewEngine(testLogger())
	templates := testTemplates(t)

	first := engine.EvaluateCycle(rsiSnapshot(core.FrequencyOnce, true, hotRow(71.0)), templates)
	require.Equal(t, "rsi is hot: 71.00000000", first["slack"])

	second := engine.EvaluateCycle(rsiSnapshot(core.FrequencyOnce, true, coldRow(29.0)), templates)
	require.Equal(t, "rsi is cold: 29.00000000", second["slack"])
}

func TestEngine_AlwaysFiresEveryCycle(t *testing.T) {
	engine := NewEngine(testLogger())
	templates := testTemplates(t)

	for i := 0; i < 3; i++ {
		messages := engine.EvaluateCycle(rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0)), templates)
		require.Equal(t, "rsi is hot: 71.00000000", messages["slack"])
	}
}

func TestEngine_NeutralSkipsAlertAndState(t *testing.T) {
	engine := NewEngine(testLogger())
	snapshot := rsiSnapshot(core.FrequencyAlways, true, neutralRow(50.0))

	messages := engine.EvaluateCycle(snapshot, testTemplates(t))

	require.Empty(t, messages["slack"])
	require.Empty(t, engine.Statuses())
	require.Equal(t, core.StatusNone, snapshot["ex1"]["BTC/USD"].Indicators["rsi"][0].Status)
}

func TestEngine_EmptyResultSkipped(t *testing.T) {
	engine := NewEngine(testLogger())

	messages := engine.EvaluateCycle(rsiSnapshot(core.FrequencyAlways, true), testTemplates(t))

	require.Empty(t, messages["slack"])
	require.Empty(t, engine.Statuses())
}

func TestEngine_MalformedOccurrenceIsolated(t *testing.T) {
	engine := NewEngine(testLogger())

	snapshot := rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0))
	snapshot["ex1"]["BTC/USD"].Indicators["rsi"] = append(
		[]*core.Occurrence{{
			Config: core.IndicatorConfig{
				Signal:         set.NewLinkedHashSetString("value"),
				AlertFrequency: core.FrequencyAlways,
				AlertEnabled:   true,
			},
			Result: []core.Row{{"value": 1.0}}, // missing is_hot/is_cold
		}},
		snapshot["ex1"]["BTC/USD"].Indicators["rsi"]...,
	)

	messages := engine.EvaluateCycle(snapshot, testTemplates(t))

	// The malformed occurrence is dropped, the healthy one still alerts
	require.Equal(t, "rsi is hot: 71.00000000", messages["slack"])
}

func TestEngine_RenderFailureIsolatedPerOccurrence(t *testing.T) {
	engine := NewEngine(testLogger())

	snapshot := rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0))
	snapshot["ex1"]["BTC/USD"].Indicators["macd"] = []*core.Occurrence{{
		Config: core.IndicatorConfig{
			Signal:         set.NewLinkedHashSetString("histogram"),
			AlertFrequency: core.FrequencyAlways,
			AlertEnabled:   true,
		},
		Result: []core.Row{{"is_hot": true, "is_cold": false, "histogram": 0.5}},
	}}

	// The template references .Values.value, which the macd occurrence
	// does not carry; only its contribution is dropped
	messages := engine.EvaluateCycle(snapshot, testTemplates(t))

	require.Equal(t, "rsi is hot: 71.00000000", messages["slack"])
}

func TestEngine_ConcatenatesAlertsWithoutSeparator(t *testing.T) {
	engine := NewEngine(testLogger())

	snapshot := rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0))
	occurrences := snapshot["ex1"]["BTC/USD"].Indicators["rsi"]
	occurrences = append(occurrences, &core.Occurrence{
		Config: core.IndicatorConfig{
			Signal:         set.NewLinkedHashSetString("value"),
			AlertFrequency: core.FrequencyAlways,
			AlertEnabled:   true,
		},
		Result: []core.Row{coldRow(29.0)},
	})
	snapshot["ex1"]["BTC/USD"].Indicators["rsi"] = occurrences

	messages := engine.EvaluateCycle(snapshot, testTemplates(t))

	require.Equal(t, "rsi is hot: 71.00000000rsi is cold: 29.00000000", messages["slack"])
}

func TestEngine_MultipleChannelsShareAlerts(t *testing.T) {
	engine := NewEngine(testLogger())

	templates, err := ParseTemplates(map[string]string{
		"slack":    "{{.Indicator}}:{{.Status}}",
		"telegram": "[{{.Exchange}}] {{.Market}} {{.Status}}",
	})
	require.NoError(t, err)

	messages := engine.EvaluateCycle(rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0)), templates)

	require.Equal(t, "rsi:hot", messages["slack"])
	require.Equal(t, "[ex1] BTC/USD hot", messages["telegram"])
}

func TestEngine_RestoreSeedsDeduplication(t *testing.T) {
	engine := NewEngine(testLogger())
	engine.Restore(map[string]core.Status{"ex1:BTC/USD:rsi:0": core.StatusHot})

	messages := engine.EvaluateCycle(rsiSnapshot(core.FrequencyOnce, true, hotRow(71.0)), testTemplates(t))

	require.Empty(t, messages["slack"])
}

func TestEngine_LastStatusAvailableToTemplate(t *testing.T) {
	engine := NewEngine(testLogger())

	templates, err := ParseTemplates(map[string]string{
		"slack": "{{.Status}} (was {{.LastStatus}})",
	})
	require.NoError(t, err)

	first := engine.EvaluateCycle(rsiSnapshot(core.FrequencyAlways, true, hotRow(71.0)), templates)
	require.Equal(t, "hot (was )", first["slack"])

	second := engine.EvaluateCycle(rsiSnapshot(core.FrequencyAlways, true, coldRow(29.0)), templates)
	require.Equal(t, "cold (was hot)", second["slack"])
}
