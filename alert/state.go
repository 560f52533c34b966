package alert

import (
	"strconv"
	"strings"

	"github.com/StudioSol/set"
	"github.com/raykavin/signalert/core"
)

// State retains, per occurrence, the status recorded the last time an alert
// fired. It is snapshot-shaped so merging a cycle's snapshot is a single
// operation, and it is owned by the Engine, which serializes access.
type State struct {
	data core.AnalysisSnapshot
}

// NewState creates an empty state
func NewState() *State {
	return &State{data: make(core.AnalysisSnapshot)}
}

// LastStatus returns the status stored for the given occurrence, or
// core.StatusNone if the occurrence has never fired an alert
func (s *State) LastStatus(exchange, market, indicator string, index int) core.Status {
	markets, ok := s.data[exchange]
	if !ok {
		return core.StatusNone
	}

	analysis, ok := markets[market]
	if !ok || analysis == nil {
		return core.StatusNone
	}

	occurrences, ok := analysis.Indicators[indicator]
	if !ok || index < 0 || index >= len(occurrences) {
		return core.StatusNone
	}

	return occurrences[index].Status
}

// Merge folds a cycle's snapshot into the state. The merge is shallow at the
// exchange granularity: every exchange present in the snapshot replaces its
// stored subtree wholesale, exchanges absent from the snapshot are kept.
// Callers must therefore always pass complete per-exchange data; a partial
// snapshot would silently drop still-valid market state.
func (s *State) Merge(snapshot core.AnalysisSnapshot) {
	for exchange, markets := range snapshot {
		s.data[exchange] = markets
	}
}

// Statuses exports every stored fired status keyed by core.OccurrenceKey,
// for persistence between restarts
func (s *State) Statuses() map[string]core.Status {
	statuses := make(map[string]core.Status)
	_ = s.data.Walk(func(exchange, market, indicator string, index int, occurrence *core.Occurrence) error {
		if occurrence.Status != core.StatusNone {
			statuses[core.OccurrenceKey(exchange, market, indicator, index)] = occurrence.Status
		}
		return nil
	})
	return statuses
}

// Restore rebuilds the state tree from persisted statuses. Keys that do not
// parse as occurrence keys are ignored.
func (s *State) Restore(statuses map[string]core.Status) {
	for key, status := range statuses {
		exchange, market, indicator, index, ok := splitOccurrenceKey(key)
		if !ok || !status.AlertWorthy() {
			continue
		}

		markets, ok := s.data[exchange]
		if !ok {
			markets = make(map[string]*core.MarketAnalysis)
			s.data[exchange] = markets
		}

		analysis, ok := markets[market]
		if !ok {
			analysis = &core.MarketAnalysis{Indicators: make(map[string][]*core.Occurrence)}
			markets[market] = analysis
		}

		occurrences := analysis.Indicators[indicator]
		for len(occurrences) <= index {
			occurrences = append(occurrences, &core.Occurrence{
				Config: core.IndicatorConfig{Signal: set.NewLinkedHashSetString()},
			})
		}
		occurrences[index].Status = status
		analysis.Indicators[indicator] = occurrences
	}
}

func splitOccurrenceKey(key string) (exchange, market, indicator string, index int, ok bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 4 {
		return "", "", "", 0, false
	}

	index, err := strconv.Atoi(parts[3])
	if err != nil || index < 0 {
		return "", "", "", 0, false
	}

	return parts[0], parts[1], parts[2], index, true
}
