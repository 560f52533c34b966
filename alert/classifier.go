// Package alert implements the alert classification, deduplication and
// templating engine. It decides, for every indicator occurrence in an
// analysis snapshot, whether the current state is a new alert-worthy event,
// renders the per-channel messages for it, and tracks the last fired status
// so stable conditions do not re-fire.
package alert

import (
	"github.com/raykavin/signalert/core"
)

// Classify derives the alert status from an indicator's latest result row.
// Hot is checked before cold, so hot wins if an indicator ever sets both
// flags at once. Upstream analysis should never do that, but the precedence
// is load-bearing and must not change.
func Classify(row core.Row) (core.Status, error) {
	hot, err := row.Flag(core.ColumnIsHot)
	if err != nil {
		return core.StatusNone, err
	}

	cold, err := row.Flag(core.ColumnIsCold)
	if err != nil {
		return core.StatusNone, err
	}

	switch {
	case hot:
		return core.StatusHot, nil
	case cold:
		return core.StatusCold, nil
	default:
		return core.StatusNeutral, nil
	}
}
