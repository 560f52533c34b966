package alert

import (
	"github.com/raykavin/signalert/core"
)

// ShouldAlert decides whether an occurrence's current status should produce
// an alert. Rules, in order:
//
//  1. Neutral (or unset) status never alerts.
//  2. A disabled indicator never alerts.
//  3. With the "once" frequency, a repeat of the last fired status is
//     suppressed.
//  4. Otherwise the alert fires.
//
// On a first observation last is core.StatusNone, which never equals an
// alert-worthy status, so rule 3 cannot suppress a first-time alert.
// The decision is pure; the caller records the new status when it fires.
func ShouldAlert(current, last core.Status, config core.IndicatorConfig) bool {
	if !current.AlertWorthy() {
		return false
	}

	if !config.AlertEnabled {
		return false
	}

	if config.AlertFrequency == core.FrequencyOnce && last == current {
		return false
	}

	return true
}
