package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sideduran/homeboard/internal/domain"
)

// DayPhrase renders a weekday set as a natural-language phrase. Exactly
// three special cases exist; any other set is listed literally in input
// order.
func DayPhrase(days []string) string {
	switch {
	case matchesDaySet(days, domain.DaysOfWeek):
		return "Every day"
	case matchesDaySet(days, domain.DaysOfWeek[:5]):
		return "Every weekday"
	case matchesDaySet(days, domain.DaysOfWeek[5:]):
		return "Every weekend"
	default:
		return "On " + strings.Join(days, ", ")
	}
}

// matchesDaySet reports whether days is exactly the given set, ignoring order.
func matchesDaySet(days, want []string) bool {
	if len(days) != len(want) {
		return false
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	if len(set) != len(want) {
		return false
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// ActionPhrase renders an operation as a verb phrase.
func ActionPhrase(op domain.Op, value *float64) string {
	switch op {
	case domain.OpTurnOn:
		return "turn ON"
	case domain.OpTurnOff:
		return "turn OFF"
	case domain.OpSetBrightness:
		return fmt.Sprintf("set brightness to %s%%", formatValue(value))
	case domain.OpSetTemperature:
		return fmt.Sprintf("set temperature to %s°C", formatValue(value))
	case domain.OpLock:
		return "lock"
	case domain.OpUnlock:
		return "unlock"
	default:
		// No dedicated phrase; humanize the canonical spelling.
		return strings.ReplaceAll(string(op), "_", " ")
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return "0"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// AutomationSummary renders the one-line sentence shown on automation cards:
//
//	"Every day at 23:00, turn OFF Living Room Ceiling Light."
//
// deviceNames are the resolved names of the action's targets, joined by
// commas.
func AutomationSummary(time string, days []string, op domain.Op, value *float64, deviceNames []string) string {
	return fmt.Sprintf("%s at %s, %s %s.",
		DayPhrase(days),
		time,
		ActionPhrase(op, value),
		strings.Join(deviceNames, ", "),
	)
}

// SummarizeAutomation renders the summary for an automation's first action,
// resolving target names through the supplied lookup. Multi-action
// automations summarize as their first action followed by a count of the
// rest.
func SummarizeAutomation(a domain.Automation, nameOf func(id string) string) string {
	if len(a.Actions) == 0 {
		return fmt.Sprintf("%s at %s.", DayPhrase(a.Days), a.Time)
	}

	first := a.Actions[0]
	names := []string{resolveName(first, nameOf)}
	summary := AutomationSummary(a.Time, a.Days, first.Op, first.Value, names)

	if extra := len(a.Actions) - 1; extra > 0 {
		summary += fmt.Sprintf(" (+%d more)", extra)
	}
	return summary
}

func resolveName(a domain.Action, nameOf func(id string) string) string {
	if nameOf != nil {
		if name := nameOf(a.TargetID); name != "" {
			return name
		}
	}
	return a.TargetID
}
